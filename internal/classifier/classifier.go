// Package classifier decides whether an email is Productive or Unproductive.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"emailtriage/internal/inference"
	"emailtriage/internal/model"
)

// Candidate labels sent to the zero-shot model, in the language of the rule vocabulary.
const (
	LabelProductive   = "Produtivo"
	LabelUnproductive = "Improdutivo"
)

// Source tells which stage produced a Decision.
type Source string

const (
	SourceRule     Source = "rule"
	SourceZeroShot Source = "zero_shot"
	SourceFallback Source = "fallback"
)

// Decision is the classification of one email.
type Decision struct {
	Category    model.Category
	Source      Source
	MatchedRule string
	MatchedTerm string
}

// Classifier evaluates its rules top to bottom and stops at the first match.
// When no rule matches it asks the zero-shot model; a failed call means Unproductive.
type Classifier struct {
	rules    []Rule
	zeroShot inference.ZeroShotClassifier
	log      zerolog.Logger
}

// New returns a Classifier. A nil rules slice selects DefaultRules.
func New(rules []Rule, zeroShot inference.ZeroShotClassifier, log zerolog.Logger) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules, zeroShot: zeroShot, log: log}
}

// Classify returns exactly one category for text.
func (c *Classifier) Classify(ctx context.Context, text string) Decision {
	lowered := strings.ToLower(text)
	for _, r := range c.rules {
		if term, ok := r.Match(lowered); ok {
			return Decision{
				Category:    r.Category,
				Source:      SourceRule,
				MatchedRule: r.Name,
				MatchedTerm: term,
			}
		}
	}

	out := c.zeroShot.ZeroShot(ctx, zeroShotPrompt(text), []string{LabelProductive, LabelUnproductive})
	labels, ok := out.Value()
	if !ok {
		c.log.Warn().Err(out.Err()).Str("event", "zero_shot_failed").Msg("zero-shot classification failed, defaulting to unproductive")
		return Decision{Category: model.Unproductive, Source: SourceFallback}
	}

	switch labels[0] {
	case LabelProductive:
		return Decision{Category: model.Productive, Source: SourceZeroShot}
	case LabelUnproductive:
		return Decision{Category: model.Unproductive, Source: SourceZeroShot}
	default:
		c.log.Warn().Str("event", "zero_shot_unknown_label").Str("label", labels[0]).Msg("zero-shot returned an unknown label, defaulting to unproductive")
		return Decision{Category: model.Unproductive, Source: SourceFallback}
	}
}

// Label returns the zero-shot label naming category.
func Label(category model.Category) string {
	if category == model.Productive {
		return LabelProductive
	}
	return LabelUnproductive
}

func zeroShotPrompt(text string) string {
	return fmt.Sprintf("Este é um email recebido por um assistente profissional. "+
		"Classifique se é '%s' ou '%s'. Conteúdo: %s", LabelProductive, LabelUnproductive, text)
}
