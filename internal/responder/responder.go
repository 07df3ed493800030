// Package responder drafts the reply suggestion for a classified email.
package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"emailtriage/internal/classifier"
	"emailtriage/internal/inference"
	"emailtriage/internal/model"
)

const (
	// NoActionMessage is returned for Unproductive emails.
	NoActionMessage = "Este email não requer resposta automática."
	// FallbackMessage is returned when a reply could not be generated.
	FallbackMessage = "Recebemos sua solicitação e encaminhamos para a equipe responsável. " +
		"Agradecemos pelo contato e retornaremos em breve."
)

// Source tells how a Reply was produced.
type Source string

const (
	SourceNone      Source = "none"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Reply is the suggestion returned to the caller.
type Reply struct {
	Text   string
	Source Source
}

// Responder drafts replies for Productive emails through a text generation model.
type Responder struct {
	generator inference.Generator
	log       zerolog.Logger
}

// New returns a Responder backed by generator.
func New(generator inference.Generator, log zerolog.Logger) *Responder {
	return &Responder{generator: generator, log: log}
}

// Reply never fails: generation errors are logged and replaced by FallbackMessage.
func (r *Responder) Reply(ctx context.Context, text string, category model.Category) Reply {
	if category != model.Productive {
		return Reply{Text: NoActionMessage, Source: SourceNone}
	}

	out := r.generator.Generate(ctx, Prompt(text, category))
	generated := strings.TrimSpace(out.ValueOr(""))
	if generated == "" {
		ev := r.log.Warn().Str("event", "generation_failed")
		if err := out.Err(); err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("reply generation failed, using fallback message")
		return Reply{Text: FallbackMessage, Source: SourceFallback}
	}
	return Reply{Text: generated, Source: SourceGenerated}
}

// Prompt builds the generation prompt for an email of the given category.
func Prompt(text string, category model.Category) string {
	return fmt.Sprintf("Você é um assistente profissional. "+
		"Gere uma resposta breve e educada para um email classificado como '%s'. "+
		"Email: %s", classifier.Label(category), text)
}
