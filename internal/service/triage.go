package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"emailtriage/internal/classifier"
	"emailtriage/internal/extract"
	"emailtriage/internal/model"
	"emailtriage/internal/repository"
	"emailtriage/internal/responder"
)

// Submission is one email sent for classification. When Filename is set the
// upload in Data is used and Text is ignored.
type Submission struct {
	Filename  string
	Data      []byte
	Text      string
	RequestID string
}

// TriageService classifies emails and suggests a reply.
type TriageService interface {
	// Triage returns the category and reply suggestion for sub.
	// Only extraction errors (see package extract) are returned; remote
	// inference failures degrade to fallback answers.
	Triage(ctx context.Context, sub Submission) (*model.Triage, error)
}

// TriageDeps groups the collaborators of the triage service.
// Events may be nil, which disables the audit log.
type TriageDeps struct {
	Extractor  *extract.Extractor
	Classifier *classifier.Classifier
	Responder  *responder.Responder
	Events     repository.ClassificationEventRepository
	Logger     zerolog.Logger
}

type triageService struct {
	TriageDeps
	now             func() time.Time
	tracer          trace.Tracer
	classifications *prometheus.CounterVec
	replies         *prometheus.CounterVec
}

// NewTriageService constructs a TriageService and registers its counters on reg.
func NewTriageService(deps TriageDeps, reg prometheus.Registerer) (TriageService, error) {
	s := &triageService{
		TriageDeps: deps,
		now:        time.Now,
		tracer:     otel.Tracer("emailtriage/internal/service"),
		classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triage_classifications_total",
				Help: "Total number of classified emails by category and decision source.",
			},
			[]string{"category", "source"},
		),
		replies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triage_replies_total",
				Help: "Total number of reply suggestions by how they were produced.",
			},
			[]string{"source"},
		),
	}
	if err := reg.Register(s.classifications); err != nil {
		return nil, err
	}
	if err := reg.Register(s.replies); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *triageService) Triage(ctx context.Context, sub Submission) (*model.Triage, error) {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, "TriageService.Triage", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	var (
		res extract.Result
		err error
	)
	if sub.Filename != "" {
		res, err = s.Extractor.FromFile(sub.Filename, sub.Data)
	} else {
		res, err = s.Extractor.FromText(sub.Text)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		return nil, err
	}

	decision := s.Classifier.Classify(ctx, res.Text)
	reply := s.Responder.Reply(ctx, res.Text, decision.Category)

	span.SetAttributes(
		attribute.String("triage.input_kind", string(res.Kind)),
		attribute.String("triage.category", string(decision.Category)),
		attribute.String("triage.source", string(decision.Source)),
		attribute.String("triage.reply_source", string(reply.Source)),
	)
	s.classifications.WithLabelValues(string(decision.Category), string(decision.Source)).Inc()
	s.replies.WithLabelValues(string(reply.Source)).Inc()

	ev := &model.ClassificationEvent{
		ID:          uuid.NewString(),
		RequestID:   sub.RequestID,
		Category:    decision.Category,
		Source:      string(decision.Source),
		MatchedRule: decision.MatchedRule,
		MatchedTerm: decision.MatchedTerm,
		InputKind:   string(res.Kind),
		Encoding:    res.Encoding,
		CharCount:   utf8.RuneCountInString(res.Text),
		ReplySource: string(reply.Source),
		DurationMs:  s.now().Sub(start).Milliseconds(),
		CreatedAt:   s.now().UTC(),
	}
	s.record(ctx, ev)

	return &model.Triage{Category: decision.Category, Suggestion: reply.Text}, nil
}

// record stores ev in the audit log. Failures are logged and never reach the caller.
func (s *triageService) record(ctx context.Context, ev *model.ClassificationEvent) {
	var err error
	if s.Events != nil {
		_, err = s.Events.Create(ctx, ev)
	}

	var log *zerolog.Event
	if err != nil {
		log = s.Logger.Warn().Err(err).Bool("audit_failed", true)
	} else {
		log = s.Logger.Info()
	}
	log.
		Str("event", "email_classified").
		Str("request_id", ev.RequestID).
		Str("category", string(ev.Category)).
		Str("source", ev.Source).
		Str("matched_rule", ev.MatchedRule).
		Str("input_kind", ev.InputKind).
		Int("char_count", ev.CharCount).
		Str("reply_source", ev.ReplySource).
		Int64("duration_ms", ev.DurationMs).
		Send()
}
