package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emailtriage/internal/classifier"
	"emailtriage/internal/extract"
	"emailtriage/internal/inference"
	infMocks "emailtriage/internal/inference/mocks"
	"emailtriage/internal/model"
	repoMocks "emailtriage/internal/repository/mocks"
	"emailtriage/internal/responder"
)

type triageFixture struct {
	zeroShot  *infMocks.MockZeroShotClassifier
	generator *infMocks.MockGenerator
	events    *repoMocks.MockClassificationEventRepository
	logs      *bytes.Buffer
	svc       *triageService
}

func newTriageFixture(t *testing.T, withAudit bool) *triageFixture {
	t.Helper()
	f := &triageFixture{
		zeroShot:  new(infMocks.MockZeroShotClassifier),
		generator: new(infMocks.MockGenerator),
		logs:      new(bytes.Buffer),
	}
	log := zerolog.New(f.logs)
	deps := TriageDeps{
		Extractor:  extract.New(nil),
		Classifier: classifier.New(nil, f.zeroShot, log),
		Responder:  responder.New(f.generator, log),
		Logger:     log,
	}
	if withAudit {
		f.events = new(repoMocks.MockClassificationEventRepository)
		deps.Events = f.events
	}
	svc, err := NewTriageService(deps, prometheus.NewRegistry())
	require.NoError(t, err)
	f.svc = svc.(*triageService)
	return f
}

func TestTriageService_Text(t *testing.T) {
	ctx := context.Background()

	t.Run("unproductive by rule", func(t *testing.T) {
		f := newTriageFixture(t, false)

		got, err := f.svc.Triage(ctx, Submission{Text: "  promoção imperdível, aproveite!  "})

		require.NoError(t, err)
		assert.Equal(t, &model.Triage{Category: model.Unproductive, Suggestion: responder.NoActionMessage}, got)
		f.zeroShot.AssertNotCalled(t, "ZeroShot", mock.Anything, mock.Anything, mock.Anything)
		f.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.svc.classifications.WithLabelValues("Unproductive", "rule")))
		assert.Equal(t, 1.0, testutil.ToFloat64(f.svc.replies.WithLabelValues("none")))
	})

	t.Run("productive by rule with generated reply", func(t *testing.T) {
		f := newTriageFixture(t, false)
		f.generator.On("Generate", mock.Anything, responder.Prompt("sistema fora do ar, erro 500 urgente", model.Productive)).
			Return(inference.Success("Olá! Estamos verificando.")).Once()

		got, err := f.svc.Triage(ctx, Submission{Text: "sistema fora do ar, erro 500 urgente"})

		require.NoError(t, err)
		assert.Equal(t, model.Productive, got.Category)
		assert.Equal(t, "Olá! Estamos verificando.", got.Suggestion)
		f.generator.AssertExpectations(t)
	})

	t.Run("zero-shot and generation both unreachable", func(t *testing.T) {
		f := newTriageFixture(t, false)
		f.zeroShot.On("ZeroShot", mock.Anything, mock.Anything, mock.Anything).
			Return(inference.Failure[[]string](errors.New("connection refused"))).Once()

		got, err := f.svc.Triage(ctx, Submission{Text: "Segue a ata da reunião."})

		require.NoError(t, err)
		assert.Equal(t, model.Unproductive, got.Category)
		assert.Equal(t, responder.NoActionMessage, got.Suggestion)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.svc.classifications.WithLabelValues("Unproductive", "fallback")))
	})

	t.Run("zero-shot productive with generation failure", func(t *testing.T) {
		f := newTriageFixture(t, false)
		f.zeroShot.On("ZeroShot", mock.Anything, mock.Anything, mock.Anything).
			Return(inference.Success([]string{classifier.LabelProductive, classifier.LabelUnproductive})).Once()
		f.generator.On("Generate", mock.Anything, mock.Anything).
			Return(inference.Failure[string](context.DeadlineExceeded)).Once()

		got, err := f.svc.Triage(ctx, Submission{Text: "Poderiam revisar o contrato anexo?"})

		require.NoError(t, err)
		assert.Equal(t, model.Productive, got.Category)
		assert.Equal(t, responder.FallbackMessage, got.Suggestion)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.svc.replies.WithLabelValues("fallback")))
	})

	t.Run("empty text", func(t *testing.T) {
		f := newTriageFixture(t, false)

		got, err := f.svc.Triage(ctx, Submission{Text: "   \n"})

		assert.ErrorIs(t, err, extract.ErrNoContent)
		assert.Nil(t, got)
	})
}

func TestTriageService_File(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		sub     Submission
		want    model.Category
		wantErr error
	}{
		{
			name: "latin-1 txt upload",
			sub:  Submission{Filename: "email.TXT", Data: []byte("promo\xe7\xe3o de natal")},
			want: model.Unproductive,
		},
		{
			name: "file wins over text",
			sub:  Submission{Filename: "email.txt", Data: []byte("feliz natal"), Text: "erro urgente"},
			want: model.Unproductive,
		},
		{
			name:    "unsupported extension",
			sub:     Submission{Filename: "email.docx", Data: []byte("erro")},
			wantErr: extract.ErrUnsupportedFormat,
		},
		{
			name:    "corrupt pdf",
			sub:     Submission{Filename: "email.pdf", Data: []byte("not a pdf")},
			wantErr: extract.ErrPDFUnreadable,
		},
		{
			name:    "blank txt",
			sub:     Submission{Filename: "email.txt", Data: []byte("  \r\n")},
			wantErr: extract.ErrNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTriageFixture(t, false)

			got, err := f.svc.Triage(ctx, tt.sub)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Category)
		})
	}
}

func TestTriageService_Audit(t *testing.T) {
	ctx := context.Background()

	t.Run("records outcome without content", func(t *testing.T) {
		f := newTriageFixture(t, true)
		f.events.On("Create", mock.Anything, mock.MatchedBy(func(ev *model.ClassificationEvent) bool {
			return ev.ID != "" &&
				ev.RequestID == "req-1" &&
				ev.Category == model.Unproductive &&
				ev.Source == "rule" &&
				ev.MatchedRule == "unproductive_words" &&
				ev.MatchedTerm == "natal" &&
				ev.InputKind == "txt" &&
				ev.Encoding == "utf-8" &&
				ev.CharCount == len([]rune("boas festas e feliz natal")) &&
				ev.ReplySource == "none" &&
				!ev.CreatedAt.IsZero()
		})).Return(&model.ClassificationEvent{}, nil).Once()

		_, err := f.svc.Triage(ctx, Submission{
			Filename:  "saudacao.txt",
			Data:      []byte("boas festas e feliz natal"),
			RequestID: "req-1",
		})

		require.NoError(t, err)
		f.events.AssertExpectations(t)
		assert.Contains(t, f.logs.String(), `"event":"email_classified"`)
		assert.NotContains(t, f.logs.String(), "boas festas")
	})

	t.Run("audit failure does not fail the request", func(t *testing.T) {
		f := newTriageFixture(t, true)
		f.events.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		got, err := f.svc.Triage(ctx, Submission{Text: "cupom de desconto"})

		require.NoError(t, err)
		assert.Equal(t, model.Unproductive, got.Category)
		assert.Contains(t, f.logs.String(), `"audit_failed":true`)
	})

	t.Run("extraction failure is not recorded", func(t *testing.T) {
		f := newTriageFixture(t, true)

		_, err := f.svc.Triage(ctx, Submission{Text: ""})

		assert.ErrorIs(t, err, extract.ErrNoContent)
		f.events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestNewTriageService_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	deps := TriageDeps{Extractor: extract.New(nil), Logger: zerolog.Nop()}

	_, err := NewTriageService(deps, reg)
	require.NoError(t, err)

	_, err = NewTriageService(deps, reg)
	assert.Error(t, err)
}
