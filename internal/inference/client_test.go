package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emailtriage/internal/config"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(config.InferenceConfig{
		Token:             "hf_test",
		ZeroShotURL:       url,
		GenerationURL:     url,
		ZeroShotTimeout:   timeout,
		GenerationTimeout: timeout,
	}, http.DefaultClient)
}

func TestClient_ZeroShot(t *testing.T) {
	t.Run("sends candidate labels and returns ranked labels", func(t *testing.T) {
		var got zeroShotRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{"sequence":"x","labels":["Produtivo","Improdutivo"],"scores":[0.8,0.2]}`))
		}))
		defer srv.Close()

		out := newTestClient(srv.URL, time.Second).ZeroShot(context.Background(), "texto", []string{"Produtivo", "Improdutivo"})

		require.True(t, out.Ok())
		labels, _ := out.Value()
		assert.Equal(t, []string{"Produtivo", "Improdutivo"}, labels)
		assert.Equal(t, "texto", got.Inputs)
		assert.Equal(t, []string{"Produtivo", "Improdutivo"}, got.Parameters.CandidateLabels)
	})

	t.Run("missing labels is a failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"scores":[]}`))
		}))
		defer srv.Close()

		out := newTestClient(srv.URL, time.Second).ZeroShot(context.Background(), "texto", []string{"a", "b"})

		assert.ErrorIs(t, out.Err(), ErrNoLabels)
	})

	t.Run("model loading error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20}`))
		}))
		defer srv.Close()

		out := newTestClient(srv.URL, time.Second).ZeroShot(context.Background(), "texto", []string{"a", "b"})

		require.False(t, out.Ok())
		assert.Contains(t, out.Err().Error(), "HTTP 503: Model is currently loading")
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>oops</html>`))
		}))
		defer srv.Close()

		out := newTestClient(srv.URL, time.Second).ZeroShot(context.Background(), "texto", []string{"a", "b"})

		require.False(t, out.Ok())
		assert.Contains(t, out.Err().Error(), "decode response")
	})

	t.Run("unreachable service", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		out := newTestClient(url, time.Second).ZeroShot(context.Background(), "texto", []string{"a", "b"})

		assert.False(t, out.Ok())
	})
}

func TestClient_Generate(t *testing.T) {
	t.Run("returns first generated text", func(t *testing.T) {
		var got generationRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`[{"generated_text":"  Olá, vamos verificar.  "},{"generated_text":"segunda"}]`))
		}))
		defer srv.Close()

		out := newTestClient(srv.URL, time.Second).Generate(context.Background(), "prompt")

		text, ok := out.Value()
		require.True(t, ok)
		assert.Equal(t, "  Olá, vamos verificar.  ", text)
		assert.Equal(t, "prompt", got.Inputs)
	})

	t.Run("first result without generated_text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"summary_text":"x"}]`))
		}))
		defer srv.Close()

		out := newTestClient(srv.URL, time.Second).Generate(context.Background(), "prompt")

		assert.ErrorIs(t, out.Err(), ErrNoGeneratedText)
	})

	t.Run("empty list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		out := newTestClient(srv.URL, time.Second).Generate(context.Background(), "prompt")

		assert.ErrorIs(t, out.Err(), ErrNoGeneratedText)
	})

	t.Run("object instead of list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"generated_text":"x"}`))
		}))
		defer srv.Close()

		out := newTestClient(srv.URL, time.Second).Generate(context.Background(), "prompt")

		assert.False(t, out.Ok())
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		out := newTestClient(srv.URL, 50*time.Millisecond).Generate(context.Background(), "prompt")

		require.False(t, out.Ok())
		assert.True(t, errors.Is(out.Err(), context.DeadlineExceeded))
	})
}

func TestOutcome(t *testing.T) {
	ok := Success("value")
	assert.True(t, ok.Ok())
	assert.NoError(t, ok.Err())
	assert.Equal(t, "value", ok.ValueOr("fallback"))

	failed := Failure[string](errors.New("boom"))
	assert.False(t, failed.Ok())
	assert.EqualError(t, failed.Err(), "boom")
	assert.Equal(t, "fallback", failed.ValueOr("fallback"))
	_, valid := failed.Value()
	assert.False(t, valid)
}
