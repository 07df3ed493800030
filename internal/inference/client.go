// Package inference calls the hosted zero-shot classification and text generation models.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"emailtriage/internal/config"
)

var (
	ErrNoLabels        = errors.New("zero-shot response has no labels")
	ErrNoGeneratedText = errors.New("generation response has no generated_text")
)

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 1 << 20

// ZeroShotClassifier ranks candidate labels for a text.
type ZeroShotClassifier interface {
	// ZeroShot returns the candidate labels ordered by descending confidence.
	ZeroShot(ctx context.Context, text string, labels []string) Outcome[[]string]
}

// Generator drafts text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) Outcome[string]
}

// Client talks to the Hugging Face Inference API with bearer-token auth.
// It is safe for concurrent use.
type Client struct {
	httpClient        *http.Client
	token             string
	zeroShotURL       string
	generationURL     string
	zeroShotTimeout   time.Duration
	generationTimeout time.Duration
}

var (
	_ ZeroShotClassifier = (*Client)(nil)
	_ Generator          = (*Client)(nil)
)

// NewClient builds a Client from cfg. A nil httpClient gets an otelhttp-instrumented default.
func NewClient(cfg config.InferenceConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{
		httpClient:        httpClient,
		token:             cfg.Token,
		zeroShotURL:       cfg.ZeroShotURL,
		generationURL:     cfg.GenerationURL,
		zeroShotTimeout:   cfg.ZeroShotTimeout,
		generationTimeout: cfg.GenerationTimeout,
	}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type zeroShotResponse struct {
	Labels []string `json:"labels"`
}

// ZeroShot posts {inputs, parameters.candidate_labels} and returns the ranked labels.
func (c *Client) ZeroShot(ctx context.Context, text string, labels []string) Outcome[[]string] {
	body := zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: labels},
	}

	var out zeroShotResponse
	if err := c.post(ctx, c.zeroShotURL, c.zeroShotTimeout, body, &out); err != nil {
		return Failure[[]string](fmt.Errorf("zero-shot: %w", err))
	}
	if len(out.Labels) == 0 {
		return Failure[[]string](ErrNoLabels)
	}
	return Success(out.Labels)
}

type generationRequest struct {
	Inputs string `json:"inputs"`
}

type generationResult struct {
	GeneratedText *string `json:"generated_text"`
}

// Generate posts {inputs} and returns the generated_text of the first result.
func (c *Client) Generate(ctx context.Context, prompt string) Outcome[string] {
	var out []generationResult
	if err := c.post(ctx, c.generationURL, c.generationTimeout, generationRequest{Inputs: prompt}, &out); err != nil {
		return Failure[string](fmt.Errorf("generate: %w", err))
	}
	if len(out) == 0 || out[0].GeneratedText == nil {
		return Failure[string](ErrNoGeneratedText)
	}
	return Success(*out[0].GeneratedText)
}

// providerError is the body the API returns while a model is loading or on bad input.
type providerError struct {
	Error string `json:"error"`
}

func (c *Client) post(ctx context.Context, url string, timeout time.Duration, in, out any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var pe providerError
		if json.Unmarshal(raw, &pe) == nil && pe.Error != "" {
			return fmt.Errorf("provider returned HTTP %d: %s", resp.StatusCode, pe.Error)
		}
		return fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
