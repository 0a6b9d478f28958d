// Package oracle adapts the Gemini generateContent API as the polarity
// classification oracle.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agawojdecka/polarify/internal/domain"
	"github.com/agawojdecka/polarify/internal/metrics"
	"github.com/jonboulle/clockwork"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient implements domain.PolarityOracle against the Gemini REST API.
// Every Classify call issues exactly one request; there is no retry and no
// caching. Any failure mode (transport, status, empty or unparseable body)
// wraps domain.ErrOracle.
type GeminiClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	clock      clockwork.Clock
}

// Option configures a GeminiClient.
type Option func(*GeminiClient)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *GeminiClient) { c.baseURL = baseURL }
}

// WithTimeout sets the per-request timeout for oracle calls.
func WithTimeout(timeout time.Duration) Option {
	return func(c *GeminiClient) { c.httpClient.Timeout = timeout }
}

// WithClock overrides the clock used for latency measurement.
func WithClock(clock clockwork.Clock) Option {
	return func(c *GeminiClient) { c.clock = clock }
}

func NewGeminiClient(apiKey, model string, opts ...Option) *GeminiClient {
	c := &GeminiClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// --- generateContent wire types ---

type generateRequest struct {
	SystemInstruction content          `json:"system_instruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Classify sends the batch to Gemini and parses the returned JSON object
// as an id -> polarity mapping.
func (c *GeminiClient) Classify(ctx context.Context, opinions []domain.Opinion) (map[string]float64, error) {
	start := c.clock.Now()

	mapping, err := c.classify(ctx, opinions)

	metrics.OracleRequestDuration.Observe(c.clock.Since(start).Seconds())
	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.OracleRequestsTotal.WithLabelValues("success").Inc()
	return mapping, nil
}

func (c *GeminiClient) classify(ctx context.Context, opinions []domain.Opinion) (map[string]float64, error) {
	payload := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Parts: []part{{Text: buildOpinionsPrompt(opinions)}}}},
		GenerationConfig:  generationConfig{ResponseMIMEType: "application/json"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", domain.ErrOracle, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", domain.ErrOracle, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrOracle, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrOracle, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrOracle, resp.StatusCode)
	}

	var generated generateResponse
	if err := json.Unmarshal(respBody, &generated); err != nil {
		return nil, fmt.Errorf("%w: invalid response envelope: %v", domain.ErrOracle, err)
	}

	text := candidateText(generated)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrOracle)
	}

	var mapping map[string]float64
	if err := json.Unmarshal([]byte(text), &mapping); err != nil {
		return nil, fmt.Errorf("%w: response is not a valid JSON mapping: %v", domain.ErrOracle, err)
	}

	return mapping, nil
}

func candidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return resp.Candidates[0].Content.Parts[0].Text
}
