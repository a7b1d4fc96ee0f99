// Package gemini is a small client for the Gemini generateContent REST
// endpoint. It sends text and inline binary parts and returns the text of the
// first candidate.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-1.5-flash"
	DefaultTimeout  = 60 * time.Second
	maxResponseSize = 50 * 1024 * 1024
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
	}
}

func (c *Client) Model() string { return c.model }

// GenerateContent sends one user turn made of parts and returns the text of
// the first candidate.
func (c *Client) GenerateContent(ctx context.Context, parts []Part, gen *GenerationConfig) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Role: "user", Parts: parts}},
		GenerationConfig: gen,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out generateResponse
	decodeErr := json.Unmarshal(respBody, &out)

	if resp.StatusCode != http.StatusOK || out.Error != nil {
		apiErr := &APIError{HTTPStatus: resp.StatusCode}
		if decodeErr == nil && out.Error != nil {
			apiErr.Code = out.Error.Code
			apiErr.Message = out.Error.Message
			apiErr.Status = out.Error.Status
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return "", apiErr
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	return out.text()
}

func (r *generateResponse) text() (string, error) {
	if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyResponse, r.PromptFeedback.BlockReason)
	}
	if len(r.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		if reason := r.Candidates[0].FinishReason; reason != "" && reason != "STOP" {
			return "", fmt.Errorf("%w: finish reason %s", ErrEmptyResponse, reason)
		}
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
