package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/onurcolak/emergency-alert-service/environments"
)

// ErrNotConfigured is returned when no API key was supplied.
var ErrNotConfigured = errors.New("gemini api key is not configured")

// ProviderError wraps a failure reported by, or before reaching, the
// generative text service. StatusCode is 0 when no request was made.
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return "gemini: " + e.Message
	}
	return fmt.Sprintf("gemini returned %d: %s", e.StatusCode, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	model      string
}

func NewClient(cfg environments.GeminiConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", &ProviderError{Message: ErrNotConfigured.Error(), Err: ErrNotConfigured}
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}

	var result generateResponse
	var apiErr errorResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("model", c.model).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}

	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		return "", &ProviderError{StatusCode: resp.StatusCode(), Message: msg}
	}

	if len(result.Candidates) == 0 {
		return "", &ProviderError{StatusCode: resp.StatusCode(), Message: "no candidates in response"}
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return sb.String(), nil
}
