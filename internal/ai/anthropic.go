package ai

import (
	"context"
	"log/slog"
	"net/http"
)

// Compile-time interface check.
var _ Backend = (*AnthropicBackend)(nil)

const anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// AnthropicBackend implements Backend using the Anthropic Messages API.
type AnthropicBackend struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewAnthropicBackend creates an AnthropicBackend.
func NewAnthropicBackend(cfg BackendConfig) *AnthropicBackend {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = anthropicAPIURL
	}
	return &AnthropicBackend{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: endpoint,
		client:   newHTTPClient(cfg.Timeout),
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Complete returns the text of the first content block.
func (p *AnthropicBackend) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     p.model,
		MaxTokens: 1024,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}
	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": "2023-06-01",
	}

	slog.Debug("calling Anthropic API", "model", p.model)

	var resp anthropicResponse
	if err := postJSON(ctx, p.client, ProviderAnthropic, p.endpoint, headers, reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Content) == 0 {
		return "", &RequestError{Backend: ProviderAnthropic, StatusCode: http.StatusOK, Message: "empty response: no content blocks returned"}
	}
	return resp.Content[0].Text, nil
}
