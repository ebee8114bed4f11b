package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Compile-time interface check.
var _ Backend = (*GeminiBackend)(nil)

// GeminiBackend implements Backend using the Google Gemini API through the
// genai SDK.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a GeminiBackend. cfg.Endpoint, when set, replaces
// the SDK's base URL.
func NewGeminiBackend(ctx context.Context, cfg BackendConfig) (*GeminiBackend, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: newHTTPClient(cfg.Timeout),
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimSuffix(cfg.Endpoint, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiBackend{client: client, model: cfg.Model}, nil
}

// Complete returns the text of the first candidate.
func (p *GeminiBackend) Complete(ctx context.Context, prompt string) (string, error) {
	slog.Debug("calling Gemini API", "model", p.model)

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		rerr := &RequestError{Backend: ProviderGemini, Err: err}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			rerr.StatusCode = apiErr.Code
			rerr.Message = apiErr.Message
		}
		return "", rerr
	}

	text := result.Text()
	if text == "" {
		return "", &RequestError{Backend: ProviderGemini, StatusCode: http.StatusOK, Message: "empty response: no candidates returned"}
	}
	return text, nil
}
