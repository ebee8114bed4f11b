package ai

import (
	"context"
	"log/slog"
	"net/http"
)

// Compile-time interface checks.
var (
	_ Backend = (*OpenAIBackend)(nil)
	_ Backend = (*OpenAIChatBackend)(nil)
)

const (
	openaiCompletionsURL = "https://api.openai.com/v1/completions"
	openaiChatURL        = "https://api.openai.com/v1/chat/completions"
)

// OpenAIBackend sends flat prompts to the OpenAI legacy Completions API.
type OpenAIBackend struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenAIBackend creates an OpenAIBackend. cfg.Endpoint, when set,
// replaces the public Completions URL.
func NewOpenAIBackend(cfg BackendConfig) *OpenAIBackend {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = openaiCompletionsURL
	}
	return &OpenAIBackend{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: endpoint,
		client:   newHTTPClient(cfg.Timeout),
	}
}

type openaiCompletionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type openaiCompletionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete returns the text of the first choice.
func (p *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := openaiCompletionRequest{
		Model:       p.model,
		Prompt:      prompt,
		MaxTokens:   150,
		Temperature: 0.7,
	}

	slog.Debug("calling OpenAI completions API", "model", p.model)

	var resp openaiCompletionResponse
	if err := postJSON(ctx, p.client, ProviderOpenAI, p.endpoint, bearer(p.apiKey), reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &RequestError{Backend: ProviderOpenAI, StatusCode: http.StatusOK, Message: "empty response: no choices returned"}
	}
	return resp.Choices[0].Text, nil
}

// OpenAIChatBackend sends each prompt as a single user turn to the OpenAI
// Chat Completions API.
type OpenAIChatBackend struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenAIChatBackend creates an OpenAIChatBackend.
func NewOpenAIChatBackend(cfg BackendConfig) *OpenAIChatBackend {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = openaiChatURL
	}
	return &OpenAIChatBackend{
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		endpoint: endpoint,
		client:   newHTTPClient(cfg.Timeout),
	}
}

type openaiChatRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete returns the message content of the first choice.
func (p *OpenAIChatBackend) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := openaiChatRequest{
		Model: p.model,
		Messages: []openaiMessage{
			{Role: "user", Content: prompt},
		},
	}

	slog.Debug("calling OpenAI chat API", "model", p.model)

	var resp openaiChatResponse
	if err := postJSON(ctx, p.client, ProviderOpenAIChat, p.endpoint, bearer(p.apiKey), reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &RequestError{Backend: ProviderOpenAIChat, StatusCode: http.StatusOK, Message: "empty response: no choices returned"}
	}
	return resp.Choices[0].Message.Content, nil
}

func bearer(apiKey string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + apiKey}
}
