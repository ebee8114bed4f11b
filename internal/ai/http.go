package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeout = 60 * time.Second

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// errorEnvelope is the {"error": {"message": ...}} shape shared by the
// OpenAI and Anthropic APIs.
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// postJSON marshals reqBody, POSTs it to url with the given headers and
// decodes a successful response into out. Every failure is a *RequestError.
func postJSON(ctx context.Context, client *http.Client, backend, url string, headers map[string]string, reqBody, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return &RequestError{Backend: backend, Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &RequestError{Backend: backend, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &RequestError{Backend: backend, Err: fmt.Errorf("sending request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Backend: backend, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	var env errorEnvelope
	_ = json.Unmarshal(respBody, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &RequestError{Backend: backend, StatusCode: resp.StatusCode}
		if env.Error != nil {
			rerr.Message = env.Error.Message
		}
		slog.Debug("AI backend returned error status", "backend", backend, "status", resp.StatusCode)
		return rerr
	}
	if env.Error != nil {
		return &RequestError{Backend: backend, StatusCode: resp.StatusCode, Message: env.Error.Message}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &RequestError{Backend: backend, StatusCode: resp.StatusCode, Err: fmt.Errorf("parsing response: %w", err)}
	}
	return nil
}
