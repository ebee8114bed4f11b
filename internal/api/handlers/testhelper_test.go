package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/hoanghai1803/draftpad/internal/ai"
	"github.com/hoanghai1803/draftpad/internal/drafts"
	"github.com/hoanghai1803/draftpad/internal/models"
	"github.com/hoanghai1803/draftpad/internal/storage"
)

// newTestService creates a draft Store over an in-memory KV.
func newTestService(t *testing.T) *drafts.Store {
	t.Helper()
	return drafts.NewStore(storage.NewMemoryKV(), "")
}

// seedDraft saves d into svc and fails the test on error.
func seedDraft(t *testing.T, svc drafts.Service, d models.Draft) {
	t.Helper()
	_, err := svc.Save(context.Background(), d)
	require.NoError(t, err, "seeding draft %q", d.ID)
}

// withID returns r with the chi URL param "id" set.
func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with body as its JSON payload.
func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// stubBackend answers prompts by their first line, so tests can tell the
// title, summary and keywords calls apart.
type stubBackend struct {
	title    string
	summary  string
	keywords string
	err      error
}

func (b *stubBackend) Complete(ctx context.Context, prompt string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	instruction, _, _ := strings.Cut(strings.ToLower(prompt), "\n")
	switch {
	case strings.Contains(instruction, "keywords"):
		return b.keywords, nil
	case strings.Contains(instruction, "summar"):
		return b.summary, nil
	default:
		return b.title, nil
	}
}

// newTestAssistant returns an Assistant backed by a stubBackend with fixed
// replies.
func newTestAssistant() *ai.Assistant {
	return ai.NewAssistant(&stubBackend{
		title:    "  Generated Title\n",
		summary:  "Generated summary.",
		keywords: "1. go, 2. testing\nhttp",
	})
}
