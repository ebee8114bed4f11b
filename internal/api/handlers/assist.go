package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hoanghai1803/draftpad/internal/ai"
)

// assistRequest is the body accepted by the /api/assist endpoints.
type assistRequest struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

// AssistTitle handles POST /api/assist/title. It returns {"title": "..."}.
func AssistTitle(assistant *ai.Assistant) http.HandlerFunc {
	return assist(assistant, func(ctx context.Context, req assistRequest) (any, error) {
		title, err := assistant.GenerateTitle(ctx, req.Content)
		if err != nil {
			return nil, err
		}
		return map[string]string{"title": title}, nil
	})
}

// AssistSummary handles POST /api/assist/summary. It returns
// {"summary": "..."}.
func AssistSummary(assistant *ai.Assistant) http.HandlerFunc {
	return assist(assistant, func(ctx context.Context, req assistRequest) (any, error) {
		summary, err := assistant.GenerateSummary(ctx, req.Content)
		if err != nil {
			return nil, err
		}
		return map[string]string{"summary": summary}, nil
	})
}

// AssistKeywords handles POST /api/assist/keywords. It returns
// {"keywords": [...]}.
func AssistKeywords(assistant *ai.Assistant) http.HandlerFunc {
	return assist(assistant, func(ctx context.Context, req assistRequest) (any, error) {
		keywords, err := assistant.GenerateKeywords(ctx, req.Content, req.Title)
		if err != nil {
			return nil, err
		}
		if keywords == nil {
			keywords = []string{}
		}
		return map[string][]string{"keywords": keywords}, nil
	})
}

// assist wraps the shared request handling of the assist endpoints: the
// assistant must be configured and the content must not be blank.
func assist(assistant *ai.Assistant, generate func(context.Context, assistRequest) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if assistant == nil {
			writeError(w, http.StatusServiceUnavailable, "AI assistant is not configured")
			return
		}

		var req assistRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "content is required")
			return
		}

		resp, err := generate(r.Context(), req)
		if err != nil {
			writeAssistError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// writeAssistError maps an Assistant error to a response. The Assistant has
// already logged the failure.
func writeAssistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "AI request was canceled")
	case errors.Is(err, ai.ErrRequestFailed):
		writeError(w, http.StatusBadGateway, "AI request failed: "+err.Error())
	default:
		slog.Error("AI assistant failed", "error", err)
		writeError(w, http.StatusInternalServerError, "AI assistant failed")
	}
}
