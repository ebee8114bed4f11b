package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hoanghai1803/draftpad/internal/ai"
	"github.com/hoanghai1803/draftpad/internal/drafts"
	"github.com/hoanghai1803/draftpad/internal/importer"
	"github.com/hoanghai1803/draftpad/internal/models"
)

// GenerateDraftFields handles POST /api/drafts/{id}/generate. It fills the
// draft's empty title, summary and keywords from its content and saves the
// result. With ?overwrite=true every field is regenerated.
func GenerateDraftFields(svc drafts.Service, assistant *ai.Assistant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if assistant == nil {
			writeError(w, http.StatusServiceUnavailable, "AI assistant is not configured")
			return
		}

		id, err := draftID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		overwrite := false
		if raw := r.URL.Query().Get("overwrite"); raw != "" {
			overwrite, err = strconv.ParseBool(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid overwrite parameter")
				return
			}
		}

		ctx := r.Context()

		d, err := svc.Get(ctx, id)
		if err != nil {
			writeDraftError(w, err, "Failed to get draft", "id", id)
			return
		}
		if strings.TrimSpace(d.Content) == "" {
			writeError(w, http.StatusBadRequest, "draft has no content")
			return
		}

		want := ai.Fields{
			Title:    overwrite || strings.TrimSpace(d.Title) == "",
			Summary:  overwrite || strings.TrimSpace(d.Summary) == "",
			Keywords: overwrite || len(d.Keywords) == 0,
		}
		if !want.Title && !want.Summary && !want.Keywords {
			writeJSON(w, http.StatusOK, d)
			return
		}

		s, err := assistant.Suggest(ctx, d.Content, d.Title, want)
		if err != nil {
			writeAssistError(w, err)
			return
		}

		if want.Title {
			d.Title = s.Title
		}
		if want.Summary {
			d.Summary = s.Summary
		}
		if want.Keywords {
			d.Keywords = s.Keywords
		}

		saved, err := svc.Save(ctx, *d)
		if err != nil {
			writeDraftError(w, err, "Failed to save draft", "id", id)
			return
		}

		slog.Info("generated draft fields", "id", id,
			"title", want.Title, "summary", want.Summary, "keywords", want.Keywords)
		writeJSON(w, http.StatusOK, saved)
	}
}

// ImportDraft handles POST /api/drafts/import. It fetches the article at
// {"url": "..."} and stores its title and text as a new draft.
func ImportDraft(svc drafts.Service, imp *importer.Importer, newID IDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if imp == nil {
			writeError(w, http.StatusServiceUnavailable, "article import is not configured")
			return
		}

		var body struct {
			URL string `json:"url"`
		}
		if err := decodeJSON(w, r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(body.URL) == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		ctx := r.Context()

		article, err := imp.FromURL(ctx, strings.TrimSpace(body.URL))
		if err != nil {
			if errors.Is(err, importer.ErrInvalidURL) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			slog.Error("failed to import article", "url", body.URL, "error", err)
			writeError(w, http.StatusBadGateway, "Failed to fetch article")
			return
		}

		d := models.Draft{
			Title:   article.Title,
			Content: article.Content,
		}
		if newID != nil {
			d.ID = newID()
		}

		saved, err := svc.Save(ctx, d)
		if err != nil {
			writeDraftError(w, err, "Failed to create draft", "url", article.URL)
			return
		}

		slog.Info("imported article", "id", saved.ID, "url", article.URL)
		writeJSON(w, http.StatusCreated, saved)
	}
}
