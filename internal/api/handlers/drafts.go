package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/draftpad/internal/drafts"
	"github.com/hoanghai1803/draftpad/internal/models"
)

// IDFunc generates an id for a draft created without one. A nil IDFunc
// leaves the id empty so the Service can assign it.
type IDFunc func() string

// ListDrafts handles GET /api/drafts. It returns every draft in collection
// order.
func ListDrafts(svc drafts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.List(r.Context())
		if err != nil {
			slog.Error("failed to list drafts", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to list drafts")
			return
		}
		if all == nil {
			all = []models.Draft{}
		}

		writeJSON(w, http.StatusOK, all)
	}
}

// GetDraft handles GET /api/drafts/{id}.
func GetDraft(svc drafts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := draftID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		d, err := svc.Get(r.Context(), id)
		if err != nil {
			writeDraftError(w, err, "Failed to get draft", "id", id)
			return
		}

		writeJSON(w, http.StatusOK, d)
	}
}

// CreateDraft handles POST /api/drafts. A draft without an id gets one from
// newID, when set.
func CreateDraft(svc drafts.Service, newID IDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d models.Draft
		if err := decodeJSON(w, r, &d); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if d.ID == "" && newID != nil {
			d.ID = newID()
		}

		saved, err := svc.Save(r.Context(), d)
		if err != nil {
			writeDraftError(w, err, "Failed to create draft", "id", d.ID)
			return
		}

		slog.Info("draft created", "id", saved.ID)
		writeJSON(w, http.StatusCreated, saved)
	}
}

// UpdateDraft handles PUT /api/drafts/{id}. The id in the path wins over
// any id in the body.
func UpdateDraft(svc drafts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := draftID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var d models.Draft
		if err := decodeJSON(w, r, &d); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		d.ID = id

		saved, err := svc.Save(r.Context(), d)
		if err != nil {
			writeDraftError(w, err, "Failed to save draft", "id", id)
			return
		}

		writeJSON(w, http.StatusOK, saved)
	}
}

// DeleteDraft handles DELETE /api/drafts/{id}.
func DeleteDraft(svc drafts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := draftID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		ok, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeDraftError(w, err, "Failed to delete draft", "id", id)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
	}
}

// ClearDrafts handles DELETE /api/drafts. It removes every draft.
func ClearDrafts(svc drafts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := svc.ClearAll(r.Context())
		if err != nil {
			slog.Error("failed to clear drafts", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to clear drafts")
			return
		}

		slog.Info("drafts cleared")
		writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
	}
}

// writeDraftError maps a drafts.Service error to a response. Unexpected
// errors are logged with the given attributes and reported as 500 with
// message.
func writeDraftError(w http.ResponseWriter, err error, message string, attrs ...any) {
	switch {
	case errors.Is(err, drafts.ErrNotFound):
		writeError(w, http.StatusNotFound, "Draft not found")
	case errors.Is(err, drafts.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(message, append(attrs, "error", err)...)
		writeError(w, http.StatusInternalServerError, message)
	}
}
