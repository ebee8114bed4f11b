package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanghai1803/draftpad/internal/drafts"
	"github.com/hoanghai1803/draftpad/internal/models"
	"github.com/hoanghai1803/draftpad/internal/storage"
)

// lockedKV fails every read the way a busy SQLite file does.
type lockedKV struct {
	*storage.MemoryKV
}

func (lockedKV) Get(context.Context, string) (string, error) {
	return "", errors.New("database is locked")
}

func TestListDrafts(t *testing.T) {
	t.Run("empty store returns empty array", func(t *testing.T) {
		svc := newTestService(t)
		w := httptest.NewRecorder()

		ListDrafts(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drafts", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("returns drafts in insertion order", func(t *testing.T) {
		svc := newTestService(t)
		seedDraft(t, svc, models.Draft{ID: "a", Title: "First"})
		seedDraft(t, svc, models.Draft{ID: "b", Title: "Second"})
		w := httptest.NewRecorder()

		ListDrafts(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/drafts", nil))

		var got []models.Draft
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})
}

func TestGetDraft(t *testing.T) {
	svc := newTestService(t)
	seedDraft(t, svc, models.Draft{ID: "a", Title: "First", Keywords: []string{"go"}})

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{"existing draft", "a", http.StatusOK},
		{"missing draft", "zzz", http.StatusNotFound},
		{"empty id", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withID(httptest.NewRequest(http.MethodGet, "/api/drafts/"+tt.id, nil), tt.id)
			w := httptest.NewRecorder()

			GetDraft(svc).ServeHTTP(w, r)

			require.Equal(t, tt.wantStatus, w.Code, "body: %s", w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got models.Draft
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, "First", got.Title)
			assert.Equal(t, []string{"go"}, got.Keywords)
		})
	}
}

func TestCreateDraft(t *testing.T) {
	t.Run("generates id when missing", func(t *testing.T) {
		svc := newTestService(t)
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/drafts", `{"title":"Hello","content":"World"}`)

		CreateDraft(svc, func() string { return "generated-id" }).ServeHTTP(w, r)

		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

		var got models.Draft
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, "generated-id", got.ID)

		_, err := svc.Get(context.Background(), "generated-id")
		assert.NoError(t, err, "draft not persisted")
	})

	t.Run("keeps client id", func(t *testing.T) {
		svc := newTestService(t)
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/drafts", `{"id":"mine","title":"Hello"}`)

		CreateDraft(svc, drafts.NewID).ServeHTTP(w, r)

		require.Equal(t, http.StatusCreated, w.Code)
		_, err := svc.Get(context.Background(), "mine")
		assert.NoError(t, err)
	})

	t.Run("missing id without generator is a validation error", func(t *testing.T) {
		svc := newTestService(t)
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/drafts", `{"title":"Hello"}`)

		CreateDraft(svc, nil).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := newTestService(t)
		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/drafts", `{not json`)

		CreateDraft(svc, drafts.NewID).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unreadable store fails without writing", func(t *testing.T) {
		kv := lockedKV{storage.NewMemoryKV()}
		ctx := context.Background()
		require.NoError(t, kv.Set(ctx, drafts.DefaultStorageKey, `[{"id":"a"},{"id":"b"}]`))

		w := httptest.NewRecorder()
		r := jsonRequest(http.MethodPost, "/api/drafts", `{"id":"c"}`)

		CreateDraft(drafts.NewStore(kv, ""), drafts.NewID).ServeHTTP(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		raw, err := kv.MemoryKV.Get(ctx, drafts.DefaultStorageKey)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"a"},{"id":"b"}]`, raw)
	})
}

func TestUpdateDraft(t *testing.T) {
	svc := newTestService(t)
	seedDraft(t, svc, models.Draft{ID: "a", Title: "Old"})

	r := withID(jsonRequest(http.MethodPut, "/api/drafts/a", `{"id":"ignored","title":"New"}`), "a")
	w := httptest.NewRecorder()

	UpdateDraft(svc).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1, "update must replace, not append")
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "New", all[0].Title)
}

func TestDeleteDraft(t *testing.T) {
	svc := newTestService(t)
	seedDraft(t, svc, models.Draft{ID: "a"})

	t.Run("existing draft", func(t *testing.T) {
		r := withID(httptest.NewRequest(http.MethodDelete, "/api/drafts/a", nil), "a")
		w := httptest.NewRecorder()

		DeleteDraft(svc).ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]bool
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.True(t, got["success"])
	})

	t.Run("not found", func(t *testing.T) {
		r := withID(httptest.NewRequest(http.MethodDelete, "/api/drafts/a", nil), "a")
		w := httptest.NewRecorder()

		DeleteDraft(svc).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestClearDrafts(t *testing.T) {
	svc := newTestService(t)
	seedDraft(t, svc, models.Draft{ID: "a"})
	seedDraft(t, svc, models.Draft{ID: "b"})
	w := httptest.NewRecorder()

	ClearDrafts(svc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/drafts", nil))

	require.Equal(t, http.StatusOK, w.Code)
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
