package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/hoanghai1803/draftpad/internal/models"
	"github.com/hoanghai1803/draftpad/internal/storage"
)

// Store keeps the whole draft collection as one JSON array under a single
// key. Every call reads, mutates and rewrites the collection while holding
// mu, so callers in this process never interleave a read-modify-write.
// Writers in other processes sharing the same KV still race at whole
// collection granularity: the last write wins.
type Store struct {
	kv  storage.KV
	key string
	mu  sync.Mutex
}

// NewStore creates a Store over kv. An empty key selects DefaultStorageKey.
func NewStore(kv storage.KV, key string) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Store{kv: kv, key: key}
}

// List returns every stored draft in collection order. A missing entry is an
// empty collection. An unreadable or corrupt entry is logged and also
// treated as empty. Get, Save and Delete return read errors instead.
func (s *Store) List(ctx context.Context) ([]models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		slog.Warn("failed to read drafts, treating as empty", "key", s.key, "error", err)
		return []models.Draft{}, nil
	}
	return all, nil
}

// Get returns the draft with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	d := all[i]
	return &d, nil
}

// Save inserts the draft, or replaces the stored draft with the same id in
// place. The full collection is then written back. The returned draft is the
// one passed in, with no fields added.
func (s *Store) Save(ctx context.Context, draft models.Draft) (*models.Draft, error) {
	if draft.ID == "" {
		return nil, fmt.Errorf("%w: draft must have an id", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, draft.ID); i >= 0 {
		all[i] = draft.Clone()
	} else {
		all = append(all, draft.Clone())
	}

	if err := s.persist(ctx, all); err != nil {
		return nil, err
	}

	saved := draft.Clone()
	return &saved, nil
}

// Delete removes the draft with the given id. It returns ErrNotFound when
// nothing was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	kept := slices.DeleteFunc(slices.Clone(all), func(d models.Draft) bool {
		return d.ID == id
	})
	if len(kept) == len(all) {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := s.persist(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// ClearAll removes the whole collection.
func (s *Store) ClearAll(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, s.key); err != nil {
		return false, fmt.Errorf("clearing drafts: %w", err)
	}
	return true, nil
}

// load must be called with mu held. A missing entry and an undecodable
// entry both read as an empty collection; only KV failures are returned.
func (s *Store) load(ctx context.Context) ([]models.Draft, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []models.Draft{}, nil
		}
		return nil, fmt.Errorf("reading drafts: %w", err)
	}

	var all []models.Draft
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		slog.Warn("failed to decode drafts, treating as empty", "key", s.key, "error", err)
		return []models.Draft{}, nil
	}
	if all == nil {
		all = []models.Draft{}
	}
	return all, nil
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context, all []models.Draft) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encoding drafts: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("writing drafts: %w", err)
	}
	return nil
}

func indexOf(all []models.Draft, id string) int {
	return slices.IndexFunc(all, func(d models.Draft) bool {
		return d.ID == id
	})
}
