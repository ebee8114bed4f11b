package drafts

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/hoanghai1803/draftpad/internal/models"
)

// DefaultRemoteLatency is the artificial round-trip delay of RemoteStore.
const DefaultRemoteLatency = 300 * time.Millisecond

// RemoteStore behaves like a remote drafts API in front of a local Store.
// Compared to Store it:
//   - waits latency before every operation,
//   - assigns an id to drafts saved without one and stamps UpdatedAt,
//   - reports success from Delete even when the id does not exist.
type RemoteStore struct {
	local   *Store
	latency time.Duration
	now     func() time.Time

	mu     sync.Mutex
	lastID int64
}

// NewRemoteStore creates a RemoteStore backed by local. A negative latency
// is treated as zero.
func NewRemoteStore(local *Store, latency time.Duration) *RemoteStore {
	return &RemoteStore{
		local:   local,
		latency: max(latency, 0),
		now:     time.Now,
	}
}

// List returns every draft after the simulated round trip.
func (r *RemoteStore) List(ctx context.Context) ([]models.Draft, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	all, err := r.local.List(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("remote drafts: listed", "count", len(all))
	return all, nil
}

// Get returns the draft with the given id, or ErrNotFound.
func (r *RemoteStore) Get(ctx context.Context, id string) (*models.Draft, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.local.Get(ctx, id)
}

// Save assigns a timestamp-derived id when the draft has none, stamps
// UpdatedAt and stores the result.
func (r *RemoteStore) Save(ctx context.Context, draft models.Draft) (*models.Draft, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}

	d := draft.Clone()
	if d.ID == "" {
		d.ID = r.nextID()
	}
	now := r.now().UTC()
	d.UpdatedAt = &now

	saved, err := r.local.Save(ctx, d)
	if err != nil {
		return nil, err
	}
	slog.Debug("remote drafts: saved", "id", saved.ID)
	return saved, nil
}

// Delete removes the draft if present. A missing id is still a success.
func (r *RemoteStore) Delete(ctx context.Context, id string) (bool, error) {
	if err := r.wait(ctx); err != nil {
		return false, err
	}
	if _, err := r.local.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}
	slog.Debug("remote drafts: deleted", "id", id)
	return true, nil
}

// ClearAll removes every draft.
func (r *RemoteStore) ClearAll(ctx context.Context) (bool, error) {
	if err := r.wait(ctx); err != nil {
		return false, err
	}
	return r.local.ClearAll(ctx)
}

// nextID returns the current Unix time in milliseconds, bumped so that ids
// handed out by this store are strictly increasing.
func (r *RemoteStore) nextID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

func (r *RemoteStore) wait(ctx context.Context) error {
	if r.latency == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(r.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
