// Package drafts persists blog post drafts as a single serialized collection
// under one key of a storage.KV.
//
// Two interchangeable implementations of Service exist: Store, which reads
// and writes the collection directly, and RemoteStore, which fronts a Store
// with the latency and server-side behavior of a remote drafts API.
package drafts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hoanghai1803/draftpad/internal/models"
)

// DefaultStorageKey is the key the draft collection is stored under.
const DefaultStorageKey = "blog_ai_drafts"

var (
	// ErrNotFound is returned when no draft has the requested id.
	ErrNotFound = errors.New("draft not found")

	// ErrValidation is returned when a draft is missing a required field.
	ErrValidation = errors.New("invalid draft")
)

// Service is the CRUD contract shared by Store and RemoteStore.
type Service interface {
	List(ctx context.Context) ([]models.Draft, error)
	Get(ctx context.Context, id string) (*models.Draft, error)
	Save(ctx context.Context, draft models.Draft) (*models.Draft, error)
	Delete(ctx context.Context, id string) (bool, error)
	ClearAll(ctx context.Context) (bool, error)
}

// Compile-time interface checks.
var (
	_ Service = (*Store)(nil)
	_ Service = (*RemoteStore)(nil)
)

// NewID returns a fresh random draft id.
func NewID() string {
	return uuid.NewString()
}
