// Package credentials caches the logged-in user's profile in a local
// key-value store under a single fixed key. The cache is the fast-path
// read the UI uses to decide what to render; it never holds the bearer
// token, which lives only in the relational session store.
package credentials

import (
	"context"

	"github.com/bottlerun/bottlerun/internal/client/models"
)

// Store holds at most one serialized profile.
type Store interface {
	// Put clears any existing value and stores the profile.
	Put(ctx context.Context, profile *models.UserProfile) error

	// Get returns the cached profile, or (nil, nil) when absent.
	// A value that no longer deserializes is treated as absent and
	// logged, not surfaced as an error.
	Get(ctx context.Context) (*models.UserProfile, error)

	// Clear removes the entry. Idempotent.
	Clear(ctx context.Context) error
}
