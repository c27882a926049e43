// Package session persists the single local user session: the bearer
// token plus a mirror of the profile fields, one row at a time.
package session

import (
	"context"

	"github.com/bottlerun/bottlerun/internal/client/models"
)

// Repository stores at most one session row.
//
// Replace issues a delete followed by an insert; callers that need the
// two steps to be atomic must bind the repository to a transaction via
// dbx.WithTx, which is what the session service does.
type Repository interface {
	// Replace removes any existing session row and inserts the given one.
	Replace(ctx context.Context, s *models.Session) error

	// Get returns the current session, or (nil, nil) when nobody is
	// logged in.
	Get(ctx context.Context) (*models.Session, error)

	// Clear deletes all session rows. Idempotent.
	Clear(ctx context.Context) error
}
