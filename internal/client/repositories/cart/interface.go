// Package cart persists local cart line items, one row per
// (user, product) pair.
package cart

import (
	"context"

	"github.com/bottlerun/bottlerun/internal/client/models"
)

// Repository describes the cart line-item store.
//
// A UNIQUE(user_id, product_id) index backs the merge semantics of Add:
// re-adding a product increments the existing row's quantity instead of
// inserting a duplicate, capped at models.MaxCartQuantity.
type Repository interface {
	// Add inserts a cart line or merges quantities into an existing one.
	Add(ctx context.Context, item *models.CartItem) error

	// ListByUser returns the user's cart lines in insertion order.
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)

	// UpdateQuantity sets the quantity of an existing line. It rejects
	// quantities outside [MinCartQuantity, MaxCartQuantity] and returns
	// common.ErrNotFound when no matching row exists.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error

	// Remove deletes one line. Removing an absent line is not an error.
	Remove(ctx context.Context, userID, productID string) error

	// RemoveAll deletes the lines for the given product ids in one pass.
	// Callers wanting all-or-nothing semantics bind the repository to a
	// transaction via dbx.WithTx.
	RemoveAll(ctx context.Context, userID string, productIDs []string) error
}
