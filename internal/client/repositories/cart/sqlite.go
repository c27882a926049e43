package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/bottlerun/bottlerun/internal/client/models"
	"github.com/bottlerun/bottlerun/internal/common"
	"github.com/bottlerun/bottlerun/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX
// (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, item *models.CartItem) error {
	if !models.ValidQuantity(item.Quantity) {
		return fmt.Errorf("%w: %d", common.ErrQuantityRange, item.Quantity)
	}

	// The merged quantity is capped rather than rejected, so tapping
	// "add" on an already-full line stays a no-op.
	query := `INSERT INTO cart_items (user_id, product_id, name, quantity, price)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, product_id) DO UPDATE SET
			quantity = MIN(?, cart_items.quantity + excluded.quantity),
			name = excluded.name,
			price = excluded.price`
	_, err := r.db.ExecContext(ctx, query,
		item.UserID, item.ProductID, item.Name, item.Quantity, item.Price,
		models.MaxCartQuantity)
	if err != nil {
		return fmt.Errorf("%w: failed to add cart item: %v", common.ErrStorageWrite, err)
	}
	return nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	query := `SELECT user_id, product_id, name, quantity, price
		FROM cart_items WHERE user_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select cart items: %v", common.ErrStorageRead, err)
	}
	defer rows.Close()

	var result []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.UserID, &item.ProductID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("%w: failed to scan cart item: %v", common.ErrStorageRead, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate cart items: %v", common.ErrStorageRead, err)
	}
	return result, nil
}

func (r *SQLiteRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if !models.ValidQuantity(quantity) {
		return fmt.Errorf("%w: %d", common.ErrQuantityRange, quantity)
	}

	query := `UPDATE cart_items SET quantity = ? WHERE user_id = ? AND product_id = ?`
	res, err := r.db.ExecContext(ctx, query, quantity, userID, productID)
	if err != nil {
		return fmt.Errorf("%w: failed to update quantity: %v", common.ErrStorageWrite, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected: %v", common.ErrStorageWrite, err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("%w: failed to remove cart item: %v", common.ErrStorageWrite, err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveAll(ctx context.Context, userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(productIDs)), ",")
	query := fmt.Sprintf(`DELETE FROM cart_items WHERE user_id = ? AND product_id IN (%s)`, placeholders)

	args := make([]any, 0, len(productIDs)+1)
	args = append(args, userID)
	for _, id := range productIDs {
		args = append(args, id)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: failed to remove cart items: %v", common.ErrStorageWrite, err)
	}
	return nil
}
