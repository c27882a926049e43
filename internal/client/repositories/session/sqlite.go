package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *SQLiteRepository) Replace(ctx context.Context, s *models.Session) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("%w: failed to clear session: %v", common.ErrStorageWrite, err)
	}

	query := `INSERT INTO users
		(id, token, username, firstname, lastname, email, address, phone,
		 image_public_id, image_url, isVerified, isAdmin, FCMtoken)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.UserID, s.Token, s.Username, s.Firstname, s.Lastname, s.Email,
		s.Address, s.Phone, s.ImagePublicID, s.ImageURL,
		s.IsVerified, s.IsAdmin, s.PushToken)
	if err != nil {
		return fmt.Errorf("%w: failed to insert session: %v", common.ErrStorageWrite, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.Session, error) {
	query := `SELECT id, token, username, firstname, lastname, email, address,
		phone, image_public_id, image_url, isVerified, isAdmin, FCMtoken
		FROM users LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)

	s := &models.Session{}
	err := row.Scan(&s.UserID, &s.Token, &s.Username, &s.Firstname, &s.Lastname,
		&s.Email, &s.Address, &s.Phone, &s.ImagePublicID, &s.ImageURL,
		&s.IsVerified, &s.IsAdmin, &s.PushToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read session: %v", common.ErrStorageRead, err)
	}
	return s, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("%w: failed to clear session: %v", common.ErrStorageWrite, err)
	}
	return nil
}
