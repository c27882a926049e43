package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/bottlerun/bottlerun/internal/client/models"
	"github.com/bottlerun/bottlerun/internal/dbx"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id TEXT PRIMARY KEY, token TEXT, username TEXT, firstname TEXT,
  lastname TEXT, email TEXT, address TEXT, phone TEXT,
  image_public_id TEXT, image_url TEXT,
  isVerified INTEGER, isAdmin INTEGER, FCMtoken TEXT
);`)
	require.NoError(t, err)
	return db
}

func countSessions(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func sampleSession(id, token string) *models.Session {
	return &models.Session{
		UserID:    id,
		Token:     token,
		Username:  "kingsley",
		Firstname: "Kingsley",
		Lastname:  "Okoye",
		Email:     "k@example.com",
		Address:   `{"city":"Lagos"}`,
		Phone:     "0800",
		IsAdmin:   false,
	}
}

func TestReplace_InsertsExactlyOneRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Replace(ctx, sampleSession("u1", "T1")))
	require.Equal(t, 1, countSessions(t, db))

	got, err := r.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "T1", got.Token)
	assert.Equal(t, "kingsley", got.Username)
	assert.False(t, got.IsAdmin)
}

func TestReplace_OverwritesPreviousSession(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Replace(ctx, sampleSession("u1", "T1")))
	require.NoError(t, r.Replace(ctx, sampleSession("u2", "T2")))

	require.Equal(t, 1, countSessions(t, db), "at most one session row may exist")

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u2", got.UserID)
	assert.Equal(t, "T2", got.Token)
}

func TestReplace_InsideTransactionRollsBackAsOne(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewSQLiteRepository(db).Replace(ctx, sampleSession("u1", "T1")))

	// Fail after the Replace inside the transaction: the pre-existing
	// session must survive because delete+insert rolled back together.
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := NewSQLiteRepository(tx).Replace(ctx, sampleSession("u2", "T2")); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	got, err := NewSQLiteRepository(db).Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
}

func TestGet_NoSessionReturnsNilNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestClear_RemovesRowAndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Replace(ctx, sampleSession("u1", "T1")))
	require.NoError(t, r.Clear(ctx))
	require.Equal(t, 0, countSessions(t, db))

	require.NoError(t, r.Clear(ctx), "clearing an empty store must not fail")
}

func TestReplace_DBErrorSurfacesAsStorageWrite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	err := r.Replace(context.Background(), sampleSession("u1", "T1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage write failed")
}
