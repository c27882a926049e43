package credentials

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/bottlerun/bottlerun/internal/client/models"
	"github.com/bottlerun/bottlerun/internal/logging"
)

func setupStore(t *testing.T) *BoltStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.db")
	s, err := Open(path, logging.NewSlogLogger(slog.Default()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleProfile() *models.UserProfile {
	return &models.UserProfile{
		ID:        "u1",
		Username:  "kingsley",
		Firstname: "Kingsley",
		Email:     "k@example.com",
		IsAdmin:   false,
		Address:   models.Address{City: "Lagos"},
	}
}

func TestPutThenGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleProfile()))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "Lagos", got.Address.City)
}

func TestGet_AbsentReturnsNilNil(t *testing.T) {
	s := setupStore(t)

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPut_OverwritesPreviousValue(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleProfile()))

	p := sampleProfile()
	p.ID = "u2"
	require.NoError(t, s.Put(ctx, p))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u2", got.ID)
}

func TestClear_RemovesEntryAndIsIdempotent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleProfile()))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, s.Clear(ctx), "clearing an empty store must not fail")
}

func TestGet_UndecodableValueTreatedAsAbsent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	// Corrupt the stored value behind the store's back.
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(userKey), []byte("{not json"))
	})
	require.NoError(t, err)

	got, err := s.Get(ctx)
	require.NoError(t, err, "deserialization failure is treated as absence")
	require.Nil(t, got)
}

func TestOpen_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	log := logging.NewSlogLogger(slog.Default())

	s, err := Open(path, log)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), sampleProfile()))
	require.NoError(t, s.Close())

	s2, err := Open(path, log)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got, "profile must survive process restarts")
	assert.Equal(t, "u1", got.ID)
}
