package services

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/bottlerun/bottlerun/internal/client/api"
	"github.com/bottlerun/bottlerun/internal/client/models"
	"github.com/bottlerun/bottlerun/internal/client/repositories/credentials"
	"github.com/bottlerun/bottlerun/internal/client/store"
	"github.com/bottlerun/bottlerun/internal/logging"
)

// ---- test fixtures ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupCreds(t *testing.T) *credentials.BoltStore {
	t.Helper()
	s, err := credentials.Open(filepath.Join(t.TempDir(), "credentials.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.Default())
}

func testToken(t *testing.T, subject string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func sampleUser(id string, admin bool) models.UserProfile {
	return models.UserProfile{
		ID:        id,
		Username:  "kingsley",
		Firstname: "Kingsley",
		Lastname:  "Okoye",
		Email:     "k@example.com",
		Phone:     "0800",
		IsAdmin:   admin,
		Address:   models.Address{City: "Lagos"},
	}
}

// ---- fake API client ----

// fakeClient implements api.Client for service unit tests.
type fakeClient struct {
	LoginRes *api.AuthResult
	LoginErr error

	GoogleRes *api.AuthResult
	GoogleErr error

	RegisterRes *models.UserProfile
	RegisterErr error

	UpdateRes *models.UserProfile
	UpdateErr error

	OrderRes *api.OrderResult
	OrderErr error

	// recorded state for assertions
	Token        string
	TokenCleared bool

	LastLoginEmail    string
	LastLoginPassword string
	LastGoogleToken   string
	LastRegister      *api.SignupRequest
	LastUpdate        *api.UpdateProfileRequest
	LastOrder         *api.OrderRequest
	OrderCalls        int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	return f.LoginRes, f.LoginErr
}

func (f *fakeClient) GoogleLogin(ctx context.Context, idToken string) (*api.AuthResult, error) {
	f.LastGoogleToken = idToken
	return f.GoogleRes, f.GoogleErr
}

func (f *fakeClient) Register(ctx context.Context, req *api.SignupRequest) (*models.UserProfile, error) {
	f.LastRegister = req
	return f.RegisterRes, f.RegisterErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*models.UserProfile, error) {
	f.LastUpdate = req
	return f.UpdateRes, f.UpdateErr
}

func (f *fakeClient) CreateOrder(ctx context.Context, req *api.OrderRequest) (*api.OrderResult, error) {
	f.LastOrder = req
	f.OrderCalls++
	return f.OrderRes, f.OrderErr
}

func (f *fakeClient) SetToken(token string) {
	f.Token = token
	f.TokenCleared = false
}

func (f *fakeClient) ClearToken() {
	f.Token = ""
	f.TokenCleared = true
}
