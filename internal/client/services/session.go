// Package services contains the application services of the Bottlerun
// client: the session manager, which owns login/logout and the two local
// credential stores, and the cart synchronizer, which owns the local cart
// and checkout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bottlerun/bottlerun/internal/client/api"
	"github.com/bottlerun/bottlerun/internal/client/models"
	"github.com/bottlerun/bottlerun/internal/client/repositories/credentials"
	"github.com/bottlerun/bottlerun/internal/client/repositories/session"
	"github.com/bottlerun/bottlerun/internal/common"
	"github.com/bottlerun/bottlerun/internal/dbx"
	"github.com/bottlerun/bottlerun/internal/logging"
)

// Route is the start screen chosen from the restored session.
type Route string

const (
	RouteLogin    Route = "login"
	RouteCustomer Route = "customer"
	RouteAdmin    Route = "admin"
)

// SessionService orchestrates login, signup, logout and profile updates
// across the remote API, the relational session store and the key-value
// credential cache.
//
// Contract:
//   - Login/GoogleLogin: authenticate remotely, then persist token and
//     profile locally; no local changes on remote failure.
//   - Signup: remote only; does not establish a session.
//   - Logout: clears both local stores even if one fails, reporting a
//     combined error; idempotent.
//   - UpdateProfile: remote update, then credential cache overwrite; the
//     session row and its token stay untouched.
//   - CurrentUser: cache-only read, never hits the network.
//   - Restore: app-start read of the session row; installs the bearer
//     token and picks the initial route.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*models.UserProfile, error)
	Signup(ctx context.Context, req *api.SignupRequest) (*models.UserProfile, error)
	GoogleLogin(ctx context.Context, idToken string) (*models.UserProfile, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*models.UserProfile, error)
	CurrentUser(ctx context.Context) (*models.UserProfile, error)
	Token(ctx context.Context) (string, error)
	Restore(ctx context.Context) (Route, error)
}

type sessionService struct {
	api   api.Client
	db    *sql.DB
	creds credentials.Store
	log   logging.Logger
}

// NewSessionService constructs a SessionService bound to the given API
// client, relational DB handle and credential store.
func NewSessionService(apiClient api.Client, db *sql.DB, creds credentials.Store, log logging.Logger) SessionService {
	return &sessionService{api: apiClient, db: db, creds: creds, log: log}
}

func (s *sessionService) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.persistSession(ctx, &res.User, res.Token); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "user_id", res.User.ID, "is_admin", res.User.IsAdmin)
	user := res.User
	return &user, nil
}

func (s *sessionService) GoogleLogin(ctx context.Context, idToken string) (*models.UserProfile, error) {
	res, err := s.api.GoogleLogin(ctx, idToken)
	if err != nil {
		return nil, err
	}

	if err := s.persistSession(ctx, &res.User, res.Token); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in via google", "user_id", res.User.ID)
	user := res.User
	return &user, nil
}

// persistSession writes the session row (transactionally) and the
// credential cache. There is no rollback across the two stores; a
// credential write failure after a successful session write surfaces as
// an error and is repaired by the next login or logout.
func (s *sessionService) persistSession(ctx context.Context, user *models.UserProfile, token string) error {
	if err := api.CheckTokenShape(token); err != nil {
		return fmt.Errorf("rejecting login response: %w", err)
	}
	if sub, err := api.TokenSubject(token); err == nil && sub != user.ID {
		s.log.Warn(ctx, "token subject does not match profile id", "subject", sub, "user_id", user.ID)
	}

	sess, err := models.SessionFromProfile(user, token)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageWrite, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return session.NewSQLiteRepository(tx).Replace(ctx, sess)
	})
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	if err := s.creds.Put(ctx, user); err != nil {
		s.log.Error(ctx, "session stored but credential cache write failed", "error", err)
		return fmt.Errorf("failed to cache profile: %w", err)
	}

	s.api.SetToken(token)
	return nil
}

func (s *sessionService) Signup(ctx context.Context, req *api.SignupRequest) (*models.UserProfile, error) {
	// Account creation is deliberately separate from session
	// establishment: nothing is persisted locally.
	return s.api.Register(ctx, req)
}

func (s *sessionService) Logout(ctx context.Context) error {
	var errs []error

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return session.NewSQLiteRepository(tx).Clear(ctx)
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("session store: %w", err))
	}

	if err := s.creds.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("credential store: %w", err))
	}

	s.api.ClearToken()

	if len(errs) > 0 {
		return fmt.Errorf("logout incomplete: %w", errors.Join(errs...))
	}
	s.log.Info(ctx, "user logged out")
	return nil
}

func (s *sessionService) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*models.UserProfile, error) {
	user, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.creds.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to cache updated profile: %w", err)
	}
	return user, nil
}

func (s *sessionService) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	user, err := s.creds.Get(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrNoSession
	}
	return user, nil
}

func (s *sessionService) Token(ctx context.Context) (string, error) {
	sess, err := session.NewSQLiteRepository(s.db).Get(ctx)
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", common.ErrNoSession
	}
	return sess.Token, nil
}

func (s *sessionService) Restore(ctx context.Context) (Route, error) {
	sess, err := session.NewSQLiteRepository(s.db).Get(ctx)
	if err != nil {
		return RouteLogin, err
	}
	if sess == nil {
		return RouteLogin, nil
	}

	s.api.SetToken(sess.Token)
	if sess.IsAdmin {
		return RouteAdmin, nil
	}
	return RouteCustomer, nil
}
