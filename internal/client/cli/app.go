// Package cli implements the interactive shell of the Bottlerun client:
// a thin presentation layer over the session and cart services.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/bottlerun/bottlerun/internal/client/api"
	"github.com/bottlerun/bottlerun/internal/client/config"
	"github.com/bottlerun/bottlerun/internal/client/models"
	"github.com/bottlerun/bottlerun/internal/client/repositories/credentials"
	"github.com/bottlerun/bottlerun/internal/client/services"
	"github.com/bottlerun/bottlerun/internal/client/store"
	"github.com/bottlerun/bottlerun/internal/logging"
)

type App struct {
	config   *config.Config
	sessions services.SessionService
	carts    services.CartService

	db    *sql.DB
	creds *credentials.BoltStore
	log   logging.Logger

	user   *models.UserProfile
	reader *bufio.Reader
}

// NewApp opens the local stores, migrates the database and wires the
// services. A store-open failure is returned to the caller and is fatal:
// the app cannot run without its session store.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.Default()

	db, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	creds, err := credentials.Open(c.CredentialsPath, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)

	return &App{
		config:   c,
		sessions: services.NewSessionService(apiClient, db, creds, log),
		carts:    services.NewCartService(apiClient, db, services.ClearPolicy(c.CheckoutClearPolicy), log),
		db:       db,
		creds:    creds,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Close releases the local store handles.
func (a *App) Close() error {
	err := a.db.Close()
	if cerr := a.creds.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// Run restores any persisted session and enters the command loop.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	route, err := a.sessions.Restore(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to restore session", "error", err)
	}
	if route != services.RouteLogin {
		if user, err := a.sessions.CurrentUser(ctx); err == nil {
			a.user = user
		}
	}

	a.Root(ctx)
}
