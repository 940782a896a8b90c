package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophjournal/internal/client/client"
	"github.com/dmitrijs2005/gophjournal/internal/client/config"
	"github.com/dmitrijs2005/gophjournal/internal/client/engine"
	"github.com/dmitrijs2005/gophjournal/internal/client/migration"
	"github.com/dmitrijs2005/gophjournal/internal/client/salts"
	"github.com/dmitrijs2005/gophjournal/internal/client/services"
	"github.com/dmitrijs2005/gophjournal/internal/client/store"
	"github.com/dmitrijs2005/gophjournal/internal/cryptox"
	"github.com/dmitrijs2005/gophjournal/internal/filex"
	"github.com/dmitrijs2005/gophjournal/internal/logging"
)

// App is the wired client of one CLI invocation.
type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *store.Store
	engine  *engine.Engine
	salts   *salts.Registry
	api     client.Client
	session *services.SessionService
	journal *services.JournalService
}

// NewApp opens the local store at cfg.DatabasePath and wires the services.
// Logs go to logOut.
func NewApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(logOut, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, fmt.Errorf("profile dir: %w", err)
	}

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	provider := cryptox.Standard()
	if cfg.EncryptionDisabled {
		provider = cryptox.Unavailable()
	}

	api := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, cfg.AccessToken)
	eng := engine.New(provider, logger)
	reg := salts.NewRegistry(st.Metadata, provider)
	coord := migration.NewCoordinator(eng, api, logger)

	return &App{
		config:  cfg,
		logger:  logger,
		store:   st,
		engine:  eng,
		salts:   reg,
		api:     api,
		session: services.NewSessionService(api, reg, coord, logger),
		journal: services.NewJournalService(api, eng),
	}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

// userID returns the configured user or an error naming the flag.
func (a *App) userID() (string, error) {
	if a.config.UserID == "" {
		return "", fmt.Errorf("no user id: pass --user or set user_id in the config file")
	}
	return a.config.UserID, nil
}

// remoteUser is userID for commands that talk to the server.
func (a *App) remoteUser() (string, error) {
	if a.config.AccessToken == "" {
		return "", fmt.Errorf("no access token: pass --token or set access_token in the config file")
	}
	return a.userID()
}
