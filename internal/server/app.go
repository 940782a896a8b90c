// Package server wires the journal server together: configuration, the
// Postgres connection and schema, the snapshot archive and the HTTP API.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/dmitrijs2005/gophjournal/internal/logging"
	"github.com/dmitrijs2005/gophjournal/internal/server/archive"
	"github.com/dmitrijs2005/gophjournal/internal/server/config"
	"github.com/dmitrijs2005/gophjournal/internal/server/httpapi"
	"github.com/dmitrijs2005/gophjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophjournal/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

var openDB = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, "json", c.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := connectDB(ctx, db, c.DBConnectTimeout, logger); err != nil {
		db.Close()
		return nil, err
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	arch, err := newArchive(ctx, c)
	if err != nil {
		db.Close()
		return nil, err
	}

	js := services.NewJournalService(db, rm)
	ms := services.NewMigrationService(db, rm, arch, logger)
	srv := httpapi.NewServer(c.HTTPAddr, logger, js, ms, c.JWTSecret)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// connectDB pings db with exponential backoff until it answers or timeout
// elapses. The database container usually starts alongside the server.
func connectDB(ctx context.Context, db pinger, timeout time.Duration, logger logging.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 3 * time.Second
	b.MaxElapsedTime = timeout

	op := func() error { return db.PingContext(ctx) }
	notify := func(err error, next time.Duration) {
		logger.Warn(ctx, "database not ready, retrying", "error", err, "next", next.String())
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	return nil
}

// newArchive returns the S3 snapshot archive, or a no-op one when no bucket
// is configured.
func newArchive(ctx context.Context, c *config.Config) (archive.Archive, error) {
	if c.S3Bucket == "" {
		return archive.Noop{}, nil
	}
	return archive.NewS3(ctx, archive.Options{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until a termination signal arrives or ctx is done, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "close database", "error", cerr)
	}
	return err
}
