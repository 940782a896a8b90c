// Package httpapi exposes the journal server over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/logging"
	"github.com/dmitrijs2005/gophjournal/internal/server/models"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

// Journal is the entry and task store behind the API.
type Journal interface {
	CreateEntry(ctx context.Context, userID string, e models.Entry) (*models.Entry, error)
	ListEntries(ctx context.Context, userID string) ([]models.Entry, error)
	CreateTask(ctx context.Context, userID string, t models.Task) (*models.Task, error)
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
}

// Migrator applies client-side encryption migrations.
type Migrator interface {
	Apply(ctx context.Context, userID string, batch models.MigrationBatch) (models.MigrationResult, error)
}

type Server struct {
	address    string
	logger     logging.Logger
	journal    Journal
	migrations Migrator
	jwtSecret  []byte
}

func NewServer(address string, l logging.Logger, j Journal, m Migrator, secretKey string) *Server {
	return &Server{
		address:    address,
		logger:     l.With("module", "http_server"),
		journal:    j,
		migrations: m,
		jwtSecret:  []byte(secretKey),
	}
}

// Handler returns the routed API. Everything except ping needs a bearer token.
// All routes share one router so that a known path with the wrong method
// answers 405.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	api := r.PathPrefix(common.APIPrefix).Subrouter()
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler

	api.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	api.Handle("/entries", s.authed(s.listEntries)).Methods(http.MethodGet)
	api.Handle("/entries", s.authed(s.createEntry)).Methods(http.MethodPost)
	api.Handle("/tasks", s.authed(s.listTasks)).Methods(http.MethodGet)
	api.Handle("/tasks", s.authed(s.createTask)).Methods(http.MethodPost)
	api.Handle("/migrations/encrypt", s.authed(s.migrate)).Methods(http.MethodPost)

	return r
}

func (s *Server) authed(h http.HandlerFunc) http.Handler {
	return s.accessTokenMiddleware(h)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
