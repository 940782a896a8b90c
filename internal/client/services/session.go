// Package services contains the application services of the journal client.
// This file defines the session service: the sign-in hook that prepares the
// user's key material and upgrades their stored records to envelopes.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophjournal/internal/client/client"
	"github.com/dmitrijs2005/gophjournal/internal/client/models"
	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/logging"
)

// SaltStore is the part of salts.Registry the session service needs.
type SaltStore interface {
	GetOrCreate(ctx context.Context, userID string) ([]byte, error)
}

// Migrator runs one migration pass over a user's records.
type Migrator interface {
	Migrate(ctx context.Context, userID string, entries []models.Entry, tasks []models.Task) models.MigrationResult
}

// SignInResult reports what SignIn did. Salt is nil when it could not be
// prepared; Migrated is false when the pass was skipped.
type SignInResult struct {
	Salt      []byte
	Migrated  bool
	Migration models.MigrationResult
}

// SessionService runs the per-session sign-in work. A migration pass is
// attempted at most once per user for the lifetime of the service.
type SessionService struct {
	client   client.Client
	salts    SaltStore
	migrator Migrator
	logger   logging.Logger

	mu       sync.Mutex
	migrated map[string]bool
}

func NewSessionService(c client.Client, salts SaltStore, migrator Migrator, logger logging.Logger) *SessionService {
	return &SessionService{
		client:   c,
		salts:    salts,
		migrator: migrator,
		logger:   logger,
		migrated: make(map[string]bool),
	}
}

// SignIn prepares the session of userID. Only an empty user id is an error:
// salt and migration problems are logged and sign-in proceeds.
func (s *SessionService) SignIn(ctx context.Context, userID string) (SignInResult, error) {
	if userID == "" {
		return SignInResult{}, common.ErrorValidation
	}
	log := s.logger.With("user_id", userID)

	var res SignInResult
	salt, err := s.salts.GetOrCreate(ctx, userID)
	if err != nil {
		log.Warn(ctx, "default salt unavailable", "error", err)
	} else {
		res.Salt = salt
	}

	if !s.claim(userID) {
		return res, nil
	}

	res.Migration, res.Migrated = s.migrate(ctx, log, userID)
	return res, nil
}

// Migrate runs a migration pass for userID regardless of earlier passes.
func (s *SessionService) Migrate(ctx context.Context, userID string) (models.MigrationResult, error) {
	if userID == "" {
		return models.MigrationResult{}, common.ErrorValidation
	}
	s.claim(userID)
	res, _ := s.migrate(ctx, s.logger.With("user_id", userID), userID)
	return res, nil
}

// claim marks userID as migrated and reports whether it was not before.
func (s *SessionService) claim(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.migrated[userID] {
		return false
	}
	s.migrated[userID] = true
	return true
}

func (s *SessionService) migrate(ctx context.Context, log logging.Logger, userID string) (models.MigrationResult, bool) {
	entries, err := s.client.ListEntries(ctx)
	if err != nil {
		s.logListFailure(ctx, log, "entries", err)
		return models.MigrationResult{}, false
	}
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		s.logListFailure(ctx, log, "tasks", err)
		return models.MigrationResult{}, false
	}
	return s.migrator.Migrate(ctx, userID, entries, tasks), true
}

func (s *SessionService) logListFailure(ctx context.Context, log logging.Logger, what string, err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		log.Warn(ctx, "migration skipped: session not authorized", "records", what)
		return
	}
	log.Warn(ctx, "migration skipped: cannot list records", "records", what, "error", err)
}
