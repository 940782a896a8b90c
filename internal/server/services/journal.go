// Package services contains server-side business logic. Journal fields are
// opaque here: the server stores whatever the client sent and never decrypts.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/server/models"
	"github.com/dmitrijs2005/gophjournal/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// JournalService creates and lists the entries and tasks of a user.
type JournalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewJournalService(db *sql.DB, m repomanager.RepositoryManager) *JournalService {
	return &JournalService{db: db, repomanager: m, now: time.Now}
}

func (s *JournalService) CreateEntry(ctx context.Context, userID string, e models.Entry) (*models.Entry, error) {
	if strings.TrimSpace(e.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorValidation)
	}

	now := s.now().UTC()
	e.ID = uuid.NewString()
	e.UserID = userID
	e.CreatedAt, e.UpdatedAt = now, now

	if err := s.repomanager.Entries(s.db).Create(ctx, &e); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return &e, nil
}

func (s *JournalService) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	return s.repomanager.Entries(s.db).ListByUser(ctx, userID)
}

func (s *JournalService) CreateTask(ctx context.Context, userID string, t models.Task) (*models.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	now := s.now().UTC()
	t.ID = uuid.NewString()
	t.UserID = userID
	t.Done = false
	t.CreatedAt, t.UpdatedAt = now, now

	if err := s.repomanager.Tasks(s.db).Create(ctx, &t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &t, nil
}

func (s *JournalService) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
}
