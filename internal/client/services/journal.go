package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophjournal/internal/client/client"
	"github.com/dmitrijs2005/gophjournal/internal/client/engine"
	"github.com/dmitrijs2005/gophjournal/internal/client/models"
	"github.com/dmitrijs2005/gophjournal/internal/common"
)

// JournalService encrypts journal fields before they reach the server and
// decrypts them after they come back.
type JournalService struct {
	client client.Client
	engine *engine.Engine
}

func NewJournalService(c client.Client, e *engine.Engine) *JournalService {
	return &JournalService{client: c, engine: e}
}

// AddEntry stores a new entry and returns it as the user should see it.
func (s *JournalService) AddEntry(ctx context.Context, userID string, e models.Entry) (models.Entry, error) {
	if userID == "" || strings.TrimSpace(e.Content) == "" {
		return models.Entry{}, common.ErrorValidation
	}

	e.Content = s.engine.Encrypt(ctx, e.Content, userID)
	e.Summary = s.engine.Encrypt(ctx, e.Summary, userID)

	created, err := s.client.CreateEntry(ctx, e)
	if err != nil {
		return models.Entry{}, fmt.Errorf("create entry: %w", err)
	}
	return s.engine.DecryptEntries(ctx, []models.Entry{created}, userID)[0], nil
}

// ListEntries returns every entry of the user, decrypted for display.
func (s *JournalService) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	entries, err := s.client.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return s.engine.DecryptEntries(ctx, entries, userID), nil
}

// AddTask stores a new task and returns it as the user should see it.
func (s *JournalService) AddTask(ctx context.Context, userID string, t models.Task) (models.Task, error) {
	if userID == "" || strings.TrimSpace(t.Title) == "" {
		return models.Task{}, common.ErrorValidation
	}

	t.Title = s.engine.Encrypt(ctx, t.Title, userID)
	t.Description = s.engine.Encrypt(ctx, t.Description, userID)

	created, err := s.client.CreateTask(ctx, t)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return s.engine.DecryptTasks(ctx, []models.Task{created}, userID)[0], nil
}

// ListTasks returns every task of the user, decrypted for display.
func (s *JournalService) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return s.engine.DecryptTasks(ctx, tasks, userID), nil
}
