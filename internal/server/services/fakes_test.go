package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/dbx"
	"github.com/dmitrijs2005/gophjournal/internal/server/models"
	"github.com/dmitrijs2005/gophjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/gophjournal/internal/server/repositories/tasks"
	"github.com/stretchr/testify/require"
)

// memStore backs both fake repositories; rows are keyed by id.
type memStore struct {
	mu       sync.Mutex
	entries  map[string]models.Entry
	tasks    map[string]models.Task
	applyErr error
}

func newMemStore() *memStore {
	return &memStore{entries: map[string]models.Entry{}, tasks: map[string]models.Task{}}
}

type fakeManager struct{ s *memStore }

func (m fakeManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m fakeManager) Entries(dbx.DBTX) entries.Repository          { return fakeEntries{m.s} }
func (m fakeManager) Tasks(dbx.DBTX) tasks.Repository              { return fakeTasks{m.s} }

type fakeEntries struct{ s *memStore }

func (f fakeEntries) Create(_ context.Context, e *models.Entry) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.entries[e.ID] = *e
	return nil
}

func (f fakeEntries) ListByUser(_ context.Context, userID string) ([]models.Entry, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []models.Entry{}
	for _, e := range f.s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f fakeEntries) GetForUpdate(_ context.Context, userID, id string) (*models.Entry, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	e, ok := f.s.entries[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &e, nil
}

func (f fakeEntries) ApplyPatch(_ context.Context, userID string, p models.EntryPatch) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.applyErr != nil {
		return false, f.s.applyErr
	}
	e, ok := f.s.entries[p.ID]
	if !ok || e.UserID != userID {
		return false, nil
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Summary != nil {
		e.Summary = *p.Summary
	}
	f.s.entries[p.ID] = e
	return true, nil
}

type fakeTasks struct{ s *memStore }

func (f fakeTasks) Create(_ context.Context, t *models.Task) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.tasks[t.ID] = *t
	return nil
}

func (f fakeTasks) ListByUser(_ context.Context, userID string) ([]models.Task, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []models.Task{}
	for _, t := range f.s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f fakeTasks) GetForUpdate(_ context.Context, userID, id string) (*models.Task, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	t, ok := f.s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (f fakeTasks) ApplyPatch(_ context.Context, userID string, p models.TaskPatch) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	t, ok := f.s.tasks[p.ID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	f.s.tasks[p.ID] = t
	return true, nil
}

type fakeArchive struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (a *fakeArchive) Put(_ context.Context, key string, body []byte) error {
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, key)
	a.bodies = append(a.bodies, body)
	return nil
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var errBoom = errors.New("boom")
