package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophjournal/internal/client/client"
	"github.com/dmitrijs2005/gophjournal/internal/client/models"
)

// fakeClient keeps records in memory and echoes creates back with an id.
type fakeClient struct {
	client.Client

	mu       sync.Mutex
	entries  []models.Entry
	tasks    []models.Task
	listErr  error
	lists    int
	createID string
}

func (f *fakeClient) ListEntries(context.Context) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Entry(nil), f.entries...), nil
}

func (f *fakeClient) ListTasks(context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Task(nil), f.tasks...), nil
}

func (f *fakeClient) CreateEntry(_ context.Context, e models.Entry) (models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.createID
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeClient) CreateTask(_ context.Context, t models.Task) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.createID
	f.tasks = append(f.tasks, t)
	return t, nil
}

type fakeSalts struct {
	salt []byte
	err  error
}

func (f fakeSalts) GetOrCreate(context.Context, string) ([]byte, error) {
	return f.salt, f.err
}

type fakeMigrator struct {
	calls   int
	entries []models.Entry
	tasks   []models.Task
}

func (f *fakeMigrator) Migrate(_ context.Context, _ string, entries []models.Entry, tasks []models.Task) models.MigrationResult {
	f.calls++
	f.entries, f.tasks = entries, tasks
	return models.MigrationResult{EntriesUpdated: len(entries), TasksUpdated: len(tasks)}
}
