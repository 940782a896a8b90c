package migration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophjournal/internal/client/engine"
	"github.com/dmitrijs2005/gophjournal/internal/client/models"
	"github.com/dmitrijs2005/gophjournal/internal/cryptox"
	"github.com/dmitrijs2005/gophjournal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	batches []models.MigrationBatch
	err     error
}

// SubmitMigration acknowledges every patch it receives.
func (f *fakeSubmitter) SubmitMigration(_ context.Context, b models.MigrationBatch) (models.MigrationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.batches = append(f.batches, b)
	if f.err != nil {
		return models.MigrationResult{}, f.err
	}
	return models.MigrationResult{EntriesUpdated: len(b.Entries), TasksUpdated: len(b.Tasks)}, nil
}

// stubSealer wraps values without real crypto, failing on listed inputs.
type stubSealer struct {
	fail map[string]engine.Status
}

func (s stubSealer) Seal(_ context.Context, plaintext, _ string) engine.Result {
	if st, ok := s.fail[plaintext]; ok {
		return engine.Result{Value: plaintext, Status: st}
	}
	return engine.Result{Value: "enc2:sealed-" + plaintext, Status: engine.StatusOK}
}

func TestMigrate_EncryptsThenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	eng := engine.New(cryptox.Standard(), logging.Discard())
	sub := &fakeSubmitter{}
	c := NewCoordinator(eng, sub, logging.Discard())

	entries := []models.Entry{{ID: "e1", Content: "hello"}}

	res := c.Migrate(ctx, "user-1", entries, nil)
	require.Equal(t, models.MigrationResult{EntriesUpdated: 1}, res)
	require.Equal(t, 1, sub.calls)

	patch := sub.batches[0].Entries[0]
	require.NotNil(t, patch.Content)
	assert.Nil(t, patch.Summary)
	assert.True(t, engine.IsEncrypted(*patch.Content))
	assert.Equal(t, "hello", eng.Decrypt(ctx, *patch.Content, "user-1"))

	// second pass over the migrated state does no work
	entries[0].Content = *patch.Content
	res = c.Migrate(ctx, "user-1", entries, nil)
	assert.Equal(t, models.MigrationResult{}, res)
	assert.Equal(t, 1, sub.calls, "no request when nothing needs encryption")
}

func TestMigrate_PerFieldSelection(t *testing.T) {
	sub := &fakeSubmitter{}
	c := NewCoordinator(stubSealer{}, sub, logging.Discard())

	entries := []models.Entry{
		{ID: "e1", Content: "enc2:a:b:c", Summary: "plain summary"},
		{ID: "e2", Content: "enc2:a:b:c", Summary: "enc2:a:b:c"},
		{ID: "e3", Content: "plain", Summary: ""},
		{ID: "e4", Content: "enc:legacy"},
	}
	tasks := []models.Task{
		{ID: "t1", Title: "Buy milk", Description: ""},
		{ID: "t2", Title: "enc2:a:b:c", Description: "two liters"},
		{ID: "t3", Title: "enc2:a:b:c"},
	}

	res := c.Migrate(context.Background(), "user-1", entries, tasks)
	require.Equal(t, models.MigrationResult{EntriesUpdated: 2, TasksUpdated: 2}, res)

	b := sub.batches[0]
	require.Len(t, b.Entries, 2)
	assert.Equal(t, "e1", b.Entries[0].ID)
	assert.Nil(t, b.Entries[0].Content)
	require.NotNil(t, b.Entries[0].Summary)
	assert.Equal(t, "enc2:sealed-plain summary", *b.Entries[0].Summary)
	assert.Equal(t, "e3", b.Entries[1].ID)
	require.NotNil(t, b.Entries[1].Content)
	assert.Nil(t, b.Entries[1].Summary)

	require.Len(t, b.Tasks, 2)
	assert.Equal(t, "t1", b.Tasks[0].ID)
	require.NotNil(t, b.Tasks[0].Title)
	assert.Nil(t, b.Tasks[0].Description)
	assert.Equal(t, "t2", b.Tasks[1].ID)
	assert.Nil(t, b.Tasks[1].Title)
	require.NotNil(t, b.Tasks[1].Description)
	assert.Equal(t, "enc2:sealed-two liters", *b.Tasks[1].Description)
}

func TestMigrate_DropsFieldsThatFellBackToPlaintext(t *testing.T) {
	sub := &fakeSubmitter{}
	c := NewCoordinator(stubSealer{fail: map[string]engine.Status{
		"bad content": engine.StatusFailed,
		"bad title":   engine.StatusDegraded,
	}}, sub, logging.Discard())

	entries := []models.Entry{
		{ID: "e1", Content: "bad content", Summary: "fine"},
		{ID: "e2", Content: "bad content"},
	}
	tasks := []models.Task{{ID: "t1", Title: "bad title"}}

	res := c.Migrate(context.Background(), "user-1", entries, tasks)
	require.Equal(t, models.MigrationResult{EntriesUpdated: 1}, res)

	b := sub.batches[0]
	require.Len(t, b.Entries, 1)
	assert.Equal(t, "e1", b.Entries[0].ID)
	assert.Nil(t, b.Entries[0].Content)
	require.NotNil(t, b.Entries[0].Summary)
	assert.Empty(t, b.Tasks)
}

func TestMigrate_ProviderUnavailableSubmitsNothing(t *testing.T) {
	sub := &fakeSubmitter{}
	eng := engine.New(cryptox.Unavailable(), logging.Discard())
	c := NewCoordinator(eng, sub, logging.Discard())

	res := c.Migrate(context.Background(), "user-1",
		[]models.Entry{{ID: "e1", Content: "hello"}},
		[]models.Task{{ID: "t1", Title: "task"}})

	assert.Equal(t, models.MigrationResult{}, res)
	assert.Zero(t, sub.calls)
}

func TestMigrate_SubmissionFailureReportsZero(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("503")}
	c := NewCoordinator(stubSealer{}, sub, logging.Discard())

	res := c.Migrate(context.Background(), "user-1", []models.Entry{{ID: "e1", Content: "hello"}}, nil)

	assert.Equal(t, models.MigrationResult{}, res)
	assert.Equal(t, 1, sub.calls)
}

func TestMigrate_NothingToDo(t *testing.T) {
	sub := &fakeSubmitter{}
	c := NewCoordinator(stubSealer{}, sub, logging.Discard())

	assert.Equal(t, models.MigrationResult{}, c.Migrate(context.Background(), "user-1", nil, nil))
	assert.Equal(t, models.MigrationResult{}, c.Migrate(context.Background(), "user-1",
		[]models.Entry{{ID: "e1", Content: ""}}, []models.Task{{ID: "t1"}}))
	assert.Equal(t, models.MigrationResult{}, c.Migrate(context.Background(), "",
		[]models.Entry{{ID: "e1", Content: "hello"}}, nil))
	assert.Zero(t, sub.calls)
}
