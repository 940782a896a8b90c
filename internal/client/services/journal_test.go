package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophjournal/internal/client/engine"
	"github.com/dmitrijs2005/gophjournal/internal/client/models"
	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/cryptox"
	"github.com/dmitrijs2005/gophjournal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEntry_EncryptsBeforeSubmit(t *testing.T) {
	fc := &fakeClient{createID: "e1"}
	svc := NewJournalService(fc, engine.New(cryptox.Standard(), logging.Discard()))

	got, err := svc.AddEntry(context.Background(), "user-1", models.Entry{Content: "dear diary", Mood: "calm"})
	require.NoError(t, err)

	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, "dear diary", got.Content)
	assert.Equal(t, "calm", got.Mood)
	assert.Empty(t, got.Summary)

	require.Len(t, fc.entries, 1)
	stored := fc.entries[0]
	assert.True(t, engine.IsEncrypted(stored.Content), "server must only see envelopes")
	assert.NotContains(t, stored.Content, "dear diary")
	assert.Empty(t, stored.Summary)
}

func TestAddTask_EncryptsTitleAndDescription(t *testing.T) {
	fc := &fakeClient{createID: "t1"}
	svc := NewJournalService(fc, engine.New(cryptox.Standard(), logging.Discard()))

	got, err := svc.AddTask(context.Background(), "user-1", models.Task{Title: "call mom", Description: "sunday"})
	require.NoError(t, err)
	assert.Equal(t, "call mom", got.Title)
	assert.Equal(t, "sunday", got.Description)

	stored := fc.tasks[0]
	assert.True(t, engine.IsEncrypted(stored.Title))
	assert.True(t, engine.IsEncrypted(stored.Description))
}

func TestListEntries_MixedStorage(t *testing.T) {
	eng := engine.New(cryptox.Standard(), logging.Discard())
	ctx := context.Background()
	fc := &fakeClient{entries: []models.Entry{
		{ID: "e1", Content: eng.Encrypt(ctx, "secret", "user-1")},
		{ID: "e2", Content: "old plaintext"},
	}}
	svc := NewJournalService(fc, eng)

	got, err := svc.ListEntries(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "secret", got[0].Content)
	assert.Equal(t, "old plaintext", got[1].Content)
}

func TestListTasks_UnavailableProviderShowsSentinel(t *testing.T) {
	fc := &fakeClient{tasks: []models.Task{{ID: "t1", Title: "enc2:a:b:c"}, {ID: "t2", Title: "plain"}}}
	svc := NewJournalService(fc, engine.New(cryptox.Unavailable(), logging.Discard()))

	got, err := svc.ListTasks(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, engine.SentinelUnavailable, got[0].Title)
	assert.Equal(t, "plain", got[1].Title)
}

func TestAdd_Validation(t *testing.T) {
	svc := NewJournalService(&fakeClient{}, engine.New(cryptox.Unavailable(), logging.Discard()))
	ctx := context.Background()

	_, err := svc.AddEntry(ctx, "", models.Entry{Content: "x"})
	require.ErrorIs(t, err, common.ErrorValidation)
	_, err = svc.AddEntry(ctx, "user-1", models.Entry{Content: "  "})
	require.ErrorIs(t, err, common.ErrorValidation)
	_, err = svc.AddTask(ctx, "user-1", models.Task{})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestAddEntry_DegradedStoresPlaintext(t *testing.T) {
	fc := &fakeClient{createID: "e1"}
	svc := NewJournalService(fc, engine.New(cryptox.Unavailable(), logging.Discard()))

	got, err := svc.AddEntry(context.Background(), "user-1", models.Entry{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, "hello", fc.entries[0].Content)
}
