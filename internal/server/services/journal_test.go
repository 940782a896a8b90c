package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJournalService(t *testing.T, s *memStore) *JournalService {
	db, _ := newMockDB(t)
	svc := NewJournalService(db, fakeManager{s})
	svc.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }
	return svc
}

func TestCreateEntry(t *testing.T) {
	s := newMemStore()
	svc := newJournalService(t, s)

	e, err := svc.CreateEntry(context.Background(), "u1", models.Entry{Content: "enc2:a:b:c", Mood: "calm"})
	require.NoError(t, err)

	_, err = uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", e.UserID)
	assert.Equal(t, time.UTC, e.CreatedAt.Location())
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
	assert.Equal(t, *e, s.entries[e.ID])
}

func TestCreateEntry_AcceptsPlaintextFromDegradedClients(t *testing.T) {
	svc := newJournalService(t, newMemStore())
	e, err := svc.CreateEntry(context.Background(), "u1", models.Entry{Content: "plain"})
	require.NoError(t, err)
	assert.Equal(t, "plain", e.Content)
}

func TestCreate_Validation(t *testing.T) {
	svc := newJournalService(t, newMemStore())

	_, err := svc.CreateEntry(context.Background(), "u1", models.Entry{Content: " "})
	require.ErrorIs(t, err, common.ErrorValidation)
	_, err = svc.CreateTask(context.Background(), "u1", models.Task{})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestCreateTask_ResetsServerFields(t *testing.T) {
	s := newMemStore()
	svc := newJournalService(t, s)

	task, err := svc.CreateTask(context.Background(), "u1", models.Task{ID: "client-id", Title: "enc2:t", Done: true})
	require.NoError(t, err)
	assert.NotEqual(t, "client-id", task.ID)
	assert.False(t, task.Done)
}

func TestList_ScopedToUser(t *testing.T) {
	s := seeded()
	svc := newJournalService(t, s)

	got, err := svc.ListEntries(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id1, got[0].ID)

	tasks, err := svc.ListTasks(context.Background(), "u2")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
