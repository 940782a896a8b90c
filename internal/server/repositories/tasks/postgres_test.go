package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var columns = []string{"id", "entry_id", "title", "description", "done", "created_at", "updated_at"}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO tasks`).
		WithArgs("t1", "u1", "e1", "enc2:t", "", false, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Task{
		ID: "t1", UserID: "u1", EntryID: "e1", Title: "enc2:t", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM tasks WHERE user_id=\$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("t1", "", "buy milk", "", true, now, now))

	got, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "buy milk", got[0].Title)
	assert.True(t, got[0].Done)
}

func TestListByUser_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT .* FROM tasks`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("t1"))

	_, err := repo.ListByUser(context.Background(), "u1")
	require.Error(t, err)
}

func TestGetForUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT .* FROM tasks WHERE id=\$1 AND user_id=\$2 FOR UPDATE`).
		WithArgs("t1", "u1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetForUpdate(context.Background(), "u1", "t1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestApplyPatch_OnlyDescription(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	desc := "enc2:d"

	mock.ExpectExec(`UPDATE tasks SET .* WHERE id = \$1 AND user_id = \$2`).
		WithArgs("t1", "u1", nil, desc).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ApplyPatch(context.Background(), "u1", models.TaskPatch{ID: "t1", Description: &desc})
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPatch_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`UPDATE tasks`).WillReturnError(errors.New("down"))

	_, err := repo.ApplyPatch(context.Background(), "u1", models.TaskPatch{ID: "t1"})
	require.ErrorContains(t, err, "db error")
}
