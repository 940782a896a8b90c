// Package tasks provides the PostgreSQL-backed repository for tasks.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/dbx"
	"github.com/dmitrijs2005/gophjournal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, entry_id, title, description, done, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, t *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, entry_id, title, description, done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.EntryID, t.Title, t.Description, t.Done, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	query := `SELECT ` + selectColumns + ` FROM tasks WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := make([]models.Task, 0)
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.EntryID, &t.Title, &t.Description, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.UserID = userID
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, userID, id string) (*models.Task, error) {
	query := `SELECT ` + selectColumns + ` FROM tasks WHERE id=$1 AND user_id=$2 FOR UPDATE`

	var t models.Task
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&t.ID, &t.EntryID, &t.Title, &t.Description, &t.Done, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	t.UserID = userID
	return &t, nil
}

func (r *PostgresRepository) ApplyPatch(ctx context.Context, userID string, p models.TaskPatch) (bool, error) {
	query := `
		UPDATE tasks SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, p.ID, userID, nullable(p.Title), nullable(p.Description))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
