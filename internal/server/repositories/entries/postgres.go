// Package entries provides the PostgreSQL-backed repository for journal
// entries.
package entries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophjournal/internal/common"
	"github.com/dmitrijs2005/gophjournal/internal/dbx"
	"github.com/dmitrijs2005/gophjournal/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, content, summary, mood, activities, created_at, updated_at`

// Create inserts a new entry. ID and timestamps must already be set.
func (r *PostgresRepository) Create(ctx context.Context, e *models.Entry) error {
	activities, err := encodeActivities(e.Activities)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO entries (id, user_id, content, summary, mood, activities, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Content, e.Summary, e.Mood, activities, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByUser returns the entries of userID, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM entries WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		e.UserID = userID
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, userID, id string) (*models.Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM entries WHERE id=$1 AND user_id=$2 FOR UPDATE`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get entry %s: %w", id, err)
	}
	e.UserID = userID
	return e, nil
}

func (r *PostgresRepository) ApplyPatch(ctx context.Context, userID string, p models.EntryPatch) (bool, error) {
	query := `
		UPDATE entries SET
			content = COALESCE($3, content),
			summary = COALESCE($4, summary),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, p.ID, userID, nullable(p.Content), nullable(p.Summary))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.Entry, error) {
	var (
		e          models.Entry
		activities []byte
	)
	if err := s.Scan(&e.ID, &e.Content, &e.Summary, &e.Mood, &activities, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if len(activities) > 0 {
		if err := json.Unmarshal(activities, &e.Activities); err != nil {
			return nil, fmt.Errorf("decode activities of %s: %w", e.ID, err)
		}
	}
	return &e, nil
}

func encodeActivities(a []string) (string, error) {
	if a == nil {
		a = []string{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode activities: %w", err)
	}
	return string(b), nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
