package tasks

import (
	"context"

	"github.com/dmitrijs2005/gophjournal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)
	GetForUpdate(ctx context.Context, userID, id string) (*models.Task, error)
	ApplyPatch(ctx context.Context, userID string, patch models.TaskPatch) (bool, error)
}
