package entries

import (
	"context"

	"github.com/dmitrijs2005/gophjournal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.Entry) error
	ListByUser(ctx context.Context, userID string) ([]models.Entry, error)
	// GetForUpdate returns one entry of userID and locks its row for the
	// rest of the transaction. Missing rows give common.ErrorNotFound.
	GetForUpdate(ctx context.Context, userID, id string) (*models.Entry, error)
	// ApplyPatch overwrites the non-nil fields of the patch and reports
	// whether a row of userID was updated.
	ApplyPatch(ctx context.Context, userID string, patch models.EntryPatch) (bool, error)
}
