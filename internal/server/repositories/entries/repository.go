package entries

import (
	"context"

	"github.com/dmitrijs2005/photojournal/internal/server/models"
)

// Repository persists journal entries. Every operation is scoped to the
// owning user; rows of other users behave as if they did not exist.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Entry, error)
	GetByID(ctx context.Context, userID, entryID int64) (*models.Entry, error)
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Update(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Delete(ctx context.Context, userID, entryID int64) error
}
