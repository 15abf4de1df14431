package objects

import (
	"context"

	"github.com/dmitrijs2005/drsgate/internal/server/models"
)

// Repository provides create/get-by-id access to DRS object records. The
// core never updates or deletes them.
type Repository interface {
	// Insert persists a new record, failing with common.ErrorAlreadyExists
	// if the id is in use.
	Insert(ctx context.Context, obj *models.DrsObject) error
	// GetByID fails with common.ErrorNotFound if the id is unknown.
	GetByID(ctx context.Context, id string) (*models.DrsObject, error)
}
