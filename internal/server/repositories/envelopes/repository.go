package envelopes

import (
	"context"

	"github.com/dmitrijs2005/drsgate/internal/server/models"
)

// Repository provides create/get-by-id access to cached envelopes. Rows are
// never overwritten: the first insert for an id wins, and a conflicting
// insert reports common.ErrorAlreadyExists so the caller can re-read the
// winner.
type Repository interface {
	Insert(ctx context.Context, env *models.Envelope) error
	GetByID(ctx context.Context, id string) (*models.Envelope, error)
}
