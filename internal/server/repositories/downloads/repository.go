package downloads

import (
	"context"

	"github.com/dmitrijs2005/drsgate/internal/server/models"
)

// Repository provides create/get-by-id access to issued download tokens.
// Expired rows stay in place; expiry is enforced at redemption time.
type Repository interface {
	Insert(ctx context.Context, dl *models.Download) error
	GetByID(ctx context.Context, id string) (*models.Download, error)
}
