package downloads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/drsgate/internal/common"
	"github.com/dmitrijs2005/drsgate/internal/dbx"
	"github.com/dmitrijs2005/drsgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, dl *models.Download) error {

	query :=
		`INSERT INTO downloads (id, file_id, envelope_id, signature_hash, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, dl.ID, dl.FileID, dl.EnvelopeID, dl.SignatureHash, dl.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}

	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Download, error) {
	query :=
		`SELECT id, file_id, envelope_id, signature_hash, expires_at FROM downloads
		 WHERE id = $1
		 `

	dl := &models.Download{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&dl.ID, &dl.FileID, &dl.EnvelopeID, &dl.SignatureHash, &dl.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return dl, nil
}
