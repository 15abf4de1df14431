package objects

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

func (r *PostgresRepository) Insert(ctx context.Context, obj *models.DrsObject) error {

	query :=
		`INSERT INTO drs_objects (id, file_id, decrypted_sha256, decrypted_size, decryption_secret_id, creation_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query,
		obj.ID, obj.FileID, obj.DecryptedSHA256, obj.DecryptedSize, obj.DecryptionSecretID, obj.CreationDate)
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

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.DrsObject, error) {
	query :=
		`SELECT id, file_id, decrypted_sha256, decrypted_size, decryption_secret_id, creation_date FROM drs_objects
		 WHERE id = $1
		 `

	obj := &models.DrsObject{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&obj.ID, &obj.FileID, &obj.DecryptedSHA256, &obj.DecryptedSize, &obj.DecryptionSecretID, &obj.CreationDate)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return obj, nil
}
