package envelopes

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

func (r *PostgresRepository) Insert(ctx context.Context, env *models.Envelope) error {

	// "offset" is reserved in postgres, hence header_offset.
	query :=
		`INSERT INTO envelopes (id, header, header_offset, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, env.ID, env.Header, env.Offset, env.CreatedAt)
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

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Envelope, error) {
	query :=
		`SELECT id, header, header_offset, created_at FROM envelopes
		 WHERE id = $1
		 `

	env := &models.Envelope{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&env.ID, &env.Header, &env.Offset, &env.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return env, nil
}
