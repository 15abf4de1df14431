package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/drsgate/internal/server/migrations"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/downloads"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/envelopes"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/objects"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	objects   objects.Repository
	envelopes envelopes.Repository
	downloads downloads.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Objects() objects.Repository {
	return m.objects
}

func (m *PostgresRepositoryManager) Envelopes() envelopes.Repository {
	return m.envelopes
}

func (m *PostgresRepositoryManager) Downloads() downloads.Repository {
	return m.downloads
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &PostgresRepositoryManager{
		db:        db,
		objects:   objects.NewPostgresRepository(db),
		envelopes: envelopes.NewPostgresRepository(db),
		downloads: downloads.NewPostgresRepository(db),
	}, nil
}
