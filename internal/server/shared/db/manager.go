// Package db wires the PostgreSQL connection, the per-record repositories,
// and the embedded goose migrations into a single manager handed to the
// services.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/drsgate/internal/server/repositories/downloads"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/envelopes"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/objects"
)

// RepositoryManager exposes one repository per persisted record kind.
type RepositoryManager interface {
	Conn() *sql.DB
	Objects() objects.Repository
	Envelopes() envelopes.Repository
	Downloads() downloads.Repository
	RunMigrations(ctx context.Context) error
}
