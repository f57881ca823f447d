package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/reservations"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/vehicles"
)

// RepositoryManager vends repositories bound to a *sql.DB or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Vehicles(db dbx.DBTX) vehicles.Repository
	Reservations(db dbx.DBTX) reservations.Repository
}
