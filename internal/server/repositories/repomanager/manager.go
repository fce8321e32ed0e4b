package repomanager

import (
	"context"
	"database/sql"

	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/credentials"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/flights"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/profiles"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/tickets"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// path works against the connection pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Credentials(db dbx.DBTX) credentials.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Flights(db dbx.DBTX) flights.Repository
	Tickets(db dbx.DBTX) tickets.Repository
}
