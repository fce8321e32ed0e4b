// Package repomanager provides RepositoryManager implementations: an SQL one
// for PostgreSQL or SQLite that also runs the goose migrations, and an
// in-memory one for tests.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	"github.com/s-r-jones/deep-dive-air/internal/server/migrations"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/credentials"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/flights"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/profiles"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/tickets"
)

// SQLRepositoryManager vends SQL-backed repositories for one dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewSQLRepositoryManager constructs a manager for the given dialect.
func NewSQLRepositoryManager(d dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: d}
}

// Credentials returns a credentials.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Credentials(db dbx.DBTX) credentials.Repository {
	return credentials.NewSQLRepository(db, m.dialect)
}

// Profiles returns a profiles.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewSQLRepository(db, m.dialect)
}

// Flights returns a flights.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Flights(db dbx.DBTX) flights.Repository {
	return flights.NewSQLRepository(db, m.dialect)
}

// Tickets returns a tickets.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Tickets(db dbx.DBTX) tickets.Repository {
	return tickets.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// migrationsDir maps a dialect to its directory inside migrations.Migrations.
func migrationsDir(d dbx.Dialect) string {
	if d == dbx.SQLite {
		return "sqlite"
	}
	return "postgres"
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.Goose); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, migrationsDir(m.dialect))
}
