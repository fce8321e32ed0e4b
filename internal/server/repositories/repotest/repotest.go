// Package repotest opens migrated throwaway databases for repository tests.
package repotest

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/repomanager"
)

// Hash and Salt are well-formed credential secrets for fixtures.
var (
	Hash = strings.Repeat("ab", 64)
	Salt = strings.Repeat("cd", 32)
)

// OpenSQLite returns an in-memory SQLite database with every migration
// applied. It is closed when the test ends.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.SQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := repomanager.NewSQLRepositoryManager(dbx.SQLite).RunMigrations(ctx, db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
