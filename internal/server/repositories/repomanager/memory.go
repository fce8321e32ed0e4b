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

// MemoryRepositoryManager hands out the same in-memory repositories no
// matter which DBTX it is given. Transactions are not isolated.
type MemoryRepositoryManager struct {
	credentials credentials.Repository
	profiles    profiles.Repository
	flights     flights.Repository
	tickets     tickets.Repository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		credentials: credentials.NewMemoryRepository(),
		profiles:    profiles.NewMemoryRepository(),
		flights:     flights.NewMemoryRepository(),
		tickets:     tickets.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Credentials(dbx.DBTX) credentials.Repository { return m.credentials }
func (m *MemoryRepositoryManager) Profiles(dbx.DBTX) profiles.Repository       { return m.profiles }
func (m *MemoryRepositoryManager) Flights(dbx.DBTX) flights.Repository         { return m.flights }
func (m *MemoryRepositoryManager) Tickets(dbx.DBTX) tickets.Repository         { return m.tickets }
