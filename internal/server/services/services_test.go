package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	"github.com/s-r-jones/deep-dive-air/internal/logging"
	"github.com/s-r-jones/deep-dive-air/internal/server/config"
	"github.com/s-r-jones/deep-dive-air/internal/server/ratelimit"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/repomanager"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/repotest"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		MinPasswordLength:           8,
	}
}

type stack struct {
	db       *sql.DB
	auth     *AuthService
	flights  *FlightService
	bookings *BookingService
}

func newSQLiteStack(t *testing.T, limiter ratelimit.Limiter) stack {
	t.Helper()
	db := repotest.OpenSQLite(t)
	rm := repomanager.NewSQLRepositoryManager(dbx.SQLite)
	return newStack(db, rm, limiter)
}

func newStack(db *sql.DB, rm repomanager.RepositoryManager, limiter ratelimit.Limiter) stack {
	log := nopLogger()
	return stack{
		db:       db,
		auth:     NewAuthService(db, rm, limiter, log, testConfig()),
		flights:  NewFlightService(db, rm, log),
		bookings: NewBookingService(db, rm, log),
	}
}

func register(t *testing.T, s *AuthService, email string) *Registration {
	t.Helper()
	reg, err := s.Register(context.Background(), RegistrationInput{
		Email:       email,
		Password:    "Abcd1234",
		FirstName:   "Jane",
		LastName:    "Doe",
		PhoneNumber: "+1 505 555 0100",
		DateOfBirth: "1990-1-2",
	})
	require.NoError(t, err)
	return reg
}
