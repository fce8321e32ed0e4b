// Package client talks to the booking server over gRPC and keeps the
// CLI's local session database.
package client

import (
	"context"

	"github.com/s-r-jones/deep-dive-air/internal/client/models"
)

type Client interface {
	Close() error
	SetAccessToken(token string)
	Register(ctx context.Context, in models.SignUp) error
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	SearchFlights(ctx context.Context, from, to string) ([]models.Flight, error)
	AddFlight(ctx context.Context, f models.Flight) error
	BookTicket(ctx context.Context, t models.Ticket) (*models.Ticket, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	CancelTicket(ctx context.Context, ticketNumber int64) error
	UpdateProfile(ctx context.Context, p models.Profile) error
}
