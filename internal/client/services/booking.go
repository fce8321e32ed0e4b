package services

import (
	"context"
	"time"

	"github.com/s-r-jones/deep-dive-air/internal/client/client"
	"github.com/s-r-jones/deep-dive-air/internal/client/models"
)

// BookingService runs flight and ticket calls, each bounded by the
// configured request timeout.
type BookingService interface {
	Search(ctx context.Context, from, to string) ([]models.Flight, error)
	AddFlight(ctx context.Context, f models.Flight) error
	Book(ctx context.Context, t models.Ticket) (*models.Ticket, error)
	Tickets(ctx context.Context) ([]models.Ticket, error)
	Cancel(ctx context.Context, ticketNumber int64) error
	UpdateProfile(ctx context.Context, p models.Profile) error
}

type bookingService struct {
	client  client.Client
	timeout time.Duration
}

func NewBookingService(client client.Client, timeout time.Duration) BookingService {
	return &bookingService{client: client, timeout: timeout}
}

func (b *bookingService) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

func (b *bookingService) Search(ctx context.Context, from, to string) ([]models.Flight, error) {
	ctx, cancel := b.bound(ctx)
	defer cancel()
	return b.client.SearchFlights(ctx, from, to)
}

func (b *bookingService) AddFlight(ctx context.Context, f models.Flight) error {
	ctx, cancel := b.bound(ctx)
	defer cancel()
	return b.client.AddFlight(ctx, f)
}

func (b *bookingService) Book(ctx context.Context, t models.Ticket) (*models.Ticket, error) {
	ctx, cancel := b.bound(ctx)
	defer cancel()
	return b.client.BookTicket(ctx, t)
}

func (b *bookingService) Tickets(ctx context.Context) ([]models.Ticket, error) {
	ctx, cancel := b.bound(ctx)
	defer cancel()
	return b.client.ListTickets(ctx)
}

func (b *bookingService) Cancel(ctx context.Context, ticketNumber int64) error {
	ctx, cancel := b.bound(ctx)
	defer cancel()
	return b.client.CancelTicket(ctx, ticketNumber)
}

func (b *bookingService) UpdateProfile(ctx context.Context, p models.Profile) error {
	ctx, cancel := b.bound(ctx)
	defer cancel()
	return b.client.UpdateProfile(ctx, p)
}
