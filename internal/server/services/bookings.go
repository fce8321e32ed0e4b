package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	"github.com/s-r-jones/deep-dive-air/internal/logging"
	"github.com/s-r-jones/deep-dive-air/internal/server/models"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/repomanager"
)

// TicketInput is the raw booking form. The traveller comes from the access
// token, never from the form.
type TicketInput struct {
	Number       string
	FlightNumber string
	DateTime     string
	Price        string
	Seat         string
}

// BookingService books, lists and cancels tickets.
type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewBookingService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *BookingService {
	return &BookingService{db: db, repomanager: m, logger: logger}
}

// BookTicket issues a ticket for profileID. The flight must exist and the
// seat must be free on it; both checks and the insert share a transaction.
func (s *BookingService) BookTicket(ctx context.Context, profileID int64, in TicketInput) (models.Ticket, error) {
	ticket, err := models.NewTicket(in.Number, in.FlightNumber, strconv.FormatInt(profileID, 10), in.DateTime, in.Price, in.Seat)
	if err != nil {
		return models.Ticket{}, err
	}

	var stored models.Ticket
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Flights(tx).FindByNumber(ctx, ticket.FlightNumber()); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUnknownFlight
			}
			return err
		}

		tickets := s.repomanager.Tickets(tx)
		if _, err := tickets.FindSeat(ctx, ticket.FlightNumber(), ticket.Seat()); err == nil {
			return common.ErrSeatTaken
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		var err error
		stored, err = tickets.Insert(ctx, ticket)
		if errors.Is(err, common.ErrDuplicate) {
			return common.ErrTicketExists
		}
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnknownFlight), errors.Is(err, common.ErrSeatTaken), errors.Is(err, common.ErrTicketExists):
			return models.Ticket{}, err
		}
		s.logger.Error(ctx, "booking failed", "profile_id", profileID, "error", err)
		return models.Ticket{}, common.ErrorInternal
	}

	s.logger.Info(ctx, "ticket booked", "ticket_number", stored.Number(), "flight_number", stored.FlightNumber())
	return stored, nil
}

// TicketsForProfile lists a traveller's tickets, oldest ticket number first.
func (s *BookingService) TicketsForProfile(ctx context.Context, profileID int64) ([]models.Ticket, error) {
	out, err := s.repomanager.Tickets(s.db).FindByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return []models.Ticket{}, nil
		}
		s.logger.Error(ctx, "ticket lookup failed", "profile_id", profileID, "error", err)
		return nil, common.ErrorInternal
	}
	return out, nil
}

// CancelTicket deletes one of the traveller's tickets. Tickets of other
// travellers are reported as not found.
func (s *BookingService) CancelTicket(ctx context.Context, profileID, ticketNumber int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tickets := s.repomanager.Tickets(tx)

		ticket, err := tickets.FindByNumber(ctx, ticketNumber)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return err
			}
			s.logger.Error(ctx, "ticket lookup failed", "ticket_number", ticketNumber, "error", err)
			return common.ErrorInternal
		}
		if ticket.ProfileID() != profileID {
			return common.ErrorNotFound
		}

		if err := tickets.Delete(ctx, ticket); err != nil {
			s.logger.Error(ctx, "ticket delete failed", "ticket_number", ticketNumber, "error", err)
			return common.ErrorInternal
		}
		return nil
	})
}
