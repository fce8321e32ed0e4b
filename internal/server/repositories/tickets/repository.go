// Package tickets stores booked tickets.
package tickets

import (
	"context"
	"strconv"

	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	"github.com/s-r-jones/deep-dive-air/internal/server/models"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/gateway"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/memory"
	"github.com/s-r-jones/deep-dive-air/internal/validate"
)

type Repository interface {
	gateway.Gateway[models.Ticket]
	FindByNumber(ctx context.Context, number int64) (models.Ticket, error)
	FindByFlightNumber(ctx context.Context, flightNumber int64) ([]models.Ticket, error)
	FindByProfileID(ctx context.Context, profileID int64) ([]models.Ticket, error)
	// FindSeat returns the ticket holding seat on the flight, if any.
	FindSeat(ctx context.Context, flightNumber int64, seat string) (models.Ticket, error)
}

// Table maps Ticket onto the ticket table, keyed by ticket number.
var Table = gateway.Table[models.Ticket]{
	Name: "ticket",
	Columns: []gateway.Column{
		{Name: "ticket_number", Rule: validate.NumericRule},
		{Name: "flight_number", Rule: validate.NumericRule},
		{Name: "profile_id", Rule: validate.NumericRule},
		{Name: "date_time", Rule: validate.DateTimeRule, Layout: validate.DateTimeLayout},
		{Name: "price", Rule: validate.NumericRule},
		{Name: "seat", Rule: validate.TextRule},
	},
	Values: func(t models.Ticket) []any {
		return []any{
			t.Number(),
			t.FlightNumber(),
			t.ProfileID(),
			t.DateTime().Format(validate.DateTimeLayout),
			t.Price(),
			t.Seat(),
		}
	},
	Build: func(row []string) (models.Ticket, error) {
		t, err := models.NewTicket(row[0], row[1], row[2], row[3], row[4], row[5])
		if err != nil {
			return models.Ticket{}, err
		}
		return t.Stored(), nil
	},
	Assign: func(t models.Ticket, _ int64) (models.Ticket, error) {
		return t.Stored(), nil
	},
}

type repository struct {
	gateway.Gateway[models.Ticket]
}

func NewRepository(g gateway.Gateway[models.Ticket]) Repository {
	return &repository{Gateway: g}
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) Repository {
	return NewRepository(gateway.NewSQLGateway(db, d, Table))
}

func NewMemoryRepository() Repository {
	return NewRepository(memory.NewGateway(Table))
}

func (r *repository) FindByNumber(ctx context.Context, number int64) (models.Ticket, error) {
	return gateway.One(r.FindBy(ctx, "ticket_number", strconv.FormatInt(number, 10)))
}

func (r *repository) FindByFlightNumber(ctx context.Context, flightNumber int64) ([]models.Ticket, error) {
	return r.FindBy(ctx, "flight_number", strconv.FormatInt(flightNumber, 10))
}

func (r *repository) FindByProfileID(ctx context.Context, profileID int64) ([]models.Ticket, error) {
	return r.FindBy(ctx, "profile_id", strconv.FormatInt(profileID, 10))
}

func (r *repository) FindSeat(ctx context.Context, flightNumber int64, seat string) (models.Ticket, error) {
	return gateway.One(r.FindWhere(ctx,
		gateway.Eq("flight_number", strconv.FormatInt(flightNumber, 10)),
		gateway.Eq("seat", seat),
	))
}
