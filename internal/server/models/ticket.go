package models

import (
	"time"

	"github.com/s-r-jones/deep-dive-air/internal/validate"
)

// Ticket books a seat on a flight for a profile. It is keyed by ticket
// number and, like Flight, only has an identity once stored.
type Ticket struct {
	number       int64
	flightNumber int64
	profileID    int64
	dateTime     time.Time
	price        int64
	seat         string
	stored       bool
}

func NewTicket(ticketNumber, flightNumber, profileID, dateTime, price, seat string) (Ticket, error) {
	var (
		t   Ticket
		err error
	)
	if t.number, err = validate.Numeric("ticket_number", ticketNumber); err != nil {
		return Ticket{}, buildError("ticket", err)
	}
	if t.flightNumber, err = validate.Numeric("flight_number", flightNumber); err != nil {
		return Ticket{}, buildError("ticket", err)
	}
	if t.profileID, err = validate.Numeric("profile_id", profileID); err != nil {
		return Ticket{}, buildError("ticket", err)
	}
	if t.dateTime, err = validate.DateTime("date_time", dateTime); err != nil {
		return Ticket{}, buildError("ticket", err)
	}
	if t.price, err = validate.Numeric("price", price); err != nil {
		return Ticket{}, buildError("ticket", err)
	}
	if t.seat, err = validate.NonEmpty("seat", seat); err != nil {
		return Ticket{}, buildError("ticket", err)
	}
	return t, nil
}

// ID is the ticket number once stored, nil before.
func (t Ticket) ID() *int64 {
	if !t.stored {
		return nil
	}
	n := t.number
	return &n
}

func (t Ticket) Number() int64       { return t.number }
func (t Ticket) FlightNumber() int64 { return t.flightNumber }
func (t Ticket) ProfileID() int64    { return t.profileID }
func (t Ticket) DateTime() time.Time { return t.dateTime }
func (t Ticket) Price() int64        { return t.price }
func (t Ticket) Seat() string        { return t.seat }

// Stored returns a copy marked as persisted. Only the tickets repository
// calls it, after an insert or when a row is read back.
func (t Ticket) Stored() Ticket {
	t.stored = true
	return t
}

func (t Ticket) Equal(o Ticket) bool {
	return t.number == o.number &&
		t.flightNumber == o.flightNumber &&
		t.profileID == o.profileID &&
		t.dateTime.Equal(o.dateTime) &&
		t.price == o.price &&
		t.seat == o.seat &&
		t.stored == o.stored
}
