package models

import "github.com/s-r-jones/deep-dive-air/internal/validate"

// Flight is keyed by its flight number. A freshly built flight has no
// identity; it gets one once the repository has stored or loaded it.
type Flight struct {
	number      int64
	departure   string
	destination string
	stored      bool
}

func NewFlight(flightNumber, departure, destination string) (Flight, error) {
	var (
		f   Flight
		err error
	)
	if f.number, err = validate.Numeric("flight_number", flightNumber); err != nil {
		return Flight{}, buildError("flight", err)
	}
	if f.departure, err = validate.NonEmpty("departure", departure); err != nil {
		return Flight{}, buildError("flight", err)
	}
	if f.destination, err = validate.NonEmpty("destination", destination); err != nil {
		return Flight{}, buildError("flight", err)
	}
	return f, nil
}

// ID is the flight number once stored, nil before.
func (f Flight) ID() *int64 {
	if !f.stored {
		return nil
	}
	n := f.number
	return &n
}

func (f Flight) Number() int64       { return f.number }
func (f Flight) Departure() string   { return f.departure }
func (f Flight) Destination() string { return f.destination }

// Stored returns a copy marked as persisted. Only the flights repository
// calls it, after an insert or when a row is read back.
func (f Flight) Stored() Flight {
	f.stored = true
	return f
}

func (f Flight) Equal(o Flight) bool {
	return f == o
}
