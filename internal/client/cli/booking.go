package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/s-r-jones/deep-dive-air/internal/client/models"
)

func (a *App) Search(ctx context.Context) error {
	from, err := getAirportCode(a.reader, "From (airport code, empty for any)", os.Stdout)
	if err != nil {
		return err
	}
	to, err := getAirportCode(a.reader, "To (airport code, empty for any)", os.Stdout)
	if err != nil {
		return err
	}

	flights, err := a.bookingService.Search(ctx, from, to)
	if err != nil {
		return err
	}
	if len(flights) == 0 {
		printlnFn("No flights found")
		return nil
	}
	for _, f := range flights {
		printlnFn(f)
	}
	return nil
}

func (a *App) AddFlight(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	var (
		f   models.Flight
		err error
	)
	if f.Number, err = getNumber(a.reader, "Flight number", os.Stdout); err != nil {
		return err
	}
	if f.Departure, err = getAirportCode(a.reader, "Departure airport", os.Stdout); err != nil {
		return err
	}
	if f.Destination, err = getAirportCode(a.reader, "Destination airport", os.Stdout); err != nil {
		return err
	}

	if err := a.bookingService.AddFlight(ctx, f); err != nil {
		return err
	}
	printlnFn("Flight added")
	return nil
}

func (a *App) Book(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	var (
		t   models.Ticket
		err error
	)
	if t.FlightNumber, err = getNumber(a.reader, "Flight number", os.Stdout); err != nil {
		return err
	}
	if t.Number, err = getNumber(a.reader, "Ticket number", os.Stdout); err != nil {
		return err
	}
	if t.DateTime, err = getSimpleText(a.reader, "Departure time (YYYY-MM-DD HH:MM:SS)", os.Stdout); err != nil {
		return err
	}
	if t.Seat, err = getSimpleText(a.reader, "Seat", os.Stdout); err != nil {
		return err
	}
	if t.Price, err = getNumber(a.reader, "Price", os.Stdout); err != nil {
		return err
	}

	booked, err := a.bookingService.Book(ctx, t)
	if err != nil {
		return err
	}
	printlnFn("Booked", booked)
	return nil
}

func (a *App) Tickets(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	tickets, err := a.bookingService.Tickets(ctx)
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		printlnFn("No tickets")
		return nil
	}
	for _, t := range tickets {
		printlnFn(t)
	}
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	n, err := getNumber(a.reader, "Ticket number", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.bookingService.Cancel(ctx, n); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Ticket %d cancelled", n))
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	var (
		p   models.Profile
		err error
	)
	if p.FirstName, err = getSimpleText(a.reader, "First name", os.Stdout); err != nil {
		return err
	}
	if p.LastName, err = getSimpleText(a.reader, "Last name", os.Stdout); err != nil {
		return err
	}
	if p.PhoneNumber, err = getSimpleText(a.reader, "Phone number", os.Stdout); err != nil {
		return err
	}
	if p.DateOfBirth, err = getSimpleText(a.reader, "Date of birth (YYYY-MM-DD)", os.Stdout); err != nil {
		return err
	}

	if err := a.bookingService.UpdateProfile(ctx, p); err != nil {
		return err
	}
	printlnFn("Profile updated")
	return nil
}
