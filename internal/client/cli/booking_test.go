package cli

import (
	"context"
	"testing"

	"github.com/s-r-jones/deep-dive-air/internal/client/client"
	"github.com/s-r-jones/deep-dive-air/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBooking struct {
	from, to  string
	flights   []models.Flight
	added     models.Flight
	booked    models.Ticket
	tickets   []models.Ticket
	cancelled int64
	profile   models.Profile
	err       error
}

func (f *fakeBooking) Search(_ context.Context, from, to string) ([]models.Flight, error) {
	f.from, f.to = from, to
	return f.flights, f.err
}
func (f *fakeBooking) AddFlight(_ context.Context, fl models.Flight) error {
	f.added = fl
	return f.err
}
func (f *fakeBooking) Book(_ context.Context, t models.Ticket) (*models.Ticket, error) {
	f.booked = t
	return &t, f.err
}
func (f *fakeBooking) Tickets(context.Context) ([]models.Ticket, error) { return f.tickets, f.err }
func (f *fakeBooking) Cancel(_ context.Context, n int64) error {
	f.cancelled = n
	return f.err
}
func (f *fakeBooking) UpdateProfile(_ context.Context, p models.Profile) error {
	f.profile = p
	return f.err
}

func signedInApp(b *fakeBooking) *App {
	return &App{bookingService: b, email: "jane@example.com"}
}

func TestSearch_PrintsFlights(t *testing.T) {
	out := capturePrintln(t)
	b := &fakeBooking{flights: []models.Flight{{Number: 101, Departure: "ABQ", Destination: "LAX"}}}
	a := &App{bookingService: b}
	stubInputs(t, nil, "abq", "")

	require.NoError(t, a.Search(context.Background()))
	assert.Equal(t, "ABQ", b.from)
	assert.Equal(t, "", b.to)
	assert.Contains(t, *out, "#101 ABQ -> LAX")
}

func TestSearch_NoFlights(t *testing.T) {
	out := capturePrintln(t)
	a := &App{bookingService: &fakeBooking{}}
	stubInputs(t, nil, "", "")

	require.NoError(t, a.Search(context.Background()))
	assert.Contains(t, *out, "No flights found")
}

func TestProtectedCommands_RequireLogin(t *testing.T) {
	a := &App{bookingService: &fakeBooking{}}
	ctx := context.Background()

	assert.ErrorIs(t, a.Book(ctx), client.ErrUnauthorized)
	assert.ErrorIs(t, a.Tickets(ctx), client.ErrUnauthorized)
	assert.ErrorIs(t, a.Cancel(ctx), client.ErrUnauthorized)
	assert.ErrorIs(t, a.AddFlight(ctx), client.ErrUnauthorized)
	assert.ErrorIs(t, a.Profile(ctx), client.ErrUnauthorized)
}

func TestBook(t *testing.T) {
	out := capturePrintln(t)
	b := &fakeBooking{}
	a := signedInApp(b)
	stubInputs(t, nil, "101", "5001", "2024-07-01 08:30:00", "12A", "199")

	require.NoError(t, a.Book(context.Background()))
	assert.Equal(t, models.Ticket{Number: 5001, FlightNumber: 101, DateTime: "2024-07-01 08:30:00", Price: 199, Seat: "12A"}, b.booked)
	assert.Contains(t, *out, "Booked ticket 5001: flight 101, 2024-07-01 08:30:00, seat 12A, 199")
}

func TestBook_BadNumber(t *testing.T) {
	b := &fakeBooking{}
	a := signedInApp(b)
	stubInputs(t, nil, "one-oh-one")

	assert.Error(t, a.Book(context.Background()))
	assert.Zero(t, b.booked)
}

func TestTickets(t *testing.T) {
	out := capturePrintln(t)
	b := &fakeBooking{}
	a := signedInApp(b)

	require.NoError(t, a.Tickets(context.Background()))
	assert.Contains(t, *out, "No tickets")

	b.tickets = []models.Ticket{{Number: 5001, FlightNumber: 101, DateTime: "2024-07-01 08:30:00", Price: 199, Seat: "12A"}}
	require.NoError(t, a.Tickets(context.Background()))
	assert.Contains(t, *out, "ticket 5001: flight 101, 2024-07-01 08:30:00, seat 12A, 199")
}

func TestCancel(t *testing.T) {
	out := capturePrintln(t)
	b := &fakeBooking{}
	a := signedInApp(b)
	stubInputs(t, nil, "5001")

	require.NoError(t, a.Cancel(context.Background()))
	assert.Equal(t, int64(5001), b.cancelled)
	assert.Contains(t, *out, "Ticket 5001 cancelled")
}

func TestCancel_ServerError(t *testing.T) {
	b := &fakeBooking{err: client.ErrNotFound}
	a := signedInApp(b)
	stubInputs(t, nil, "5001")

	assert.ErrorIs(t, a.Cancel(context.Background()), client.ErrNotFound)
}

func TestAddFlight(t *testing.T) {
	capturePrintln(t)
	b := &fakeBooking{}
	a := signedInApp(b)
	stubInputs(t, nil, "104", "sfo", "SEA")

	require.NoError(t, a.AddFlight(context.Background()))
	assert.Equal(t, models.Flight{Number: 104, Departure: "SFO", Destination: "SEA"}, b.added)
}

func TestProfile(t *testing.T) {
	capturePrintln(t)
	b := &fakeBooking{}
	a := signedInApp(b)
	stubInputs(t, nil, "Janet", "Doe", "5055550100", "1990-01-02")

	require.NoError(t, a.Profile(context.Background()))
	assert.Equal(t, models.Profile{FirstName: "Janet", LastName: "Doe", PhoneNumber: "5055550100", DateOfBirth: "1990-01-02"}, b.profile)
}
