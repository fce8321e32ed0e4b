// Package models defines the client-side views of server responses.
package models

import "fmt"

// SignUp is the registration form as the CLI collects it.
type SignUp struct {
	Email       string
	Password    []byte
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth string
}

// Session is what a successful sign-in returns.
type Session struct {
	AccessToken  string
	CredentialID int64
	ProfileID    int64
}

type Flight struct {
	Number      int64
	Departure   string
	Destination string
}

func (f Flight) String() string {
	return fmt.Sprintf("#%d %s -> %s", f.Number, f.Departure, f.Destination)
}

// Ticket mirrors a booked ticket. DateTime keeps the server's
// "YYYY-MM-DD HH:MM:SS" text.
type Ticket struct {
	Number       int64
	FlightNumber int64
	DateTime     string
	Price        int64
	Seat         string
}

func (t Ticket) String() string {
	return fmt.Sprintf("ticket %d: flight %d, %s, seat %s, %d", t.Number, t.FlightNumber, t.DateTime, t.Seat, t.Price)
}

// Profile holds the editable traveller details.
type Profile struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth string
}
