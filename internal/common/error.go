// Package common defines shared constants and sentinel errors used across
// client and server layers of the booking backend. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrIdentityConflict = errors.New("identity conflict")
	ErrAmbiguous        = errors.New("more than one record matched")
	ErrBackend          = errors.New("persistence backend error")
	ErrDuplicate        = errors.New("duplicate key")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Authentication errors. ErrAuthenticationFailed never tells the caller
	// which part of the credential pair was wrong.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTooManyAttempts      = errors.New("too many login attempts")
	ErrEmailTaken           = errors.New("email already registered")
	ErrWeakPassword         = errors.New("password does not meet policy")

	// Booking errors.
	ErrUnknownFlight = errors.New("flight does not exist")
	ErrSeatTaken     = errors.New("seat already booked")
	ErrFlightExists  = errors.New("flight already exists")
	ErrTicketExists  = errors.New("ticket number already used")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
