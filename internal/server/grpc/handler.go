package grpc

import (
	"context"

	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/logging"
	"github.com/s-r-jones/deep-dive-air/internal/server/services"
	"github.com/s-r-jones/deep-dive-air/internal/validate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// MsgRegistered is returned on a successful sign-up.
const MsgRegistered = "You've successfully signed up!"

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	s.logger.Debug(ctx, "Registration request", "email", logging.MaskEmail(field(req, "email")))

	reg, err := s.auth.Register(ctx, services.RegistrationInput{
		Email:       field(req, "email"),
		Password:    field(req, "password"),
		FirstName:   field(req, "first_name"),
		LastName:    field(req, "last_name"),
		PhoneNumber: field(req, "phone_number"),
		DateOfBirth: dateOfBirth(req),
	})
	if err != nil {
		return nil, toStatus(err)
	}

	return response(map[string]any{
		"message":       MsgRegistered,
		"credential_id": *reg.Credential.ID(),
		"profile_id":    *reg.Profile.ID(),
	})
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	res, err := s.auth.Login(ctx, field(req, "email"), field(req, "password"))
	if err != nil {
		return nil, toStatus(err)
	}

	return response(map[string]any{
		"access_token":  res.AccessToken,
		"credential_id": res.CredentialID,
		"profile_id":    res.ProfileID,
	})
}

func (s *GRPCServer) SearchFlights(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	found, err := s.flights.Search(ctx, field(req, "from"), field(req, "to"))
	if err != nil {
		return nil, toStatus(err)
	}

	list := make([]any, 0, len(found))
	for _, f := range found {
		list = append(list, flightValue(f))
	}
	return response(map[string]any{"flights": list})
}

func (s *GRPCServer) AddFlight(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	f, err := s.flights.AddFlight(ctx, field(req, "flight_number"), field(req, "departure"), field(req, "destination"))
	if err != nil {
		return nil, toStatus(err)
	}
	return response(map[string]any{"flight": flightValue(f)})
}

func (s *GRPCServer) BookTicket(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	id, ok := identityFrom(ctx)
	if !ok {
		return nil, toStatus(common.ErrorUnauthorized)
	}

	t, err := s.bookings.BookTicket(ctx, id.ProfileID, services.TicketInput{
		Number:       field(req, "ticket_number"),
		FlightNumber: field(req, "flight_number"),
		DateTime:     field(req, "date_time"),
		Price:        field(req, "price"),
		Seat:         field(req, "seat"),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return response(map[string]any{"ticket": ticketValue(t)})
}

func (s *GRPCServer) ListTickets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	id, ok := identityFrom(ctx)
	if !ok {
		return nil, toStatus(common.ErrorUnauthorized)
	}

	tickets, err := s.bookings.TicketsForProfile(ctx, id.ProfileID)
	if err != nil {
		return nil, toStatus(err)
	}

	list := make([]any, 0, len(tickets))
	for _, t := range tickets {
		list = append(list, ticketValue(t))
	}
	return response(map[string]any{"tickets": list})
}

func (s *GRPCServer) CancelTicket(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	id, ok := identityFrom(ctx)
	if !ok {
		return nil, toStatus(common.ErrorUnauthorized)
	}

	number, err := validate.Numeric("ticket_number", field(req, "ticket_number"))
	if err != nil {
		return nil, toStatus(err)
	}

	if err := s.bookings.CancelTicket(ctx, id.ProfileID, number); err != nil {
		return nil, toStatus(err)
	}
	return response(map[string]any{"message": "ticket cancelled"})
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	id, ok := identityFrom(ctx)
	if !ok {
		return nil, toStatus(common.ErrorUnauthorized)
	}

	p, err := s.auth.UpdateProfile(ctx, id.ProfileID, services.ProfileInput{
		FirstName:   field(req, "first_name"),
		LastName:    field(req, "last_name"),
		PhoneNumber: field(req, "phone_number"),
		DateOfBirth: dateOfBirth(req),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return response(map[string]any{"profile": profileValue(p)})
}

func response(m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}
