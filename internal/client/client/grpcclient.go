package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/s-r-jones/deep-dive-air/internal/client/models"
	"github.com/s-r-jones/deep-dive-air/internal/common"
	pb "github.com/s-r-jones/deep-dive-air/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// caller is the slice of pb.BookingServiceClient the client uses.
type caller interface {
	Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      caller
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the current access token and a fresh
// request id to every outgoing call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	ctx = metadata.AppendToOutgoingContext(ctx, common.RequestIDHeaderName, uuid.NewString())

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewBookingClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewBookingServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SetAccessToken replaces the token sent with protected calls, e.g. one
// restored from the local session.
func (s *GRPCClient) SetAccessToken(token string) {
	s.accessToken = token
}

func (s *GRPCClient) call(ctx context.Context, method string, in map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Call(ctx, method, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Register(ctx context.Context, in models.SignUp) error {

	_, err := s.call(ctx, pb.MethodRegister, map[string]any{
		"email":         in.Email,
		"password":      string(in.Password),
		"first_name":    in.FirstName,
		"last_name":     in.LastName,
		"phone_number":  in.PhoneNumber,
		"date_of_birth": in.DateOfBirth,
	})
	return err
}

func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {

	resp, err := s.call(ctx, pb.MethodLogin, map[string]any{"email": email, "password": string(password)})
	if err != nil {
		return nil, err
	}

	f := resp.GetFields()
	session := &models.Session{
		AccessToken:  f["access_token"].GetStringValue(),
		CredentialID: int64(f["credential_id"].GetNumberValue()),
		ProfileID:    int64(f["profile_id"].GetNumberValue()),
	}
	s.accessToken = session.AccessToken

	return session, nil
}

func (s *GRPCClient) SearchFlights(ctx context.Context, from, to string) ([]models.Flight, error) {

	resp, err := s.call(ctx, pb.MethodSearchFlights, map[string]any{"from": from, "to": to})
	if err != nil {
		return nil, err
	}

	values := resp.GetFields()["flights"].GetListValue().GetValues()
	flights := make([]models.Flight, 0, len(values))
	for _, v := range values {
		flights = append(flights, flightFrom(v.GetStructValue()))
	}
	return flights, nil
}

func (s *GRPCClient) AddFlight(ctx context.Context, f models.Flight) error {

	_, err := s.call(ctx, pb.MethodAddFlight, map[string]any{
		"flight_number": f.Number,
		"departure":     f.Departure,
		"destination":   f.Destination,
	})
	return err
}

func (s *GRPCClient) BookTicket(ctx context.Context, t models.Ticket) (*models.Ticket, error) {

	resp, err := s.call(ctx, pb.MethodBookTicket, map[string]any{
		"ticket_number": t.Number,
		"flight_number": t.FlightNumber,
		"date_time":     t.DateTime,
		"price":         t.Price,
		"seat":          t.Seat,
	})
	if err != nil {
		return nil, err
	}

	booked := ticketFrom(resp.GetFields()["ticket"].GetStructValue())
	return &booked, nil
}

func (s *GRPCClient) ListTickets(ctx context.Context) ([]models.Ticket, error) {

	resp, err := s.call(ctx, pb.MethodListTickets, map[string]any{})
	if err != nil {
		return nil, err
	}

	values := resp.GetFields()["tickets"].GetListValue().GetValues()
	tickets := make([]models.Ticket, 0, len(values))
	for _, v := range values {
		tickets = append(tickets, ticketFrom(v.GetStructValue()))
	}
	return tickets, nil
}

func (s *GRPCClient) CancelTicket(ctx context.Context, ticketNumber int64) error {
	_, err := s.call(ctx, pb.MethodCancelTicket, map[string]any{"ticket_number": strconv.FormatInt(ticketNumber, 10)})
	return err
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, p models.Profile) error {
	_, err := s.call(ctx, pb.MethodUpdateProfile, map[string]any{
		"first_name":    p.FirstName,
		"last_name":     p.LastName,
		"phone_number":  p.PhoneNumber,
		"date_of_birth": p.DateOfBirth,
	})
	return err
}

func flightFrom(v *structpb.Struct) models.Flight {
	f := v.GetFields()
	return models.Flight{
		Number:      int64(f["flight_number"].GetNumberValue()),
		Departure:   f["departure"].GetStringValue(),
		Destination: f["destination"].GetStringValue(),
	}
}

func ticketFrom(v *structpb.Struct) models.Ticket {
	f := v.GetFields()
	return models.Ticket{
		Number:       int64(f["ticket_number"].GetNumberValue()),
		FlightNumber: int64(f["flight_number"].GetNumberValue()),
		DateTime:     f["date_time"].GetStringValue(),
		Price:        int64(f["price"].GetNumberValue()),
		Seat:         f["seat"].GetStringValue(),
	}
}

// mapError turns a gRPC status into one of the package errors. The server's
// message is kept for display.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.ResourceExhausted:
		return ErrRateLimited
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
