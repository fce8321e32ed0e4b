// Package grpc exposes the booking services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/s-r-jones/deep-dive-air/internal/logging"
	pb "github.com/s-r-jones/deep-dive-air/internal/proto"
	"github.com/s-r-jones/deep-dive-air/internal/server/models"
	"github.com/s-r-jones/deep-dive-air/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the sign-up and sign-in logic the server needs.
type AuthService interface {
	Register(ctx context.Context, in services.RegistrationInput) (*services.Registration, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	UpdateProfile(ctx context.Context, profileID int64, in services.ProfileInput) (models.Profile, error)
}

// FlightService maintains and searches flights.
type FlightService interface {
	AddFlight(ctx context.Context, number, departure, destination string) (models.Flight, error)
	Search(ctx context.Context, from, to string) ([]models.Flight, error)
}

// BookingService books and lists tickets.
type BookingService interface {
	BookTicket(ctx context.Context, profileID int64, in services.TicketInput) (models.Ticket, error)
	TicketsForProfile(ctx context.Context, profileID int64) ([]models.Ticket, error)
	CancelTicket(ctx context.Context, profileID, ticketNumber int64) error
}

type GRPCServer struct {
	address   string
	auth      AuthService
	flights   FlightService
	bookings  BookingService
	metrics   *GRPCMetrics
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, as AuthService, fs FlightService, bs BookingService, m *GRPCMetrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		auth:      as,
		flights:   fs,
		bookings:  bs,
		metrics:   m,
		jwtSecret: []byte(secretKey),
	}
}

// NewServer builds a grpc.Server with the interceptor chain and the booking
// service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.requestIDInterceptor,
		s.metrics.UnaryServerInterceptor(),
		s.accessTokenInterceptor,
	))
	srv := grpc.NewServer(opts...)
	pb.RegisterBookingServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
