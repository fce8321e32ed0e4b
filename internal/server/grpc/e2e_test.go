package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	pb "github.com/s-r-jones/deep-dive-air/internal/proto"
	"github.com/s-r-jones/deep-dive-air/internal/server/config"
	"github.com/s-r-jones/deep-dive-air/internal/server/ratelimit"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/repomanager"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/repotest"
	"github.com/s-r-jones/deep-dive-air/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startBufconn(t *testing.T) *pb.BookingServiceClient {
	t.Helper()

	db := repotest.OpenSQLite(t)
	rm := repomanager.NewSQLRepositoryManager(dbx.SQLite)
	cfg := &config.Config{
		SecretKey:                   "e2e",
		AccessTokenValidityDuration: time.Minute,
		MinPasswordLength:           8,
	}
	log := nopLogger{}

	metrics, err := NewGRPCMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	s := NewGRPCServer("bufconn", log,
		services.NewAuthService(db, rm, ratelimit.Noop{}, log, cfg),
		services.NewFlightService(db, rm, log),
		services.NewBookingService(db, rm, log),
		metrics, cfg.SecretKey)

	lis := bufconn.Listen(1 << 20)
	srv := s.NewServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufconn",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return pb.NewBookingServiceClient(conn)
}

func call(t *testing.T, ctx context.Context, c *pb.BookingServiceClient, method string, in map[string]any) (*structpb.Struct, error) {
	t.Helper()
	return c.Call(ctx, method, mustStruct(t, in))
}

func TestEndToEnd_SignUpSignInBook(t *testing.T) {
	c := startBufconn(t)
	ctx := context.Background()

	reg, err := call(t, ctx, c, pb.MethodRegister, map[string]any{
		"email":        "jane@example.com",
		"password":     "Abcd1234",
		"first_name":   "Jane",
		"last_name":    "Doe",
		"phone_number": "5055550100",
		"dob_year":     1990,
		"dob_month":    1,
		"dob_day":      2,
	})
	require.NoError(t, err)
	assert.Equal(t, MsgRegistered, reg.Fields["message"].GetStringValue())

	_, err = call(t, ctx, c, pb.MethodLogin, map[string]any{"email": "jane@example.com", "password": "wrong-pass"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, MsgAuthenticationFailed, status.Convert(err).Message())

	login, err := call(t, ctx, c, pb.MethodLogin, map[string]any{"email": "jane@example.com", "password": "Abcd1234"})
	require.NoError(t, err)
	token := login.Fields["access_token"].GetStringValue()
	require.NotEmpty(t, token)

	_, err = call(t, ctx, c, pb.MethodAddFlight, map[string]any{"flight_number": 101, "departure": "ABQ", "destination": "LAX"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	authed := metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)

	_, err = call(t, authed, c, pb.MethodAddFlight, map[string]any{"flight_number": 101, "departure": "abq", "destination": "LAX"})
	require.NoError(t, err)

	found, err := call(t, ctx, c, pb.MethodSearchFlights, map[string]any{"from": "ABQ", "to": "lax"})
	require.NoError(t, err)
	require.Len(t, found.Fields["flights"].GetListValue().GetValues(), 1)

	_, err = call(t, authed, c, pb.MethodBookTicket, map[string]any{
		"ticket_number": 5001, "flight_number": 101, "date_time": "2024-07-01 08:30:00", "price": 199, "seat": "12A",
	})
	require.NoError(t, err)

	_, err = call(t, authed, c, pb.MethodBookTicket, map[string]any{
		"ticket_number": 5002, "flight_number": 101, "date_time": "2024-07-01 08:30:00", "price": 199, "seat": "12A",
	})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	list, err := call(t, authed, c, pb.MethodListTickets, map[string]any{})
	require.NoError(t, err)
	require.Len(t, list.Fields["tickets"].GetListValue().GetValues(), 1)

	_, err = call(t, authed, c, pb.MethodCancelTicket, map[string]any{"ticket_number": 5001})
	require.NoError(t, err)

	list, err = call(t, authed, c, pb.MethodListTickets, map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, list.Fields["tickets"].GetListValue().GetValues())
}

func TestEndToEnd_EchoesRequestID(t *testing.T) {
	c := startBufconn(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.RequestIDHeaderName, "abc-123")

	var header metadata.MD
	_, err := c.Call(ctx, pb.MethodSearchFlights, mustStruct(t, map[string]any{}), grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, []string{"abc-123"}, header.Get(common.RequestIDHeaderName))
}
