package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/logging"
	pb "github.com/s-r-jones/deep-dive-air/internal/proto"
	"github.com/s-r-jones/deep-dive-air/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string) *GRPCServer {
	return &GRPCServer{
		logger:    nopLogger{},
		jwtSecret: []byte(secret),
		auth:      &fakeAuth{},
		flights:   &fakeFlights{},
		bookings:  &fakeBookings{},
	}
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.NewIncomingContext(ctx, metadata.Pairs(common.AccessTokenHeaderName, token))
}

func TestInterceptor_PublicMethod_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	for _, method := range []string{pb.MethodRegister, pb.MethodLogin, pb.MethodSearchFlights} {
		info := &grpc.UnaryServerInfo{FullMethod: method}
		handlerCalled := false

		h := func(ctx context.Context, req interface{}) (interface{}, error) {
			handlerCalled = true
			return "ok", nil
		}

		resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
		require.NoError(t, err, method)
		assert.True(t, handlerCalled, method)
		assert.Equal(t, "ok", resp)
	}
}

func TestInterceptor_Protected_MissingToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MethodBookTicket}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	require.Error(t, err)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing token", status.Convert(err).Message())
}

func TestInterceptor_Protected_InvalidToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MethodListTickets}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called on invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(withToken(context.Background(), "not-a-valid-jwt"), nil, info, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestInterceptor_Protected_ExpiredToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MethodCancelTicket}

	token, err := auth.GenerateToken(auth.Identity{CredentialID: 1, ProfileID: 2}, []byte("secret"), -time.Minute)
	require.NoError(t, err)

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called on expired token")
		return nil, nil
	}

	_, err = s.accessTokenInterceptor(withToken(context.Background(), token), nil, info, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "token expired", status.Convert(err).Message())
}

func TestInterceptor_Protected_ValidToken_PutsIdentity(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MethodUpdateProfile}

	token, err := auth.GenerateToken(auth.Identity{CredentialID: 7, ProfileID: 9}, []byte("secret"), time.Minute)
	require.NoError(t, err)

	var got auth.Identity
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		id, ok := identityFrom(ctx)
		require.True(t, ok)
		got = id
		return "ok", nil
	}

	_, err = s.accessTokenInterceptor(withToken(context.Background(), token), nil, info, h)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{CredentialID: 7, ProfileID: 9}, got)
}

func TestRequestIDInterceptor_UsesIncomingID(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MethodLogin}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.RequestIDHeaderName, "req-42"))

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got, _ = logging.RequestIDFrom(ctx)
		return nil, nil
	}

	_, err := s.requestIDInterceptor(ctx, nil, info, h)
	require.NoError(t, err)
	assert.Equal(t, "req-42", got)
}

func TestRequestIDInterceptor_GeneratesID(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MethodLogin}

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got, _ = logging.RequestIDFrom(ctx)
		return nil, status.Error(codes.Internal, "x")
	}

	_, err := s.requestIDInterceptor(context.Background(), nil, info, h)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Len(t, got, 36)
}
