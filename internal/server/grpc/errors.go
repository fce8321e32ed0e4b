package grpc

import (
	"errors"

	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/server/models"
	"github.com/s-r-jones/deep-dive-air/internal/validate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MsgAuthenticationFailed is the only thing a caller learns about a failed
// sign-in.
const MsgAuthenticationFailed = "Your password or email must be incorrect!"

// toStatus maps service errors to gRPC statuses. Validation messages are
// passed through; storage details never are.
func toStatus(err error) error {
	var (
		fieldErr *validate.FieldError
		buildErr *models.BuildError
	)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrAuthenticationFailed):
		return status.Error(codes.Unauthenticated, MsgAuthenticationFailed)
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "token expired")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrTooManyAttempts):
		return status.Error(codes.ResourceExhausted, "too many sign-in attempts, try again later")
	case errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrFlightExists),
		errors.Is(err, common.ErrTicketExists),
		errors.Is(err, common.ErrSeatTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrUnknownFlight), errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrWeakPassword),
		errors.As(err, &buildErr),
		errors.As(err, &fieldErr),
		errors.Is(err, validate.ErrEmptyField):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
