package grpc

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

// ToStatusError maps planner errors to gRPC status errors.
// Network configuration errors carry the offending field as a BadRequest detail.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}

	var cfgErr *shared.ConfigError
	var validationErr *shared.ValidationError
	var notFoundErr *shared.NotFoundError

	switch {
	case errors.As(err, &cfgErr):
		return withFieldViolation(codes.InvalidArgument, err.Error(), cfgErr.Field, cfgErr.Reason)
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &notFoundErr):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, routing.ErrSearchBudgetExceeded):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// FromStatusError reverses ToStatusError for the error kinds callers branch on
func FromStatusError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		for _, detail := range st.Details() {
			if badRequest, ok := detail.(*errdetails.BadRequest); ok && len(badRequest.GetFieldViolations()) > 0 {
				violation := badRequest.GetFieldViolations()[0]
				return shared.NewConfigError(violation.GetField(), violation.GetDescription())
			}
		}
		return shared.NewValidationError("request", st.Message())
	case codes.ResourceExhausted:
		if st.Message() == routing.ErrSearchBudgetExceeded.Error() {
			return routing.ErrSearchBudgetExceeded
		}
		return err
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	default:
		return err
	}
}

func withFieldViolation(code codes.Code, message, field, description string) error {
	st := status.New(code, message)
	detailed, err := st.WithDetails(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{Field: field, Description: description},
		},
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
