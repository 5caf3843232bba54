package common_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	"github.com/andrescamacho/fuelroute-go/internal/application/mediator"
)

type pingQuery struct{ value string }

type pingResponse struct{ value string }

func TestMediator_SendDispatchesByRequestType(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	handler := mediator.HandlerFunc(func(ctx context.Context, request common.Request) (common.Response, error) {
		return &pingResponse{value: request.(*pingQuery).value}, nil
	})
	require.NoError(t, common.RegisterHandler[*pingQuery](m, handler))

	// Act
	response, err := m.Send(context.Background(), &pingQuery{value: "pong"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong", response.(*pingResponse).value)
}

func TestMediator_RejectsUnknownAndDuplicateHandlers(t *testing.T) {
	m := common.NewMediator()
	handler := mediator.HandlerFunc(func(ctx context.Context, request common.Request) (common.Response, error) {
		return nil, nil
	})

	_, err := m.Send(context.Background(), &pingQuery{})
	assert.ErrorContains(t, err, "no handler registered")

	_, err = m.Send(context.Background(), nil)
	assert.ErrorContains(t, err, "request cannot be nil")

	require.NoError(t, common.RegisterHandler[*pingQuery](m, handler))
	assert.ErrorContains(t, common.RegisterHandler[*pingQuery](m, handler), "already registered")
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	var calls []string

	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, request common.Request, next mediator.HandlerFunc) (common.Response, error) {
			calls = append(calls, name+":before")
			response, err := next(ctx, request)
			calls = append(calls, name+":after")
			return response, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	require.NoError(t, common.RegisterHandler[*pingQuery](m, mediator.HandlerFunc(
		func(ctx context.Context, request common.Request) (common.Response, error) {
			calls = append(calls, "handler")
			return &pingResponse{}, nil
		})))

	// Act
	_, err := m.Send(context.Background(), &pingQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}, calls)
}

func TestLoggerFromContext_DefaultsToNoOp(t *testing.T) {
	logger := common.LoggerFromContext(context.Background())

	assert.NotPanics(t, func() {
		logger.Log("INFO", "nothing listens", map[string]interface{}{"k": "v"})
	})
}
