package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	routingCommands "github.com/andrescamacho/fuelroute-go/internal/application/routing/commands"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// RoutingServer implements the gRPC routing service.
// Each PlanRoute call is dispatched through the mediator as a PlanRouteCommand.
type RoutingServer struct {
	mediator   common.Mediator
	listener   net.Listener
	grpcServer *grpc.Server
	logger     *slog.Logger

	// Shutdown coordination
	shutdownChan  chan os.Signal
	done          chan struct{}
	watcherExited chan struct{}
}

// ServerOptions tunes the routing server
type ServerOptions struct {
	// RequestsPerSecond of zero disables rate limiting
	RequestsPerSecond float64
	Burst             int
	Logger            *slog.Logger
}

// NewRoutingServer binds address and prepares the gRPC server
func NewRoutingServer(mediator common.Mediator, address string, opts ServerOptions) (*RoutingServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return NewRoutingServerWithListener(mediator, listener, opts), nil
}

// NewRoutingServerWithListener serves on an existing listener
func NewRoutingServerWithListener(mediator common.Mediator, listener net.Listener, opts ServerOptions) *RoutingServer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	server := &RoutingServer{
		mediator:     mediator,
		listener:     listener,
		logger:       logger,
		shutdownChan:  make(chan os.Signal, 1),
		done:          make(chan struct{}),
		watcherExited: make(chan struct{}),
	}

	server.grpcServer = grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(logger),
			RateLimitInterceptor(limiter),
		),
	)
	RegisterRoutingServiceServer(server.grpcServer, server)

	return server
}

// Addr returns the bound address
func (s *RoutingServer) Addr() string {
	return s.listener.Addr().String()
}

// Start serves until a shutdown signal arrives or Stop is called
func (s *RoutingServer) Start() error {
	s.logger.Info("routing server listening", "address", s.Addr())

	signal.Notify(s.shutdownChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownChan)

	stopped := make(chan struct{})
	defer close(stopped)
	go s.handleShutdown(stopped)

	errChan := make(chan error, 1)
	go func() {
		if err := s.grpcServer.Serve(s.listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-s.done:
		s.logger.Info("initiating graceful shutdown of gRPC server")
		s.grpcServer.GracefulStop()
		return nil
	}
}

// Stop triggers the same graceful shutdown as SIGTERM
func (s *RoutingServer) Stop() {
	select {
	case s.shutdownChan <- syscall.SIGTERM:
	default:
	}
}

// handleShutdown waits for a signal, or for Start to return on a serve error
func (s *RoutingServer) handleShutdown(stopped <-chan struct{}) {
	defer close(s.watcherExited)

	select {
	case <-s.shutdownChan:
		s.logger.Info("shutdown signal received, stopping routing server")
		close(s.done)
	case <-stopped:
	}
}

// PlanRoute implements RoutingServiceServer
func (s *RoutingServer) PlanRoute(ctx context.Context, request *structpb.Struct) (*structpb.Struct, error) {
	routeRequest, err := RouteRequestFromStruct(request)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	response, err := s.mediator.Send(ctx, &routingCommands.PlanRouteCommand{
		Network:      &routeRequest.Network,
		IncludeSteps: routeRequest.IncludeSteps,
	})
	if err != nil {
		return nil, ToStatusError(err)
	}

	planned, ok := response.(*routingCommands.PlanRouteResponse)
	if !ok {
		return nil, status.Errorf(codes.Internal, "unexpected response type %T", response)
	}

	out, err := RouteResponseToStruct(&routing.RouteResponse{
		Solution: planned.Solution,
		Steps:    planned.Steps,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
