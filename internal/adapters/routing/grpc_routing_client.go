package routing

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	grpcAdapter "github.com/andrescamacho/fuelroute-go/internal/adapters/grpc"
	domainRouting "github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// GRPCRoutingClient implements RoutingClient against a remote fuelroute server
type GRPCRoutingClient struct {
	conn *grpc.ClientConn
}

// NewGRPCRoutingClient creates a new gRPC routing client.
// Extra dial options are appended after the insecure transport credentials.
func NewGRPCRoutingClient(address string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCRoutingClient, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	// Connect to routing service with timeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	}, opts...)

	conn, err := grpc.DialContext(ctx, address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to routing service at %s: %w", address, err)
	}

	return &GRPCRoutingClient{conn: conn}, nil
}

// Close closes the gRPC connection
func (c *GRPCRoutingClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PlanRoute implements RoutingClient.PlanRoute using gRPC
func (c *GRPCRoutingClient) PlanRoute(ctx context.Context, req *domainRouting.RouteRequest) (*domainRouting.RouteResponse, error) {
	in, err := grpcAdapter.RouteRequestToStruct(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, grpcAdapter.PlanRouteMethod, in, out); err != nil {
		return nil, grpcAdapter.FromStatusError(err)
	}

	response, err := grpcAdapter.RouteResponseFromStruct(out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return response, nil
}
