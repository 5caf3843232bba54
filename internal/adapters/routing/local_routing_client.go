package routing

import (
	"context"

	domainRouting "github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// LocalRoutingClient implements RoutingClient by running the search in process
type LocalRoutingClient struct {
	pathfinder *domainRouting.Pathfinder
}

// NewLocalRoutingClient creates an in-process routing client
func NewLocalRoutingClient(opts ...domainRouting.Option) *LocalRoutingClient {
	return &LocalRoutingClient{
		pathfinder: domainRouting.NewPathfinder(opts...),
	}
}

// PlanRoute implements RoutingClient.PlanRoute
func (c *LocalRoutingClient) PlanRoute(ctx context.Context, req *domainRouting.RouteRequest) (*domainRouting.RouteResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	solution, err := c.pathfinder.Solve(req.Network)
	if err != nil {
		return nil, err
	}

	response := &domainRouting.RouteResponse{Solution: solution}
	if req.IncludeSteps {
		steps, err := domainRouting.AnimateSolution(req.Network, solution)
		if err != nil {
			return nil, err
		}
		response.Steps = steps
	}

	return response, nil
}
