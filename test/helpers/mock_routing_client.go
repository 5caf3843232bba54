package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// MockRoutingClient simulates the routing service for testing.
// By default it solves in process; a configured response or error wins.
type MockRoutingClient struct {
	mu sync.RWMutex

	customRouteResponse *routing.RouteResponse
	err                 error
	requests            []*routing.RouteRequest
}

// NewMockRoutingClient creates a new mock routing client
func NewMockRoutingClient() *MockRoutingClient {
	return &MockRoutingClient{}
}

// SetCustomRouteResponse configures a canned route response
func (m *MockRoutingClient) SetCustomRouteResponse(response *routing.RouteResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customRouteResponse = response
}

// SetError makes PlanRoute fail with err
func (m *MockRoutingClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Requests returns the requests received so far
func (m *MockRoutingClient) Requests() []*routing.RouteRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*routing.RouteRequest(nil), m.requests...)
}

// PlanRoute implements routing.RoutingClient
func (m *MockRoutingClient) PlanRoute(ctx context.Context, request *routing.RouteRequest) (*routing.RouteResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, request)
	response, err := m.customRouteResponse, m.err
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if response != nil {
		return response, nil
	}

	solution, err := routing.Solve(request.Network)
	if err != nil {
		return nil, err
	}
	result := &routing.RouteResponse{Solution: solution}
	if request.IncludeSteps {
		if result.Steps, err = routing.AnimateSolution(request.Network, solution); err != nil {
			return nil, err
		}
	}
	return result, nil
}
