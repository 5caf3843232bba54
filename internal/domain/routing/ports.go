package routing

import (
	"context"
	"time"
)

// RoutingClient plans fuel-constrained routes, in process or over gRPC
type RoutingClient interface {
	PlanRoute(ctx context.Context, request *RouteRequest) (*RouteResponse, error)
}

// NetworkRepository stores named networks
type NetworkRepository interface {
	Save(ctx context.Context, network *NamedNetwork) error
	FindByName(ctx context.Context, name string) (*NamedNetwork, error)
	List(ctx context.Context) ([]*NamedNetwork, error)
	Delete(ctx context.Context, name string) error
}

// SolveRecordRepository keeps a history of solves per stored network
type SolveRecordRepository interface {
	Add(ctx context.Context, record *SolveRecord) error
	ListByNetwork(ctx context.Context, networkID string, limit int) ([]*SolveRecord, error)
}

// DTOs for routing operations

type RouteRequest struct {
	Network      Network
	IncludeSteps bool
}

type RouteResponse struct {
	Solution *Solution
	Steps    []AnimationStep
}

// NamedNetwork is a network saved under a user-chosen name
type NamedNetwork struct {
	ID        string
	Name      string
	Network   Network
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SolveRecord is one historical solve of a stored network
type SolveRecord struct {
	ID             string
	NetworkID      string
	Success        bool
	Distance       int
	Path           []int
	StatesExplored int
	Duration       time.Duration
	CreatedAt      time.Time
}
