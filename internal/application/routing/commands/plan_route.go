package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andrescamacho/fuelroute-go/internal/adapters/metrics"
	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
	"github.com/andrescamacho/fuelroute-go/pkg/utils"
)

// PlanRouteCommand - Command to find the shortest fuel-feasible route from city 1 to city N.
// Network takes precedence; otherwise the stored network NetworkName is solved.
type PlanRouteCommand struct {
	Network      *routing.Network
	NetworkName  string
	IncludeSteps bool
	// Record appends the outcome to the stored network's solve history
	Record bool
}

// PlanRouteResponse - Response from plan route command
type PlanRouteResponse struct {
	NetworkName string
	Network     routing.Network
	Solution    *routing.Solution
	Steps       []routing.AnimationStep
	Duration    time.Duration
	RecordID    string
}

// PlanRouteHandler - Handles plan route commands
type PlanRouteHandler struct {
	client      routing.RoutingClient
	networkRepo routing.NetworkRepository
	recordRepo  routing.SolveRecordRepository
	clock       shared.Clock
}

// NewPlanRouteHandler creates a new plan route handler
func NewPlanRouteHandler(
	client routing.RoutingClient,
	networkRepo routing.NetworkRepository,
	recordRepo routing.SolveRecordRepository,
	clock shared.Clock,
) *PlanRouteHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &PlanRouteHandler{
		client:      client,
		networkRepo: networkRepo,
		recordRepo:  recordRepo,
		clock:       clock,
	}
}

// Handle executes the plan route command
func (h *PlanRouteHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*PlanRouteCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	logger := common.LoggerFromContext(ctx)

	// 1. Resolve the network to solve
	network, stored, err := h.resolveNetwork(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if cmd.Record && stored == nil {
		return nil, shared.NewValidationError("record", "only stored networks keep a solve history")
	}

	// 2. Solve through the routing client
	start := h.clock.Now()
	result, err := h.client.PlanRoute(ctx, &routing.RouteRequest{
		Network:      network,
		IncludeSteps: cmd.IncludeSteps,
	})
	duration := h.clock.Now().Sub(start)

	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.OutcomeCancelled
		}
		metrics.RecordSolve(outcome, 0, 0, 0, duration.Seconds())
		logger.Log("ERROR", "Route planning failed", map[string]interface{}{
			"network": cmd.NetworkName,
			"error":   err.Error(),
		})
		return nil, err
	}

	solution := result.Solution
	outcome := metrics.OutcomeNoRoute
	if solution.Success {
		outcome = metrics.OutcomeSuccess
	}
	metrics.RecordSolve(outcome, solution.StatesExplored, solution.Distance,
		solution.RefuelStops(network.Stations()), duration.Seconds())

	logger.Log("INFO", "Route planned", map[string]interface{}{
		"network":         cmd.NetworkName,
		"success":         solution.Success,
		"distance":        solution.Distance,
		"states_explored": solution.StatesExplored,
		"duration_ms":     duration.Milliseconds(),
	})

	response := &PlanRouteResponse{
		NetworkName: cmd.NetworkName,
		Network:     network,
		Solution:    solution,
		Steps:       result.Steps,
		Duration:    duration,
	}

	// 3. Append to the history when asked
	if cmd.Record {
		record := &routing.SolveRecord{
			ID:             utils.GenerateRecordID(stored.Name),
			NetworkID:      stored.ID,
			Success:        solution.Success,
			Distance:       solution.Distance,
			Path:           solution.Path,
			StatesExplored: solution.StatesExplored,
			Duration:       duration,
			CreatedAt:      h.clock.Now(),
		}
		if err := h.recordRepo.Add(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to record solve: %w", err)
		}
		response.RecordID = record.ID
	}

	return response, nil
}

func (h *PlanRouteHandler) resolveNetwork(ctx context.Context, cmd *PlanRouteCommand) (routing.Network, *routing.NamedNetwork, error) {
	if cmd.Network != nil {
		// An inline network may still be recorded against a stored name
		if cmd.Record && cmd.NetworkName != "" {
			stored, err := h.networkRepo.FindByName(ctx, cmd.NetworkName)
			if err != nil {
				return routing.Network{}, nil, err
			}
			return *cmd.Network, stored, nil
		}
		return *cmd.Network, nil, nil
	}

	if cmd.NetworkName == "" {
		return routing.Network{}, nil, shared.NewValidationError("network", "either a network or a stored network name is required")
	}

	stored, err := h.networkRepo.FindByName(ctx, cmd.NetworkName)
	if err != nil {
		return routing.Network{}, nil, err
	}
	return stored.Network, stored, nil
}
