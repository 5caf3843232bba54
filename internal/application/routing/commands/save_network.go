package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

// SaveNetworkCommand - Command to store a network under a name, replacing any previous one
type SaveNetworkCommand struct {
	Name    string
	Network routing.Network
}

// SaveNetworkResponse - Response from save network command
type SaveNetworkResponse struct {
	ID      string
	Name    string
	Created bool
}

// SaveNetworkHandler - Handles save network commands
type SaveNetworkHandler struct {
	networkRepo routing.NetworkRepository
}

// NewSaveNetworkHandler creates a new save network handler
func NewSaveNetworkHandler(networkRepo routing.NetworkRepository) *SaveNetworkHandler {
	return &SaveNetworkHandler{networkRepo: networkRepo}
}

// Handle executes the save network command
func (h *SaveNetworkHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SaveNetworkCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, shared.NewValidationError("name", "network name is required")
	}

	// Refuse to store what the planner would refuse to solve
	if err := cmd.Network.Validate(); err != nil {
		return nil, err
	}

	named := &routing.NamedNetwork{Name: name, Network: cmd.Network}
	if err := h.networkRepo.Save(ctx, named); err != nil {
		return nil, err
	}

	created := named.CreatedAt.Equal(named.UpdatedAt)
	common.LoggerFromContext(ctx).Log("INFO", "Network saved", map[string]interface{}{
		"network": name,
		"id":      named.ID,
		"created": created,
	})

	return &SaveNetworkResponse{
		ID:      named.ID,
		Name:    name,
		Created: created,
	}, nil
}
