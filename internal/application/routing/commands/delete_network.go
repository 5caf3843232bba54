package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// DeleteNetworkCommand - Command to remove a stored network and its solve history
type DeleteNetworkCommand struct {
	Name string
}

// DeleteNetworkResponse - Response from delete network command
type DeleteNetworkResponse struct {
	Name string
}

// DeleteNetworkHandler - Handles delete network commands
type DeleteNetworkHandler struct {
	networkRepo routing.NetworkRepository
}

// NewDeleteNetworkHandler creates a new delete network handler
func NewDeleteNetworkHandler(networkRepo routing.NetworkRepository) *DeleteNetworkHandler {
	return &DeleteNetworkHandler{networkRepo: networkRepo}
}

// Handle executes the delete network command
func (h *DeleteNetworkHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DeleteNetworkCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	if err := h.networkRepo.Delete(ctx, cmd.Name); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("INFO", "Network deleted", map[string]interface{}{
		"network": cmd.Name,
	})

	return &DeleteNetworkResponse{Name: cmd.Name}, nil
}
