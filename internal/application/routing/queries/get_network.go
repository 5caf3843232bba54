package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// GetNetworkQuery - Query for one stored network
type GetNetworkQuery struct {
	Name string
}

// GetNetworkResponse - Response from get network query
type GetNetworkResponse struct {
	Network *routing.NamedNetwork
}

// GetNetworkHandler - Handles get network queries
type GetNetworkHandler struct {
	networkRepo routing.NetworkRepository
}

// NewGetNetworkHandler creates a new get network handler
func NewGetNetworkHandler(networkRepo routing.NetworkRepository) *GetNetworkHandler {
	return &GetNetworkHandler{networkRepo: networkRepo}
}

// Handle executes the get network query
func (h *GetNetworkHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetNetworkQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	network, err := h.networkRepo.FindByName(ctx, query.Name)
	if err != nil {
		return nil, err
	}

	return &GetNetworkResponse{Network: network}, nil
}
