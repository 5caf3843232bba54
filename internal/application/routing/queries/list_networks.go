package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// ListNetworksQuery - Query for every stored network
type ListNetworksQuery struct{}

// ListNetworksResponse - Response from list networks query
type ListNetworksResponse struct {
	Networks []*routing.NamedNetwork
}

// ListNetworksHandler - Handles list networks queries
type ListNetworksHandler struct {
	networkRepo routing.NetworkRepository
}

// NewListNetworksHandler creates a new list networks handler
func NewListNetworksHandler(networkRepo routing.NetworkRepository) *ListNetworksHandler {
	return &ListNetworksHandler{networkRepo: networkRepo}
}

// Handle executes the list networks query
func (h *ListNetworksHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListNetworksQuery); !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	networks, err := h.networkRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ListNetworksResponse{Networks: networks}, nil
}
