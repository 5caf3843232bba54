package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/pkg/utils"
)

const (
	// DefaultHistoryLimit applies when the query leaves Limit at zero
	DefaultHistoryLimit = 20
	// MaxHistoryLimit caps a single history page
	MaxHistoryLimit = 500
)

// ListSolveRecordsQuery - Query for the recent solve history of a stored network
type ListSolveRecordsQuery struct {
	NetworkName string
	Limit       int
}

// ListSolveRecordsResponse - Response from list solve records query
type ListSolveRecordsResponse struct {
	Network *routing.NamedNetwork
	Records []*routing.SolveRecord
}

// ListSolveRecordsHandler - Handles list solve records queries
type ListSolveRecordsHandler struct {
	networkRepo routing.NetworkRepository
	recordRepo  routing.SolveRecordRepository
}

// NewListSolveRecordsHandler creates a new list solve records handler
func NewListSolveRecordsHandler(
	networkRepo routing.NetworkRepository,
	recordRepo routing.SolveRecordRepository,
) *ListSolveRecordsHandler {
	return &ListSolveRecordsHandler{
		networkRepo: networkRepo,
		recordRepo:  recordRepo,
	}
}

// Handle executes the list solve records query
func (h *ListSolveRecordsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListSolveRecordsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	network, err := h.networkRepo.FindByName(ctx, query.NetworkName)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = utils.Min(limit, MaxHistoryLimit)

	records, err := h.recordRepo.ListByNetwork(ctx, network.ID, limit)
	if err != nil {
		return nil, err
	}

	return &ListSolveRecordsResponse{
		Network: network,
		Records: records,
	}, nil
}
