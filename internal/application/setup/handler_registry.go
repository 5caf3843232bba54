package setup

import (
	"reflect"

	"github.com/andrescamacho/fuelroute-go/internal/adapters/metrics"
	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	routingCommands "github.com/andrescamacho/fuelroute-go/internal/application/routing/commands"
	routingQueries "github.com/andrescamacho/fuelroute-go/internal/application/routing/queries"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	routingClient routing.RoutingClient
	networkRepo   routing.NetworkRepository
	recordRepo    routing.SolveRecordRepository
	clock         shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	routingClient routing.RoutingClient,
	networkRepo routing.NetworkRepository,
	recordRepo routing.SolveRecordRepository,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		routingClient: routingClient,
		networkRepo:   networkRepo,
		recordRepo:    recordRepo,
		clock:         clock,
	}
}

// RegisterRoutingHandlers registers all routing command and query handlers with the mediator
//
// This method registers:
//   - PlanRouteCommand → PlanRouteHandler
//   - SaveNetworkCommand → SaveNetworkHandler
//   - DeleteNetworkCommand → DeleteNetworkHandler
//   - GetNetworkQuery → GetNetworkHandler
//   - ListNetworksQuery → ListNetworksHandler
//   - ListSolveRecordsQuery → ListSolveRecordsHandler
func (r *HandlerRegistry) RegisterRoutingHandlers(m common.Mediator) error {
	handlers := []struct {
		request common.Request
		handler common.RequestHandler
	}{
		{&routingCommands.PlanRouteCommand{}, routingCommands.NewPlanRouteHandler(r.routingClient, r.networkRepo, r.recordRepo, r.clock)},
		{&routingCommands.SaveNetworkCommand{}, routingCommands.NewSaveNetworkHandler(r.networkRepo)},
		{&routingCommands.DeleteNetworkCommand{}, routingCommands.NewDeleteNetworkHandler(r.networkRepo)},
		{&routingQueries.GetNetworkQuery{}, routingQueries.NewGetNetworkHandler(r.networkRepo)},
		{&routingQueries.ListNetworksQuery{}, routingQueries.NewListNetworksHandler(r.networkRepo)},
		{&routingQueries.ListSolveRecordsQuery{}, routingQueries.NewListSolveRecordsHandler(r.networkRepo, r.recordRepo)},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}

	return nil
}

// NewRoutingMediator builds a mediator with every routing handler and, when
// collector is non-nil, the Prometheus command middleware
func NewRoutingMediator(r *HandlerRegistry, collector *metrics.CommandMetricsCollector) (common.Mediator, error) {
	m := common.NewMediator()
	if collector != nil {
		m.RegisterMiddleware(metrics.PrometheusMiddleware(collector))
	}

	if err := r.RegisterRoutingHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}
