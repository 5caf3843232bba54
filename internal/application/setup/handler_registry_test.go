package setup_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelroute-go/internal/adapters/metrics"
	"github.com/andrescamacho/fuelroute-go/internal/adapters/persistence"
	routingCommands "github.com/andrescamacho/fuelroute-go/internal/application/routing/commands"
	routingQueries "github.com/andrescamacho/fuelroute-go/internal/application/routing/queries"
	"github.com/andrescamacho/fuelroute-go/internal/application/setup"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/test/helpers"
)

func newRegistry(t *testing.T) *setup.HandlerRegistry {
	db := helpers.NewTestDB(t)
	return setup.NewHandlerRegistry(
		helpers.NewMockRoutingClient(),
		persistence.NewGormNetworkRepository(db),
		persistence.NewGormSolveRecordRepository(db),
		nil,
	)
}

func TestNewRoutingMediator_RoutesEveryRequest(t *testing.T) {
	// Arrange
	m, err := setup.NewRoutingMediator(newRegistry(t), nil)
	require.NoError(t, err)
	ctx := context.Background()
	demo := routing.DemoNetwork()

	// Act & Assert
	_, err = m.Send(ctx, &routingCommands.SaveNetworkCommand{Name: "demo", Network: demo})
	require.NoError(t, err)

	_, err = m.Send(ctx, &routingCommands.PlanRouteCommand{NetworkName: "demo", Record: true})
	require.NoError(t, err)

	response, err := m.Send(ctx, &routingQueries.ListSolveRecordsQuery{NetworkName: "demo"})
	require.NoError(t, err)
	assert.Len(t, response.(*routingQueries.ListSolveRecordsResponse).Records, 1)

	_, err = m.Send(ctx, &routingQueries.GetNetworkQuery{Name: "demo"})
	require.NoError(t, err)

	_, err = m.Send(ctx, &routingQueries.ListNetworksQuery{})
	require.NoError(t, err)

	_, err = m.Send(ctx, &routingCommands.DeleteNetworkCommand{Name: "demo"})
	require.NoError(t, err)
}

func TestNewRoutingMediator_CountsCommands(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(metrics.ResetRegistry)

	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())

	m, err := setup.NewRoutingMediator(newRegistry(t), collector)
	require.NoError(t, err)
	demo := routing.DemoNetwork()

	// Act
	_, err = m.Send(context.Background(), &routingCommands.PlanRouteCommand{Network: &demo})
	require.NoError(t, err)
	_, err = m.Send(context.Background(), &routingQueries.GetNetworkQuery{Name: "missing"})
	require.Error(t, err)

	// Assert
	count, err := testutil.GatherAndCount(metrics.GetRegistry(), "fuelroute_planner_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
