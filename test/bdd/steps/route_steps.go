package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/fuelroute-go/internal/adapters/persistence"
	routingAdapter "github.com/andrescamacho/fuelroute-go/internal/adapters/routing"
	"github.com/andrescamacho/fuelroute-go/internal/application/common"
	routingCommands "github.com/andrescamacho/fuelroute-go/internal/application/routing/commands"
	routingQueries "github.com/andrescamacho/fuelroute-go/internal/application/routing/queries"
	"github.com/andrescamacho/fuelroute-go/internal/application/setup"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
	"github.com/andrescamacho/fuelroute-go/test/helpers"
)

type routeContext struct {
	network  routing.Network
	solution *routing.Solution
	steps    []routing.AnimationStep
	err      error

	mediator common.Mediator
	response *routingCommands.PlanRouteResponse
	records  []*routing.SolveRecord
}

func (rc *routeContext) reset() error {
	rc.network = routing.Network{}
	rc.solution = nil
	rc.steps = nil
	rc.err = nil
	rc.response = nil
	rc.records = nil

	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}

	registry := setup.NewHandlerRegistry(
		routingAdapter.NewLocalRoutingClient(),
		persistence.NewGormNetworkRepository(helpers.SharedTestDB),
		persistence.NewGormSolveRecordRepository(helpers.SharedTestDB),
		nil,
	)
	m, err := setup.NewRoutingMediator(registry, nil)
	if err != nil {
		return err
	}
	rc.mediator = m
	return nil
}

// Given steps

func (rc *routeContext) aNetworkOfCitiesWithFuelCapacity(cities, capacity int) error {
	rc.network = routing.Network{CityCount: cities, FuelCapacity: capacity}
	return nil
}

func (rc *routeContext) theRoads(table *godog.Table) error {
	for i, row := range table.Rows {
		values, err := rowInts(row, 0)
		if err != nil {
			if i == 0 {
				continue // header
			}
			return err
		}
		if len(values) != 3 {
			return fmt.Errorf("road row %d: expected from, to and distance", i)
		}
		rc.network.Roads = append(rc.network.Roads, routing.Road{From: values[0], To: values[1], Distance: values[2]})
	}
	return nil
}

func (rc *routeContext) fuelStationsAt(list string) error {
	stations, err := parseCityList(list)
	if err != nil {
		return err
	}
	rc.network.FuelStations = stations
	return nil
}

func (rc *routeContext) noFuelStations() error {
	rc.network.FuelStations = nil
	return nil
}

func (rc *routeContext) theDemoNetwork() error {
	rc.network = routing.DemoNetwork()
	return nil
}

func (rc *routeContext) theFuelCapacityIs(capacity int) error {
	rc.network.FuelCapacity = capacity
	return nil
}

func (rc *routeContext) theNetworkIsStoredAs(name string) error {
	_, err := rc.mediator.Send(context.Background(), &routingCommands.SaveNetworkCommand{Name: name, Network: rc.network})
	return err
}

// When steps

func (rc *routeContext) iSolveTheNetwork() error {
	rc.solution, rc.err = routing.Solve(rc.network)
	if rc.err == nil {
		rc.steps, rc.err = routing.AnimateSolution(rc.network, rc.solution)
	}
	return nil
}

func (rc *routeContext) iPlanARouteForTheStoredNetworkWithRecording(name string) error {
	response, err := rc.mediator.Send(context.Background(), &routingCommands.PlanRouteCommand{
		NetworkName: name,
		Record:      true,
	})
	rc.err = err
	if err != nil {
		return nil
	}
	rc.response = response.(*routingCommands.PlanRouteResponse)
	rc.solution = rc.response.Solution
	return nil
}

func (rc *routeContext) iRequestTheSolveHistoryOf(name string) error {
	response, err := rc.mediator.Send(context.Background(), &routingQueries.ListSolveRecordsQuery{NetworkName: name})
	rc.err = err
	if err != nil {
		return nil
	}
	rc.records = response.(*routingQueries.ListSolveRecordsResponse).Records
	return nil
}

// Then steps

func (rc *routeContext) theRouteShouldBeFound() error {
	if rc.err != nil {
		return fmt.Errorf("expected a route, got error: %v", rc.err)
	}
	if !rc.solution.Success {
		return fmt.Errorf("expected a route, but none was found")
	}
	return nil
}

func (rc *routeContext) noRouteShouldBeFound() error {
	if rc.err != nil {
		return fmt.Errorf("expected no route, got error: %v", rc.err)
	}
	if rc.solution.Success {
		return fmt.Errorf("expected no route, got distance %d", rc.solution.Distance)
	}
	return nil
}

func (rc *routeContext) theMinimumDistanceShouldBe(expected int) error {
	if rc.solution.Distance != expected {
		return fmt.Errorf("expected distance %d, got %d", expected, rc.solution.Distance)
	}
	return nil
}

func (rc *routeContext) thePathShouldBe(expected string) error {
	path, err := parseCityList(expected)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(path, rc.solution.Path) {
		return fmt.Errorf("expected path %v, got %v", path, rc.solution.Path)
	}
	return nil
}

func (rc *routeContext) theRouteShouldMakeRefuelStops(expected int) error {
	if stops := rc.solution.RefuelStops(rc.network.Stations()); stops != expected {
		return fmt.Errorf("expected %d refuel stops, got %d", expected, stops)
	}
	return nil
}

func (rc *routeContext) theRouteShouldDriveRoad(position, roadNumber int) error {
	if position < 1 || position > len(rc.solution.RoadIDs) {
		return fmt.Errorf("route has %d hops, no hop %d", len(rc.solution.RoadIDs), position)
	}
	if got := rc.solution.RoadIDs[position-1] + 1; got != roadNumber {
		return fmt.Errorf("expected hop %d to drive road %d, got road %d", position, roadNumber, got)
	}
	return nil
}

func (rc *routeContext) thePlaybackShouldBe(table *godog.Table) error {
	if len(table.Rows)-1 != len(rc.steps) {
		return fmt.Errorf("expected %d steps, got %d", len(table.Rows)-1, len(rc.steps))
	}

	for i, row := range table.Rows[1:] {
		step := rc.steps[i]
		action := row.Cells[0].Value
		values, err := rowInts(row, 1)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if len(values) != 3 {
			return fmt.Errorf("step %d: expected action, city, fuel and total columns", i+1)
		}
		city, fuel, total := values[0], values[1], values[2]

		if string(step.Action) != action || step.City != city || step.Fuel != fuel || step.TotalDistance != total {
			return fmt.Errorf("step %d: expected %s city %d fuel %d total %d, got %s city %d fuel %d total %d",
				i+1, action, city, fuel, total, step.Action, step.City, step.Fuel, step.TotalDistance)
		}
	}
	return nil
}

func (rc *routeContext) thePlaybackShouldBeEmpty() error {
	if len(rc.steps) != 0 {
		return fmt.Errorf("expected no steps, got %d", len(rc.steps))
	}
	return nil
}

func (rc *routeContext) theSolveShouldBeRejectedForField(field string) error {
	var cfgErr *shared.ConfigError
	if !errors.As(rc.err, &cfgErr) {
		return fmt.Errorf("expected a configuration error, got %v", rc.err)
	}
	if cfgErr.Field != field {
		return fmt.Errorf("expected field %q, got %q", field, cfgErr.Field)
	}
	return nil
}

func (rc *routeContext) theSolveShouldBeRecorded() error {
	if rc.err != nil {
		return fmt.Errorf("expected the solve to succeed, got error: %v", rc.err)
	}
	if rc.response.RecordID == "" {
		return fmt.Errorf("expected a record ID")
	}
	return nil
}

func (rc *routeContext) theHistoryShouldContainSolves(expected int) error {
	if rc.err != nil {
		return fmt.Errorf("expected history, got error: %v", rc.err)
	}
	if len(rc.records) != expected {
		return fmt.Errorf("expected %d solves, got %d", expected, len(rc.records))
	}
	return nil
}

func (rc *routeContext) theLatestSolveShouldHaveDistance(expected int) error {
	if len(rc.records) == 0 {
		return fmt.Errorf("history is empty")
	}
	if rc.records[0].Distance != expected {
		return fmt.Errorf("expected latest distance %d, got %d", expected, rc.records[0].Distance)
	}
	return nil
}

func (rc *routeContext) theRequestShouldFailWithNotFound() error {
	var notFound *shared.NotFoundError
	if !errors.As(rc.err, &notFound) {
		return fmt.Errorf("expected not found, got %v", rc.err)
	}
	return nil
}

func InitializeRouteScenario(ctx *godog.ScenarioContext) {
	rc := &routeContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, rc.reset()
	})

	// Given steps
	ctx.Step(`^a network of (\d+) cities with fuel capacity (\d+)$`, rc.aNetworkOfCitiesWithFuelCapacity)
	ctx.Step(`^the roads:$`, rc.theRoads)
	ctx.Step(`^fuel stations at "([^"]*)"$`, rc.fuelStationsAt)
	ctx.Step(`^no fuel stations$`, rc.noFuelStations)
	ctx.Step(`^the demo network$`, rc.theDemoNetwork)
	ctx.Step(`^the fuel capacity is (\d+)$`, rc.theFuelCapacityIs)
	ctx.Step(`^the network is stored as "([^"]*)"$`, rc.theNetworkIsStoredAs)

	// When steps
	ctx.Step(`^I solve the network$`, rc.iSolveTheNetwork)
	ctx.Step(`^I plan a route for the stored network "([^"]*)" with recording$`, rc.iPlanARouteForTheStoredNetworkWithRecording)
	ctx.Step(`^I request the solve history of "([^"]*)"$`, rc.iRequestTheSolveHistoryOf)

	// Then steps
	ctx.Step(`^the route should be found$`, rc.theRouteShouldBeFound)
	ctx.Step(`^no route should be found$`, rc.noRouteShouldBeFound)
	ctx.Step(`^the minimum distance should be (-?\d+)$`, rc.theMinimumDistanceShouldBe)
	ctx.Step(`^the path should be "([^"]*)"$`, rc.thePathShouldBe)
	ctx.Step(`^the route should make (\d+) refuel stops?$`, rc.theRouteShouldMakeRefuelStops)
	ctx.Step(`^hop (\d+) should drive road (\d+)$`, rc.theRouteShouldDriveRoad)
	ctx.Step(`^the playback should be:$`, rc.thePlaybackShouldBe)
	ctx.Step(`^the playback should be empty$`, rc.thePlaybackShouldBeEmpty)
	ctx.Step(`^the solve should be rejected for field "([^"]*)"$`, rc.theSolveShouldBeRejectedForField)
	ctx.Step(`^the solve should be recorded$`, rc.theSolveShouldBeRecorded)
	ctx.Step(`^the history should contain (\d+) solves?$`, rc.theHistoryShouldContainSolves)
	ctx.Step(`^the latest solve should have distance (-?\d+)$`, rc.theLatestSolveShouldHaveDistance)
	ctx.Step(`^the request should fail with not found$`, rc.theRequestShouldFailWithNotFound)
}
