package routing_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

func TestAnimateSolution_DemoNetwork(t *testing.T) {
	// Arrange
	network := routing.DemoNetwork()
	solution, err := routing.Solve(network)
	require.NoError(t, err)

	// Act
	steps, err := routing.AnimateSolution(network, solution)

	// Assert
	require.NoError(t, err)
	require.Len(t, steps, 4)

	assert.Equal(t, routing.ActionStart, steps[0].Action)
	assert.Equal(t, 1, steps[0].City)
	assert.Equal(t, 100, steps[0].Fuel)
	assert.Equal(t, "Start at city 1 with full fuel", steps[0].Message)
	assert.False(t, steps[0].Traveled())

	assert.Equal(t, routing.ActionTravel, steps[1].Action)
	assert.Equal(t, 2, steps[1].City)
	assert.Equal(t, 20, steps[1].Fuel)
	assert.Equal(t, 80, *steps[1].EdgeDistance)
	assert.Equal(t, 80, steps[1].TotalDistance)
	assert.Equal(t, "1-2", steps[1].Edge)
	assert.Equal(t, "Travel from city 1 to city 2 (80 fuel used)", steps[1].Message)

	assert.Equal(t, routing.ActionRefuel, steps[2].Action)
	assert.Equal(t, 2, steps[2].City)
	assert.Equal(t, 100, steps[2].Fuel)
	assert.Equal(t, "Refuel at station 2", steps[2].Message)

	assert.Equal(t, routing.ActionFinish, steps[3].Action)
	assert.Equal(t, 4, steps[3].City)
	assert.Equal(t, 10, steps[3].Fuel)
	assert.Equal(t, 90, *steps[3].EdgeDistance)
	assert.Equal(t, 170, steps[3].TotalDistance)
	assert.Equal(t, "2-4", steps[3].Edge)
	assert.Equal(t, "Arrived at destination!", steps[3].Message)
}

func TestAnimateSolution_FailedSolutionHasNoSteps(t *testing.T) {
	network := routing.DemoNetwork()
	network.FuelCapacity = 50

	solution, err := routing.Solve(network)
	require.NoError(t, err)

	steps, err := routing.AnimateSolution(network, solution)

	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestAnimate_NoRefuelAtGoalStation(t *testing.T) {
	// Arrange: the goal itself is a station
	network := routing.Network{
		CityCount:    2,
		FuelCapacity: 10,
		Roads:        []routing.Road{{From: 1, To: 2, Distance: 4}},
		FuelStations: []int{2},
	}

	// Act
	steps, err := routing.Animate(network, []int{1, 2}, nil)

	// Assert
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, routing.ActionFinish, steps[1].Action)
	assert.Equal(t, 6, steps[1].Fuel)
}

func TestAnimate_SingleCityPathFinishesImmediately(t *testing.T) {
	steps, err := routing.Animate(routing.DemoNetwork(), []int{1}, nil)

	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, routing.ActionFinish, steps[0].Action)
	assert.Equal(t, 100, steps[0].Fuel)
}

func TestAnimate_ParallelRoads(t *testing.T) {
	network := routing.Network{
		CityCount:    3,
		FuelCapacity: 100,
		Roads: []routing.Road{
			{From: 1, To: 2, Distance: 10},
			{From: 1, To: 2, Distance: 5},
			{From: 2, To: 3, Distance: 5},
		},
	}
	solution, err := routing.Solve(network)
	require.NoError(t, err)

	t.Run("search roads reproduce the solution distance", func(t *testing.T) {
		steps, err := routing.AnimateSolution(network, solution)

		require.NoError(t, err)
		assert.Equal(t, solution.Distance, steps[len(steps)-1].TotalDistance)
		assert.Equal(t, 5, *steps[1].EdgeDistance)
		assert.Equal(t, 1, *steps[1].RoadID)
	})

	t.Run("path-only replay uses the first road", func(t *testing.T) {
		steps, err := routing.Animate(network, solution.Path, nil)

		require.NoError(t, err)
		assert.Equal(t, 10, *steps[1].EdgeDistance)
		assert.Equal(t, 15, steps[len(steps)-1].TotalDistance)
	})
}

func TestAnimate_Errors(t *testing.T) {
	network := routing.DemoNetwork()

	t.Run("missing road", func(t *testing.T) {
		_, err := routing.Animate(network, []int{1, 4}, nil)
		assert.True(t, errors.Is(err, routing.ErrNoRoad))
	})

	t.Run("road id does not join the cities", func(t *testing.T) {
		_, err := routing.Animate(network, []int{1, 2}, []int{1})
		assert.True(t, errors.Is(err, routing.ErrNoRoad))
	})

	t.Run("road id count mismatch", func(t *testing.T) {
		_, err := routing.Animate(network, []int{1, 2, 4}, []int{0})
		assert.Error(t, err)
	})

	t.Run("unaffordable hop", func(t *testing.T) {
		// 1-3 is 120 long on a 100 tank
		_, err := routing.Animate(network, []int{1, 3, 4}, nil)

		var fuelErr *shared.InsufficientFuelError
		require.True(t, errors.As(err, &fuelErr))
		assert.Equal(t, 120, fuelErr.Required)
		assert.Equal(t, 100, fuelErr.Available)
	})

	t.Run("invalid network", func(t *testing.T) {
		bad := network
		bad.FuelCapacity = 0

		_, err := routing.Animate(bad, []int{1, 2}, nil)

		var cfgErr *shared.ConfigError
		assert.True(t, errors.As(err, &cfgErr))
	})
}

func TestAnimate_RoundTripOnRandomNetworks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	checked := 0

	for i := 0; i < 300; i++ {
		network := randomNetwork(rng)
		solution, err := routing.Solve(network)
		require.NoError(t, err)
		if !solution.Success {
			continue
		}
		checked++

		steps, err := routing.AnimateSolution(network, solution)
		require.NoError(t, err)

		// Rebuild the path and check fuel along the log
		path := []int{steps[0].City}
		fuel := steps[0].Fuel
		for _, step := range steps[1:] {
			if step.Traveled() {
				require.LessOrEqual(t, *step.EdgeDistance, fuel)
				assert.Equal(t, fuel-*step.EdgeDistance, step.Fuel)
				path = append(path, step.City)
			}
			if step.Action == routing.ActionRefuel {
				assert.Equal(t, network.FuelCapacity, step.Fuel)
			}
			assert.GreaterOrEqual(t, step.Fuel, 0)
			assert.LessOrEqual(t, step.Fuel, network.FuelCapacity)
			fuel = step.Fuel
		}

		assert.Equal(t, solution.Path, path)
		assert.Equal(t, solution.Distance, steps[len(steps)-1].TotalDistance)
		assert.Equal(t, routing.ActionFinish, steps[len(steps)-1].Action)
	}

	assert.Greater(t, checked, 0)
}
