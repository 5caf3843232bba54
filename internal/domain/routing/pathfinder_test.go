package routing_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

func TestSolve_DemoNetwork(t *testing.T) {
	// Act
	solution, err := routing.Solve(routing.DemoNetwork())

	// Assert
	require.NoError(t, err)
	assert.True(t, solution.Success)
	assert.Equal(t, 170, solution.Distance)
	assert.Equal(t, []int{1, 2, 4}, solution.Path)
	assert.Equal(t, []int{0, 4}, solution.RoadIDs)
}

func TestSolve_NoAffordableFirstRoad(t *testing.T) {
	// Arrange
	network := routing.DemoNetwork()
	network.FuelCapacity = 50

	// Act
	solution, err := routing.Solve(network)

	// Assert
	require.NoError(t, err)
	assert.False(t, solution.Success)
	assert.Equal(t, -1, solution.Distance)
	assert.Empty(t, solution.Path)
	assert.NotNil(t, solution.Path)
	assert.Equal(t, 1, solution.StatesExplored)
}

func TestSolve_UnreachableGoal(t *testing.T) {
	network := routing.Network{
		CityCount:    3,
		FuelCapacity: 10,
		Roads:        []routing.Road{{From: 1, To: 2, Distance: 1}},
	}

	solution, err := routing.Solve(network)

	require.NoError(t, err)
	assert.False(t, solution.Success)
	assert.Equal(t, -1, solution.Distance)
}

func TestSolve_ParallelRoadsPickCheaper(t *testing.T) {
	// Arrange
	network := routing.Network{
		CityCount:    3,
		FuelCapacity: 100,
		Roads: []routing.Road{
			{From: 1, To: 2, Distance: 10},
			{From: 2, To: 1, Distance: 5},
			{From: 2, To: 3, Distance: 5},
		},
	}

	// Act
	solution, err := routing.Solve(network)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 10, solution.Distance)
	assert.Equal(t, []int{1, 2, 3}, solution.Path)
	assert.Equal(t, []int{1, 2}, solution.RoadIDs)
}

func TestSolve_DetourThroughStation(t *testing.T) {
	// The direct road is longer than the tank; the detour refuels at 3.
	network := routing.Network{
		CityCount:    4,
		FuelCapacity: 10,
		Roads: []routing.Road{
			{From: 1, To: 4, Distance: 12},
			{From: 1, To: 3, Distance: 8},
			{From: 3, To: 4, Distance: 9},
			{From: 1, To: 2, Distance: 2},
			{From: 2, To: 4, Distance: 9},
		},
		FuelStations: []int{3},
	}

	solution, err := routing.Solve(network)

	require.NoError(t, err)
	assert.Equal(t, 17, solution.Distance)
	assert.Equal(t, []int{1, 3, 4}, solution.Path)
}

func TestSolve_RevisitsCityWithMoreFuel(t *testing.T) {
	// City 2 is first reached with 8 fuel, too little for the 9-long last road.
	// Bouncing off the station at 3 brings the traveler back to 2 with 9.
	network := routing.Network{
		CityCount:    5,
		FuelCapacity: 10,
		Roads: []routing.Road{
			{From: 1, To: 2, Distance: 2},
			{From: 1, To: 3, Distance: 4},
			{From: 3, To: 2, Distance: 1},
			{From: 2, To: 5, Distance: 9},
		},
		FuelStations: []int{3},
	}

	solution, err := routing.Solve(network)

	require.NoError(t, err)
	assert.Equal(t, 13, solution.Distance)
	assert.Equal(t, []int{1, 2, 3, 2, 5}, solution.Path)
	assert.Equal(t, 1, solution.RefuelStops(network.Stations()))
}

func TestSolve_ZeroDistanceRoads(t *testing.T) {
	network := routing.Network{
		CityCount:    3,
		FuelCapacity: 1,
		Roads: []routing.Road{
			{From: 1, To: 2, Distance: 0},
			{From: 2, To: 3, Distance: 0},
		},
	}

	solution, err := routing.Solve(network)

	require.NoError(t, err)
	assert.True(t, solution.Success)
	assert.Equal(t, 0, solution.Distance)
}

func TestSolve_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		network routing.Network
		field   string
	}{
		{
			name:    "too few cities",
			network: routing.Network{CityCount: 1, FuelCapacity: 10},
			field:   "city_count",
		},
		{
			name:    "zero capacity",
			network: routing.Network{CityCount: 2, FuelCapacity: 0},
			field:   "fuel_capacity",
		},
		{
			name: "road to unknown city",
			network: routing.Network{
				CityCount:    2,
				FuelCapacity: 10,
				Roads:        []routing.Road{{From: 1, To: 2, Distance: 1}, {From: 2, To: 3, Distance: 1}},
			},
			field: "roads[1]",
		},
		{
			name: "road from city zero",
			network: routing.Network{
				CityCount:    2,
				FuelCapacity: 10,
				Roads:        []routing.Road{{From: 0, To: 2, Distance: 1}},
			},
			field: "roads[0]",
		},
		{
			name: "negative distance",
			network: routing.Network{
				CityCount:    2,
				FuelCapacity: 10,
				Roads:        []routing.Road{{From: 1, To: 2, Distance: -4}},
			},
			field: "roads[0]",
		},
		{
			name: "station out of range",
			network: routing.Network{
				CityCount:    2,
				FuelCapacity: 10,
				FuelStations: []int{5},
			},
			field: "fuel_stations[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solution, err := routing.Solve(tt.network)

			require.Error(t, err)
			assert.Nil(t, solution)

			var cfgErr *shared.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestPathfinder_MaxStates(t *testing.T) {
	pathfinder := routing.NewPathfinder(routing.WithMaxStates(1))

	_, err := pathfinder.Solve(routing.DemoNetwork())

	assert.ErrorIs(t, err, routing.ErrSearchBudgetExceeded)
}

func TestSolve_RandomNetworksAreOptimalAndBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 300; i++ {
		network := randomNetwork(rng)

		solution, err := routing.Solve(network)
		require.NoError(t, err)

		// Termination bound
		assert.LessOrEqual(t, solution.StatesExplored, network.CityCount*(network.FuelCapacity+1))

		// Optimality against an exhaustive relaxation of the state space
		expected := relaxedShortestDistance(network)
		require.Equal(t, expected, solution.Distance, "network %+v", network)

		if !solution.Success {
			continue
		}

		// Fuel feasibility along the returned path
		assertFuelFeasible(t, network, solution)
	}
}

func randomNetwork(rng *rand.Rand) routing.Network {
	cities := 2 + rng.Intn(5)
	capacity := 1 + rng.Intn(12)

	roads := make([]routing.Road, rng.Intn(cities*3))
	for i := range roads {
		roads[i] = routing.Road{
			From:     1 + rng.Intn(cities),
			To:       1 + rng.Intn(cities),
			Distance: rng.Intn(capacity + 4),
		}
	}

	var stations []int
	for c := 2; c <= cities; c++ {
		if rng.Intn(3) == 0 {
			stations = append(stations, c)
		}
	}

	return routing.Network{
		CityCount:    cities,
		FuelCapacity: capacity,
		Roads:        roads,
		FuelStations: stations,
	}
}

// relaxedShortestDistance relaxes every (city, fuel) label until nothing changes
func relaxedShortestDistance(network routing.Network) int {
	const inf = math.MaxInt
	stations := network.Stations()
	capacity := network.FuelCapacity

	dist := make([][]int, network.CityCount+1)
	for c := range dist {
		dist[c] = make([]int, capacity+1)
		for f := range dist[c] {
			dist[c][f] = inf
		}
	}
	dist[1][capacity] = 0

	for changed := true; changed; {
		changed = false
		for _, road := range network.Roads {
			for _, dir := range [][2]int{{road.From, road.To}, {road.To, road.From}} {
				from, to := dir[0], dir[1]
				for f := road.Distance; f <= capacity; f++ {
					if dist[from][f] == inf || from == network.CityCount {
						continue
					}
					next := f - road.Distance
					if stations.Has(to) {
						next = capacity
					}
					if d := dist[from][f] + road.Distance; d < dist[to][next] {
						dist[to][next] = d
						changed = true
					}
				}
			}
		}
	}

	best := inf
	for _, d := range dist[network.CityCount] {
		if d < best {
			best = d
		}
	}
	if best == inf {
		return -1
	}
	return best
}

func assertFuelFeasible(t *testing.T, network routing.Network, solution *routing.Solution) {
	t.Helper()

	require.Len(t, solution.RoadIDs, len(solution.Path)-1)
	assert.Equal(t, 1, solution.Path[0])
	assert.Equal(t, network.CityCount, solution.Path[len(solution.Path)-1])

	stations := network.Stations()
	fuel := network.FuelCapacity
	total := 0
	for i, roadID := range solution.RoadIDs {
		road := network.Roads[roadID]
		from, to := solution.Path[i], solution.Path[i+1]
		assert.True(t, (road.From == from && road.To == to) || (road.From == to && road.To == from))
		require.LessOrEqual(t, road.Distance, fuel)

		fuel -= road.Distance
		total += road.Distance
		if stations.Has(to) {
			fuel = network.FuelCapacity
		}
	}
	assert.Equal(t, solution.Distance, total)
}
