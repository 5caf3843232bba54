package routing

import (
	"fmt"

	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

// StartCity is the fixed origin of every route and is always a fuel station
const StartCity = 1

// Road is an undirected, weighted connection between two cities.
// Distance doubles as the fuel burned when the road is driven.
type Road struct {
	From     int `json:"from" mapstructure:"from"`
	To       int `json:"to" mapstructure:"to"`
	Distance int `json:"distance" mapstructure:"distance"`
}

// Network is the immutable input of a solve: cities 1..CityCount, the roads
// between them, the tank size and the cities that refill the tank.
type Network struct {
	CityCount    int
	FuelCapacity int
	Roads        []Road
	FuelStations []int
}

// Goal returns the destination city (the highest-numbered city)
func (n Network) Goal() int {
	return n.CityCount
}

// Validate checks the network before any search is attempted
func (n Network) Validate() error {
	if n.CityCount < 2 {
		return shared.NewConfigError("city_count", fmt.Sprintf("must be at least 2, got %d", n.CityCount))
	}
	if n.FuelCapacity <= 0 {
		return shared.NewConfigError("fuel_capacity", fmt.Sprintf("must be positive, got %d", n.FuelCapacity))
	}
	for i, road := range n.Roads {
		if err := n.validateRoad(i, road); err != nil {
			return err
		}
	}
	for i, station := range n.FuelStations {
		if !n.hasCity(station) {
			return shared.NewConfigError(
				fmt.Sprintf("fuel_stations[%d]", i),
				fmt.Sprintf("city %d outside [1, %d]", station, n.CityCount),
			)
		}
	}
	return nil
}

func (n Network) validateRoad(i int, road Road) error {
	field := fmt.Sprintf("roads[%d]", i)
	if !n.hasCity(road.From) || !n.hasCity(road.To) {
		return shared.NewConfigError(field, fmt.Sprintf("road %d-%d references a city outside [1, %d]", road.From, road.To, n.CityCount))
	}
	if road.Distance < 0 {
		return shared.NewConfigError(field, fmt.Sprintf("distance must be non-negative, got %d", road.Distance))
	}
	return nil
}

func (n Network) hasCity(city int) bool {
	return city >= 1 && city <= n.CityCount
}

// Stations returns the refuelling set, always including the start city
func (n Network) Stations() StationSet {
	set := StationSet{StartCity: {}}
	for _, s := range n.FuelStations {
		set[s] = struct{}{}
	}
	return set
}

// StationSet is the set of cities that refill the tank on arrival
type StationSet map[int]struct{}

// Has reports whether the city refuels
func (s StationSet) Has(city int) bool {
	_, ok := s[city]
	return ok
}

// DemoNetwork returns the four-city example network
func DemoNetwork() Network {
	return Network{
		CityCount:    4,
		FuelCapacity: 100,
		Roads: []Road{
			{From: 1, To: 2, Distance: 80},
			{From: 2, To: 3, Distance: 60},
			{From: 3, To: 4, Distance: 70},
			{From: 1, To: 3, Distance: 120},
			{From: 2, To: 4, Distance: 90},
		},
		FuelStations: []int{2, 3},
	}
}
