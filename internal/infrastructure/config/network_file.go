package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// NetworkFile is the on-disk description of a road network.
// Any format viper reads (yaml, json, toml) is accepted.
type NetworkFile struct {
	Name         string     `mapstructure:"name"`
	Cities       int        `mapstructure:"cities" validate:"min=2"`
	FuelCapacity int        `mapstructure:"fuel_capacity" validate:"gt=0"`
	Roads        []RoadFile `mapstructure:"roads" validate:"dive"`
	FuelStations []int      `mapstructure:"fuel_stations" validate:"dive,min=1"`
}

// RoadFile is one road entry of a network file
type RoadFile struct {
	From     int `mapstructure:"from" validate:"min=1"`
	To       int `mapstructure:"to" validate:"min=1"`
	Distance int `mapstructure:"distance" validate:"min=0"`
}

// LoadNetworkFile reads and validates a network description
func LoadNetworkFile(path string) (*NetworkFile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read network file %s: %w", path, err)
	}

	var file NetworkFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode network file %s: %w", path, err)
	}

	if err := NewValidator().Validate(&file); err != nil {
		return nil, fmt.Errorf("invalid network file %s: %w", path, err)
	}

	return &file, nil
}

// ToNetwork converts the file into the planner's input value
func (f *NetworkFile) ToNetwork() routing.Network {
	roads := make([]routing.Road, len(f.Roads))
	for i, r := range f.Roads {
		roads[i] = routing.Road{From: r.From, To: r.To, Distance: r.Distance}
	}

	stations := make([]int, len(f.FuelStations))
	copy(stations, f.FuelStations)

	return routing.Network{
		CityCount:    f.Cities,
		FuelCapacity: f.FuelCapacity,
		Roads:        roads,
		FuelStations: stations,
	}
}

// NetworkFileFrom converts a planner network back into its file form
func NetworkFileFrom(name string, network routing.Network) *NetworkFile {
	roads := make([]RoadFile, len(network.Roads))
	for i, r := range network.Roads {
		roads[i] = RoadFile{From: r.From, To: r.To, Distance: r.Distance}
	}

	return &NetworkFile{
		Name:         name,
		Cities:       network.CityCount,
		FuelCapacity: network.FuelCapacity,
		Roads:        roads,
		FuelStations: append([]int(nil), network.FuelStations...),
	}
}
