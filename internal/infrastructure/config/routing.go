package config

import "time"

// RoutingConfig holds route planner configuration
type RoutingConfig struct {
	// Upper bound on settled (city, fuel) states per solve; 0 = unbounded
	MaxStates int `mapstructure:"max_states" validate:"min=0"`

	// gRPC address of a remote planner; empty means solve in process
	RemoteAddress string `mapstructure:"remote_address"`

	// Timeout for a single remote plan call
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`
}
