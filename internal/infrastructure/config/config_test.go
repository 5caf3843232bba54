package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	// Arrange
	path := writeFile(t, "config.yaml", `
database:
  type: sqlite
  path: ":memory:"
routing:
  max_states: 5000
server:
  address: "127.0.0.1:6000"
logging:
  level: debug
  format: json
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, 5000, cfg.Routing.MaxStates)
	assert.Equal(t, 30*time.Second, cfg.Routing.Timeout)
	assert.Equal(t, "127.0.0.1:6000", cfg.Server.Address)
	assert.Equal(t, 50, cfg.Server.RateLimit.Requests)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  address: "127.0.0.1:6000"
`)
	t.Setenv("FR_SERVER_ADDRESS", "0.0.0.0:7000")
	t.Setenv("FR_ROUTING_MAX_STATES", "12")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", cfg.Server.Address)
	assert.Equal(t, 12, cfg.Routing.MaxStates)
}

func TestLoadConfig_DatabaseURLEnvironment(t *testing.T) {
	path := writeFile(t, "config.yaml", "database:\n  type: postgres\n")
	t.Setenv("DATABASE_URL", "postgresql://fr:secret@db:5432/fuelroute")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "postgresql://fr:secret@db:5432/fuelroute", cfg.Database.URL)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := writeFile(t, "config.yaml", `
logging:
  level: verbose
`)

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "oneof")
}

func TestLoadConfig_FileOutputNeedsPath(t *testing.T) {
	path := writeFile(t, "config.yaml", `
logging:
  output: file
`)

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.file_path")
}

func TestLoadConfigOrDefault_BrokenFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "server: [unclosed")

	cfg := config.LoadConfigOrDefault(path)

	assert.Equal(t, "localhost:50061", cfg.Server.Address)
	assert.Equal(t, "sqlite", cfg.Database.Type)
}

func TestLoadNetworkFile_YAML(t *testing.T) {
	// Arrange
	path := writeFile(t, "network.yaml", `
name: demo
cities: 4
fuel_capacity: 100
roads:
  - {from: 1, to: 2, distance: 80}
  - {from: 2, to: 3, distance: 60}
  - {from: 3, to: 4, distance: 70}
  - {from: 1, to: 3, distance: 120}
  - {from: 2, to: 4, distance: 90}
fuel_stations: [2, 3]
`)

	// Act
	file, err := config.LoadNetworkFile(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "demo", file.Name)

	network := file.ToNetwork()
	assert.Equal(t, 4, network.CityCount)
	assert.Equal(t, 100, network.FuelCapacity)
	assert.Len(t, network.Roads, 5)
	assert.Equal(t, 120, network.Roads[3].Distance)
	assert.Equal(t, []int{2, 3}, network.FuelStations)
}

func TestLoadNetworkFile_JSON(t *testing.T) {
	path := writeFile(t, "network.json", `{
  "cities": 2,
  "fuel_capacity": 5,
  "roads": [{"from": 1, "to": 2, "distance": 5}]
}`)

	file, err := config.LoadNetworkFile(path)

	require.NoError(t, err)
	assert.Equal(t, 2, file.ToNetwork().CityCount)
	assert.Empty(t, file.ToNetwork().FuelStations)
}

func TestLoadNetworkFile_Invalid(t *testing.T) {
	path := writeFile(t, "network.yaml", `
cities: 1
fuel_capacity: 0
roads:
  - {from: 1, to: 2, distance: -3}
`)

	_, err := config.LoadNetworkFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cities")
	assert.Contains(t, err.Error(), "fuel_capacity")
	assert.Contains(t, err.Error(), "roads[0].distance")
}

func TestUserConfigHandler_DefaultNetwork(t *testing.T) {
	handler, err := config.NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)

	cfg, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultNetwork)

	require.NoError(t, handler.SetDefaultNetwork("demo"))
	cfg, err = handler.Load()
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.DefaultNetwork)

	require.NoError(t, handler.ClearDefaultNetwork())
	cfg, err = handler.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultNetwork)
}
