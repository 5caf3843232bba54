package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/config"
	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/logging"
)

func TestNew_JSONFileOutput(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "fuelroute.log")
	cfg := config.LoggingConfig{Level: "warn", Format: "json", Output: "file", FilePath: path}

	// Act
	logger, closer, err := logging.New(cfg)
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("route not found", "network", "demo")
	require.NoError(t, closer.Close())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "route not found", entry["msg"])
	assert.Equal(t, "demo", entry["network"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestNew_LevelFiltering(t *testing.T) {
	logger, _, err := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"})
	require.NoError(t, err)

	assert.False(t, logger.Enabled(context.Background(), -4))
	assert.True(t, logger.Enabled(context.Background(), 8))
}
