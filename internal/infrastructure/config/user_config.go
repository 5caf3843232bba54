package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents user preferences stored in ~/.fuelroute/config.json
// This file stores ONLY preferences, never credentials
type UserConfig struct {
	// Stored network solved when the CLI is given no input
	DefaultNetwork string `json:"default_network,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a user config handler rooted at ~/.fuelroute
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".fuelroute"))
}

// NewUserConfigHandlerAt creates a user config handler storing config.json in configDir
func NewUserConfigHandlerAt(configDir string) (*UserConfigHandler, error) {
	configPath := filepath.Join(configDir, "config.json")

	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: configPath,
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultNetwork sets the stored network used when no input is given
func (h *UserConfigHandler) SetDefaultNetwork(name string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultNetwork = name
	return h.Save(config)
}

// ClearDefaultNetwork removes the default network setting
func (h *UserConfigHandler) ClearDefaultNetwork() error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultNetwork = ""
	return h.Save(config)
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
