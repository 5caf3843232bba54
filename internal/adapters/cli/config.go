package cli

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	routingQueries "github.com/andrescamacho/fuelroute-go/internal/application/routing/queries"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage fuelroute configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (FR_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default network) are stored in ~/.fuelroute/config.json

Examples:
  fuelroute config show
  fuelroute config set-network east
  fuelroute config clear-network`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetNetworkCommand())
	cmd.AddCommand(newConfigClearNetworkCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			printConfig(out, cfg, userCfg, userConfigHandler.GetConfigPath())
			return nil
		},
	}
}

func printConfig(out io.Writer, cfg *config.Config, userCfg *config.UserConfig, userConfigPath string) {
	fmt.Fprintln(out, "Fuelroute Configuration")
	fmt.Fprintln(out, "=======================")

	fmt.Fprintln(out, "User Preferences:")
	fmt.Fprintf(out, "  Config file:      %s\n", userConfigPath)
	if userCfg.DefaultNetwork != "" {
		fmt.Fprintf(out, "  Default Network:  %s\n", userCfg.DefaultNetwork)
	} else {
		fmt.Fprintln(out, "  Default Network:  (not set)")
	}

	fmt.Fprintln(out, "\nDatabase:")
	fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.URL != "":
		fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
	default:
		fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
	}
	fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

	fmt.Fprintln(out, "\nRouting:")
	if cfg.Routing.MaxStates > 0 {
		fmt.Fprintf(out, "  Max States:       %d\n", cfg.Routing.MaxStates)
	} else {
		fmt.Fprintln(out, "  Max States:       (unbounded)")
	}
	if cfg.Routing.RemoteAddress != "" {
		fmt.Fprintf(out, "  Remote Address:   %s\n", cfg.Routing.RemoteAddress)
	} else {
		fmt.Fprintln(out, "  Remote Address:   (in process)")
	}
	fmt.Fprintf(out, "  Timeout:          %s\n", cfg.Routing.Timeout)

	fmt.Fprintln(out, "\nServer:")
	fmt.Fprintf(out, "  Address:          %s\n", cfg.Server.Address)
	fmt.Fprintf(out, "  PID File:         %s\n", cfg.Server.PIDFile)
	fmt.Fprintf(out, "  Shutdown Timeout: %s\n", cfg.Server.ShutdownTimeout)
	fmt.Fprintf(out, "  Rate Limit:       %d req/s (burst: %d)\n",
		cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)

	fmt.Fprintln(out, "\nMetrics:")
	fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
	fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)
}

func newConfigSetNetworkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-network NAME",
		Short: "Set the stored network solved when no input is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			a, err := newApp(appOptions{database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.send(&routingQueries.GetNetworkQuery{Name: args[0]})
			if err != nil {
				var notFound *shared.NotFoundError
				if errors.As(err, &notFound) {
					return fmt.Errorf("network '%s' not found, store it first with 'fuelroute network save'", args[0])
				}
				return err
			}
			stored := response.(*routingQueries.GetNetworkResponse).Network

			if err := userConfigHandler.SetDefaultNetwork(stored.Name); err != nil {
				return fmt.Errorf("failed to set default network: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Default network set successfully")
			fmt.Fprintf(out, "  Name:    %s\n", stored.Name)
			fmt.Fprintf(out, "  Cities:  %d\n", stored.Network.CityCount)
			fmt.Fprintln(out, "\n'fuelroute solve' will now use this network when given no input.")
			return nil
		},
	}
}

func newConfigClearNetworkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-network",
		Short: "Clear the default network setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultNetwork(); err != nil {
				return fmt.Errorf("failed to clear default network: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default network cleared")
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "****")
	return u.String()
}
