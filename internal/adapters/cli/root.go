package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fuelroute",
		Short: "fuelroute - shortest routes under a fuel budget",
		Long: `fuelroute finds the shortest route from city 1 to city N of a road
network when the vehicle's tank limits how far it can drive between
fuel stations.

Networks can be solved directly, stored in a database with a solve
history, or sent to a fuelroute server over gRPC.

Examples:
  fuelroute solve --demo --steps
  fuelroute solve --stdin < input.txt
  fuelroute network save east --file east.yaml
  fuelroute network history east
  fuelroute serve --address localhost:50061
  fuelroute config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml or /etc/fuelroute/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewSolveCommand())
	rootCmd.AddCommand(NewNetworkCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
