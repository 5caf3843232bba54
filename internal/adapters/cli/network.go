package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	routingCommands "github.com/andrescamacho/fuelroute-go/internal/application/routing/commands"
	routingQueries "github.com/andrescamacho/fuelroute-go/internal/application/routing/queries"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/config"
)

// NewNetworkCommand creates the network command with subcommands
func NewNetworkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Manage stored road networks",
		Long: `Store road networks in the configured database and inspect their solve history.

Examples:
  fuelroute network save east --file east.yaml
  fuelroute network save demo --demo
  fuelroute network list
  fuelroute network show east
  fuelroute network history east --limit 5
  fuelroute network export east --out east.json
  fuelroute network delete east`,
	}

	cmd.AddCommand(newNetworkSaveCommand())
	cmd.AddCommand(newNetworkShowCommand())
	cmd.AddCommand(newNetworkListCommand())
	cmd.AddCommand(newNetworkDeleteCommand())
	cmd.AddCommand(newNetworkHistoryCommand())
	cmd.AddCommand(newNetworkExportCommand())

	return cmd
}

func newNetworkSaveCommand() *cobra.Command {
	var (
		file string
		demo bool
	)

	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Store a network under NAME, replacing any previous one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var network routing.Network
			switch {
			case demo && file != "":
				return fmt.Errorf("use only one of --file or --demo")
			case demo:
				network = routing.DemoNetwork()
			case file != "":
				networkFile, err := config.LoadNetworkFile(file)
				if err != nil {
					return err
				}
				network = networkFile.ToNetwork()
			default:
				return fmt.Errorf("either --file or --demo is required")
			}

			a, err := newApp(appOptions{database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.send(&routingCommands.SaveNetworkCommand{Name: args[0], Network: network})
			if err != nil {
				return err
			}
			resp := response.(*routingCommands.SaveNetworkResponse)

			verb := "Updated"
			if resp.Created {
				verb = "Saved"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s network %s (%d cities, %d roads)\n",
				verb, resp.Name, network.CityCount, len(network.Roads))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Network file (yaml, json or toml)")
	cmd.Flags().BoolVar(&demo, "demo", false, "Store the built-in demo network")

	return cmd
}

func newNetworkShowCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show a stored network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.send(&routingQueries.GetNetworkQuery{Name: args[0]})
			if err != nil {
				return err
			}
			named := response.(*routingQueries.GetNetworkResponse).Network

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, named.Network)
			}

			fmt.Fprintf(out, "Network: %s\n", named.Name)
			fmt.Fprintf(out, "ID:      %s\n", named.ID)
			fmt.Fprintf(out, "Updated: %s\n\n", named.UpdatedAt.Format("2006-01-02 15:04:05"))
			printNetwork(out, named.Network)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the network as JSON")

	return cmd
}

func newNetworkListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.send(&routingQueries.ListNetworksQuery{})
			if err != nil {
				return err
			}
			networks := response.(*routingQueries.ListNetworksResponse).Networks

			out := cmd.OutOrStdout()
			if len(networks) == 0 {
				fmt.Fprintln(out, "No networks stored")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tCITIES\tROADS\tCAPACITY\tSTATIONS\tUPDATED")
			for _, n := range networks {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\n",
					n.Name,
					n.Network.CityCount,
					len(n.Network.Roads),
					n.Network.FuelCapacity,
					formatStations(n.Network),
					n.UpdatedAt.Format("2006-01-02 15:04"),
				)
			}
			return tw.Flush()
		},
	}
}

func newNetworkDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a stored network and its solve history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.send(&routingCommands.DeleteNetworkCommand{Name: args[0]}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted network %s\n", args[0])
			return nil
		},
	}
}

func newNetworkHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history NAME",
		Short: "Show recent solves of a stored network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(appOptions{database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.send(&routingQueries.ListSolveRecordsQuery{NetworkName: args[0], Limit: limit})
			if err != nil {
				return err
			}
			records := response.(*routingQueries.ListSolveRecordsResponse).Records

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No solves recorded for %s\n", args[0])
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tRESULT\tDISTANCE\tPATH\tSTATES\tTIME")
			for _, r := range records {
				result := "ok"
				path := formatPath(r.Path)
				if !r.Success {
					result = "no route"
					path = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\n",
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					result,
					r.Distance,
					path,
					r.StatesExplored,
					r.Duration,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", routingQueries.DefaultHistoryLimit, "Maximum number of solves to show")

	return cmd
}

func newNetworkExportCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Write a stored network to a yaml, json or toml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return fmt.Errorf("--out is required")
			}

			a, err := newApp(appOptions{database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.send(&routingQueries.GetNetworkQuery{Name: args[0]})
			if err != nil {
				return err
			}
			named := response.(*routingQueries.GetNetworkResponse).Network

			if err := writeNetworkFile(outPath, config.NetworkFileFrom(named.Name, named.Network)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported network %s to %s\n", named.Name, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination file; the extension selects the format")

	return cmd
}

// writeNetworkFile writes file in the format implied by the path extension
func writeNetworkFile(path string, file *config.NetworkFile) error {
	roads := make([]map[string]interface{}, len(file.Roads))
	for i, road := range file.Roads {
		roads[i] = map[string]interface{}{
			"from":     road.From,
			"to":       road.To,
			"distance": road.Distance,
		}
	}

	v := viper.New()
	v.Set("name", file.Name)
	v.Set("cities", file.Cities)
	v.Set("fuel_capacity", file.FuelCapacity)
	v.Set("roads", roads)
	v.Set("fuel_stations", file.FuelStations)

	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		v.SetConfigType(ext)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func formatStations(network routing.Network) string {
	if len(network.FuelStations) == 0 {
		return "-"
	}
	parts := make([]string, len(network.FuelStations))
	for i, station := range network.FuelStations {
		parts[i] = fmt.Sprint(station)
	}
	return strings.Join(parts, ",")
}
