package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	routingCommands "github.com/andrescamacho/fuelroute-go/internal/application/routing/commands"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/infrastructure/config"
)

// NewSolveCommand creates the solve command
func NewSolveCommand() *cobra.Command {
	var (
		file        string
		stdin       bool
		networkName string
		demo        bool
		showSteps   bool
		record      bool
		remote      string
		jsonOutput  bool
		plain       bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the shortest fuel-feasible route from city 1 to city N",
		Long: `Solve a road network for the shortest route from city 1 to the
highest-numbered city without ever driving a road longer than the fuel held.

The network comes from exactly one of:
  --file PATH      yaml, json or toml network file
  --stdin          classic console format: "N M F", M lines "u v d", "S", S station ids
  --network NAME   a network stored with 'fuelroute network save'
  --demo           the built-in 4-city demo network
With none of them the default network from 'fuelroute config set-network' is used.

Station ids must name a city in [1, N]. Unlike the classic console program,
--stdin rejects an out-of-range station instead of ignoring it.

Examples:
  fuelroute solve --demo --steps
  fuelroute solve --file network.yaml --json
  fuelroute solve --stdin --plain < input.txt
  fuelroute solve --network east --record
  fuelroute solve --demo --remote localhost:50061`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := 0
			for _, set := range []bool{file != "", stdin, networkName != "", demo} {
				if set {
					sources++
				}
			}
			if sources > 1 {
				return fmt.Errorf("use only one of --file, --stdin, --network or --demo")
			}

			var network *routing.Network
			switch {
			case file != "":
				networkFile, err := config.LoadNetworkFile(file)
				if err != nil {
					return err
				}
				n := networkFile.ToNetwork()
				network = &n
			case stdin:
				n, err := ParseClassicInput(cmd.InOrStdin())
				if err != nil {
					return err
				}
				network = &n
			case demo:
				n := routing.DemoNetwork()
				network = &n
			case networkName == "":
				name, err := defaultNetworkName()
				if err != nil {
					return err
				}
				networkName = name
			}

			if record && networkName == "" {
				return fmt.Errorf("--record requires --network")
			}

			a, err := newApp(appOptions{
				database: networkName != "",
				remote:   remote,
			})
			if err != nil {
				return err
			}
			defer a.Close()

			response, err := a.send(&routingCommands.PlanRouteCommand{
				Network:      network,
				NetworkName:  networkName,
				IncludeSteps: showSteps || jsonOutput,
				Record:       record,
			})
			if err != nil {
				return err
			}
			resp := response.(*routingCommands.PlanRouteResponse)

			out := cmd.OutOrStdout()
			switch {
			case plain:
				fmt.Fprintln(out, resp.Solution.Distance)
			case jsonOutput:
				if !showSteps {
					resp.Steps = nil
				}
				return writeSolveJSON(out, resp)
			default:
				if resp.NetworkName != "" {
					fmt.Fprintf(out, "Network: %s\n", resp.NetworkName)
				}
				printNetwork(out, resp.Network)
				printSolveResult(out, resp, showSteps)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Network file (yaml, json or toml)")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read the classic console format from standard input (station ids must be in [1, N])")
	cmd.Flags().StringVarP(&networkName, "network", "n", "", "Stored network name")
	cmd.Flags().BoolVar(&demo, "demo", false, "Solve the built-in demo network")
	cmd.Flags().BoolVar(&showSteps, "steps", false, "Print the step-by-step route playback")
	cmd.Flags().BoolVar(&record, "record", false, "Append the result to the stored network's history")
	cmd.Flags().StringVar(&remote, "remote", "", "Solve on a fuelroute server at this address")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print only the minimum distance, or -1")
	cmd.MarkFlagsMutuallyExclusive("json", "plain")

	return cmd
}

// defaultNetworkName resolves the stored network from user preferences
func defaultNetworkName() (string, error) {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no network given and failed to load user config: %w", err)
	}

	userCfg, err := handler.Load()
	if err != nil {
		return "", fmt.Errorf("no network given and failed to load user config: %w", err)
	}

	if userCfg.DefaultNetwork == "" {
		return "", fmt.Errorf("no network given: use --file, --stdin, --network or --demo, or set a default with 'fuelroute config set-network NAME'")
	}
	return userCfg.DefaultNetwork, nil
}
