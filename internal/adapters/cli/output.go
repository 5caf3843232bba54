package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	routingCommands "github.com/andrescamacho/fuelroute-go/internal/application/routing/commands"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

// solveOutput is the --json document of a solve
type solveOutput struct {
	Network        string                  `json:"network,omitempty"`
	Success        bool                    `json:"success"`
	Distance       int                     `json:"distance"`
	Path           []int                   `json:"path"`
	RoadIDs        []int                   `json:"road_ids"`
	RefuelStops    int                     `json:"refuel_stops"`
	StatesExplored int                     `json:"states_explored"`
	DurationMs     float64                 `json:"duration_ms"`
	RecordID       string                  `json:"record_id,omitempty"`
	Steps          []routing.AnimationStep `json:"steps,omitempty"`
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeSolveJSON(w io.Writer, resp *routingCommands.PlanRouteResponse) error {
	solution := resp.Solution
	return writeJSON(w, solveOutput{
		Network:        resp.NetworkName,
		Success:        solution.Success,
		Distance:       solution.Distance,
		Path:           solution.Path,
		RoadIDs:        solution.RoadIDs,
		RefuelStops:    solution.RefuelStops(resp.Network.Stations()),
		StatesExplored: solution.StatesExplored,
		DurationMs:     float64(resp.Duration.Microseconds()) / 1000,
		RecordID:       resp.RecordID,
		Steps:          resp.Steps,
	})
}

// printNetwork writes the road and station listing of a network
func printNetwork(w io.Writer, network routing.Network) {
	fmt.Fprintf(w, "Cities: %d, Roads: %d, Fuel capacity: %d\n",
		network.CityCount, len(network.Roads), network.FuelCapacity)
	for i, road := range network.Roads {
		fmt.Fprintf(w, "Road %d: %d <-> %d (distance: %d)\n", i+1, road.From, road.To, road.Distance)
	}

	fmt.Fprint(w, "Fuel stations: ")
	for _, station := range network.FuelStations {
		fmt.Fprintf(w, "%d ", station)
	}
	fmt.Fprintln(w, "(plus start city 1)")
}

// printSolveResult writes the human-readable result block
func printSolveResult(w io.Writer, resp *routingCommands.PlanRouteResponse, showSteps bool) {
	solution := resp.Solution
	network := resp.Network

	fmt.Fprintln(w, "\n=== RESULT ===")
	if !solution.Success {
		fmt.Fprintf(w, "No path found from city %d to city %d\n", routing.StartCity, network.Goal())
		fmt.Fprintf(w, "States explored:  %d\n", solution.StatesExplored)
		return
	}

	fmt.Fprintf(w, "Minimum distance: %d\n", solution.Distance)
	fmt.Fprintf(w, "Path:             %s\n", formatPath(solution.Path))
	fmt.Fprintf(w, "Refuel stops:     %d\n", solution.RefuelStops(network.Stations()))
	fmt.Fprintf(w, "States explored:  %d\n", solution.StatesExplored)
	fmt.Fprintf(w, "Solve time:       %s\n", resp.Duration)
	if resp.RecordID != "" {
		fmt.Fprintf(w, "✓ Recorded as %s\n", resp.RecordID)
	}

	if showSteps && len(resp.Steps) > 0 {
		printSteps(w, resp.Steps, network.FuelCapacity)
	}
}

// printSteps writes the playback log, one line per step
func printSteps(w io.Writer, steps []routing.AnimationStep, capacity int) {
	fmt.Fprintln(w, "\n=== PATH STEPS ===")
	for i, step := range steps {
		edge := ""
		if step.Traveled() {
			edge = fmt.Sprintf("  edge %s, road #%d", step.Edge, *step.RoadID+1)
		}
		tank := shared.Fuel{Current: step.Fuel, Capacity: capacity}
		fmt.Fprintf(w, "%2d. %-7s %-45s fuel %3d/%d (%3.0f%%)  total %d%s\n",
			i+1, step.Action, step.Message, step.Fuel, capacity, tank.Percentage(), step.TotalDistance, edge)
	}
	fmt.Fprintln(w, "==================")
}

func formatPath(path []int) string {
	parts := make([]string, len(path))
	for i, city := range path {
		parts[i] = strconv.Itoa(city)
	}
	return strings.Join(parts, " -> ")
}
