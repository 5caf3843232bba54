package routing

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

// ErrNoRoad is returned when consecutive path cities are not connected
var ErrNoRoad = errors.New("routing: no road between consecutive cities")

// StepAction is the kind of event in a route playback log
type StepAction string

const (
	ActionStart  StepAction = "start"
	ActionTravel StepAction = "travel"
	ActionRefuel StepAction = "refuel"
	ActionFinish StepAction = "finish"
)

// AnimationStep is one playback event. Fuel is the tank level after the event.
// Road fields are set only on steps that drove a road.
type AnimationStep struct {
	City          int        `json:"city"`
	Fuel          int        `json:"fuel"`
	Action        StepAction `json:"action"`
	Message       string     `json:"message"`
	Edge          string     `json:"edge,omitempty"`
	RoadID        *int       `json:"road_id,omitempty"`
	EdgeDistance  *int       `json:"edge_distance,omitempty"`
	TotalDistance int        `json:"total_distance"`
}

// Traveled reports whether the step moved along a road
func (s AnimationStep) Traveled() bool {
	return s.EdgeDistance != nil
}

// AnimateSolution replays a solution; failed solutions yield no steps
func AnimateSolution(network Network, solution *Solution) ([]AnimationStep, error) {
	if solution == nil || !solution.Success {
		return []AnimationStep{}, nil
	}
	return Animate(network, solution.Path, solution.RoadIDs)
}

// Animate recomputes fuel along a fixed path and emits the playback log.
// roadIDs selects the road for each hop; when nil the first road joining
// the two cities is used, which may differ from the one the search drove
// if parallel roads exist.
func Animate(network Network, path []int, roadIDs []int) ([]AnimationStep, error) {
	if len(path) == 0 {
		return []AnimationStep{}, nil
	}
	if err := network.Validate(); err != nil {
		return nil, err
	}
	if roadIDs != nil && len(roadIDs) != len(path)-1 {
		return nil, fmt.Errorf("path has %d hops but %d road ids were given", len(path)-1, len(roadIDs))
	}

	graph, err := BuildGraph(network.CityCount, network.Roads)
	if err != nil {
		return nil, err
	}
	stations := network.Stations()

	fuel, err := shared.FullTank(network.FuelCapacity)
	if err != nil {
		return nil, err
	}

	steps := []AnimationStep{{
		City:    path[0],
		Fuel:    fuel.Current,
		Action:  ActionStart,
		Message: fmt.Sprintf("Start at city %d with full fuel", path[0]),
	}}

	total := 0
	for i := 0; i < len(path)-1; i++ {
		from, to := path[i], path[i+1]

		link, err := resolveLink(graph, from, to, roadIDs, i)
		if err != nil {
			return nil, err
		}

		fuel, err = fuel.Consume(link.Distance)
		if err != nil {
			return nil, fmt.Errorf("hop %d-%d: %w", from, to, err)
		}
		total += link.Distance

		roadID, distance := link.RoadID, link.Distance
		steps = append(steps, AnimationStep{
			City:          to,
			Fuel:          fuel.Current,
			Action:        ActionTravel,
			Message:       fmt.Sprintf("Travel from city %d to city %d (%d fuel used)", from, to, distance),
			Edge:          fmt.Sprintf("%d-%d", from, to),
			RoadID:        &roadID,
			EdgeDistance:  &distance,
			TotalDistance: total,
		})

		if stations.Has(to) && i < len(path)-2 {
			fuel = fuel.Refill()
			steps = append(steps, AnimationStep{
				City:          to,
				Fuel:          fuel.Current,
				Action:        ActionRefuel,
				Message:       fmt.Sprintf("Refuel at station %d", to),
				TotalDistance: total,
			})
		}
	}

	last := &steps[len(steps)-1]
	last.Action = ActionFinish
	last.Message = "Arrived at destination!"

	return steps, nil
}

func resolveLink(graph *Graph, from, to int, roadIDs []int, hop int) (Link, error) {
	if roadIDs != nil {
		link, ok := graph.Road(from, to, roadIDs[hop])
		if !ok {
			return Link{}, fmt.Errorf("%w: road %d does not join %d and %d", ErrNoRoad, roadIDs[hop], from, to)
		}
		return link, nil
	}

	link, ok := graph.RoadBetween(from, to)
	if !ok {
		return Link{}, fmt.Errorf("%w: %d-%d", ErrNoRoad, from, to)
	}
	return link, nil
}
