package routing

import (
	"fmt"

	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

// Link is one directed adjacency entry. RoadID is the index of the
// originating road in the input list, shared by both directions.
type Link struct {
	To       int
	Distance int
	RoadID   int
}

// Graph is the adjacency representation of a road network
type Graph struct {
	cityCount int
	adj       [][]Link
}

// BuildGraph creates the adjacency lists for cities 1..cityCount.
// Every road yields two links; parallel roads are kept as separate options.
func BuildGraph(cityCount int, roads []Road) (*Graph, error) {
	if cityCount < 1 {
		return nil, shared.NewConfigError("city_count", fmt.Sprintf("must be positive, got %d", cityCount))
	}

	adj := make([][]Link, cityCount+1)
	for i, road := range roads {
		if road.From < 1 || road.From > cityCount || road.To < 1 || road.To > cityCount {
			return nil, shared.NewConfigError(
				fmt.Sprintf("roads[%d]", i),
				fmt.Sprintf("road %d-%d references a city outside [1, %d]", road.From, road.To, cityCount),
			)
		}
		adj[road.From] = append(adj[road.From], Link{To: road.To, Distance: road.Distance, RoadID: i})
		adj[road.To] = append(adj[road.To], Link{To: road.From, Distance: road.Distance, RoadID: i})
	}

	return &Graph{cityCount: cityCount, adj: adj}, nil
}

// Adjacent returns the links leaving a city, in road input order
func (g *Graph) Adjacent(city int) []Link {
	if city < 1 || city > g.cityCount {
		return nil
	}
	return g.adj[city]
}

// RoadBetween returns the first link from one city to another
func (g *Graph) RoadBetween(from, to int) (Link, bool) {
	for _, link := range g.Adjacent(from) {
		if link.To == to {
			return link, true
		}
	}
	return Link{}, false
}

// Road returns the link from a city along a specific road
func (g *Graph) Road(from, to, roadID int) (Link, bool) {
	for _, link := range g.Adjacent(from) {
		if link.To == to && link.RoadID == roadID {
			return link, true
		}
	}
	return Link{}, false
}
