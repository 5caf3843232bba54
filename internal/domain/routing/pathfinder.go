package routing

import (
	"container/heap"
	"errors"
)

// ErrSearchBudgetExceeded is returned when a Pathfinder configured with
// WithMaxStates settles more (city, fuel) states than allowed.
var ErrSearchBudgetExceeded = errors.New("routing: search state budget exceeded")

// Solution is the outcome of a solve. A failed solve is not an error:
// Success is false, Distance is -1 and Path is empty.
type Solution struct {
	Success  bool
	Distance int
	Path     []int
	// RoadIDs[i] is the road driven between Path[i] and Path[i+1]
	RoadIDs []int
	// StatesExplored counts the distinct (city, fuel) states settled
	StatesExplored int
}

// NoRoute returns the failed solution
func NoRoute(explored int) *Solution {
	return &Solution{
		Success:        false,
		Distance:       -1,
		Path:           []int{},
		RoadIDs:        []int{},
		StatesExplored: explored,
	}
}

// RefuelStops counts intermediate cities on the path that refill the tank
func (s *Solution) RefuelStops(stations StationSet) int {
	stops := 0
	for i := 1; i < len(s.Path)-1; i++ {
		if stations.Has(s.Path[i]) {
			stops++
		}
	}
	return stops
}

// Option configures a Pathfinder
type Option func(*Pathfinder)

// WithMaxStates caps the number of settled states. Zero means unbounded.
func WithMaxStates(n int) Option {
	return func(p *Pathfinder) {
		p.maxStates = n
	}
}

// Pathfinder runs Dijkstra over (city, remaining fuel) states.
// It holds no per-solve state and is safe for concurrent use.
type Pathfinder struct {
	maxStates int
}

// NewPathfinder creates a pathfinder
func NewPathfinder(opts ...Option) *Pathfinder {
	p := &Pathfinder{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Solve finds the shortest fuel-feasible route with default options
func Solve(network Network) (*Solution, error) {
	return NewPathfinder().Solve(network)
}

// Solve finds the minimum-distance route from city 1 to city N such that
// no road is longer than the fuel held when it is entered.
func (p *Pathfinder) Solve(network Network) (*Solution, error) {
	if err := network.Validate(); err != nil {
		return nil, err
	}

	graph, err := BuildGraph(network.CityCount, network.Roads)
	if err != nil {
		return nil, err
	}

	s := &search{
		graph:    graph,
		stations: network.Stations(),
		capacity: network.FuelCapacity,
		goal:     network.Goal(),
		visited:  make(map[stateKey]struct{}),
	}
	return s.run(p.maxStates)
}

// stateKey identifies a search position; the path taken is not part of it
type stateKey struct {
	city int
	fuel int
}

// pathRecord is one arena entry of the parent-pointer path chain
type pathRecord struct {
	city   int
	roadID int
	parent int
}

type searchState struct {
	distance int
	city     int
	fuel     int
	record   int
}

type search struct {
	graph    *Graph
	stations StationSet
	capacity int
	goal     int

	queue   stateQueue
	visited map[stateKey]struct{}
	arena   []pathRecord
}

func (s *search) run(maxStates int) (*Solution, error) {
	s.arena = append(s.arena, pathRecord{city: StartCity, roadID: -1, parent: -1})
	heap.Push(&s.queue, searchState{distance: 0, city: StartCity, fuel: s.capacity, record: 0})

	for s.queue.Len() > 0 {
		current := heap.Pop(&s.queue).(searchState)

		key := stateKey{city: current.city, fuel: current.fuel}
		if _, seen := s.visited[key]; seen {
			continue
		}
		s.visited[key] = struct{}{}

		if maxStates > 0 && len(s.visited) > maxStates {
			return nil, ErrSearchBudgetExceeded
		}

		if current.city == s.goal {
			return s.solution(current), nil
		}

		s.expand(current)
	}

	return NoRoute(len(s.visited)), nil
}

func (s *search) expand(current searchState) {
	for _, link := range s.graph.Adjacent(current.city) {
		if link.Distance > current.fuel {
			continue
		}

		fuel := current.fuel - link.Distance
		if s.stations.Has(link.To) {
			fuel = s.capacity
		}

		if _, seen := s.visited[stateKey{city: link.To, fuel: fuel}]; seen {
			continue
		}

		s.arena = append(s.arena, pathRecord{city: link.To, roadID: link.RoadID, parent: current.record})
		heap.Push(&s.queue, searchState{
			distance: current.distance + link.Distance,
			city:     link.To,
			fuel:     fuel,
			record:   len(s.arena) - 1,
		})
	}
}

func (s *search) solution(final searchState) *Solution {
	var path, roads []int
	for i := final.record; i >= 0; i = s.arena[i].parent {
		path = append(path, s.arena[i].city)
		if s.arena[i].roadID >= 0 {
			roads = append(roads, s.arena[i].roadID)
		}
	}
	reverse(path)
	reverse(roads)
	if roads == nil {
		roads = []int{}
	}

	return &Solution{
		Success:        true,
		Distance:       final.distance,
		Path:           path,
		RoadIDs:        roads,
		StatesExplored: len(s.visited),
	}
}

func reverse(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// stateQueue is a min-heap of search states ordered by accumulated distance
type stateQueue []searchState

func (q stateQueue) Len() int           { return len(q) }
func (q stateQueue) Less(i, j int) bool { return q[i].distance < q[j].distance }
func (q stateQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *stateQueue) Push(x any) {
	*q = append(*q, x.(searchState))
}

func (q *stateQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
