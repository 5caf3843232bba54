package grpc

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// Wire layout of the PlanRoute messages.
//
// Request:
//
//	{"network": {"city_count": 4, "fuel_capacity": 100,
//	             "roads": [{"from": 1, "to": 2, "distance": 80}, ...],
//	             "fuel_stations": [2, 3]},
//	 "include_steps": true}
//
// Response:
//
//	{"success": true, "distance": 170, "path": [1, 2, 4], "road_ids": [0, 4],
//	 "states_explored": 4, "steps": [{"city": 1, "fuel": 100, "action": "start", ...}]}

// RouteRequestToStruct converts a domain request to its wire form
func RouteRequestToStruct(request *routing.RouteRequest) (*structpb.Struct, error) {
	network := request.Network

	roads := make([]interface{}, len(network.Roads))
	for i, road := range network.Roads {
		roads[i] = map[string]interface{}{
			"from":     road.From,
			"to":       road.To,
			"distance": road.Distance,
		}
	}

	return structpb.NewStruct(map[string]interface{}{
		"network": map[string]interface{}{
			"city_count":    network.CityCount,
			"fuel_capacity": network.FuelCapacity,
			"roads":         roads,
			"fuel_stations": intsToList(network.FuelStations),
		},
		"include_steps": request.IncludeSteps,
	})
}

// RouteRequestFromStruct parses the wire form of a request
func RouteRequestFromStruct(s *structpb.Struct) (*routing.RouteRequest, error) {
	fields := s.GetFields()

	networkValue, ok := fields["network"]
	if !ok || networkValue.GetStructValue() == nil {
		return nil, fmt.Errorf("request.network: missing object")
	}
	networkFields := networkValue.GetStructValue().GetFields()

	cityCount, err := intField(networkFields, "city_count")
	if err != nil {
		return nil, err
	}
	capacity, err := intField(networkFields, "fuel_capacity")
	if err != nil {
		return nil, err
	}

	var roads []routing.Road
	for i, value := range networkFields["roads"].GetListValue().GetValues() {
		roadFields := value.GetStructValue().GetFields()
		if roadFields == nil {
			return nil, fmt.Errorf("roads[%d]: expected object", i)
		}
		from, err := intField(roadFields, "from")
		if err != nil {
			return nil, fmt.Errorf("roads[%d]: %w", i, err)
		}
		to, err := intField(roadFields, "to")
		if err != nil {
			return nil, fmt.Errorf("roads[%d]: %w", i, err)
		}
		distance, err := intField(roadFields, "distance")
		if err != nil {
			return nil, fmt.Errorf("roads[%d]: %w", i, err)
		}
		roads = append(roads, routing.Road{From: from, To: to, Distance: distance})
	}

	stations, err := intList(networkFields["fuel_stations"], "fuel_stations")
	if err != nil {
		return nil, err
	}

	return &routing.RouteRequest{
		Network: routing.Network{
			CityCount:    cityCount,
			FuelCapacity: capacity,
			Roads:        roads,
			FuelStations: stations,
		},
		IncludeSteps: fields["include_steps"].GetBoolValue(),
	}, nil
}

// RouteResponseToStruct converts a domain response to its wire form
func RouteResponseToStruct(response *routing.RouteResponse) (*structpb.Struct, error) {
	solution := response.Solution

	steps := make([]interface{}, len(response.Steps))
	for i, step := range response.Steps {
		fields := map[string]interface{}{
			"city":           step.City,
			"fuel":           step.Fuel,
			"action":         string(step.Action),
			"message":        step.Message,
			"total_distance": step.TotalDistance,
		}
		if step.Traveled() {
			fields["edge"] = step.Edge
			fields["edge_distance"] = *step.EdgeDistance
			fields["road_id"] = *step.RoadID
		}
		steps[i] = fields
	}

	return structpb.NewStruct(map[string]interface{}{
		"success":         solution.Success,
		"distance":        solution.Distance,
		"path":            intsToList(solution.Path),
		"road_ids":        intsToList(solution.RoadIDs),
		"states_explored": solution.StatesExplored,
		"steps":           steps,
	})
}

// RouteResponseFromStruct parses the wire form of a response
func RouteResponseFromStruct(s *structpb.Struct) (*routing.RouteResponse, error) {
	fields := s.GetFields()

	distance, err := intField(fields, "distance")
	if err != nil {
		return nil, err
	}
	explored, err := intField(fields, "states_explored")
	if err != nil {
		return nil, err
	}
	path, err := intList(fields["path"], "path")
	if err != nil {
		return nil, err
	}
	roadIDs, err := intList(fields["road_ids"], "road_ids")
	if err != nil {
		return nil, err
	}

	steps := []routing.AnimationStep{}
	for i, value := range fields["steps"].GetListValue().GetValues() {
		step, err := stepFromStruct(value.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		steps = append(steps, step)
	}

	return &routing.RouteResponse{
		Solution: &routing.Solution{
			Success:        fields["success"].GetBoolValue(),
			Distance:       distance,
			Path:           path,
			RoadIDs:        roadIDs,
			StatesExplored: explored,
		},
		Steps: steps,
	}, nil
}

func stepFromStruct(s *structpb.Struct) (routing.AnimationStep, error) {
	fields := s.GetFields()
	if fields == nil {
		return routing.AnimationStep{}, fmt.Errorf("expected object")
	}

	city, err := intField(fields, "city")
	if err != nil {
		return routing.AnimationStep{}, err
	}
	fuel, err := intField(fields, "fuel")
	if err != nil {
		return routing.AnimationStep{}, err
	}
	total, err := intField(fields, "total_distance")
	if err != nil {
		return routing.AnimationStep{}, err
	}

	step := routing.AnimationStep{
		City:          city,
		Fuel:          fuel,
		Action:        routing.StepAction(fields["action"].GetStringValue()),
		Message:       fields["message"].GetStringValue(),
		TotalDistance: total,
	}

	if _, ok := fields["edge_distance"]; ok {
		edgeDistance, err := intField(fields, "edge_distance")
		if err != nil {
			return routing.AnimationStep{}, err
		}
		roadID, err := intField(fields, "road_id")
		if err != nil {
			return routing.AnimationStep{}, err
		}
		step.Edge = fields["edge"].GetStringValue()
		step.EdgeDistance = &edgeDistance
		step.RoadID = &roadID
	}

	return step, nil
}

// intField reads an integral number; Struct carries every number as a double
func intField(fields map[string]*structpb.Value, key string) (int, error) {
	value, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%s: missing", key)
	}
	number, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s: expected number", key)
	}
	return toInt(number.NumberValue, key)
}

func intList(value *structpb.Value, key string) ([]int, error) {
	values := value.GetListValue().GetValues()
	out := make([]int, 0, len(values))
	for i, v := range values {
		number, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected number", key, i)
		}
		n, err := toInt(number.NumberValue, fmt.Sprintf("%s[%d]", key, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func toInt(f float64, key string) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%s: %v is not an integer", key, f)
	}
	return int(f), nil
}

func intsToList(xs []int) []interface{} {
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
