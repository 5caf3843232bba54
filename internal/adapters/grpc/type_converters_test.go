package grpc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	grpcAdapter "github.com/andrescamacho/fuelroute-go/internal/adapters/grpc"
	domainRouting "github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

func TestRouteRequest_RoundTrip(t *testing.T) {
	request := &domainRouting.RouteRequest{Network: domainRouting.DemoNetwork(), IncludeSteps: true}

	encoded, err := grpcAdapter.RouteRequestToStruct(request)
	require.NoError(t, err)
	decoded, err := grpcAdapter.RouteRequestFromStruct(encoded)

	require.NoError(t, err)
	assert.Equal(t, request, decoded)
}

func TestRouteRequestFromStruct_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "missing network", body: map[string]interface{}{}},
		{name: "missing capacity", body: map[string]interface{}{
			"network": map[string]interface{}{"city_count": 2},
		}},
		{name: "fractional road distance", body: map[string]interface{}{
			"network": map[string]interface{}{
				"city_count":    2,
				"fuel_capacity": 5,
				"roads":         []interface{}{map[string]interface{}{"from": 1, "to": 2, "distance": 1.5}},
			},
		}},
		{name: "station is text", body: map[string]interface{}{
			"network": map[string]interface{}{
				"city_count":    2,
				"fuel_capacity": 5,
				"fuel_stations": []interface{}{"two"},
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := structpb.NewStruct(tt.body)
			require.NoError(t, err)

			_, err = grpcAdapter.RouteRequestFromStruct(in)

			assert.Error(t, err)
		})
	}
}

func TestRouteResponse_RoundTripKeepsRoadFields(t *testing.T) {
	network := domainRouting.DemoNetwork()
	solution, err := domainRouting.Solve(network)
	require.NoError(t, err)
	steps, err := domainRouting.AnimateSolution(network, solution)
	require.NoError(t, err)

	encoded, err := grpcAdapter.RouteResponseToStruct(&domainRouting.RouteResponse{Solution: solution, Steps: steps})
	require.NoError(t, err)
	decoded, err := grpcAdapter.RouteResponseFromStruct(encoded)

	require.NoError(t, err)
	assert.Equal(t, solution, decoded.Solution)
	assert.Equal(t, steps, decoded.Steps)
	assert.False(t, decoded.Steps[0].Traveled())
	assert.Nil(t, decoded.Steps[2].RoadID)
}
