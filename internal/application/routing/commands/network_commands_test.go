package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelroute-go/internal/application/routing/commands"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

func TestSaveNetwork_CreatesThenUpdates(t *testing.T) {
	// Arrange
	f := newFixture(t)
	handler := commands.NewSaveNetworkHandler(f.networkRepo)
	ctx := context.Background()

	// Act
	first, err := handler.Handle(ctx, &commands.SaveNetworkCommand{Name: "  demo ", Network: routing.DemoNetwork()})
	require.NoError(t, err)

	changed := routing.DemoNetwork()
	changed.FuelCapacity = 150
	second, err := handler.Handle(ctx, &commands.SaveNetworkCommand{Name: "demo", Network: changed})
	require.NoError(t, err)

	// Assert
	created := first.(*commands.SaveNetworkResponse)
	updated := second.(*commands.SaveNetworkResponse)
	assert.Equal(t, "demo", created.Name)
	assert.True(t, created.Created)
	assert.False(t, updated.Created)
	assert.Equal(t, created.ID, updated.ID)

	stored, err := f.networkRepo.FindByName(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, 150, stored.Network.FuelCapacity)
}

func TestSaveNetwork_Rejects(t *testing.T) {
	f := newFixture(t)
	handler := commands.NewSaveNetworkHandler(f.networkRepo)

	t.Run("blank name", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), &commands.SaveNetworkCommand{Name: "   ", Network: routing.DemoNetwork()})

		var validationErr *shared.ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})

	t.Run("invalid network", func(t *testing.T) {
		bad := routing.DemoNetwork()
		bad.FuelStations = []int{9}

		_, err := handler.Handle(context.Background(), &commands.SaveNetworkCommand{Name: "bad", Network: bad})

		var cfgErr *shared.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "fuel_stations[0]", cfgErr.Field)
	})
}

func TestDeleteNetwork(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.storeDemo(t, "demo")
	handler := commands.NewDeleteNetworkHandler(f.networkRepo)

	// Act
	response, err := handler.Handle(context.Background(), &commands.DeleteNetworkCommand{Name: "demo"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "demo", response.(*commands.DeleteNetworkResponse).Name)

	_, err = handler.Handle(context.Background(), &commands.DeleteNetworkCommand{Name: "demo"})
	var notFound *shared.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
