package shared_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

func TestNewFuel_Validation(t *testing.T) {
	_, err := shared.NewFuel(-1, 10)
	assert.Error(t, err)

	_, err = shared.NewFuel(0, 0)
	assert.Error(t, err)

	_, err = shared.NewFuel(11, 10)
	assert.Error(t, err)

	fuel, err := shared.NewFuel(4, 10)
	require.NoError(t, err)
	assert.Equal(t, "Fuel(4/10)", fuel.String())
	assert.InDelta(t, 40.0, fuel.Percentage(), 0.01)
}

func TestFuel_ConsumeAndRefill(t *testing.T) {
	// Arrange
	fuel, err := shared.FullTank(100)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, fuel.Percentage(), 0.01)

	// Act
	after, err := fuel.Consume(80)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 20, after.Current)
	assert.Equal(t, 100, fuel.Current, "consume must not mutate the receiver")

	refilled := after.Refill()
	assert.Equal(t, 100, refilled.Current)
	assert.Equal(t, 100, refilled.Capacity)
}

func TestFuel_ConsumeExactTank(t *testing.T) {
	fuel, err := shared.FullTank(30)
	require.NoError(t, err)

	empty, err := fuel.Consume(30)

	require.NoError(t, err)
	assert.Equal(t, 0, empty.Current)
	assert.Zero(t, empty.Percentage())
	assert.False(t, empty.CanTravel(1))
	assert.True(t, empty.CanTravel(0))
}

func TestFuel_ConsumeTooMuch(t *testing.T) {
	fuel, err := shared.NewFuel(20, 100)
	require.NoError(t, err)

	_, err = fuel.Consume(90)

	var fuelErr *shared.InsufficientFuelError
	require.True(t, errors.As(err, &fuelErr))
	assert.Equal(t, 90, fuelErr.Required)
	assert.Equal(t, 20, fuelErr.Available)
	assert.Equal(t, "insufficient fuel: need 90, have 20", err.Error())
}

func TestConfigError_Message(t *testing.T) {
	err := shared.NewConfigError("roads[2]", "road 1-9 references a city outside [1, 4]")

	assert.Equal(t, "roads[2]", err.Field)
	assert.Equal(t, "invalid configuration: roads[2]: road 1-9 references a city outside [1, 4]", err.Error())
}
