package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/test/helpers"
)

func TestSolveRecordRepository_AddAndList(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSolveRecordRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Add(ctx, &routing.SolveRecord{
			NetworkID:      "net-1",
			Success:        true,
			Distance:       170 + i,
			Path:           []int{1, 2, 4},
			StatesExplored: 4,
			Duration:       time.Duration(i+1) * time.Millisecond,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Add(ctx, &routing.SolveRecord{NetworkID: "net-2", Distance: -1}))

	// Act
	records, err := repo.ListByNetwork(ctx, "net-1", 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 172, records[0].Distance)
	assert.Equal(t, 171, records[1].Distance)
	assert.Equal(t, []int{1, 2, 4}, records[0].Path)
	assert.Equal(t, 3*time.Millisecond, records[0].Duration)
	assert.NotEmpty(t, records[0].ID)
}

func TestSolveRecordRepository_FailedSolveHasEmptyPath(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSolveRecordRepository(db)
	ctx := context.Background()

	record := &routing.SolveRecord{NetworkID: "net-1", Success: false, Distance: -1, StatesExplored: 1}
	require.NoError(t, repo.Add(ctx, record))

	records, err := repo.ListByNetwork(ctx, "net-1", 0)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
	assert.Equal(t, -1, records[0].Distance)
	assert.Empty(t, records[0].Path)
	assert.False(t, record.CreatedAt.IsZero())
}
