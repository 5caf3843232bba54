package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
	"github.com/andrescamacho/fuelroute-go/internal/domain/shared"
)

// GormNetworkRepository implements NetworkRepository using GORM
type GormNetworkRepository struct {
	db *gorm.DB
}

// NewGormNetworkRepository creates a new GORM network repository
func NewGormNetworkRepository(db *gorm.DB) *GormNetworkRepository {
	return &GormNetworkRepository{db: db}
}

// Save upserts a network by name and fills in its persisted ID and timestamps
func (r *GormNetworkRepository) Save(ctx context.Context, network *routing.NamedNetwork) error {
	if network.Name == "" {
		return shared.NewValidationError("name", "network name is required")
	}

	model, err := r.networkToModel(network)
	if err != nil {
		return fmt.Errorf("failed to convert network to model: %w", err)
	}

	// Upsert: keep the original id and created_at on conflict
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"city_count", "fuel_capacity", "roads", "fuel_stations", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save network: %w", err)
	}

	stored, err := r.FindByName(ctx, network.Name)
	if err != nil {
		return err
	}

	network.ID = stored.ID
	network.CreatedAt = stored.CreatedAt
	network.UpdatedAt = stored.UpdatedAt
	return nil
}

// FindByName retrieves a network by its unique name
func (r *GormNetworkRepository) FindByName(ctx context.Context, name string) (*routing.NamedNetwork, error) {
	var model NetworkModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("network", name)
		}
		return nil, fmt.Errorf("failed to find network: %w", result.Error)
	}

	return r.modelToNetwork(&model)
}

// List retrieves every stored network ordered by name
func (r *GormNetworkRepository) List(ctx context.Context) ([]*routing.NamedNetwork, error) {
	var models []NetworkModel
	result := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list networks: %w", result.Error)
	}

	networks := make([]*routing.NamedNetwork, 0, len(models))
	for i := range models {
		network, err := r.modelToNetwork(&models[i])
		if err != nil {
			return nil, err
		}
		networks = append(networks, network)
	}

	return networks, nil
}

// Delete removes a network and its solve history
func (r *GormNetworkRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model NetworkModel
		if err := tx.Where("name = ?", name).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.NewNotFoundError("network", name)
			}
			return fmt.Errorf("failed to find network: %w", err)
		}

		if err := tx.Where("network_id = ?", model.ID).Delete(&SolveRecordModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete solve records: %w", err)
		}
		if err := tx.Delete(&model).Error; err != nil {
			return fmt.Errorf("failed to delete network: %w", err)
		}
		return nil
	})
}

func (r *GormNetworkRepository) networkToModel(network *routing.NamedNetwork) (*NetworkModel, error) {
	roads := network.Network.Roads
	if roads == nil {
		roads = []routing.Road{}
	}
	roadsJSON, err := json.Marshal(roads)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roads: %w", err)
	}

	stations := network.Network.FuelStations
	if stations == nil {
		stations = []int{}
	}
	stationsJSON, err := json.Marshal(stations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fuel stations: %w", err)
	}

	now := time.Now().UTC()
	return &NetworkModel{
		ID:           uuid.New().String(),
		Name:         network.Name,
		CityCount:    network.Network.CityCount,
		FuelCapacity: network.Network.FuelCapacity,
		Roads:        string(roadsJSON),
		FuelStations: string(stationsJSON),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (r *GormNetworkRepository) modelToNetwork(model *NetworkModel) (*routing.NamedNetwork, error) {
	var roads []routing.Road
	if err := json.Unmarshal([]byte(model.Roads), &roads); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roads of %s: %w", model.Name, err)
	}

	var stations []int
	if err := json.Unmarshal([]byte(model.FuelStations), &stations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fuel stations of %s: %w", model.Name, err)
	}

	return &routing.NamedNetwork{
		ID:   model.ID,
		Name: model.Name,
		Network: routing.Network{
			CityCount:    model.CityCount,
			FuelCapacity: model.FuelCapacity,
			Roads:        roads,
			FuelStations: stations,
		},
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}
