package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/fuelroute-go/internal/domain/routing"
)

// GormSolveRecordRepository implements SolveRecordRepository using GORM
type GormSolveRecordRepository struct {
	db *gorm.DB
}

// NewGormSolveRecordRepository creates a new GORM solve record repository
func NewGormSolveRecordRepository(db *gorm.DB) *GormSolveRecordRepository {
	return &GormSolveRecordRepository{db: db}
}

// Add appends a solve to the history, assigning an ID and timestamp when missing
func (r *GormSolveRecordRepository) Add(ctx context.Context, record *routing.SolveRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	path := record.Path
	if path == nil {
		path = []int{}
	}
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("failed to marshal path: %w", err)
	}

	model := &SolveRecordModel{
		ID:             record.ID,
		NetworkID:      record.NetworkID,
		Success:        record.Success,
		Distance:       record.Distance,
		Path:           string(pathJSON),
		StatesExplored: record.StatesExplored,
		DurationMs:     record.Duration.Milliseconds(),
		CreatedAt:      record.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add solve record: %w", err)
	}
	return nil
}

// ListByNetwork returns the most recent solves of a network, newest first.
// A non-positive limit returns every record.
func (r *GormSolveRecordRepository) ListByNetwork(ctx context.Context, networkID string, limit int) ([]*routing.SolveRecord, error) {
	query := r.db.WithContext(ctx).
		Where("network_id = ?", networkID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []SolveRecordModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list solve records: %w", err)
	}

	records := make([]*routing.SolveRecord, 0, len(models))
	for _, model := range models {
		var path []int
		if model.Path != "" {
			if err := json.Unmarshal([]byte(model.Path), &path); err != nil {
				return nil, fmt.Errorf("failed to unmarshal path of record %s: %w", model.ID, err)
			}
		}

		records = append(records, &routing.SolveRecord{
			ID:             model.ID,
			NetworkID:      model.NetworkID,
			Success:        model.Success,
			Distance:       model.Distance,
			Path:           path,
			StatesExplored: model.StatesExplored,
			Duration:       time.Duration(model.DurationMs) * time.Millisecond,
			CreatedAt:      model.CreatedAt,
		})
	}

	return records, nil
}
