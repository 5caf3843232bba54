package persistence

import (
	"time"
)

// NetworkModel represents the networks table
type NetworkModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name;uniqueIndex;not null"`
	CityCount    int       `gorm:"column:city_count;not null"`
	FuelCapacity int       `gorm:"column:fuel_capacity;not null"`
	Roads        string    `gorm:"column:roads;type:text;not null"`         // JSON array as text
	FuelStations string    `gorm:"column:fuel_stations;type:text;not null"` // JSON array as text
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (NetworkModel) TableName() string {
	return "networks"
}

// SolveRecordModel represents the solve_records table
type SolveRecordModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	NetworkID      string    `gorm:"column:network_id;index;not null"`
	Success        bool      `gorm:"column:success;not null"`
	Distance       int       `gorm:"column:distance;not null"`
	Path           string    `gorm:"column:path;type:text"` // JSON array as text
	StatesExplored int       `gorm:"column:states_explored;not null;default:0"`
	DurationMs     int64     `gorm:"column:duration_ms;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index"`
}

func (SolveRecordModel) TableName() string {
	return "solve_records"
}
