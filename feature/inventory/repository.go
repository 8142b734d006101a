package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Repository is the read/write facade over the station and charging-point
// tables.
type Repository struct {
	db  *gorm.DB
	ids *idGenerator
	now func() time.Time
}

// NewRepository creates a repository over an open GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, ids: newIDGenerator(), now: time.Now}
}

// Stations returns all non-deleted stations with their non-deleted charging
// points preloaded.
func (r *Repository) Stations(ctx context.Context) ([]ChargingStation, error) {
	var stations []ChargingStation
	err := r.db.WithContext(ctx).
		Preload("ChargingPoints", "deleted IS NULL").
		Where("deleted IS NULL").
		Find(&stations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch charging stations: %w", err)
	}
	return stations, nil
}

// normalizeCode strips the hyphens some devices include in their identifier
// while the stored station code does not (or vice versa).
func normalizeCode(code string) string {
	return strings.ReplaceAll(code, "-", "")
}

// StationByCode looks a station up by its external code: first by exact
// match, then with hyphens stripped from both sides. It returns nil without
// an error when no station matches. Ambiguous matches are not expected;
// the first row wins.
func (r *Repository) StationByCode(ctx context.Context, code string) (*ChargingStation, error) {
	var station ChargingStation
	err := r.db.WithContext(ctx).
		Where("(station_id = ? OR REPLACE(station_id, '-', '') = ?) AND deleted IS NULL",
			code, normalizeCode(code)).
		First(&station).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch charging station %s: %w", code, err)
	}
	return &station, nil
}

// PointsByStation returns the non-deleted charging points of a station,
// ordered by position.
func (r *Repository) PointsByStation(ctx context.Context, stationCode string) ([]ChargingPoint, error) {
	var points []ChargingPoint
	err := r.db.WithContext(ctx).
		Where("station_id = ? AND deleted IS NULL", stationCode).
		Order("point_id").
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch charging points for station %s: %w", stationCode, err)
	}
	return points, nil
}

// CreatePoints inserts the charging points a station is missing: positions
// oldTotal+1 through newTotal, each with a fresh id, the station's name and
// current timestamps. It is a no-op when newTotal <= oldTotal.
// The writes go through this repository's connection, so inside
// Transaction they stay pending until the transaction commits.
func (r *Repository) CreatePoints(ctx context.Context, station *ChargingStation, newTotal, oldTotal int) ([]ChargingPoint, error) {
	if newTotal <= oldTotal {
		return nil, nil
	}

	now := r.now()
	points := make([]ChargingPoint, 0, newTotal-oldTotal)
	for position := oldTotal + 1; position <= newTotal; position++ {
		points = append(points, ChargingPoint{
			ID:        r.ids.next(),
			Name:      station.Name,
			PointID:   uint(position),
			StationID: station.StationID,
			Created:   &now,
			Updated:   &now,
		})
	}

	if err := r.db.WithContext(ctx).Create(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to create charging points for station %s: %w", station.StationID, err)
	}
	return points, nil
}

// Transaction runs fn against a repository bound to a single database
// transaction. Any error from fn rolls the whole transaction back.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx, ids: r.ids, now: r.now})
	})
}
