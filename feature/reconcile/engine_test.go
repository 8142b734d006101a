package reconcile_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"connector-inventory/core/database"
	"connector-inventory/feature/inventory"
	"connector-inventory/feature/reconcile"
	"connector-inventory/feature/telemetry"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&inventory.ChargingStation{}, &inventory.ChargingPoint{}); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	return db
}

func seedStation(t *testing.T, db *gorm.DB, id int64, name, code string, points int) {
	t.Helper()
	now := time.Now()
	if err := db.Create(&inventory.ChargingStation{ID: id, Name: name, StationID: code, Created: &now}).Error; err != nil {
		t.Fatalf("Failed to seed station: %v", err)
	}
	for pos := 1; pos <= points; pos++ {
		point := inventory.ChargingPoint{
			ID:        id*1000 + int64(pos),
			Name:      name,
			PointID:   uint(pos),
			StationID: code,
			Created:   &now,
		}
		if err := db.Create(&point).Error; err != nil {
			t.Fatalf("Failed to seed point: %v", err)
		}
	}
}

func pointCount(t *testing.T, repo *inventory.Repository, code string) int {
	t.Helper()
	points, err := repo.PointsByStation(context.Background(), code)
	if err != nil {
		t.Fatalf("Failed to count points: %v", err)
	}
	return len(points)
}

func TestRun_EndToEnd(t *testing.T) {
	db := setupDB(t)
	repo := inventory.NewRepository(db)
	engine := reconcile.New(repo, zap.NewNop())

	seedStation(t, db, 1, "Garage", "X1", 1)
	seedStation(t, db, 2, "Depot", "X2", 3)

	// Two topics reported X1, one with a stale lower count.
	observations := telemetry.Dedupe([]telemetry.Observation{
		{DeviceID: "X1", Connectors: 1},
		{DeviceID: "X1", Connectors: 2},
		{DeviceID: "X2", Connectors: 3},
	})
	assert.Equal(t, []telemetry.Observation{{DeviceID: "X1", Connectors: 2}, {DeviceID: "X2", Connectors: 3}}, observations)

	summary, err := engine.Run(context.Background(), observations, reconcile.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.DevicesProcessed)
	assert.Equal(t, 1, summary.ConnectorsCreated)
	assert.Empty(t, summary.UnmatchedDevices)
	assert.NotEmpty(t, summary.RunID)

	assert.Equal(t, 2, pointCount(t, repo, "X1"))
	assert.Equal(t, 3, pointCount(t, repo, "X2"))

	points, err := repo.PointsByStation(context.Background(), "X1")
	assert.NoError(t, err)
	assert.Equal(t, uint(2), points[1].PointID, "new point extends the range")
	assert.Equal(t, "Garage", points[1].Name)
}

func TestRun_Idempotent(t *testing.T) {
	db := setupDB(t)
	repo := inventory.NewRepository(db)
	engine := reconcile.New(repo, zap.NewNop())

	seedStation(t, db, 1, "Garage", "X1", 1)
	observations := []telemetry.Observation{{DeviceID: "X1", Connectors: 4}}

	first, err := engine.Run(context.Background(), observations, reconcile.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 3, first.ConnectorsCreated)

	second, err := engine.Run(context.Background(), observations, reconcile.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 0, second.ConnectorsCreated)
	assert.Equal(t, 4, pointCount(t, repo, "X1"))
}

func TestRun_UnmatchedDevice(t *testing.T) {
	db := setupDB(t)
	repo := inventory.NewRepository(db)
	engine := reconcile.New(repo, zap.NewNop())

	seedStation(t, db, 1, "Garage", "X1", 2)
	observations := []telemetry.Observation{
		{DeviceID: "UNKNOWN-1", Connectors: 2},
		{DeviceID: "X1", Connectors: 2},
	}

	summary, err := engine.Run(context.Background(), observations, reconcile.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.DevicesProcessed)
	assert.Equal(t, 0, summary.ConnectorsCreated)
	assert.Equal(t, []string{"UNKNOWN-1"}, summary.UnmatchedDevices)
}

func TestRun_GrowthOnly(t *testing.T) {
	db := setupDB(t)
	repo := inventory.NewRepository(db)
	engine := reconcile.New(repo, zap.NewNop())

	seedStation(t, db, 1, "Garage", "X1", 5)
	observations := []telemetry.Observation{{DeviceID: "X1", Connectors: 2}}

	summary, err := engine.Run(context.Background(), observations, reconcile.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.ConnectorsCreated)
	assert.Equal(t, 5, pointCount(t, repo, "X1"), "shrinkage must not delete points")
}

func TestRun_DeviceFilter(t *testing.T) {
	db := setupDB(t)
	repo := inventory.NewRepository(db)
	engine := reconcile.New(repo, zap.NewNop())

	seedStation(t, db, 1, "Garage", "X1", 1)
	seedStation(t, db, 2, "Depot", "X2", 1)
	observations := []telemetry.Observation{
		{DeviceID: "X1", Connectors: 2},
		{DeviceID: "X2", Connectors: 3},
	}

	summary, err := engine.Run(context.Background(), observations, reconcile.Options{DeviceFilter: "X2"})
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.ConnectorsCreated)
	assert.Equal(t, []string{"X1"}, summary.SkippedDevices)
	assert.Equal(t, 1, pointCount(t, repo, "X1"), "filtered device must not be repaired")
	assert.Equal(t, 3, pointCount(t, repo, "X2"))
}

func TestRun_DryRun(t *testing.T) {
	db := setupDB(t)
	repo := inventory.NewRepository(db)
	engine := reconcile.New(repo, zap.NewNop())

	seedStation(t, db, 1, "Garage", "X1", 1)
	observations := []telemetry.Observation{{DeviceID: "X1", Connectors: 3}}

	summary, err := engine.Run(context.Background(), observations, reconcile.Options{DryRun: true})
	assert.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 2, summary.ConnectorsCreated, "dry run still reports what it would create")
	assert.Equal(t, 1, pointCount(t, repo, "X1"), "dry run must not persist anything")
}

func TestRun_RollsBackWholeRunOnFault(t *testing.T) {
	db := setupDB(t)
	repo := inventory.NewRepository(db)
	engine := reconcile.New(repo, zap.NewNop())

	seedStation(t, db, 1, "Alpha", "A1", 1)
	seedStation(t, db, 2, "Bravo", "B1", 1)
	seedStation(t, db, 3, "Charlie", "C1", 1)

	// A soft-deleted row still occupies the (station_id, point_id) unique
	// slot, so creating position 2 for B1 hits a constraint violation.
	now := time.Now()
	assert.NoError(t, db.Create(&inventory.ChargingPoint{
		ID: 999999, Name: "Bravo", PointID: 2, StationID: "B1", Deleted: &now,
	}).Error)

	observations := []telemetry.Observation{
		{DeviceID: "A1", Connectors: 2},
		{DeviceID: "B1", Connectors: 2},
		{DeviceID: "C1", Connectors: 2},
	}

	summary, err := engine.Run(context.Background(), observations, reconcile.Options{})
	assert.Error(t, err)
	assert.Nil(t, summary)

	// Nothing from any device survives, including A1 which was processed
	// successfully before the fault.
	assert.Equal(t, 1, pointCount(t, repo, "A1"))
	assert.Equal(t, 1, pointCount(t, repo, "B1"))
	assert.Equal(t, 1, pointCount(t, repo, "C1"))
}
