package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connector-inventory/feature/inventory"
	"connector-inventory/feature/telemetry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errDryRun forces the transaction to roll back after a dry-run pass.
var errDryRun = errors.New("dry run")

// Engine diffs observed connector counts against the stored inventory and
// creates the missing charging points.
type Engine struct {
	inv *inventory.Repository
	log *zap.Logger
}

// New creates an engine over the inventory repository.
func New(inv *inventory.Repository, log *zap.Logger) *Engine {
	return &Engine{inv: inv, log: log}
}

// Run reconciles one batch of deduplicated observations inside a single
// transaction. Devices are processed sequentially in the given order; a
// storage fault anywhere rolls back everything, so a run either repairs the
// inventory completely or leaves it untouched.
//
// Devices with no matching station are collected into the summary, not
// treated as errors. Stations holding more points than reported are left
// alone: the engine only grows inventory.
func (e *Engine) Run(ctx context.Context, observations []telemetry.Observation, opts Options) (*Summary, error) {
	summary := &Summary{
		RunID:            uuid.NewString(),
		StartedAt:        time.Now(),
		UnmatchedDevices: []string{},
		SkippedDevices:   []string{},
		DryRun:           opts.DryRun,
	}
	log := e.log.With(zap.String("run_id", summary.RunID))

	stations, err := e.inv.Stations(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("loaded station inventory",
		zap.Int("stations", len(stations)),
		zap.Int("devices", len(observations)))
	if opts.DeviceFilter != "" {
		log.Warn("device filter active, only one device will be repaired",
			zap.String("device", opts.DeviceFilter))
	}

	err = e.inv.Transaction(ctx, func(tx *inventory.Repository) error {
		for _, obs := range observations {
			if err := e.reconcileDevice(ctx, tx, log, obs, opts, summary); err != nil {
				return err
			}
			summary.DevicesProcessed++
		}
		if opts.DryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRun) {
		return nil, fmt.Errorf("reconciliation rolled back: %w", err)
	}

	return summary, nil
}

func (e *Engine) reconcileDevice(ctx context.Context, tx *inventory.Repository, log *zap.Logger, obs telemetry.Observation, opts Options, summary *Summary) error {
	dlog := log.With(zap.String("device", obs.DeviceID), zap.Int("reported", obs.Connectors))

	station, err := tx.StationByCode(ctx, obs.DeviceID)
	if err != nil {
		return err
	}
	if station == nil {
		dlog.Warn("no station matches device id")
		summary.UnmatchedDevices = append(summary.UnmatchedDevices, obs.DeviceID)
		return nil
	}

	points, err := tx.PointsByStation(ctx, station.StationID)
	if err != nil {
		return err
	}
	existing := len(points)

	switch {
	case existing == obs.Connectors:
		return nil
	case obs.Connectors < existing:
		// Growth-only policy: a low or stale report never removes points.
		dlog.Warn("station holds more points than reported, leaving as is",
			zap.Int("existing", existing))
		return nil
	case opts.DeviceFilter != "" && opts.DeviceFilter != obs.DeviceID:
		dlog.Info("mismatch skipped by device filter", zap.Int("existing", existing))
		summary.SkippedDevices = append(summary.SkippedDevices, obs.DeviceID)
		return nil
	}

	created, err := tx.CreatePoints(ctx, station, obs.Connectors, existing)
	if err != nil {
		return err
	}
	dlog.Info("created missing charging points",
		zap.String("station", station.Name),
		zap.Int("existing", existing),
		zap.Int("created", len(created)))
	summary.ConnectorsCreated += len(created)
	return nil
}
