package cmd

import (
	"context"
	"fmt"

	"connector-inventory/core/broker"
	"connector-inventory/core/config"
	"connector-inventory/core/database"
	"connector-inventory/core/logger"
	"connector-inventory/core/storage"
	"connector-inventory/feature/inventory"
	"connector-inventory/feature/reconcile"
	"connector-inventory/feature/report"
	"connector-inventory/feature/telemetry"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncDuration int
	syncDevice   string
	syncDryRun   bool
)

// syncCmd runs the full reconciliation pipeline.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Collect connector counts and create missing charging points",
	Long: `Collect connector-count reports from the broker for the configured
window, deduplicate them per device and reconcile the result against the
charging_points table. Missing points are created inside one transaction
spanning the whole run; a storage fault rolls everything back.

Examples:
  # Full run with the configured collection window
  connector-inventory sync

  # Short window, report-only
  connector-inventory sync --duration 10 --dry-run

  # Limit repairs to a single station while verifying a rollout
  connector-inventory sync --device C4-E7-22-10`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVar(&syncDuration, "duration", 0, "Collection window in seconds (overrides the configured value)")
	syncCmd.Flags().StringVar(&syncDevice, "device", "", "Only repair this device id; every other mismatch is logged but not written")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Run the full pass and roll the transaction back instead of committing")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if syncDuration > 0 {
		cfg.Collector.DurationSeconds = syncDuration
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	// Phase 1: the collection window. The broker connection is fully torn
	// down by the collector before any database work starts.
	observations, err := collectObservations(ctx, cfg, l)
	if err != nil {
		return err
	}
	if len(observations) == 0 {
		l.Warn("no connector counts observed, nothing to reconcile")
		return nil
	}

	// Phase 2: diff and repair.
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	if err := database.VerifyTables(db, "charging_stations", "charging_points"); err != nil {
		return err
	}

	engine := reconcile.New(inventory.NewRepository(db), l)
	summary, err := engine.Run(ctx, observations, reconcile.Options{
		DeviceFilter: syncDevice,
		DryRun:       syncDryRun,
	})
	if err != nil {
		return err
	}

	report.Log(l, summary)

	if cfg.Report.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		uploader := report.NewUploader(client, cfg.Storage.Bucket, cfg.Report)
		// The reconciliation already committed; a failed upload is only worth a warning.
		if name, err := uploader.Upload(ctx, summary); err != nil {
			l.Warn("run report upload failed", zap.Error(err))
		} else {
			l.Info("run report uploaded", zap.String("object", name))
		}
	}

	return nil
}

// collectObservations connects to the broker, runs the collection window and
// returns the deduplicated per-device observations.
func collectObservations(ctx context.Context, cfg *config.Config, l *zap.Logger) ([]telemetry.Observation, error) {
	lost := make(chan error, 1)
	client, err := broker.Connect(cfg.Broker, l, func(_ mqtt.Client, err error) {
		select {
		case lost <- err:
		default:
		}
	})
	if err != nil {
		return nil, err
	}

	collector := telemetry.New(client, cfg.Collector, l)
	counts, err := collector.Collect(ctx, lost)
	if err != nil {
		return nil, err
	}

	observations := telemetry.Observations(counts, l)
	l.Info("collection complete",
		zap.Int("topics", len(counts)),
		zap.Int("devices", len(observations)))
	return observations, nil
}
