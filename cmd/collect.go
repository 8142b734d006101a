package cmd

import (
	"fmt"

	"connector-inventory/core/config"
	"connector-inventory/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var collectDuration int

// collectCmd runs the collection window without touching the database.
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Observe connector counts without writing anything",
	Long: `Listen on the broker for the configured window and print the
deduplicated device/connector-count pairs. Useful for verifying broker
credentials and the topic pattern before a real sync.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().IntVar(&collectDuration, "duration", 0, "Collection window in seconds (overrides the configured value)")

	RootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if collectDuration > 0 {
		cfg.Collector.DurationSeconds = collectDuration
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	observations, err := collectObservations(cmd.Context(), cfg, l)
	if err != nil {
		return err
	}

	for _, obs := range observations {
		l.Info("observed device",
			zap.String("device", obs.DeviceID),
			zap.Int("connectors", obs.Connectors))
	}
	return nil
}
