package cmd

import (
	"fmt"
	"os"

	"connector-inventory/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "connector-inventory",
	Short: "Charging connector inventory reconciler",
	Long: `connector-inventory keeps the charging_points table in step with what
stations actually report. It listens on the cloud broker for connector-count
status topics, deduplicates the reports per device and creates the charging
points the database is missing, all inside one transaction per run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format and debug level give readable ISO8601 output for a CLI tool.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
