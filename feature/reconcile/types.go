package reconcile

import "time"

// Options controls reconcile behavior for a single run.
type Options struct {
	// DeviceFilter restricts repairs to one device id. Every other device is
	// still diffed and reported, but nothing is written for it.
	DeviceFilter string

	// DryRun executes the full pass inside the transaction and then rolls it
	// back instead of committing.
	DryRun bool
}

// Summary is the outcome of one reconciliation run.
type Summary struct {
	// RunID identifies this run in logs and uploaded reports.
	RunID string `json:"run_id"`

	// StartedAt is when the reconciliation pass began.
	StartedAt time.Time `json:"started_at"`

	// DevicesProcessed is the number of deduplicated devices examined.
	DevicesProcessed int `json:"devices_processed"`

	// ConnectorsCreated is the total number of charging points created.
	ConnectorsCreated int `json:"connectors_created"`

	// UnmatchedDevices lists device ids no station could be found for.
	UnmatchedDevices []string `json:"unmatched_devices"`

	// SkippedDevices lists mismatched devices the device filter excluded.
	SkippedDevices []string `json:"skipped_devices"`

	// DryRun records whether the transaction was rolled back on purpose.
	DryRun bool `json:"dry_run"`
}
