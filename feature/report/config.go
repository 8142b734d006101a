package report

// Config holds configuration for run-report publishing.
type Config struct {
	// Enabled turns on uploading the run summary to object storage.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is the object-name prefix reports are written under.
	Prefix string `mapstructure:"prefix" default:"reports"`
}
