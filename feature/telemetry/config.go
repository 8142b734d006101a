package telemetry

// Config holds configuration for the telemetry collection window.
type Config struct {
	// TopicPattern is the wildcard subscription for connector-count reports.
	// The third slash-delimited segment of a matching topic is the device id.
	TopicPattern string `mapstructure:"topic_pattern" default:"+/sweet-home/+/status-control/connectors-count"`
	// DurationSeconds is how long the collector listens before it detaches.
	DurationSeconds int `mapstructure:"duration_seconds" default:"60"`
	// QoS is the subscription quality of service (1 = at least once).
	QoS int `mapstructure:"qos" default:"1"`
}
