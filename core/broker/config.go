package broker

// Config holds configuration for the MQTT broker connection.
type Config struct {
	// URL is the broker address, e.g. tcp://host:1883 or ssl://host:8883.
	URL string `mapstructure:"url" default:"tcp://localhost:1883"`
	// Username is the broker username.
	Username string `mapstructure:"username" default:""`
	// Password is the broker password.
	Password string `mapstructure:"password" default:""`
	// ClientID is the MQTT client identifier presented to the broker.
	ClientID string `mapstructure:"client_id" default:"connector-inventory"`
	// TimeoutSeconds is the per-attempt connect timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ConnectRetries is how many times the initial connect is retried.
	ConnectRetries uint64 `mapstructure:"connect_retries" default:"5"`
}
