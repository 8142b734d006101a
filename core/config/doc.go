// Package config provides configuration management for the reconciler.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded through godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections owned by the packages that consume them:
//   - Broker: MQTT broker address, credentials, client id
//   - Collector: topic pattern, collection window, QoS
//   - Database: MySQL connection details
//   - Log: logging level and format
//   - Storage / Report: optional run-report upload target
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Broker.URL)
package config
