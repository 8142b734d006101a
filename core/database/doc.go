// Package database handles database connections and schema verification.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration. The
// sqlite driver is supported as well, which keeps transactional tests cheap.
//
// # Connect
//
// The Connect function establishes a connection to the database. The schema
// itself (charging_stations, charging_points) is owned by the OCPP
// provisioning service; this application never migrates it.
//
// # Schema Verification
//
// VerifyTables confirms the tables a run depends on exist before any
// transaction is opened.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.VerifyTables(db, "charging_stations", "charging_points")
package database
