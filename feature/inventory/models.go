package inventory

import "time"

// ChargingStation mirrors the charging_stations table owned by the OCPP
// provisioning service. The reconciler only ever reads stations; it uses a
// station as the parent for new charging points.
type ChargingStation struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	Name          string     `gorm:"column:name"`
	StationID     string     `gorm:"column:station_id;uniqueIndex"` // external code, correlates with device ids
	Status        string     `gorm:"column:status"`
	ReadOnly      bool       `gorm:"column:read_only"`
	LastHeartbeat *time.Time `gorm:"column:last_heartbeat"`
	Longitude     string     `gorm:"column:longitude"`
	Latitude      string     `gorm:"column:latitude"`
	Vendor        string     `gorm:"column:vendor"`
	Model         string     `gorm:"column:model"`
	MQTTToken     string     `gorm:"column:mqtt_token"`
	ListVersion   uint       `gorm:"column:list_version"`
	OCPPStatus    string     `gorm:"column:ocpp_status"`
	Created       *time.Time `gorm:"column:created"`
	Updated       *time.Time `gorm:"column:updated"`
	Deleted       *time.Time `gorm:"column:deleted"`

	ChargingPoints []ChargingPoint `gorm:"foreignKey:StationID;references:StationID"`
}

// TableName overrides the table name.
func (ChargingStation) TableName() string {
	return "charging_stations"
}

// ChargingPoint is one physical connector slot on a station. For a live
// station the non-deleted points occupy positions 1..N; the reconciler only
// ever extends that range upward, it never renumbers or removes points.
type ChargingPoint struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name"`
	PointID         uint       `gorm:"column:point_id;uniqueIndex:idx_station_point"` // 1-based position within the station
	StationID       string     `gorm:"column:station_id;uniqueIndex:idx_station_point"`
	Latitude        string     `gorm:"column:latitude"`
	Longitude       string     `gorm:"column:longitude"`
	ErrorCode       string     `gorm:"column:error_code"`
	ConnectorStatus string     `gorm:"column:connector_status"`
	Created         *time.Time `gorm:"column:created"`
	Updated         *time.Time `gorm:"column:updated"`
	Deleted         *time.Time `gorm:"column:deleted"`
}

// TableName overrides the table name.
func (ChargingPoint) TableName() string {
	return "charging_points"
}
