// Package telemetry gathers live connector counts from charging stations.
//
// Stations publish their connector count as a retained UTF-8 integer under
// <prefix>/<scope>/<deviceID>/<status-scope>/connectors-count. The collector
// listens on the wildcard pattern for a fixed window, keeping the latest
// count per topic, then detaches and hands the raw counts over.
//
// A device may report under more than one topic variant, so the per-topic
// counts are reduced to one observation per device by Dedupe, which keeps
// the highest count seen. The pipeline is strictly two-phase: the broker
// connection is fully torn down before any database work starts.
package telemetry
