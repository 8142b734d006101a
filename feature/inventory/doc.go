// Package inventory persists charging stations and their charging points.
//
// Stations are created and maintained by the external provisioning service;
// this package only reads them. Charging points are the one thing the
// reconciler writes: when a station reports more connectors than the table
// holds, the missing positions are appended inside the caller's transaction.
// Soft deletion is an explicit deleted timestamp column on both tables, and
// every query filters on deleted IS NULL.
package inventory
