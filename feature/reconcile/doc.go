// Package reconcile implements the diff-and-repair pass over the charging
// inventory.
//
// One run takes the deduplicated (device, connector count) observations a
// collection window produced, looks each device's station up by its external
// code, compares the reported count against the stored non-deleted charging
// points and appends whatever is missing. All devices share one database
// transaction: reconciliation either lands completely or not at all, so a
// storage fault on a late device cannot leave the inventory half-updated.
// That granularity is deliberate — the blast radius of a failure is "the
// whole run", never "some stations".
//
// The engine never shrinks inventory. When a station holds more points than
// the device reports, the mismatch is logged and nothing is written; whether
// excess points should be soft-deleted is a product question, not one this
// tool answers on its own.
package reconcile
