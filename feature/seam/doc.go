// Package seam adapts the Seam lock-control API to the
// reconcile.LockController port.
//
// The target lock is resolved once at startup by matching the configured
// house name against each device's property metadata; the run then holds
// the resolved device as a read-only handle. Access codes are created with
// the guest's full name as their label and removed by looking that label up
// again, which keeps removal idempotent without any local bookkeeping.
package seam
