// Package instancestore provides the ephemeral, thread-safe store of live
// resource instances shared across a whole test run.
//
// Entries are written by the creation/injection side of the host and removed
// by the teardown engine once a resource has been destroyed. The store uses
// sync.Map because each resource key is independent: concurrent teardown
// passes touch disjoint keys and only need per-key atomicity, never a global
// ordering across keys. An absent key is a normal state (setup for that
// resource failed upstream), not an error.
package instancestore
