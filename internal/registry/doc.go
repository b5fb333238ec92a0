// Package registry holds everything the engine learns at startup: destructor
// registrations and the named resource types that modules expose. Modules
// populate a Registry during application wiring; after wiring it is treated
// as read-only, so teardown passes running on separate goroutines resolve
// destructors without locking.
package registry
