// Package resource defines the shared vocabulary of the teardown engine:
// resource keys, declaration sites, and the destructor contract. It has no
// behavior of its own; every other engine package speaks these types.
package resource
