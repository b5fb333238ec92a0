// Package scope tracks which resources have already been handled within a
// single teardown pass. A test class can declare the same qualified resource
// type at several sites, directly or through inherited fields; without this
// check the engine would fire duplicate lifecycle events and try to destroy
// an entry it already removed.
package scope

import "github.com/vk/scopedown/internal/resource"

// Checker is the per-pass uniqueness filter. Create a fresh Checker for each
// teardown pass and discard it afterwards; it carries no state beyond one
// pass and is not safe for concurrent use (a pass is single-threaded).
type Checker struct {
	seen map[resource.Key]struct{}
}

// NewChecker creates an empty checker for one teardown pass.
func NewChecker() *Checker {
	return &Checker{seen: make(map[resource.Key]struct{})}
}

// IsUniqueInScope reports whether key is seen for the first time in this
// pass, recording it as a side effect. Every later call with the same key
// returns false.
func (c *Checker) IsUniqueInScope(key resource.Key) bool {
	if _, ok := c.seen[key]; ok {
		return false
	}
	c.seen[key] = struct{}{}
	return true
}
