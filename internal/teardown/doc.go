// Package teardown implements the destruction engine. At the end of each
// lifecycle scope the host hands it the declaration sites of that scope and
// it destroys exactly one instance per unique (type, qualifier) pair, in site
// order, with before/after notifications around every destroy attempt.
//
// Failure containment is deliberately narrow: a destructor reporting that its
// instance was never instantiated is logged and skipped, while a missing
// registry entry or any other destructor failure aborts the remaining sites
// of the pass. Resources destroyed earlier in an aborted pass stay destroyed.
package teardown
