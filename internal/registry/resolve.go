package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ErrNoDestructor reports that no registration is compatible with a requested
// resource type. A correctly wired application never hits this; it marks a
// configuration error and is fatal to the teardown pass that triggered it.
var ErrNoDestructor = errors.New("no destructor registered")

// ResolveDestructor selects the destructor for the given resource type.
//
// Every registration whose declared type is a supertype of (or equal to) the
// requested type is a candidate. Among candidates the most specific declared
// type wins; when two candidates are equally specific, the higher precedence
// wins. Registration order never matters.
func (r *Registry) ResolveDestructor(t reflect.Type) (Registration, error) {
	var candidates []Registration
	for _, reg := range r.destructors {
		if t.AssignableTo(reg.Type) {
			candidates = append(candidates, reg)
		}
	}
	if len(candidates) == 0 {
		return Registration{}, fmt.Errorf("%w for resource type %s", ErrNoDestructor, t)
	}

	// Two-key sort: specificity first, precedence second. A declared type is
	// more specific than another when it is assignable to it but not the
	// other way around; incomparable types count as equally specific.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if moreSpecific(a.Type, b.Type) {
			return true
		}
		if moreSpecific(b.Type, a.Type) {
			return false
		}
		return a.Precedence > b.Precedence
	})

	return candidates[0], nil
}

func moreSpecific(a, b reflect.Type) bool {
	return a != b && a.AssignableTo(b) && !b.AssignableTo(a)
}
