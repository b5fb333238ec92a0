package resource

import (
	"errors"
	"fmt"
	"reflect"
)

// DefaultQualifier is the qualifier assigned to a declaration site that does
// not carry an explicit one. Two unqualified sites of the same type refer to
// the same logical resource.
const DefaultQualifier = "default"

// Key identifies one logical resource within a test run: the Go type of the
// managed instance plus a qualifier that lets several independent instances
// of the same type coexist.
type Key struct {
	Type      reflect.Type
	Qualifier string
}

// NewKey builds a Key, substituting DefaultQualifier for an empty qualifier.
func NewKey(t reflect.Type, qualifier string) Key {
	if qualifier == "" {
		qualifier = DefaultQualifier
	}
	return Key{Type: t, Qualifier: qualifier}
}

// String serializes the key into its canonical "type@qualifier" form.
func (k Key) String() string {
	return fmt.Sprintf("%s@%s", k.Type, k.Qualifier)
}

// Site is one point where a resource is declared: a field of a test class or
// a parameter of a test method. Several sites may share a Key within one
// scope; the engine destroys the underlying resource only once.
type Site struct {
	// Name is the field or parameter name. It is used for logging only and
	// plays no part in resource identity.
	Name      string
	Type      reflect.Type
	Qualifier string
}

// Key returns the resource identity of this declaration site.
func (s Site) Key() Key {
	return NewKey(s.Type, s.Qualifier)
}

// Destructor releases one resource instance. Implementations are registered
// against the types they can handle and must be safe to call from whichever
// goroutine runs the teardown pass.
type Destructor interface {
	// Destroy tears down the given instance. Returning an error that wraps
	// ErrNotInstantiated marks the failure as recoverable; any other error is
	// treated as fatal to the running pass.
	Destroy(instance any) error
}

// DestructorFunc adapts a plain function to the Destructor interface.
type DestructorFunc func(instance any) error

// Destroy calls f(instance).
func (f DestructorFunc) Destroy(instance any) error {
	return f(instance)
}

// ErrNotInstantiated reports that a held value was never actually realized,
// so there is nothing to tear down. The teardown engine logs this condition
// and moves on; it is the only destruction failure it contains.
var ErrNotInstantiated = errors.New("instance was never instantiated")
