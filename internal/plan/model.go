// Package plan defines the format-agnostic model of a teardown plan: the
// test classes of a run, their resource-declaring fields, and their methods
// with resource-declaring parameters. Any config layer that can map into
// this model can drive the engine; the HCL loader is one such layer.
package plan

// Plan is the root of a loaded teardown plan.
type Plan struct {
	Classes []*Class
}

// Class models one test class: class-scoped declarations (fields) plus the
// methods executed against it.
type Class struct {
	Name    string
	Fields  []*Declaration
	Methods []*Method
}

// Method models one test method with its method-scoped declarations.
type Method struct {
	Name   string
	Params []*Declaration
}

// Declaration is one textual declaration site. Type names a registered
// resource type; the registry maps it to the Go type that keys the site.
type Declaration struct {
	Name      string
	Type      string
	Qualifier string
	// Options carry module-specific provisioning settings, e.g. an endpoint
	// URL or an existing session ID.
	Options map[string]string
	// Deferred declares the resource without realizing it, modeling a
	// lazily-created instance whose creation never ran.
	Deferred bool
}
