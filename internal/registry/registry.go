package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vk/scopedown/internal/resource"
)

// Module is the interface that all core modules must implement to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// CreateFunc builds a new resource instance. It is used by provisioning, not
// by the teardown engine; opts carry module-specific settings from the plan.
type CreateFunc func(ctx context.Context, opts map[string]string) (any, error)

// RegisteredResource describes one named resource type a module exposes: the
// Go type its instances have, and an optional factory for provisioning.
type RegisteredResource struct {
	Type   reflect.Type
	Create CreateFunc
}

// Registration binds a destructor to the resource type it was registered
// for. Precedence breaks ties between registrations of equal specificity;
// higher wins.
type Registration struct {
	Type       reflect.Type
	Destructor resource.Destructor
	Precedence int
}

// Registry holds the destructor registrations and named resource types for a
// single application instance.
type Registry struct {
	destructors []Registration
	resources   map[string]*RegisteredResource
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		resources: make(map[string]*RegisteredResource),
	}
}

// RegisterDestructor records a destructor for the given resource type. The
// type may be a concrete type or an interface; an interface registration
// covers every type implementing it. Registration happens during wiring only.
func (r *Registry) RegisterDestructor(t reflect.Type, d resource.Destructor, precedence int) {
	if t == nil || d == nil {
		panic("registry: destructor registration requires a type and a destructor")
	}
	slog.Debug("Registering destructor.", "type", t.String(), "precedence", precedence)
	r.destructors = append(r.destructors, Registration{Type: t, Destructor: d, Precedence: precedence})
}

// RegisterResource records a named resource type. The name is what teardown
// plans refer to; the Go type is what declaration sites are keyed on.
func (r *Registry) RegisterResource(name string, res *RegisteredResource) {
	if _, exists := r.resources[name]; exists {
		panic(fmt.Sprintf("resource type with name '%s' already registered", name))
	}
	if res == nil || res.Type == nil {
		panic(fmt.Sprintf("resource type '%s' registered without a Go type", name))
	}
	slog.Debug("Registering resource type.", "name", name, "type", res.Type.String())
	r.resources[name] = res
}

// Resource looks up a named resource type.
func (r *Registry) Resource(name string) (*RegisteredResource, bool) {
	res, ok := r.resources[name]
	return res, ok
}
