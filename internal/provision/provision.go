// Package provision populates the instance store from plan declarations by
// calling the create functions modules registered. It stands in for the
// host's creation/injection subsystem: the teardown engine never calls into
// this package, it only consumes the store entries written here.
package provision

import (
	"context"
	"fmt"

	"github.com/vk/scopedown/internal/ctxlog"
	"github.com/vk/scopedown/internal/instancestore"
	"github.com/vk/scopedown/internal/plan"
	"github.com/vk/scopedown/internal/registry"
	"github.com/vk/scopedown/internal/resource"
)

// Provisioner creates resource instances for plan declarations.
type Provisioner struct {
	registry *registry.Registry
	store    *instancestore.Store
}

// New wires a provisioner to the registry and the shared instance store.
func New(reg *registry.Registry, store *instancestore.Store) *Provisioner {
	return &Provisioner{registry: reg, store: store}
}

// Provision realizes one declaration into the store. A deferred declaration
// stores an unevaluated holder, leaving realization to whoever asks first; a
// failed creation leaves the store untouched, so teardown later treats the
// site as "nothing to destroy".
func (p *Provisioner) Provision(ctx context.Context, decl *plan.Declaration) error {
	logger := ctxlog.FromContext(ctx).With("resource", decl.Type, "declaration", decl.Name)

	res, ok := p.registry.Resource(decl.Type)
	if !ok {
		return fmt.Errorf("unknown resource type '%s'", decl.Type)
	}
	if res.Create == nil {
		return fmt.Errorf("resource type '%s' has no create function registered", decl.Type)
	}

	key := resource.NewKey(res.Type, decl.Qualifier)

	if decl.Deferred {
		logger.Debug("Storing deferred holder.")
		p.store.Put(key, instancestore.NewDeferredHolder(func() (any, error) {
			return res.Create(context.Background(), decl.Options)
		}))
		return nil
	}

	logger.Info("▶️ Creating resource")
	instance, err := res.Create(ctx, decl.Options)
	if err != nil {
		return fmt.Errorf("creating resource '%s': %w", decl.Name, err)
	}

	p.store.Put(key, instancestore.NewHolder(instance))
	logger.Info("✅ Resource created")
	return nil
}
