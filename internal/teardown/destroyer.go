package teardown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vk/scopedown/internal/ctxlog"
	"github.com/vk/scopedown/internal/instancestore"
	"github.com/vk/scopedown/internal/lifecycle"
	"github.com/vk/scopedown/internal/registry"
	"github.com/vk/scopedown/internal/resource"
	"github.com/vk/scopedown/internal/scope"
)

// Destroyer tears down the resources of a finished lifecycle scope. It only
// reads from the registry and reads/removes from the store; creation belongs
// to the host. A Destroyer holds no mutable state of its own, so one value
// can serve concurrent scopes as long as each call gets its own site list.
type Destroyer struct {
	registry *registry.Registry
	store    *instancestore.Store
	notifier *lifecycle.Notifier
}

// NewDestroyer wires a destroyer to its collaborators.
func NewDestroyer(reg *registry.Registry, store *instancestore.Store, notifier *lifecycle.Notifier) *Destroyer {
	return &Destroyer{registry: reg, store: store, notifier: notifier}
}

// DestroyClassScoped destroys the class-scoped resources declared by the
// field sites of a just-finished test class.
func (d *Destroyer) DestroyClassScoped(ctx context.Context, sites []resource.Site) error {
	return d.destroyScope(ctx, "class", sites)
}

// DestroyMethodScoped destroys the method-scoped resources declared by the
// parameter sites of a just-finished test method.
func (d *Destroyer) DestroyMethodScoped(ctx context.Context, sites []resource.Site) error {
	return d.destroyScope(ctx, "method", sites)
}

// destroyScope runs one synchronous teardown pass over the given sites, in
// the order supplied by the caller.
func (d *Destroyer) destroyScope(ctx context.Context, scopeKind string, sites []resource.Site) error {
	logger := ctxlog.FromContext(ctx).With("scope", scopeKind, "pass", uuid.NewString())
	logger.Debug("Teardown pass started.", "site_count", len(sites))

	checker := scope.NewChecker()

	for _, site := range sites {
		key := site.Key()
		siteLogger := logger.With("type", key.Type.String(), "qualifier", key.Qualifier)

		if !checker.IsUniqueInScope(key) {
			siteLogger.Debug("Skipping site, resource already handled in this pass.", "site", site.Name)
			continue
		}

		reg, err := d.registry.ResolveDestructor(site.Type)
		if err != nil {
			// A missing registration is a wiring error, not something one
			// test's teardown can route around. Abort the pass.
			return fmt.Errorf("site '%s': %w", site.Name, err)
		}
		siteLogger.Debug("Resolved destructor.", "registered_for", reg.Type.String(), "precedence", reg.Precedence)

		// If setup failed upstream there is nothing to be destroyed.
		holder, ok := d.store.Get(key)
		if !ok {
			siteLogger.Debug("No instance recorded, nothing to destroy.", "site", site.Name)
			continue
		}

		d.notifier.Notify(lifecycle.Event{Type: lifecycle.BeforeDestroyed, Key: key, Holder: holder})

		if err := destroyIfInstantiated(siteLogger, reg.Destructor, holder); err != nil {
			return fmt.Errorf("destroying resource %s: %w", key, err)
		}

		d.store.Remove(key)
		d.notifier.Notify(lifecycle.Event{Type: lifecycle.AfterDestroyed, Key: key})
	}

	logger.Debug("Teardown pass finished.")
	return nil
}

// destroyIfInstantiated runs the destroy attempt for one holder. A
// not-instantiated condition, whether raised while realizing the holder or
// by the destructor itself, is recoverable: the entry still gets removed and
// the pass moves on. Everything else propagates.
func destroyIfInstantiated(logger *slog.Logger, destructor resource.Destructor, holder *instancestore.Holder) error {
	instance, err := holder.Value()
	if err == nil {
		logger.Info("🔥 Destroying resource")
		err = destructor.Destroy(instance)
	}
	if errors.Is(err, resource.ErrNotInstantiated) {
		logger.Warn("Ignoring destruction, the instance was never instantiated.")
		return nil
	}
	return err
}
