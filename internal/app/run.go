package app

import (
	"context"
	"fmt"

	"github.com/vk/scopedown/internal/ctxlog"
	"github.com/vk/scopedown/internal/instancestore"
	"github.com/vk/scopedown/internal/lifecycle"
	"github.com/vk/scopedown/internal/plan"
	"github.com/vk/scopedown/internal/provision"
	"github.com/vk/scopedown/internal/resource"
	"github.com/vk/scopedown/internal/teardown"
)

// Run replays the lifecycle of every class in the loaded plan: provision the
// class-scoped resources, then for each method provision its parameters and
// tear the method scope down, and finally tear the class scope down.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	store := instancestore.New()
	notifier := lifecycle.NewNotifier()
	notifier.Subscribe(lifecycle.ObserverFunc(a.logLifecycleEvent))

	provisioner := provision.New(a.registry, store)
	destroyer := teardown.NewDestroyer(a.registry, store, notifier)

	a.logger.Info("🚀 Starting teardown drill.", "classes", len(a.plan.Classes))

	for _, class := range a.plan.Classes {
		if err := a.runClass(ctx, class, provisioner, destroyer); err != nil {
			return fmt.Errorf("class '%s': %w", class.Name, err)
		}
	}

	if leaked := store.Len(); leaked > 0 {
		a.logger.Warn("Instances remained in the store after the drill.", "count", leaked)
	}
	a.logger.Info("🏁 Teardown drill finished.")
	return nil
}

func (a *App) runClass(ctx context.Context, class *plan.Class, provisioner *provision.Provisioner, destroyer *teardown.Destroyer) error {
	logger := a.logger.With("class", class.Name)
	logger.Debug("Entering class scope.")

	a.provisionAll(ctx, class.Fields, provisioner)

	for _, method := range class.Methods {
		logger.Debug("Entering method scope.", "method", method.Name)
		a.provisionAll(ctx, method.Params, provisioner)

		sites, err := a.sitesFor(method.Params)
		if err != nil {
			return fmt.Errorf("method '%s': %w", method.Name, err)
		}
		if err := destroyer.DestroyMethodScoped(ctx, sites); err != nil {
			return fmt.Errorf("method '%s' teardown: %w", method.Name, err)
		}
	}

	sites, err := a.sitesFor(class.Fields)
	if err != nil {
		return err
	}
	return destroyer.DestroyClassScoped(ctx, sites)
}

// provisionAll creates instances for the given declarations. A failed
// creation is the upstream-setup-failed case: the site stays absent from the
// store and teardown later skips it, so the drill logs and carries on.
func (a *App) provisionAll(ctx context.Context, decls []*plan.Declaration, provisioner *provision.Provisioner) {
	for _, decl := range decls {
		if err := provisioner.Provision(ctx, decl); err != nil {
			a.logger.Warn("Provisioning failed, teardown will find nothing to destroy.", "declaration", decl.Name, "error", err)
		}
	}
}

// sitesFor translates plan declarations into typed declaration sites, the
// same shape an annotation scanner would hand the engine.
func (a *App) sitesFor(decls []*plan.Declaration) ([]resource.Site, error) {
	sites := make([]resource.Site, 0, len(decls))
	for _, decl := range decls {
		res, ok := a.registry.Resource(decl.Type)
		if !ok {
			return nil, fmt.Errorf("declaration '%s' uses unknown resource type '%s'", decl.Name, decl.Type)
		}
		sites = append(sites, resource.Site{
			Name:      decl.Name,
			Type:      res.Type,
			Qualifier: decl.Qualifier,
		})
	}
	return sites, nil
}

func (a *App) logLifecycleEvent(e lifecycle.Event) {
	switch e.Type {
	case lifecycle.BeforeDestroyed:
		a.logger.Debug("Firing BeforeDestroyed.", "key", e.Key.String())
	case lifecycle.AfterDestroyed:
		a.logger.Info("Resource destroyed.", "key", e.Key.String())
	}
}
