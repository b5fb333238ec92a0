package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/scopedown/internal/ctxlog"
	"github.com/vk/scopedown/internal/hclplan"
	"github.com/vk/scopedown/internal/plan"
	"github.com/vk/scopedown/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	plan     *plan.Plan
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	loader := hclplan.NewLoader()
	loadedPlan, err := loader.Load(ctx, cfg.PlanPath)
	if err != nil {
		// A failure to load the plan is a fatal startup error.
		panic(fmt.Errorf("failed to load teardown plan: %w", err))
	}
	logger.Debug("Teardown plan loaded.", "classes", len(loadedPlan.Classes))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		plan:     loadedPlan,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
