package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scopedown/internal/registry"
	"github.com/vk/scopedown/internal/resource"
)

// spyResource is the instance type managed by the test module.
type spyResource struct {
	name string
}

// spyModule is a self-contained module for these tests: its create handler
// hands out spyResource instances and its destructor counts destroy calls.
type spyModule struct {
	created   *atomic.Int32
	destroyed *atomic.Int32
}

func (m *spyModule) Register(r *registry.Registry) {
	r.RegisterResource("spy_resource", &registry.RegisteredResource{
		Type: reflect.TypeOf(&spyResource{}),
		Create: func(ctx context.Context, opts map[string]string) (any, error) {
			m.created.Add(1)
			return &spyResource{name: opts["name"]}, nil
		},
	})
	r.RegisterDestructor(reflect.TypeOf(&spyResource{}), resource.DestructorFunc(func(any) error {
		m.destroyed.Add(1)
		return nil
	}), 0)
}

func writeDrillPlan(t *testing.T, hcl string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drill.hcl")
	require.NoError(t, os.WriteFile(path, []byte(hcl), 0600))
	return path
}

func newTestApp(t *testing.T, planPath string, modules ...registry.Module) *App {
	t.Helper()
	cfg, err := NewConfig(Config{PlanPath: planPath, LogFormat: "text", LogLevel: "debug"})
	require.NoError(t, err)
	return NewApp(&bytes.Buffer{}, cfg, modules...)
}

func TestDrillDestroysClassAndMethodScopes(t *testing.T) {
	planPath := writeDrillPlan(t, `
		class "LoginTest" {
			field "browser" {
				type    = "spy_resource"
				options = { name = "class-scoped" }
			}

			method "testLogin" {
				param "api" {
					type      = "spy_resource"
					qualifier = "method"
					options   = { name = "method-scoped" }
				}
			}
		}
	`)

	var created, destroyed atomic.Int32
	drill := newTestApp(t, planPath, &spyModule{created: &created, destroyed: &destroyed})

	require.NoError(t, drill.Run(context.Background()))

	assert.Equal(t, int32(2), created.Load())
	assert.Equal(t, int32(2), destroyed.Load())
}

func TestDrillDeduplicatesFieldsWithinClassScope(t *testing.T) {
	planPath := writeDrillPlan(t, `
		class "InheritedFieldsTest" {
			field "browser" {
				type = "spy_resource"
			}
			field "inheritedBrowser" {
				type = "spy_resource"
			}
		}
	`)

	var created, destroyed atomic.Int32
	drill := newTestApp(t, planPath, &spyModule{created: &created, destroyed: &destroyed})

	require.NoError(t, drill.Run(context.Background()))

	// Both fields resolve to the same logical resource: one destroy cycle.
	assert.Equal(t, int32(1), destroyed.Load())
}

func TestDrillSkipsDeferredResourceWithWarning(t *testing.T) {
	planPath := writeDrillPlan(t, `
		class "FlakySetupTest" {
			field "browser" {
				type     = "spy_resource"
				deferred = true
			}
		}
	`)

	var created, destroyed atomic.Int32
	drill := newTestApp(t, planPath, &spyModule{created: &created, destroyed: &destroyed})

	require.NoError(t, drill.Run(context.Background()))

	// The deferred holder was never realized, so neither the create handler
	// nor the destructor ran.
	assert.Equal(t, int32(0), created.Load())
	assert.Equal(t, int32(0), destroyed.Load())
}

func TestDrillFailsOnUnknownResourceType(t *testing.T) {
	planPath := writeDrillPlan(t, `
		class "MisconfiguredTest" {
			field "browser" {
				type = "no_such_resource"
			}
		}
	`)

	var created, destroyed atomic.Int32
	drill := newTestApp(t, planPath, &spyModule{created: &created, destroyed: &destroyed})

	err := drill.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_resource")
}

func TestNewAppPanicsOnUnreadablePlan(t *testing.T) {
	broken := writeDrillPlan(t, `class "Oops" {`)

	assert.Panics(t, func() {
		newTestApp(t, broken)
	})
}
