// Package httpclient manages a shareable *http.Client as a scoped resource:
// a create handler for provisioning and a destructor that gracefully drops
// idle connections when the owning scope ends.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/vk/scopedown/internal/registry"
	"github.com/vk/scopedown/internal/resource"
)

// defaultTimeout applies when the plan declares no timeout option.
const defaultTimeout = 30 * time.Second

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the http_client resource type and its destructor with
// the central registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterResource("http_client", &registry.RegisteredResource{
		Type:   reflect.TypeOf(&http.Client{}),
		Create: createClient,
	})
	r.RegisterDestructor(reflect.TypeOf(&http.Client{}), resource.DestructorFunc(destroyClient), 0)
}

// createClient is the provisioning handler. It returns a live *http.Client
// that test code shares for the lifetime of its scope.
func createClient(ctx context.Context, opts map[string]string) (any, error) {
	timeout := defaultTimeout
	if raw, ok := opts["timeout"]; ok {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout option: %w", err)
		}
		timeout = parsed
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}, nil
}

// destroyClient tears an *http.Client down. There is nothing to terminate
// beyond closing any idle connections.
func destroyClient(instance any) error {
	client, ok := instance.(*http.Client)
	if !ok {
		return fmt.Errorf("expected *http.Client, got %T", instance)
	}
	client.CloseIdleConnections()
	return nil
}
