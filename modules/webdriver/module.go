// Package webdriver manages remote W3C WebDriver sessions as scoped
// resources. Its destructor quits the session on the remote end, which is
// what releases the actual browser.
package webdriver

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/scopedown/internal/registry"
	"github.com/vk/scopedown/internal/resource"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the webdriver resource type and two destructors: a
// generic one covering anything that satisfies Driver, and a more specific
// one for *Session that also releases the HTTP client behind it. Resolution
// picks the *Session one for sessions created here; the Driver one is the
// fallback for user-supplied driver implementations.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterResource("webdriver", &registry.RegisteredResource{
		Type:   reflect.TypeOf(&Session{}),
		Create: createSession,
	})

	driverType := reflect.TypeOf((*Driver)(nil)).Elem()
	r.RegisterDestructor(driverType, resource.DestructorFunc(destroyDriver), 0)
	r.RegisterDestructor(reflect.TypeOf(&Session{}), resource.DestructorFunc(destroySession), 0)
}

// createSession is the provisioning handler. With a "session" option it
// adopts an existing remote session; otherwise it starts a new one at the
// "endpoint" option.
func createSession(ctx context.Context, opts map[string]string) (any, error) {
	endpoint := opts["endpoint"]
	if endpoint == "" {
		return nil, fmt.Errorf("webdriver resource requires an 'endpoint' option")
	}
	if id := opts["session"]; id != "" {
		return NewSession(endpoint, id), nil
	}
	return startSession(endpoint)
}

func destroyDriver(instance any) error {
	driver, ok := instance.(Driver)
	if !ok {
		return fmt.Errorf("expected webdriver.Driver, got %T", instance)
	}
	if v := reflect.ValueOf(driver); v.Kind() == reflect.Pointer && v.IsNil() {
		return fmt.Errorf("driver handle: %w", resource.ErrNotInstantiated)
	}
	return driver.Quit()
}

func destroySession(instance any) error {
	session, ok := instance.(*Session)
	if !ok {
		return fmt.Errorf("expected *webdriver.Session, got %T", instance)
	}
	if session == nil {
		return fmt.Errorf("session handle: %w", resource.ErrNotInstantiated)
	}
	err := session.Quit()
	session.client.Close()
	return err
}
