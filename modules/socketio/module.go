// Package socketio manages long-lived socket.io client connections as scoped
// resources. The connection is established at provisioning time and its
// destructor disconnects the client when the owning scope ends.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/vk/scopedown/internal/registry"
	"github.com/vk/scopedown/internal/resource"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the socketio resource type and its destructor with the
// central registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterResource("socketio", &registry.RegisteredResource{
		Type:   reflect.TypeOf(&socket.Socket{}),
		Create: createConnection,
	})
	r.RegisterDestructor(reflect.TypeOf(&socket.Socket{}), resource.DestructorFunc(destroyConnection), 0)
}

// createConnection is the provisioning handler. It connects a socket.io
// client and hands the live socket over once the connection is established.
func createConnection(ctx context.Context, opts map[string]string) (any, error) {
	rawURL := opts["url"]
	if rawURL == "" {
		return nil, fmt.Errorf("socketio resource requires a 'url' option")
	}
	namespace := opts["namespace"]

	timeout := 10 * time.Second
	if raw, ok := opts["timeout"]; ok {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout option: %w", err)
		}
		timeout = parsed
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	clientOpts := socket.DefaultOptions()
	clientOpts.SetPath(parsedURL.Path)
	clientOpts.SetTransports(types.NewSet(transports.WebSocket))
	if opts["insecure_skip_verify"] == "true" {
		clientOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	manager := socket.NewManager(baseURL, clientOpts)
	io := manager.Socket(namespace, clientOpts)

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		done <- nil
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				done <- err
				return
			}
		}
		done <- fmt.Errorf("socket.io connection failed")
	})

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	io.Connect()

	select {
	case <-opCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for initial connection to %s", rawURL)
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return nil, err
		}
		return io, nil
	}
}

// destroyConnection tears a socket.io client down by disconnecting it.
func destroyConnection(instance any) error {
	io, ok := instance.(*socket.Socket)
	if !ok {
		return fmt.Errorf("expected *socket.Socket, got %T", instance)
	}
	io.Disconnect()
	return nil
}
