// Package testutil provides shared test doubles and assertions for exercising
// the teardown engine: a recording lifecycle observer and a programmable spy
// destructor.
package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/scopedown/internal/lifecycle"
)

// RecordingObserver captures lifecycle events for later assertions. Safe for
// concurrent use.
type RecordingObserver struct {
	mu     sync.Mutex
	events []lifecycle.Event
}

// OnTeardownEvent implements lifecycle.Observer.
func (o *RecordingObserver) OnTeardownEvent(e lifecycle.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

// Events returns a snapshot of the captured events in delivery order.
func (o *RecordingObserver) Events() []lifecycle.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]lifecycle.Event, len(o.events))
	copy(out, o.events)
	return out
}

// SpyDestructor records every instance passed to Destroy and returns Err,
// letting tests simulate failing destructors.
type SpyDestructor struct {
	mu    sync.Mutex
	calls []any

	// Err is returned from every Destroy call.
	Err error
}

// Destroy implements resource.Destructor.
func (d *SpyDestructor) Destroy(instance any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, instance)
	return d.Err
}

// Calls returns a snapshot of the destroyed instances in call order.
func (d *SpyDestructor) Calls() []any {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]any, len(d.calls))
	copy(out, d.calls)
	return out
}

// RequireEventTypes asserts the exact sequence of event types an observer
// captured.
func RequireEventTypes(t *testing.T, observer *RecordingObserver, want ...lifecycle.EventType) {
	t.Helper()

	events := observer.Events()
	var got []lifecycle.EventType
	for _, e := range events {
		got = append(got, e.Type)
	}

	require.Equal(t, want, got, "unexpected lifecycle event sequence")
}
