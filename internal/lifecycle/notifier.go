// Package lifecycle delivers before/after destruction notifications to
// external observers. Delivery is synchronous and in subscription order; the
// engine guarantees when events fire relative to the destroy attempt but
// takes no responsibility for what observers do with them.
package lifecycle

import (
	"sync"

	"github.com/vk/scopedown/internal/resource"
)

// EventType distinguishes the lifecycle notifications.
type EventType uint8

const (
	// BeforeDestroyed fires after an instance holder was found for a site
	// and before its destructor runs.
	BeforeDestroyed EventType = iota
	// AfterDestroyed fires once a destroy attempt has been made and the
	// store entry removed. It never fires for sites that were filtered out
	// by scope deduplication or had no instance present.
	AfterDestroyed
)

// Event is one lifecycle notification.
type Event struct {
	Type EventType
	Key  resource.Key
	// Holder carries the stored instance holder. Populated for
	// BeforeDestroyed only.
	Holder any
}

// Observer receives lifecycle events.
type Observer interface {
	OnTeardownEvent(Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

// OnTeardownEvent calls f(e).
func (f ObserverFunc) OnTeardownEvent(e Event) {
	f(e)
}

// Notifier fans events out to subscribed observers.
type Notifier struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewNotifier creates a notifier with no observers.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe adds an observer. Subscribing during active passes is safe.
func (n *Notifier) Subscribe(o Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = append(n.observers, o)
}

// Notify delivers the event to every observer, in subscription order, on the
// calling goroutine. Observer panics or side effects are not contained here.
func (n *Notifier) Notify(e Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, o := range n.observers {
		o.OnTeardownEvent(e)
	}
}
