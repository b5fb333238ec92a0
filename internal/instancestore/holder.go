package instancestore

import (
	"sync"

	"github.com/vk/scopedown/internal/resource"
)

// Holder wraps one stored resource value. It is either realized (the
// instance exists) or deferred (a supplier that the creation side may
// evaluate later). A deferred holder whose supplier was never run yields
// resource.ErrNotInstantiated from Value, which the teardown engine treats
// as "nothing to tear down".
type Holder struct {
	mu       sync.Mutex
	value    any
	supplier func() (any, error)
	realized bool
}

// NewHolder wraps an already realized instance.
func NewHolder(instance any) *Holder {
	return &Holder{value: instance, realized: true}
}

// NewDeferredHolder wraps a supplier to be evaluated later via Realize.
func NewDeferredHolder(supplier func() (any, error)) *Holder {
	return &Holder{supplier: supplier}
}

// Value returns the realized instance, or resource.ErrNotInstantiated if the
// holder is still deferred.
func (h *Holder) Value() (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.realized {
		return nil, resource.ErrNotInstantiated
	}
	return h.value, nil
}

// Realize evaluates the supplier and caches its result. It is called by the
// creation side, never by the teardown engine. Calling Realize on an already
// realized holder returns the cached instance.
func (h *Holder) Realize() (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.realized {
		return h.value, nil
	}
	value, err := h.supplier()
	if err != nil {
		return nil, err
	}
	h.value = value
	h.realized = true
	h.supplier = nil
	return value, nil
}
