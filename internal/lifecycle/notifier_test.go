package lifecycle

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scopedown/internal/resource"
)

type widget struct{}

func TestNotifyDeliversInSubscriptionOrder(t *testing.T) {
	n := NewNotifier()

	var order []string
	n.Subscribe(ObserverFunc(func(Event) { order = append(order, "first") }))
	n.Subscribe(ObserverFunc(func(Event) { order = append(order, "second") }))

	n.Notify(Event{Type: AfterDestroyed})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestNotifyCarriesKeyAndHolder(t *testing.T) {
	n := NewNotifier()
	key := resource.NewKey(reflect.TypeOf(&widget{}), "admin")
	holder := &struct{ value string }{value: "held"}

	var got Event
	n.Subscribe(ObserverFunc(func(e Event) { got = e }))

	n.Notify(Event{Type: BeforeDestroyed, Key: key, Holder: holder})

	require.Equal(t, BeforeDestroyed, got.Type)
	assert.Equal(t, key, got.Key)
	assert.Same(t, holder, got.Holder)
}

func TestNotifyWithoutObserversIsNoOp(t *testing.T) {
	n := NewNotifier()
	assert.NotPanics(t, func() { n.Notify(Event{Type: AfterDestroyed}) })
}
