package registry

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/scopedown/internal/resource"
)

// The type hierarchy mirrors a browser automation stack: a generic driver
// interface, a more specific driver interface, and a concrete session type
// implementing both.
type webDriver interface {
	Quit() error
}

type chromeDriver interface {
	webDriver
	DevToolsAddress() string
}

type chromeSession struct{}

func (chromeSession) Quit() error             { return nil }
func (chromeSession) DevToolsAddress() string { return "" }

var (
	webDriverType     = reflect.TypeOf((*webDriver)(nil)).Elem()
	chromeDriverType  = reflect.TypeOf((*chromeDriver)(nil)).Elem()
	chromeSessionType = reflect.TypeOf(chromeSession{})
)

func noopDestructor() resource.Destructor {
	return resource.DestructorFunc(func(any) error { return nil })
}

func TestResolveExactMatch(t *testing.T) {
	r := New()
	d := noopDestructor()
	r.RegisterDestructor(chromeSessionType, d, 0)

	reg, err := r.ResolveDestructor(chromeSessionType)
	require.NoError(t, err)
	assert.Equal(t, chromeSessionType, reg.Type)
}

func TestResolveMostSpecificTypeWins(t *testing.T) {
	r := New()
	r.RegisterDestructor(webDriverType, noopDestructor(), 0)
	r.RegisterDestructor(chromeDriverType, noopDestructor(), 0)

	reg, err := r.ResolveDestructor(chromeSessionType)
	require.NoError(t, err)
	assert.Equal(t, chromeDriverType, reg.Type, "the more specific interface must be selected")
}

func TestResolveMostSpecificWinsRegardlessOfOrder(t *testing.T) {
	r := New()
	r.RegisterDestructor(chromeDriverType, noopDestructor(), 0)
	r.RegisterDestructor(webDriverType, noopDestructor(), 0)

	reg, err := r.ResolveDestructor(chromeSessionType)
	require.NoError(t, err)
	assert.Equal(t, chromeDriverType, reg.Type)
}

func TestResolvePrecedenceBreaksTies(t *testing.T) {
	r := New()
	r.RegisterDestructor(webDriverType, noopDestructor(), 1)
	winner := noopDestructor()
	r.RegisterDestructor(webDriverType, winner, 5)

	reg, err := r.ResolveDestructor(chromeSessionType)
	require.NoError(t, err)
	assert.Equal(t, 5, reg.Precedence)
}

func TestResolveConcreteBeatsInterface(t *testing.T) {
	r := New()
	r.RegisterDestructor(webDriverType, noopDestructor(), 100)
	r.RegisterDestructor(chromeSessionType, noopDestructor(), 0)

	reg, err := r.ResolveDestructor(chromeSessionType)
	require.NoError(t, err)
	assert.Equal(t, chromeSessionType, reg.Type, "specificity must trump precedence")
}

func TestResolveNoCompatibleRegistration(t *testing.T) {
	r := New()
	r.RegisterDestructor(chromeDriverType, noopDestructor(), 0)

	type unrelated struct{}
	_, err := r.ResolveDestructor(reflect.TypeOf(unrelated{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoDestructor)
}

func TestResolveOnEmptyRegistry(t *testing.T) {
	r := New()

	_, err := r.ResolveDestructor(chromeSessionType)
	assert.ErrorIs(t, err, ErrNoDestructor)
}

func TestRegisterResourceRejectsDuplicates(t *testing.T) {
	r := New()
	r.RegisterResource("browser", &RegisteredResource{Type: chromeSessionType})

	assert.Panics(t, func() {
		r.RegisterResource("browser", &RegisteredResource{Type: chromeSessionType})
	})
}

func TestResourceLookup(t *testing.T) {
	r := New()
	r.RegisterResource("browser", &RegisteredResource{Type: chromeSessionType})

	res, ok := r.Resource("browser")
	require.True(t, ok)
	assert.Equal(t, chromeSessionType, res.Type)

	_, ok = r.Resource("unknown")
	assert.False(t, ok)
}
