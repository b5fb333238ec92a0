package scope

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/scopedown/internal/resource"
)

type browser struct{}

func browserKey(qualifier string) resource.Key {
	return resource.NewKey(reflect.TypeOf(&browser{}), qualifier)
}

func TestFirstOccurrenceIsUnique(t *testing.T) {
	c := NewChecker()

	assert.True(t, c.IsUniqueInScope(browserKey("")))
}

func TestRepeatedKeyIsNotUnique(t *testing.T) {
	c := NewChecker()
	key := browserKey("")

	assert.True(t, c.IsUniqueInScope(key))
	assert.False(t, c.IsUniqueInScope(key))
	assert.False(t, c.IsUniqueInScope(key))
}

func TestQualifiersSeparateKeys(t *testing.T) {
	c := NewChecker()

	assert.True(t, c.IsUniqueInScope(browserKey("")))
	assert.True(t, c.IsUniqueInScope(browserKey("admin")))
	assert.False(t, c.IsUniqueInScope(browserKey("default")), "empty qualifier and 'default' must be the same key")
}

func TestFreshCheckerForgetsPreviousScope(t *testing.T) {
	key := browserKey("")

	first := NewChecker()
	assert.True(t, first.IsUniqueInScope(key))

	second := NewChecker()
	assert.True(t, second.IsUniqueInScope(key), "a new pass must not inherit state")
}
