package instancestore

import (
	"sync"

	"github.com/vk/scopedown/internal/resource"
)

// Store maps resource keys to their instance holders. One Store is shared by
// every scope of a test run; concurrent passes are safe because sync.Map
// gives atomic load/store/delete per key.
type Store struct {
	holders sync.Map // Key: resource.Key, Value: *Holder
}

// New creates an empty instance store.
func New() *Store {
	return &Store{}
}

// Put records the holder for a key, replacing any previous entry. It is the
// write side of the creation subsystem; the teardown engine never calls it.
func (s *Store) Put(key resource.Key, holder *Holder) {
	s.holders.Store(key, holder)
}

// Get returns the holder for a key. The second return value is false when no
// instance was ever recorded for the key, which is a normal outcome when
// upstream setup failed.
func (s *Store) Get(key resource.Key) (*Holder, bool) {
	value, ok := s.holders.Load(key)
	if !ok {
		return nil, false
	}
	return value.(*Holder), true
}

// Remove drops the entry for a key. Removing an absent key is a no-op.
func (s *Store) Remove(key resource.Key) {
	s.holders.Delete(key)
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	count := 0
	s.holders.Range(func(any, any) bool {
		count++
		return true
	})
	return count
}
