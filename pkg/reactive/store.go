package reactive

import (
	"sort"
	"sync"
)

// Store is an observable map from names to values.
//
// Reads of a single key subscribe to that key only, including reads of a key
// that does not exist yet, so adding it later notifies the reader. Keys and
// Len subscribe to the key set.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
	deps   map[string]*dep
	keys   dep
}

// NewStore creates a store seeded with a copy of initial.
func NewStore(initial map[string]any) *Store {
	s := &Store{
		values: make(map[string]any, len(initial)),
		deps:   make(map[string]*dep),
	}
	for k, v := range initial {
		s.values[k] = v
	}
	return s
}

// depFor returns the dependency slot of key, creating it on demand.
func (s *Store) depFor(key string) *dep {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deps[key]
	if !ok {
		d = &dep{}
		s.deps[key] = d
	}
	return d
}

// Get returns the value of key and subscribes the current listener to it.
func (s *Store) Get(key string) (any, bool) {
	if Tracking() {
		s.depFor(key).track()
	}
	return s.Peek(key)
}

// Peek returns the value of key without subscribing.
func (s *Store) Peek(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present, subscribing to key.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set stores value under key. Subscribers of key are notified when the value
// changed; subscribers of the key set when key is new.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	old, existed := s.values[key]
	changed := !existed || !Same(old, value)
	if changed {
		s.values[key] = value
	}
	d := s.deps[key]
	s.mu.Unlock()

	if !changed {
		return
	}
	Batch(func() {
		if d != nil {
			d.notify()
		}
		if !existed {
			s.keys.notify()
		}
	})
}

// Delete removes key, reporting whether it was present.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	_, existed := s.values[key]
	if existed {
		delete(s.values, key)
	}
	d := s.deps[key]
	s.mu.Unlock()

	if !existed {
		return false
	}
	Batch(func() {
		if d != nil {
			d.notify()
		}
		s.keys.notify()
	})
	return true
}

// Keys returns the sorted key set and subscribes to its changes.
func (s *Store) Keys() []string {
	s.keys.track()

	s.mu.RLock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Len returns the number of keys and subscribes to the key set.
func (s *Store) Len() int {
	s.keys.track()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Snapshot returns an untracked copy of the current contents.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
