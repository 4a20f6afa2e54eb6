package session

import "sync"

// Tracked is a value paired with a version counter. Consumers remember
// the version they last rendered and cheaply check whether the value
// changed since, without comparing the value itself.
type Tracked[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
}

// Set replaces the value and bumps the version.
func (t *Tracked[T]) Set(value T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = value
	t.version++
}

// Get returns the current value and its version.
func (t *Tracked[T]) Get() (T, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.version
}

// Changed reports whether the value moved past the given version.
func (t *Tracked[T]) Changed(since uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version != since
}

// update mutates the value in place and bumps the version.
func (t *Tracked[T]) update(fn func(T) T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = fn(t.value)
	t.version++
}
