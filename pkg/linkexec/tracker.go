package linkexec

import (
	"sync"

	"github.com/google/uuid"
)

// Tracker keeps the latest completed result of a stream of requests where
// only the most recently started request matters. A completion carrying an
// older request id is dropped, so a slow stale run cannot overwrite the
// outcome of a newer one.
type Tracker[T any] struct {
	mu      sync.Mutex
	current string
	value   T
	ok      bool
}

// Begin starts a new request, invalidating every earlier one, and clears the
// stored result. It returns the new request id.
func (t *Tracker[T]) Begin() string {
	id := uuid.NewString()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = id
	var zero T
	t.value = zero
	t.ok = false
	return id
}

// Complete stores v as the result of request id. It reports false, storing
// nothing, when id is no longer the current request.
func (t *Tracker[T]) Complete(id string, v T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id != t.current {
		return false
	}
	t.value = v
	t.ok = true
	return true
}

// Current returns the id of the latest started request.
func (t *Tracker[T]) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Latest returns the stored result, if the current request completed.
func (t *Tracker[T]) Latest() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.ok
}
