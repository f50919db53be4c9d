package registry

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
)

// Registry is an ordered set of owned handles.
//
// Each entry carries a release func that runs exactly once, when the entry leaves
// the registry: through Release, Drain, or its expiry timer, whichever comes first.
type Registry[T any] struct {
	mu      sync.Mutex
	clock   clock.Clock
	order   []string
	entries map[string]entry[T]
}

type entry[T any] struct {
	value   T
	release func()
}

func New[T any](clk clock.Clock) *Registry[T] {
	if clk == nil {
		clk = clock.New()
	}
	return &Registry[T]{
		clock:   clk,
		entries: map[string]entry[T]{},
	}
}

// Add tracks v under id. It returns false (and tracks nothing) if id is already present.
func (r *Registry[T]) Add(id string, v T, release func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; ok {
		return false
	}
	r.entries[id] = entry[T]{value: v, release: release}
	r.order = append(r.order, id)
	return true
}

// AddExpiring tracks v and schedules its release after ttl.
// The timer is not tied to Drain: if the entry was already released it fires into nothing.
func (r *Registry[T]) AddExpiring(id string, v T, ttl time.Duration, release func()) bool {
	if !r.Add(id, v, release) {
		return false
	}
	r.clock.AfterFunc(ttl, func() { r.Release(id) })
	return true
}

// Release removes id and runs its release func. Releasing an absent id is a no-op.
func (r *Registry[T]) Release(id string) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
		r.order = lo.Without(r.order, id)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	if e.release != nil {
		e.release()
	}
	return true
}

// Drain empties the registry and releases every entry in insertion order.
// It returns how many entries were released.
func (r *Registry[T]) Drain() int {
	r.mu.Lock()
	order := r.order
	entries := r.entries
	r.order = nil
	r.entries = map[string]entry[T]{}
	r.mu.Unlock()

	for _, id := range order {
		if e := entries[id]; e.release != nil {
			e.release()
		}
	}
	return len(order)
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func (r *Registry[T]) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Values returns the tracked values in insertion order.
func (r *Registry[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo.Map(r.order, func(id string, _ int) T { return r.entries[id].value })
}
