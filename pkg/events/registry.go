package events

import (
	"sync"
)

// Handler consumes one published payload. A non-nil return value is a
// handler fault; how faults affect the remaining deliveries of a
// publish depends on the registry's failure policy.
type Handler[T any] func(payload T) error

// Registry is a keyed publish/subscribe registry. Each registration is
// addressed by a caller-supplied comparable key; registering a key that
// is already taken silently replaces the previous handler
// (last-write-wins).
type Registry[K comparable, T any] struct {
	mu       sync.RWMutex
	handlers map[K]Handler[T]
	opts     options
}

// New creates a new Registry instance. The zero options give
// best-effort delivery: every live handler is invoked and faults are
// aggregated into the returned error.
func New[K comparable, T any](opts ...Option) *Registry[K, T] {
	return &Registry[K, T]{
		handlers: make(map[K]Handler[T]),
		opts:     buildOptions(opts),
	}
}

// Register makes handler visible to subsequent Publish calls under key,
// immediately. Registration cannot fail; if key is already registered
// the previous handler is silently replaced. A nil handler registers
// nothing and returns an inert handle.
//
// The returned handle cancels by key: if this key is later overwritten
// by another Register call, Cancel removes whatever handler occupies
// the key at that point, not necessarily the one registered here.
func (r *Registry[K, T]) Register(key K, handler Handler[T]) *Registration {
	if handler == nil {
		return &Registration{cancel: func() {}}
	}

	r.mu.Lock()
	_, replaced := r.handlers[key]
	r.handlers[key] = handler
	r.mu.Unlock()

	r.opts.logger.Debug().
		Interface("key", key).
		Bool("replaced", replaced).
		Msg("Handler registered")

	return &Registration{cancel: func() {
		r.mu.Lock()
		delete(r.handlers, key)
		r.mu.Unlock()
		r.opts.logger.Debug().Interface("key", key).Msg("Handler cancelled")
	}}
}

// Publish delivers payload to every handler live at the moment of the
// call, in unspecified order. Delivery runs against a snapshot of the
// handler set, so a handler may itself call Register or Cancel on this
// registry without corrupting the store or changing what this publish
// delivers.
//
// Under the default policy every handler is invoked and faults are
// aggregated into a *DeliveryError. Under fail-fast (WithFailFast) the
// first fault aborts the remaining deliveries and is returned directly.
// A handler panic is recovered and reported as a fault either way.
func (r *Registry[K, T]) Publish(payload T) error {
	r.mu.RLock()
	keys := make([]K, 0, len(r.handlers))
	snapshot := make([]Handler[T], 0, len(r.handlers))
	for key, handler := range r.handlers {
		keys = append(keys, key)
		snapshot = append(snapshot, handler)
	}
	r.mu.RUnlock()

	return dispatch(r.opts, snapshot, payload, func(i int) interface{} {
		return keys[i]
	})
}

// Has checks if a handler is registered under key
func (r *Registry[K, T]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.handlers[key]
	return exists
}

// Len returns the number of live registrations
func (r *Registry[K, T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers)
}

// Keys returns the keys of all live registrations, in no particular order
func (r *Registry[K, T]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, 0, len(r.handlers))
	for key := range r.handlers {
		keys = append(keys, key)
	}
	return keys
}

// Clear removes all registrations. Outstanding handles stay valid;
// cancelling them is a no-op for keys that are no longer occupied.
func (r *Registry[K, T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers = make(map[K]Handler[T])
}
