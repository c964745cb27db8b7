package events

import (
	"sync"
	"unsafe"
)

// Set is the anonymous publish/subscribe variant: the handler value
// itself is the registration identity. Registering the same function
// value twice stores it once (set semantics); since handlers are
// typically unique closures this rarely collides in practice.
type Set[T any] struct {
	mu       sync.RWMutex
	handlers map[uintptr]Handler[T]
	opts     options
}

// NewSet creates a new Set instance. It accepts the same options as New.
func NewSet[T any](opts ...Option) *Set[T] {
	return &Set[T]{
		handlers: make(map[uintptr]Handler[T]),
		opts:     buildOptions(opts),
	}
}

// Register makes handler visible to subsequent Publish calls,
// immediately. Registration cannot fail; submitting a handler value
// that is already present is a no-op apart from the returned handle. A
// nil handler registers nothing and returns an inert handle.
func (s *Set[T]) Register(handler Handler[T]) *Registration {
	if handler == nil {
		return &Registration{cancel: func() {}}
	}

	id := handlerID(handler)

	s.mu.Lock()
	_, present := s.handlers[id]
	if !present {
		s.handlers[id] = handler
	}
	s.mu.Unlock()

	s.opts.logger.Debug().
		Uint64("handler", uint64(id)).
		Bool("duplicate", present).
		Msg("Handler registered")

	return &Registration{cancel: func() {
		s.mu.Lock()
		delete(s.handlers, id)
		s.mu.Unlock()
		s.opts.logger.Debug().Uint64("handler", uint64(id)).Msg("Handler cancelled")
	}}
}

// Publish delivers payload to every handler live at the moment of the
// call, in unspecified order, with the same snapshot and failure-policy
// semantics as Registry.Publish.
func (s *Set[T]) Publish(payload T) error {
	s.mu.RLock()
	ids := make([]uintptr, 0, len(s.handlers))
	snapshot := make([]Handler[T], 0, len(s.handlers))
	for id, handler := range s.handlers {
		ids = append(ids, id)
		snapshot = append(snapshot, handler)
	}
	s.mu.RUnlock()

	return dispatch(s.opts, snapshot, payload, func(i int) interface{} {
		return ids[i]
	})
}

// Len returns the number of live registrations
func (s *Set[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.handlers)
}

// Clear removes all registrations
func (s *Set[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers = make(map[uintptr]Handler[T])
}

// handlerID returns the identity of a handler value. Function values
// are not comparable, and reflect's func Pointer is the code pointer,
// which every closure built from the same literal shares. The func
// value's data word points at the funcval object instead: the same
// handler value yields the same word, and each closure allocation
// yields a distinct one. The object stays reachable through the map
// entry for as long as the id is in use.
func handlerID[T any](handler Handler[T]) uintptr {
	return uintptr(*(*unsafe.Pointer)(unsafe.Pointer(&handler)))
}
