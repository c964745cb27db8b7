// Package broker provides a named-topic layer over the events package:
// one Broker owns a set of subscriber registries addressed by topic
// name. The broker is constructed by, and its lifetime owned by,
// whichever scope needs it; there is no package-level instance.
package broker

import (
	"sort"
	"sync"

	"github.com/arthur-debert/relay/pkg/errors"
	"github.com/arthur-debert/relay/pkg/events"
)

// Broker is a thread-safe registry of topics, each holding its own set
// of subscribers for payloads of type T.
type Broker[T any] struct {
	mu     sync.RWMutex
	topics map[string]*events.Set[T]
	opts   []events.Option
}

// New creates a new Broker instance. The options are applied to every
// topic registry the broker creates.
func New[T any](opts ...events.Option) *Broker[T] {
	return &Broker[T]{
		topics: make(map[string]*events.Set[T]),
		opts:   opts,
	}
}

// Topic returns the registry for the named topic, creating it if needed.
func (b *Broker[T]) Topic(name string) *events.Set[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	topic, exists := b.topics[name]
	if !exists {
		topic = events.NewSet[T](b.opts...)
		b.topics[name] = topic
	}
	return topic
}

// Subscribe registers a handler on the named topic, creating the topic
// if needed. The returned handle cancels only this subscription; an
// empty topic stays listed until Remove.
func (b *Broker[T]) Subscribe(topic string, handler events.Handler[T]) *events.Registration {
	return b.Topic(topic).Register(handler)
}

// Publish delivers payload to every subscriber of the named topic. It
// returns ErrTopicNotFound if the topic has never been created;
// delivery faults are reported per the broker's failure policy.
func (b *Broker[T]) Publish(topic string, payload T) error {
	b.mu.RLock()
	registry, exists := b.topics[topic]
	b.mu.RUnlock()

	if !exists {
		return errors.Newf(errors.ErrTopicNotFound, "topic '%s' not found", topic)
	}
	return registry.Publish(payload)
}

// Has checks if a topic exists
func (b *Broker[T]) Has(topic string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.topics[topic]
	return exists
}

// Topics returns all topic names in sorted order
func (b *Broker[T]) Topics() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.topics))
	for name := range b.topics {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Count returns the number of topics
func (b *Broker[T]) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.topics)
}

// Subscribers returns the number of live subscriptions on a topic, or
// zero if the topic does not exist.
func (b *Broker[T]) Subscribers(topic string) int {
	b.mu.RLock()
	registry, exists := b.topics[topic]
	b.mu.RUnlock()

	if !exists {
		return 0
	}
	return registry.Len()
}

// Remove drops a topic and all its subscriptions. It returns
// ErrTopicNotFound if the topic does not exist. Outstanding handles for
// the dropped topic become inert.
func (b *Broker[T]) Remove(topic string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	registry, exists := b.topics[topic]
	if !exists {
		return errors.Newf(errors.ErrTopicNotFound, "topic '%s' not found", topic)
	}

	registry.Clear()
	delete(b.topics, topic)
	return nil
}
