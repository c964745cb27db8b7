// Package events provides a generic, thread-safe publish/subscribe
// registry for decoupling event producers from consumers. It supports
// a keyed variant (Registry) where registrations are addressed by a
// caller-supplied key, and an anonymous variant (Set) where the handler
// value itself is the identity.
//
// A registry is constructed explicitly and owned by whichever scope
// needs it; there is no package-level singleton. Callers are
// responsible for cancelling their registrations before the owning
// component goes away, otherwise handlers stay live for the registry's
// lifetime.
//
//	reg := events.New[string, string]()
//	handle := reg.Register("sidebar", func(msg string) error {
//		render(msg)
//		return nil
//	})
//	defer handle.Cancel()
//
//	_ = reg.Publish("hello")
package events
