package events

import "sync"

// Registration is the opaque handle returned by a register call. Its
// only operation is Cancel.
type Registration struct {
	once   sync.Once
	cancel func()
}

// Cancel removes the registration that produced this handle. It is
// idempotent: calling it more than once, or after the registry has been
// discarded, has no effect. On a keyed registry, cancellation is by
// key; see Registry.Register for the overwrite hazard.
func (r *Registration) Cancel() {
	if r == nil {
		return
	}
	r.once.Do(r.cancel)
}
