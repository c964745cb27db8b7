package events

import (
	stderrors "errors"
	"fmt"

	"github.com/arthur-debert/relay/pkg/errors"
)

// DeliveryError aggregates the handler faults of one best-effort
// publish. It is returned only under the default policy; fail-fast
// returns the first fault directly.
type DeliveryError struct {
	// Faults holds one wrapped error per failing handler, each
	// carrying the registration identity in its details.
	Faults []error
	// Delivered is the number of handlers that completed without fault.
	Delivered int
}

// Error implements the error interface
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed for %d of %d handler(s)", len(e.Faults), e.Delivered+len(e.Faults))
}

// Unwrap exposes the individual faults to errors.Is and errors.As.
func (e *DeliveryError) Unwrap() []error {
	return e.Faults
}

// dispatch invokes each handler in the snapshot and applies the failure
// policy. identity reports the registration identity of snapshot[i] for
// error details and logging.
func dispatch[T any](opts options, snapshot []Handler[T], payload T, identity func(i int) interface{}) error {
	var faults []error

	for i, handler := range snapshot {
		err := invoke(handler, payload)
		if err == nil {
			continue
		}

		opts.logger.Warn().
			Err(err).
			Interface("identity", identity(i)).
			Msg("Handler fault during publish")

		// A recovered panic is already a coded error; anything else
		// gets the generic delivery code.
		var fault *errors.RelayError
		if !stderrors.As(err, &fault) {
			fault = errors.Wrap(err, errors.ErrDelivery, "handler fault")
		}
		fault.WithDetail("identity", identity(i))

		if opts.failFast {
			fault.WithDetail("skipped", len(snapshot)-i-1)
			return fault
		}
		faults = append(faults, fault)
	}

	if len(faults) > 0 {
		return &DeliveryError{
			Faults:    faults,
			Delivered: len(snapshot) - len(faults),
		}
	}
	return nil
}

// invoke runs one handler, converting a panic into a handler fault so
// a misbehaving consumer cannot take down the publisher.
func invoke[T any](handler Handler[T], payload T) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Newf(errors.ErrHandlerPanic, "handler panicked: %v", rec)
		}
	}()
	return handler(payload)
}
