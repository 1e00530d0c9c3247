package rrule

import (
	"errors"
	"fmt"

	"github.com/arrowloop/rrulecore/internal/engine"
)

// Sentinel errors a caller can match with errors.Is.
var (
	ErrInvalidOption      = errors.New("rrulecore: invalid rule option")
	ErrInvalidRRuleString = errors.New("rrulecore: invalid RRULE string")
	ErrOverConstrained    = errors.New("rrulecore: rule is over-constrained")
)

// RuleError is the structured error type that names the failing operation
// and wraps the underlying cause. AllWithLimit returns it for engine
// failures, wrapping ErrOverConstrained when the engine's bound trips.
type RuleError struct {
	Op  string
	Err error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rrulecore: %s: %v", e.Op, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

func newRuleError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RuleError{Op: op, Err: err}
}

// isOverConstrained reports whether err originated from the engine's own
// over-constrained safety bound. AllWithLimit uses it to wrap such errors
// as ErrOverConstrained, so its callers can test errors.Is(err,
// ErrOverConstrained) without importing internal/engine themselves;
// Iterator, All, Between, Before and After return no error and simply end
// the stream when the bound trips.
func isOverConstrained(err error) bool {
	var oce *engine.OverConstrainedError
	return errors.As(err, &oce)
}
