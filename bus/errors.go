package bus

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport wraps port I/O and line-control failures.
	ErrTransport = errors.New("bus: transport error")
	// ErrShortRead indicates the response ended before the expected length or line terminator.
	ErrShortRead = errors.New("bus: short read")
	// ErrEmptyRequest is returned when Exchange is called without request bytes.
	ErrEmptyRequest = errors.New("bus: empty request")
	// ErrExhausted matches every *ExhaustedError.
	ErrExhausted = errors.New("bus: retries exhausted")
	// ErrInvalidAttempts is returned by NewRetrier for a budget below one.
	ErrInvalidAttempts = errors.New("bus: max attempts must be at least 1")
)

// ExhaustedError is returned by Retrier.Do after every attempt failed.
// It unwraps to each attempt's error, in attempt order.
type ExhaustedError struct {
	Attempts []error
}

func (e *ExhaustedError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "bus: retries exhausted after %d attempts", len(e.Attempts))
	for i, err := range e.Attempts {
		fmt.Fprintf(&sb, "; attempt %d: %v", i+1, err)
	}

	return sb.String()
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

func (e *ExhaustedError) Unwrap() []error {
	return e.Attempts
}

// Last returns the error of the final attempt.
func (e *ExhaustedError) Last() error {
	if len(e.Attempts) == 0 {
		return nil
	}

	return e.Attempts[len(e.Attempts)-1]
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not retryable. Retrier.Do returns err itself, unwrapped.
func Permanent(err error) error {
	if err == nil {
		return nil
	}

	return &permanentError{err: err}
}
