package publish

import (
	"context"
	"errors"
	"fmt"
)

// TransientError marks a publish failure worth retrying: network trouble,
// rate limiting, host-side 5xx. The publisher retries these with backoff.
type TransientError struct {
	Reason string
	Err    error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient publish error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("transient publish error: %s", e.Reason)
}

func (e *TransientError) Unwrap() error { return e.Err }

// TerminalError marks a publish failure that retrying cannot fix, such as a
// payload the host rejected. The publisher records it and moves on.
type TerminalError struct {
	Reason string
	Err    error
}

func (e *TerminalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("terminal publish error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("terminal publish error: %s", e.Reason)
}

func (e *TerminalError) Unwrap() error { return e.Err }

// Transient wraps err as retryable.
func Transient(reason string, err error) error {
	return &TransientError{Reason: reason, Err: err}
}

// Terminal wraps err as non-retryable.
func Terminal(reason string, err error) error {
	return &TerminalError{Reason: reason, Err: err}
}

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsCancellation reports whether err was caused by request-level
// cancellation or deadline expiry rather than by the host.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
