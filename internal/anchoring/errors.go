package anchoring

import (
	"errors"
	"fmt"
)

var (
	// ErrScreeningNotFound reports an anchor request for an unknown
	// screening identifier. Never retried.
	ErrScreeningNotFound = errors.New("screening not found")

	// ErrStoreUnavailable reports that no screening store was configured.
	// Surfaced immediately, never retried.
	ErrStoreUnavailable = errors.New("screening store unavailable")

	// ErrUnauthorized reports that the gateway rejected the project key.
	ErrUnauthorized = errors.New("anchoring endpoint rejected project key")

	// ErrUnreachable reports a transport-level failure talking to the
	// gateway.
	ErrUnreachable = errors.New("anchoring endpoint unreachable")
)

// UpstreamError reports an exhausted retry budget with the last
// underlying submission error attached.
type UpstreamError struct {
	Attempts int
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("anchoring failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
