package domain

import "errors"

// Sentinel errors returned by services and repositories. Callers branch with
// errors.Is; controllers map them to HTTP status codes.
var (
	// ErrNotFound means the event (or other entity) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller is not the organizer of the target event.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState means a stage config carries a mode or music type
	// outside the known enumeration. Rendering fails closed on it.
	ErrInvalidState = errors.New("invalid stage state")
	// ErrPersistence wraps storage collaborator failures on the write path.
	ErrPersistence = errors.New("persistence failure")
	// ErrUpstreamFetch is reserved for proxied external resources; it carries
	// the originating status in the wrapped message when available.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
)
