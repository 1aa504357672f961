package parser

import "errors"

// Errors that occur during parsing, named and grounded on the teacher's
// message/parse.go sentinel errors, reused here for the lazy parser. A
// missing boundary parameter is deliberately not one of these: per the
// error propagation policy it is recorded as a MalformedBoundary flag on
// the affected part instead of being thrown, since the rest of the message
// can still be parsed around it.
var (
	// ErrLargeHeader is returned when a part's header block grows past
	// WithMaxHeaderLength while the terminating blank line is being sought.
	ErrLargeHeader = errors.New("parser: header exceeds the maximum parse length")

	// ErrLargePart is returned when a part's content grows past
	// WithMaxPartLength while its terminating boundary is being sought.
	ErrLargePart = errors.New("parser: part content exceeds the maximum parse length")

	// ErrIoFailure wraps an underlying ByteSource read/seek error. The
	// already-parsed subtree up to the point of failure remains usable
	// read-only; nothing is rolled back.
	ErrIoFailure = errors.New("parser: underlying byte source failed")
)
