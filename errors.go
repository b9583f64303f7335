package typedstream

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the reader and unarchiver.
//
// All of them are reported to callers wrapped in a [StreamError], so
// errors.Is(err, ErrReferenceKindMismatch) (for example) works regardless of
// the position/detail context attached at the point of failure.
var (
	// ErrInvalidTypedStream is the single error kind for structural and
	// tagging faults: premature EOF mid-value, invalid signature, invalid tag
	// in context, empty/nil type-encoding, malformed array/struct encoding,
	// boolean outside {0,1}, NUL in a C string, unsupported streamer version.
	ErrInvalidTypedStream = errors.New("typedstream: invalid typed stream")

	// ErrReferenceKindMismatch is returned when a reference's declared kind
	// does not match the kind stored in the shared-object table slot.
	ErrReferenceKindMismatch = errors.New("typedstream: reference kind mismatch")

	// ErrUnsupportedClassVersion is returned when a known class's
	// contribution hook is asked to decode a version it does not implement.
	ErrUnsupportedClassVersion = errors.New("typedstream: unsupported class version")

	// ErrClassHierarchyMismatch is returned when the wire superclass name
	// disagrees with the declared base archived-name of a known class.
	ErrClassHierarchyMismatch = errors.New("typedstream: class hierarchy mismatch")

	// ErrUnexpectedEncoding is returned by the decode-by-expected-type APIs
	// when the wire encoding does not match what the caller expected.
	ErrUnexpectedEncoding = errors.New("typedstream: unexpected encoding")

	// ErrUnexpectedClass is returned when a decoded object is not an instance
	// of the expected known class (or one of its subclasses).
	ErrUnexpectedClass = errors.New("typedstream: unexpected class")

	// ErrMultipleRoots is returned by DecodeSingleRoot when the stream
	// contains more than one top-level typed-value group.
	ErrMultipleRoots = errors.New("typedstream: multiple roots")

	// ErrNoRoots is returned by DecodeSingleRoot when the stream contains no
	// top-level typed-value groups at all.
	ErrNoRoots = errors.New("typedstream: no roots")
)

// StreamError wraps a sentinel error with positional context about where in
// the byte stream (or logical decode) the error occurred.
type StreamError struct {
	// Err is the underlying sentinel error.
	Err error
	// Pos is the byte offset in the input where the error was detected, or
	// -1 if the error was detected above the byte level (e.g. class lookup).
	Pos int
	// Detail provides additional context about the error.
	Detail string
}

// Error returns a human-readable description of the stream error.
func (e *StreamError) Error() string {
	if e.Pos < 0 {
		if e.Detail != "" {
			return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
		}
		return e.Err.Error()
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s at pos %d: %s", e.Err.Error(), e.Pos, e.Detail)
	}
	return fmt.Sprintf("%s at pos %d", e.Err.Error(), e.Pos)
}

// Unwrap returns the underlying sentinel error, enabling errors.Is() matching.
func (e *StreamError) Unwrap() error {
	return e.Err
}

// newStreamErr creates a StreamError with a byte position and optional detail.
func newStreamErr(err error, pos int, detail string) *StreamError {
	return &StreamError{Err: err, Pos: pos, Detail: detail}
}

// newErr creates a StreamError with no byte position (e.g. registry/class
// hierarchy errors, which are detected above the byte-reading layer).
func newErr(err error, detail string) *StreamError {
	return &StreamError{Err: err, Pos: -1, Detail: detail}
}
