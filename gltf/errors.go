package gltf

import (
	"errors"

	"github.com/robert-malhotra/go-gltf/internal/layout"
)

// Common errors. All are reported synchronously at the point of use; a
// structural error aborts the whole operation without partial writes to
// caller-owned memory.
var (
	// ErrTypeMismatch means the requested output element type is not
	// compatible with the accessor's declared shape.
	ErrTypeMismatch = errors.New("element type does not match accessor")

	// ErrUnregisteredType means the output element type has no registered
	// traits. Register it with RegisterElement before decoding.
	ErrUnregisteredType = errors.New("element type not registered")

	// ErrIndexOutOfRange means a logical element index is >= the
	// accessor's count.
	ErrIndexOutOfRange = layout.ErrIndexOutOfRange

	// ErrOutOfBounds means a computed byte span exceeds a buffer's
	// declared extent. This signals a malformed or adversarial schema.
	ErrOutOfBounds = layout.ErrOutOfBounds

	// ErrMalformedSparse means a sparse index is out of range or the
	// index list is not strictly ascending.
	ErrMalformedSparse = errors.New("malformed sparse accessor data")

	// ErrDestinationTooSmall means the caller-owned destination cannot
	// hold the accessor's elements at the requested stride.
	ErrDestinationTooSmall = errors.New("destination too small")

	// ErrSourceUnavailable means the buffer source could not resolve a
	// byte span for a referenced buffer.
	ErrSourceUnavailable = errors.New("buffer source unavailable")
)
