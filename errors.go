package bindcheck

import "errors"

// Precondition errors. These describe a pipeline that was set up wrong
// before any invocation ran; binding mismatches are never errors and are
// reported as diagnostic colors instead.
var (
	// ErrNoTexture is returned when Bindings has no texture to sample.
	ErrNoTexture = errors.New("bindcheck: no texture bound")

	// ErrStorageTooSmall is returned when the storage buffer cannot hold
	// every reference segment.
	ErrStorageTooSmall = errors.New("bindcheck: storage buffer too small")

	// ErrInvalidReference is returned when a Reference is unusable.
	ErrInvalidReference = errors.New("bindcheck: invalid reference")

	// ErrInvalidSize is returned for non-positive dispatch dimensions.
	ErrInvalidSize = errors.New("bindcheck: invalid dispatch size")

	// ErrClosed is returned by Dispatch after the verifier was closed.
	ErrClosed = errors.New("bindcheck: verifier closed")

	// ErrUnknownDiagnostic is returned when parsing an unknown class name.
	ErrUnknownDiagnostic = errors.New("bindcheck: unknown diagnostic")
)
