// Package errs defines the sentinel errors returned by the glz packages.
//
// Call sites wrap these sentinels with context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// Format errors. Every error in this group wraps ErrFormat.
var (
	// ErrFormat indicates an invalid or truncated bit sequence.
	ErrFormat = errors.New("invalid format")
	// ErrTruncated indicates that the bit sequence ended before a field was complete.
	ErrTruncated = fmt.Errorf("%w: truncated input", ErrFormat)
	// ErrUnterminatedCode indicates a Golomb-Rice unary run without a terminating zero.
	ErrUnterminatedCode = fmt.Errorf("%w: unterminated code", ErrFormat)
	// ErrInvalidOp indicates an operation symbol outside the configured alphabet.
	ErrInvalidOp = fmt.Errorf("%w: invalid operation symbol", ErrFormat)
)

// Encode errors.
var (
	// ErrOverflow indicates that a value does not fit the width allotted by the configuration.
	ErrOverflow = errors.New("value overflows allotted width")
	// ErrWidthExceeded indicates a requested width larger than the symbol type can hold.
	ErrWidthExceeded = errors.New("width exceeds symbol capacity")
	// ErrCast indicates a decoded value that does not fit the requested symbol type.
	ErrCast = errors.New("decoded value does not fit symbol type")
)

// Decode safety limits.
var (
	ErrDepthExceeded   = errors.New("decode recursion depth exceeded")
	ErrRuntimeExceeded = errors.New("decode runtime exceeded")
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidTable  = errors.New("invalid symbol table")
)

// Container errors.
var (
	ErrInvalidHeaderSize      = errors.New("invalid header size")
	ErrInvalidMagic           = errors.New("invalid magic number")
	ErrUnsupportedVersion     = errors.New("unsupported version")
	ErrInvalidHeaderFlags     = errors.New("invalid header flags")
	ErrInvalidIndex           = errors.New("invalid index section")
	ErrInvalidCompressionType = errors.New("invalid compression type")
	ErrEntryNotFound          = errors.New("entry not found")
	ErrChecksumMismatch       = errors.New("checksum mismatch")
	ErrNoEntries              = errors.New("no entries to encode")
)
