// Package errs defines the sentinel errors shared across varview packages.
//
// Call sites wrap these with fmt.Errorf("%w: detail", ...) so callers can
// match with errors.Is while still getting contextual messages.
package errs

import "errors"

var (
	// ErrIndexOutOfRange indicates a checked accessor was called with an
	// index outside the container's value range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidLength indicates a negative or otherwise impossible value
	// length in a view slot.
	ErrInvalidLength = errors.New("invalid value length")

	// ErrInvalidSlot indicates a view slot whose fields violate the slot
	// layout contract (bad buffer index, offset past buffer end, ...).
	ErrInvalidSlot = errors.New("invalid view slot")

	// ErrValidationFailed indicates ValidateScalars found a value that the
	// container's codec rejected.
	ErrValidationFailed = errors.New("scalar validation failed")

	// ErrAllocationFailed indicates the allocator could not provide a buffer.
	ErrAllocationFailed = errors.New("buffer allocation failed")

	// ErrBufferReleased indicates a use-after-release of a refcounted buffer.
	ErrBufferReleased = errors.New("buffer already released")

	// ErrCodecMismatch indicates a transfer between containers whose value
	// codecs disagree.
	ErrCodecMismatch = errors.New("container codec mismatch")

	// ErrInvalidHeaderSize indicates a snapshot header of the wrong byte size.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidHeaderFlags indicates a snapshot header with a bad magic
	// number or unsupported flag combination.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")

	// ErrInvalidBlobSize indicates a snapshot blob too short for the
	// sections its header declares.
	ErrInvalidBlobSize = errors.New("invalid blob size")

	// ErrChecksumMismatch indicates snapshot payload corruption detected by
	// the xxHash64 trailer.
	ErrChecksumMismatch = errors.New("blob checksum mismatch")

	// ErrInvalidCompression indicates an unknown compression type in a
	// snapshot header or encoder option.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrInvalidCapacity indicates a negative capacity or chunk size option.
	ErrInvalidCapacity = errors.New("invalid capacity")
)
