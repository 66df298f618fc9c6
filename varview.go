// Package varview provides a columnar, variable-width value container using
// a fixed-width view encoding, together with a snapshot blob format for
// persisting containers.
//
// Each logical value is described by a constant-size 16-byte view slot that
// either embeds short payloads inline (12 bytes or fewer) or references an
// external, append-only data buffer; a 4-byte prefix is stored even for
// out-of-line values so comparisons rarely dereference the data buffer. A
// validity bitmap tracks nulls independently of slot contents, and data
// buffers are reference-counted so containers can transfer, slice and copy
// values without duplicating payload bytes.
//
// # Core Features
//
//   - Bit-exact 16-byte little-endian view slot layout for columnar interop
//   - Inline encoding for short values, shared append-only buffers for long
//   - Null tracking via an LSB-first validity bitmap
//   - Zero-copy ownership transfer and sub-range slicing between containers
//   - Generic containers parametrized by a value codec (text, raw binary)
//   - Snapshot blobs with optional compression (None, Zstd, S2, LZ4) and
//     xxHash64 integrity checksums
//
// # Basic Usage
//
// Creating a text container and writing values:
//
//	import "github.com/arloliu/varview"
//
//	col, _ := varview.NewText()
//	_ = col.SetValueSafe(0, "short")
//	_ = col.SetValueSafe(1, "a value long enough to live out of line")
//	_ = col.SetNull(2)
//	_ = col.SetValueCount(3)
//
//	v, ok := col.GetObject(1) // "a value long enough to live out of line", true
//
// Taking and restoring a snapshot:
//
//	encoder, _ := varview.NewSnapshotEncoder(
//	    blob.WithCompression(format.CompressionZstd),
//	    blob.WithColumnName("user.email"),
//	)
//	snap, _ := encoder.Encode(col)
//
//	restored, _ := blob.Decode(snap.Bytes(), view.TextCodec{})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the view and
// blob packages, simplifying the most common use cases. For fine-grained
// control (custom codecs, allocators, chunk sizes), use those packages
// directly.
package varview

import (
	"github.com/arloliu/varview/blob"
	"github.com/arloliu/varview/internal/hash"
	"github.com/arloliu/varview/view"
)

// NewText creates an empty container for UTF-8 text values.
//
// The container grows on demand through SetSafe/SetValueSafe and validates
// UTF-8 well-formedness in ValidateScalars.
//
// Available options:
//   - view.WithAllocator(alloc)
//   - view.WithInitialCapacity(n)
//   - view.WithChunkSize(n)
func NewText(opts ...view.Option) (*view.Container[string], error) {
	return view.New(view.TextCodec{}, opts...)
}

// NewBinary creates an empty container for raw variable-length binary
// values. No content validation is applied.
func NewBinary(opts ...view.Option) (*view.Container[[]byte], error) {
	return view.New(view.BytesCodec{}, opts...)
}

// NewSnapshotEncoder creates an encoder that serializes containers into
// self-describing snapshot blobs.
//
// Available options:
//   - blob.WithLittleEndian() / blob.WithBigEndian()
//   - blob.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - blob.WithColumnName(name)
func NewSnapshotEncoder(opts ...blob.EncoderOption) (*blob.Encoder, error) {
	return blob.NewEncoder(opts...)
}

// NewSnapshotDecoder parses and verifies a snapshot blob. Use
// blob.DecodeInto or blob.Decode to materialize the values into a typed
// container.
func NewSnapshotDecoder(data []byte) (*blob.Decoder, error) {
	return blob.NewDecoder(data)
}

// ColumnID converts a column name to its 64-bit xxHash64 identifier, the
// same hash stored by blob.WithColumnName. Use it to match snapshot blobs
// to columns without storing variable-length names.
func ColumnID(name string) uint64 {
	return hash.ID(name)
}
