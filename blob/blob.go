// Package blob serializes variable-width view containers into
// self-describing snapshot blobs and reconstructs containers from them.
//
// Blob layout:
//
//	header   fixed 32 bytes (section.ViewHeader)
//	data     view slots + validity bitmap + buffer directory + payloads,
//	         optionally compressed as a single unit
//	trailer  8-byte xxHash64 checksum of everything before it
//
// The data section's uncompressed form is:
//
//	slots      16 bytes per logical value
//	validity   (valueCount+7)/8 bytes
//	directory  uint32 committed length per data buffer
//	payloads   each buffer's committed bytes, concatenated
//
// Slot bytes keep their wire-exact little-endian layout regardless of the
// header's endianness flag; the flag governs only the header fields and the
// buffer directory.
package blob

import (
	"github.com/arloliu/varview/format"
	"github.com/arloliu/varview/section"
)

// Blob is an encoded container snapshot.
type Blob struct {
	header section.ViewHeader
	data   []byte
}

// Bytes returns the serialized blob.
func (b Blob) Bytes() []byte {
	return b.data
}

// ValueCount returns the number of logical values in the snapshot.
func (b Blob) ValueCount() int {
	return int(b.header.ValueCount)
}

// Kind returns the codec kind the snapshot was taken from.
func (b Blob) Kind() format.CodecKind {
	return b.header.Flag.Kind()
}

// Compression returns the compression applied to the data section.
func (b Blob) Compression() format.CompressionType {
	return b.header.Flag.CompressionType()
}

// ColumnID returns the xxHash64 of the column name, or 0 if unnamed.
func (b Blob) ColumnID() uint64 {
	return b.header.ColumnID
}
