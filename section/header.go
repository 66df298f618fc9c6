package section

import (
	"github.com/arloliu/varview/endian"
	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/format"
)

// ViewHeader is the fixed 32-byte header of a container snapshot blob.
//
// Layout:
//
//	bytes[0:4]   ViewFlag (options uint16 + codec kind + compression)
//	bytes[4:12]  uint64 column ID (xxHash64 of the column name, 0 if unnamed)
//	bytes[12:16] uint32 value count
//	bytes[16:20] uint32 data buffer count
//	bytes[20:24] uint32 uncompressed data section size
//	bytes[24:32] reserved, must be zero
//
// The data section follows the header: view slots (16 x value count), the
// validity bitmap, the buffer length directory (4 bytes per buffer), then
// the buffer payloads, optionally compressed as one unit. An 8-byte
// xxHash64 trailer closes the blob.
type ViewHeader struct {
	Flag        ViewFlag
	ColumnID    uint64
	ValueCount  uint32
	BufferCount uint32
	DataSize    uint32
	Reserved    [8]byte
}

// NewViewHeader creates a header for the given codec kind and compression.
func NewViewHeader(kind format.CodecKind, compression format.CompressionType) *ViewHeader {
	return &ViewHeader{
		Flag: NewViewFlag(kind, compression),
	}
}

// Parse parses the header from a byte slice.
// It returns an error if data is not exactly 32 bytes or the flags are
// invalid.
func (h *ViewHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The options word is always little-endian; it determines the engine
	// for the remaining fields.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CodecKind = data[2]
	h.Flag.Compression = data[3]

	engine := h.GetEndianEngine()

	h.ColumnID = engine.Uint64(data[4:12])
	h.ValueCount = engine.Uint32(data[12:16])
	h.BufferCount = engine.Uint32(data[16:20])
	h.DataSize = engine.Uint32(data[20:24])
	copy(h.Reserved[:], data[24:32])

	return h.Flag.Validate()
}

// Bytes serializes the header into a fresh 32-byte slice.
func (h *ViewHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CodecKind
	b[3] = h.Flag.Compression

	engine := h.GetEndianEngine()

	engine.PutUint64(b[4:12], h.ColumnID)
	engine.PutUint32(b[12:16], h.ValueCount)
	engine.PutUint32(b[16:20], h.BufferCount)
	engine.PutUint32(b[20:24], h.DataSize)
	copy(b[24:32], h.Reserved[:])

	return b
}

// GetEndianEngine returns the engine matching the header's endianness flag.
func (h *ViewHeader) GetEndianEngine() endian.EndianEngine {
	if h.Flag.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}
