package view

import (
	"fmt"

	"github.com/arloliu/varview/endian"
	"github.com/arloliu/varview/errs"
)

// Slot layout constants. Every logical value is described by a fixed
// 16-byte little-endian slot:
//
//	bytes[0:4]   int32 length
//	if length <= 12:
//	  bytes[4:16]  inline payload, zero-padded to 12 bytes
//	else:
//	  bytes[4:8]   4-byte prefix (first 4 bytes of payload)
//	  bytes[8:12]  int32 buffer index
//	  bytes[12:16] int32 offset into that buffer
const (
	SlotSize      = 16 // fixed slot size in bytes
	InlineSize    = 12 // payloads at or under this length are embedded in the slot
	LengthWidth   = 4  // int32 length field
	PrefixWidth   = 4  // prefix bytes stored for out-of-line payloads
	BufIndexWidth = 4  // int32 buffer index field
)

// ViewSlot is the decoded form of one 16-byte view descriptor.
//
// Exactly one of the two variants is meaningful, discriminated by Length:
// Inline holds the payload when Length <= InlineSize, otherwise Prefix,
// BufferIndex and Offset locate the payload in an external data buffer.
type ViewSlot struct {
	Length      int32
	Inline      [InlineSize]byte
	Prefix      [PrefixWidth]byte
	BufferIndex int32
	Offset      int32
}

// IsInline reports whether the slot embeds its payload directly.
func (s *ViewSlot) IsInline() bool {
	return s.Length <= InlineSize
}

// Parse decodes the slot from a 16-byte region.
// It returns an error if data is not exactly SlotSize bytes or the length
// field is negative.
func (s *ViewSlot) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) != SlotSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrInvalidSlot, SlotSize, len(data))
	}

	s.Length = int32(engine.Uint32(data[0:LengthWidth]))
	if s.Length < 0 {
		return fmt.Errorf("%w: negative length %d", errs.ErrInvalidLength, s.Length)
	}

	if s.Length <= InlineSize {
		copy(s.Inline[:], data[LengthWidth:SlotSize])
		s.Prefix = [PrefixWidth]byte{}
		s.BufferIndex = 0
		s.Offset = 0

		return nil
	}

	copy(s.Prefix[:], data[LengthWidth:LengthWidth+PrefixWidth])
	s.BufferIndex = int32(engine.Uint32(data[8:12]))
	s.Offset = int32(engine.Uint32(data[12:16]))
	s.Inline = [InlineSize]byte{}

	return nil
}

// PutBytes serializes the slot into a 16-byte region.
// dst must be at least SlotSize bytes; the inline tail is zero-padded so
// slot bytes stay canonical for byte-wise comparison.
func (s *ViewSlot) PutBytes(dst []byte, engine endian.EndianEngine) {
	engine.PutUint32(dst[0:LengthWidth], uint32(s.Length))

	if s.Length <= InlineSize {
		copy(dst[LengthWidth:SlotSize], s.Inline[:])
		return
	}

	copy(dst[LengthWidth:LengthWidth+PrefixWidth], s.Prefix[:])
	engine.PutUint32(dst[8:12], uint32(s.BufferIndex))
	engine.PutUint32(dst[12:16], uint32(s.Offset))
}

// Bytes serializes the slot into a fresh 16-byte slice.
func (s *ViewSlot) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, SlotSize)
	s.PutBytes(b, engine)

	return b
}

// putInlineSlot writes an inline-variant slot for payload directly into dst.
// The caller guarantees len(payload) <= InlineSize. The unused inline tail
// is zeroed so rewritten slots do not leak previous contents.
func putInlineSlot(dst []byte, payload []byte, engine endian.EndianEngine) {
	engine.PutUint32(dst[0:LengthWidth], uint32(len(payload)))
	n := copy(dst[LengthWidth:SlotSize], payload)
	for i := LengthWidth + n; i < SlotSize; i++ {
		dst[i] = 0
	}
}

// putReferenceSlot writes a reference-variant slot directly into dst.
// The caller guarantees len(payload) > InlineSize.
func putReferenceSlot(dst []byte, payload []byte, bufferIndex, offset int32, engine endian.EndianEngine) {
	engine.PutUint32(dst[0:LengthWidth], uint32(len(payload)))
	copy(dst[LengthWidth:LengthWidth+PrefixWidth], payload[:PrefixWidth])
	engine.PutUint32(dst[8:12], uint32(bufferIndex))
	engine.PutUint32(dst[12:16], uint32(offset))
}
