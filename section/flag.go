package section

import (
	"fmt"

	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/format"
)

// ViewFlag is the packed 4-byte flag field at the start of a snapshot
// header: a 16-bit options word (magic number + endianness bit), the codec
// kind byte, and the compression type byte.
//
// The options word itself is always serialized little-endian so readers can
// determine endianness before interpreting the rest of the header.
type ViewFlag struct {
	Options     uint16
	CodecKind   uint8
	Compression uint8
}

// NewViewFlag creates a flag word for the given codec kind and compression,
// defaulting to little-endian.
func NewViewFlag(kind format.CodecKind, compression format.CompressionType) ViewFlag {
	return ViewFlag{
		Options:     MagicViewV1Opt,
		CodecKind:   uint8(kind),
		Compression: uint8(compression),
	}
}

// IsLittleEndian reports whether the blob's multi-byte fields are
// little-endian.
func (f ViewFlag) IsLittleEndian() bool {
	return f.Options&EndiannessMask == 0
}

// IsBigEndian reports whether the blob's multi-byte fields are big-endian.
func (f ViewFlag) IsBigEndian() bool {
	return !f.IsLittleEndian()
}

// SetBigEndian flips the endianness bit to big-endian.
func (f *ViewFlag) SetBigEndian() {
	f.Options |= EndiannessMask
}

// Kind returns the codec kind recorded in the flag.
func (f ViewFlag) Kind() format.CodecKind {
	return format.CodecKind(f.CodecKind)
}

// CompressionType returns the compression type recorded in the flag.
func (f ViewFlag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// Validate checks the magic number, reserved bits, codec kind and
// compression type.
func (f ViewFlag) Validate() error {
	if f.Options&MagicNumberMask != MagicViewV1Opt {
		return fmt.Errorf("%w: magic number 0x%04X", errs.ErrInvalidHeaderFlags, f.Options&MagicNumberMask)
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits set", errs.ErrInvalidHeaderFlags)
	}

	switch format.CodecKind(f.CodecKind) {
	case format.KindBinary, format.KindText:
	default:
		return fmt.Errorf("%w: codec kind 0x%02X", errs.ErrInvalidHeaderFlags, f.CodecKind)
	}

	switch format.CompressionType(f.Compression) {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: compression type 0x%02X", errs.ErrInvalidHeaderFlags, f.Compression)
	}

	return nil
}
