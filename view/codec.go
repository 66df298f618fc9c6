package view

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/format"
)

// Codec converts between a logical value type and its byte representation.
//
// A container is parametrized by a Codec at construction; the codec decides
// what GetObject and SetValue mean for that container. Codecs that also
// implement Validator participate in ValidateScalars.
type Codec[T any] interface {
	// Kind identifies the logical value kind for snapshot headers and
	// cross-container compatibility checks.
	Kind() format.CodecKind

	// Encode returns the byte representation of v. The returned slice is
	// only read, never retained, so codecs may return an aliasing slice.
	Encode(v T) []byte

	// Decode materializes a logical value from its byte representation.
	// The input aliases container memory; implementations must copy if the
	// value outlives the call.
	Decode(data []byte) T
}

// Validator is an optional codec capability consulted by ValidateScalars.
type Validator interface {
	// ValidateValue checks the content of one non-null value.
	ValidateValue(data []byte) error
}

// BytesCodec is the raw binary codec: values are byte slices with no
// content constraints.
type BytesCodec struct{}

var _ Codec[[]byte] = BytesCodec{}

// Kind returns format.KindBinary.
func (BytesCodec) Kind() format.CodecKind {
	return format.KindBinary
}

// Encode returns v unchanged.
func (BytesCodec) Encode(v []byte) []byte {
	return v
}

// Decode returns a copy of data owned by the caller.
func (BytesCodec) Decode(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)

	return out
}

// TextCodec is the UTF-8 text codec. Decoded values are strings and
// ValidateScalars rejects malformed UTF-8.
type TextCodec struct{}

var (
	_ Codec[string] = TextCodec{}
	_ Validator     = TextCodec{}
)

// Kind returns format.KindText.
func (TextCodec) Kind() format.CodecKind {
	return format.KindText
}

// Encode returns the raw bytes of v.
func (TextCodec) Encode(v string) []byte {
	return []byte(v)
}

// Decode returns data as a string (which copies).
func (TextCodec) Decode(data []byte) string {
	return string(data)
}

// ValidateValue reports an error if data is not well-formed UTF-8.
func (TextCodec) ValidateValue(data []byte) error {
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: not well-formed UTF-8", errs.ErrValidationFailed)
	}

	return nil
}
