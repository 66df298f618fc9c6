package blob

import (
	"fmt"

	"github.com/arloliu/varview/compress"
	"github.com/arloliu/varview/endian"
	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/format"
	"github.com/arloliu/varview/internal/hash"
	"github.com/arloliu/varview/internal/options"
	"github.com/arloliu/varview/internal/pool"
	"github.com/arloliu/varview/memory"
	"github.com/arloliu/varview/section"
)

// Container is the accessor contract a view container exposes to the
// snapshot encoder. *view.Container[T] satisfies it for any T.
type Container interface {
	Kind() format.CodecKind
	ValueCount() int
	SlotBytes() []byte
	ValidityBytes() []byte
	DataBufferCount() int
	DataBuffer(i int) *memory.Buffer
}

// Encoder serializes containers into snapshot blobs.
//
// An Encoder is stateless between Encode calls and may be reused; it is not
// safe for concurrent use because of its pooled scratch buffer handling.
type Encoder struct {
	engine      endian.EndianEngine
	bigEndian   bool
	compression format.CompressionType
	columnID    uint64
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithLittleEndian selects little-endian header fields (the default).
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.engine = endian.GetLittleEndianEngine()
		e.bigEndian = false
	})
}

// WithBigEndian selects big-endian header fields.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.engine = endian.GetBigEndianEngine()
		e.bigEndian = true
	})
}

// WithCompression selects the compression applied to the data section.
// Defaults to format.CompressionNone.
func WithCompression(ct format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		switch ct {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			e.compression = ct
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, ct)
		}
	})
}

// WithColumnName records the xxHash64 of name in the snapshot header so
// readers can match columns without storing variable-length names.
func WithColumnName(name string) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.columnID = hash.ID(name)
	})
}

// NewEncoder creates an encoder with the given options.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Encode serializes c into a snapshot blob. The container is not modified
// and remains usable; the returned blob owns its bytes.
func (e *Encoder) Encode(c Container) (Blob, error) {
	header := section.NewViewHeader(c.Kind(), e.compression)
	if e.bigEndian {
		header.Flag.SetBigEndian()
	}
	header.ColumnID = e.columnID
	header.ValueCount = uint32(c.ValueCount())
	header.BufferCount = uint32(c.DataBufferCount())

	// Assemble the uncompressed data section in pooled scratch space.
	raw := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(raw)

	raw.MustWrite(c.SlotBytes())
	raw.MustWrite(c.ValidityBytes())

	for i := 0; i < c.DataBufferCount(); i++ {
		raw.B = e.engine.AppendUint32(raw.B, uint32(c.DataBuffer(i).Len()))
	}
	for i := 0; i < c.DataBufferCount(); i++ {
		raw.MustWrite(c.DataBuffer(i).Bytes())
	}

	header.DataSize = uint32(raw.Len())

	codec, err := compress.GetCodec(e.compression)
	if err != nil {
		return Blob{}, err
	}

	compressed, err := codec.Compress(raw.Bytes())
	if err != nil {
		return Blob{}, fmt.Errorf("failed to compress data section: %w", err)
	}

	out := make([]byte, 0, section.HeaderSize+len(compressed)+section.ChecksumSize)
	out = append(out, header.Bytes()...)
	out = append(out, compressed...)
	out = e.engine.AppendUint64(out, hash.Checksum(out))

	return Blob{header: *header, data: out}, nil
}
