package blob

import (
	"fmt"

	"github.com/arloliu/varview/compress"
	"github.com/arloliu/varview/endian"
	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/format"
	"github.com/arloliu/varview/internal/hash"
	"github.com/arloliu/varview/section"
	"github.com/arloliu/varview/view"
)

// Decoder parses a snapshot blob: header, checksum verification and data
// section decompression happen in NewDecoder; DecodeInto materializes the
// values into a typed container.
type Decoder struct {
	header   section.ViewHeader
	slots    []byte
	validity []byte
	buffers  [][]byte
}

// NewDecoder parses and verifies a snapshot blob.
func NewDecoder(data []byte) (*Decoder, error) {
	if len(data) < section.HeaderSize+section.ChecksumSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidBlobSize, len(data))
	}

	d := &Decoder{}
	if err := d.header.Parse(data[:section.HeaderSize]); err != nil {
		return nil, err
	}

	engine := d.header.GetEndianEngine()

	body := data[:len(data)-section.ChecksumSize]
	want := engine.Uint64(data[len(data)-section.ChecksumSize:])
	if got := hash.Checksum(body); got != want {
		return nil, fmt.Errorf("%w: computed 0x%016x, stored 0x%016x", errs.ErrChecksumMismatch, got, want)
	}

	codec, err := compress.GetCodec(d.header.Flag.CompressionType())
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(body[section.HeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress data section: %w", err)
	}
	if len(raw) != int(d.header.DataSize) {
		return nil, fmt.Errorf("%w: data section %d bytes, header declares %d",
			errs.ErrInvalidBlobSize, len(raw), d.header.DataSize)
	}

	return d, d.sliceSections(raw, engine)
}

// sliceSections carves the decompressed data section into slots, validity
// and buffer payloads, validating the declared sizes.
func (d *Decoder) sliceSections(raw []byte, engine endian.EndianEngine) error {
	valueCount := int(d.header.ValueCount)
	bufferCount := int(d.header.BufferCount)

	slotsEnd := valueCount * section.SlotSize
	validityEnd := slotsEnd + (valueCount+7)/8
	directoryEnd := validityEnd + bufferCount*4
	if directoryEnd > len(raw) {
		return fmt.Errorf("%w: sections need %d bytes, data section has %d",
			errs.ErrInvalidBlobSize, directoryEnd, len(raw))
	}

	d.slots = raw[:slotsEnd]
	d.validity = raw[slotsEnd:validityEnd]

	d.buffers = make([][]byte, bufferCount)
	offset := directoryEnd
	for i := 0; i < bufferCount; i++ {
		length := int(engine.Uint32(raw[validityEnd+i*4 : validityEnd+(i+1)*4]))
		if offset+length > len(raw) {
			return fmt.Errorf("%w: buffer %d of %d bytes exceeds data section",
				errs.ErrInvalidBlobSize, i, length)
		}
		d.buffers[i] = raw[offset : offset+length]
		offset += length
	}

	return nil
}

// Header returns the parsed snapshot header.
func (d *Decoder) Header() section.ViewHeader {
	return d.header
}

// ValueCount returns the number of logical values in the snapshot.
func (d *Decoder) ValueCount() int {
	return int(d.header.ValueCount)
}

// Kind returns the codec kind recorded in the snapshot header.
func (d *Decoder) Kind() format.CodecKind {
	return d.header.Flag.Kind()
}

// DecodeInto materializes the snapshot's values into dst, replacing its
// contents. dst's codec kind must match the snapshot header; payload bytes
// are copied into buffers owned by dst's allocator.
func DecodeInto[T any](d *Decoder, dst *view.Container[T]) error {
	if dst.Kind() != d.Kind() {
		return fmt.Errorf("%w: blob is %s, container is %s", errs.ErrCodecMismatch, d.Kind(), dst.Kind())
	}

	valueCount := d.ValueCount()
	if err := dst.AllocateNew(valueCount); err != nil {
		return err
	}

	slotEngine := endian.GetLittleEndianEngine()

	for i := 0; i < valueCount; i++ {
		if d.validity[i>>3]&(1<<(uint(i)&7)) == 0 {
			continue
		}

		var slot view.ViewSlot
		if err := slot.Parse(d.slots[i*section.SlotSize:(i+1)*section.SlotSize], slotEngine); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}

		var value []byte
		if slot.IsInline() {
			value = slot.Inline[:slot.Length]
		} else {
			if slot.BufferIndex < 0 || int(slot.BufferIndex) >= len(d.buffers) {
				return fmt.Errorf("%w: index %d: buffer index %d out of %d buffers",
					errs.ErrInvalidSlot, i, slot.BufferIndex, len(d.buffers))
			}
			buf := d.buffers[slot.BufferIndex]
			if slot.Offset < 0 || int(slot.Offset)+int(slot.Length) > len(buf) {
				return fmt.Errorf("%w: index %d: range [%d, %d) exceeds buffer length %d",
					errs.ErrInvalidSlot, i, slot.Offset, int(slot.Offset)+int(slot.Length), len(buf))
			}
			value = buf[slot.Offset : int(slot.Offset)+int(slot.Length)]
		}

		if err := dst.Set(i, value); err != nil {
			return err
		}
	}

	return dst.SetValueCount(valueCount)
}

// Decode is a convenience wrapper creating a fresh container for codec and
// decoding the blob into it.
func Decode[T any](data []byte, codec view.Codec[T], opts ...view.Option) (*view.Container[T], error) {
	d, err := NewDecoder(data)
	if err != nil {
		return nil, err
	}

	c, err := view.New(codec, opts...)
	if err != nil {
		return nil, err
	}

	if err := DecodeInto(d, c); err != nil {
		c.Release()
		return nil, err
	}

	return c, nil
}
