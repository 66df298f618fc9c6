// Package view implements a columnar, variable-width value container using a
// fixed-width view encoding.
//
// Each logical value is described by a constant-size 16-byte slot that either
// embeds short payloads inline (length <= 12) or references an external,
// append-only data buffer. A validity bitmap tracks nulls independently of
// slot contents. Containers support zero-copy ownership transfer and slicing
// across instances with shared, reference-counted backing buffers.
//
// Containers are single-writer: no internal synchronization is provided, and
// concurrent mutation must be serialized by the caller. Reads (Get, IsSet)
// are safe to call concurrently with other reads but not with any mutation.
package view

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/arloliu/varview/endian"
	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/format"
	"github.com/arloliu/varview/internal/options"
	"github.com/arloliu/varview/memory"
)

// defaultMinCapacity is the smallest slot capacity growth allocates.
const defaultMinCapacity = 16

// Config holds container construction parameters, populated through
// functional options.
type Config struct {
	alloc           memory.Allocator
	initialCapacity int
	chunkSize       int
}

// Option configures a container at construction time.
type Option = options.Option[*Config]

// WithAllocator supplies the allocator backing all of the container's
// buffers. Defaults to memory.DefaultAllocator.
func WithAllocator(alloc memory.Allocator) Option {
	return options.NoError(func(cfg *Config) {
		cfg.alloc = alloc
	})
}

// WithInitialCapacity pre-allocates slot capacity for n values, avoiding
// growth on the first SetSafe calls.
func WithInitialCapacity(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 0 {
			return fmt.Errorf("%w: initial capacity %d", errs.ErrInvalidCapacity, n)
		}
		cfg.initialCapacity = n

		return nil
	})
}

// WithChunkSize sets the default capacity of newly allocated data buffers.
// Defaults to DefaultChunkSize.
func WithChunkSize(n int) Option {
	return options.New(func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: chunk size %d", errs.ErrInvalidCapacity, n)
		}
		cfg.chunkSize = n

		return nil
	})
}

// Container is a resizable array of variable-width values parametrized by a
// value codec.
//
// It owns three structures: the slot (descriptor) array, the validity
// bitmap, and the ordered list of append-only data buffers. Capacity only
// grows during the populated lifetime; TransferTo moves all three structures
// out and leaves the container empty and reusable.
type Container[T any] struct {
	codec  Codec[T]
	alloc  memory.Allocator
	engine endian.EndianEngine

	slots    *memory.Buffer // capacity * SlotSize bytes
	validity *memory.Buffer // one bit per slot, LSB-first
	data     dataBuffers

	capacity   int // allocated slots
	valueCount int // logical values, <= capacity
	lastSet    int // last written index, -1 when none
}

// New creates an empty container for the given value codec.
// No memory is allocated until the first SetSafe or AllocateNew call unless
// WithInitialCapacity is supplied.
func New[T any](codec Codec[T], opts ...Option) (*Container[T], error) {
	cfg := &Config{
		alloc:     memory.DefaultAllocator,
		chunkSize: DefaultChunkSize,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	c := &Container[T]{
		codec:   codec,
		alloc:   cfg.alloc,
		engine:  endian.GetLittleEndianEngine(),
		data:    dataBuffers{alloc: cfg.alloc, chunkSize: cfg.chunkSize},
		lastSet: -1,
	}

	if cfg.initialCapacity > 0 {
		if err := c.grow(cfg.initialCapacity); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Kind returns the logical value kind of the container's codec.
func (c *Container[T]) Kind() format.CodecKind {
	return c.codec.Kind()
}

// Capacity returns the allocated slot capacity.
func (c *Container[T]) Capacity() int {
	return c.capacity
}

// ValueCount returns the logical value count.
func (c *Container[T]) ValueCount() int {
	return c.valueCount
}

// SetValueCount declares the logical value count, growing capacity to cover
// it. Indices never written stay null: validity bits default clear, so gaps
// between lastSet and n need no backfilling.
func (c *Container[T]) SetValueCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: value count %d", errs.ErrInvalidCapacity, n)
	}
	if n > c.capacity {
		if err := c.grow(n); err != nil {
			return err
		}
	}
	c.valueCount = n

	return nil
}

// AllocateNew discards any existing state and allocates fresh arrays able to
// hold capacity values, all null.
func (c *Container[T]) AllocateNew(capacity int) error {
	c.Clear()
	return c.grow(capacity)
}

// Clear releases the slot array, validity bitmap and every data buffer,
// returning the container to the empty state. The container may be reused.
func (c *Container[T]) Clear() {
	if c.slots != nil {
		c.slots.Release()
		c.slots = nil
	}
	if c.validity != nil {
		c.validity.Release()
		c.validity = nil
	}
	c.data.releaseAll()
	c.capacity = 0
	c.valueCount = 0
	c.lastSet = -1
}

// Reset marks every index null and zeroes the value count while keeping the
// slot and validity allocations for reuse. Data buffers are released since
// no live slot can reference them afterwards.
func (c *Container[T]) Reset() {
	if c.validity != nil {
		clear(c.validity.Buf())
	}
	c.data.releaseAll()
	c.valueCount = 0
	c.lastSet = -1
}

// Release destroys the container's owned state. Equivalent to Clear; shared
// data buffers survive until their last referencing container releases them.
func (c *Container[T]) Release() {
	c.Clear()
}

// IsSet reports whether index i holds a non-null value.
func (c *Container[T]) IsSet(i int) bool {
	if i < 0 {
		panic(fmt.Sprintf("view: negative index %d", i))
	}
	if i >= c.capacity {
		return false
	}

	return bitIsSet(c.validity.Buf(), i)
}

// IsNull reports whether index i is null.
func (c *Container[T]) IsNull(i int) bool {
	return !c.IsSet(i)
}

// Get returns a copy of the value at index i, or nil if the index is null.
//
// This is the unchecked fast path: a negative index is a contract violation
// and panics; an index at or beyond capacity reads as null. Callers needing
// recoverable bounds errors use GetSafe.
func (c *Container[T]) Get(i int) []byte {
	if !c.IsSet(i) {
		return nil
	}

	src := c.valueBytes(i)
	out := make([]byte, len(src))
	copy(out, src)

	return out
}

// GetSafe is the checked variant of Get. It returns ErrIndexOutOfRange for
// indices outside [0, ValueCount) and (nil, nil) for a null index.
func (c *Container[T]) GetSafe(i int) ([]byte, error) {
	if i < 0 || i >= c.valueCount {
		return nil, fmt.Errorf("%w: index %d, value count %d", errs.ErrIndexOutOfRange, i, c.valueCount)
	}
	if !bitIsSet(c.validity.Buf(), i) {
		return nil, nil
	}

	src := c.valueBytes(i)
	out := make([]byte, len(src))
	copy(out, src)

	return out, nil
}

// GetBytesUnsafe returns the value bytes at index i without copying and
// without a validity check.
//
// The returned slice aliases container memory and is valid only until the
// next mutation. Calling it on a null index is undefined: a null slot's
// descriptor bytes are unspecified and must never be dereferenced. Checking
// IsSet first is the caller's responsibility.
func (c *Container[T]) GetBytesUnsafe(i int) []byte {
	return c.valueBytes(i)
}

// GetObject returns the decoded logical value at index i. The null check is
// performed internally; ok is false for a null index.
func (c *Container[T]) GetObject(i int) (value T, ok bool) {
	if !c.IsSet(i) {
		return value, false
	}

	return c.codec.Decode(c.valueBytes(i)), true
}

// ValueLength returns the payload length at index i without materializing
// the value. The caller must ensure the index is non-null.
func (c *Container[T]) ValueLength(i int) int {
	return int(int32(c.engine.Uint32(c.slotAt(i)[0:LengthWidth])))
}

// Prefix returns the first four payload bytes at index i, zero-padded for
// payloads shorter than four bytes. For reference-variant slots this reads
// the stored prefix, so no data buffer dereference occurs.
func (c *Container[T]) Prefix(i int) [PrefixWidth]byte {
	var p [PrefixWidth]byte
	slot := c.slotAt(i)
	length := int(int32(c.engine.Uint32(slot[0:LengthWidth])))
	n := length
	if n > PrefixWidth {
		n = PrefixWidth
	}
	copy(p[:], slot[LengthWidth:LengthWidth+n])

	return p
}

// ComparePrefix compares the first PrefixWidth bytes of the value at index i
// against other, with bytes.Compare semantics over the length-capped
// prefixes. Reference-variant slots use the stored prefix, so no data buffer
// dereference occurs. A zero result is decisive only when at least one side
// is PrefixWidth bytes or shorter; otherwise the caller falls back to a full
// comparison.
func (c *Container[T]) ComparePrefix(i int, other []byte) int {
	slot := c.slotAt(i)
	length := int(int32(c.engine.Uint32(slot[0:LengthWidth])))
	n := length
	if n > PrefixWidth {
		n = PrefixWidth
	}
	m := len(other)
	if m > PrefixWidth {
		m = PrefixWidth
	}

	return bytes.Compare(slot[LengthWidth:LengthWidth+n], other[:m])
}

// Set writes value at index i, assuming capacity already covers i (a
// violation panics; use SetSafe otherwise). Payloads over InlineSize bytes
// are appended to the data buffer pool. An allocation failure leaves the
// container unchanged.
func (c *Container[T]) Set(i int, value []byte) error {
	if i < 0 {
		panic(fmt.Sprintf("view: negative index %d", i))
	}

	slot := c.slotAt(i)
	if len(value) <= InlineSize {
		putInlineSlot(slot, value, c.engine)
	} else {
		bufferIndex, offset, err := c.data.write(value)
		if err != nil {
			return err
		}
		putReferenceSlot(slot, value, bufferIndex, offset, c.engine)
	}

	setBit(c.validity.Buf(), i)
	c.lastSet = i

	return nil
}

// SetSafe is Set with growth: capacity is extended to the smallest power of
// two covering i+1 when needed. Growth preserves all existing slots and
// validity bits; the new region is null.
func (c *Container[T]) SetSafe(i int, value []byte) error {
	if i < 0 {
		panic(fmt.Sprintf("view: negative index %d", i))
	}
	if i >= c.capacity {
		if err := c.grow(i + 1); err != nil {
			return err
		}
	}

	return c.Set(i, value)
}

// SetValue encodes v through the container's codec and writes it at index i.
func (c *Container[T]) SetValue(i int, v T) error {
	return c.Set(i, c.codec.Encode(v))
}

// SetValueSafe encodes v through the container's codec and writes it at
// index i, growing capacity as needed.
func (c *Container[T]) SetValueSafe(i int, v T) error {
	return c.SetSafe(i, c.codec.Encode(v))
}

// SetNull marks index i null, growing capacity to cover i when needed.
// The slot's descriptor bytes are left untouched.
func (c *Container[T]) SetNull(i int) error {
	if i < 0 {
		panic(fmt.Sprintf("view: negative index %d", i))
	}
	if i >= c.capacity {
		if err := c.grow(i + 1); err != nil {
			return err
		}
	}

	clearBit(c.validity.Buf(), i)
	c.lastSet = i

	return nil
}

// CopyFromSafe copies the raw 16-byte slot at fromIndex in src into this
// container at toIndex, growing capacity as needed.
//
// For a reference-variant slot no payload bytes are copied: this container
// takes shared ownership of the source's data buffer (retaining it into its
// own buffer list) and the copied slot's buffer index is rewritten to the
// buffer's position in that list.
func (c *Container[T]) CopyFromSafe(fromIndex, toIndex int, src *Container[T]) error {
	if fromIndex < 0 || toIndex < 0 {
		panic(fmt.Sprintf("view: negative index %d/%d", fromIndex, toIndex))
	}
	if toIndex >= c.capacity {
		if err := c.grow(toIndex + 1); err != nil {
			return err
		}
	}

	if !src.IsSet(fromIndex) {
		clearBit(c.validity.Buf(), toIndex)
		c.lastSet = toIndex

		return nil
	}

	srcSlot := src.slotAt(fromIndex)
	dstSlot := c.slotAt(toIndex)
	copy(dstSlot, srcSlot)

	length := int32(c.engine.Uint32(srcSlot[0:LengthWidth]))
	if length > InlineSize {
		bufferIndex := int32(src.engine.Uint32(srcSlot[8:12]))
		shared := src.data.bufs[bufferIndex]
		newIndex := c.data.appendShared(shared)
		c.engine.PutUint32(dstSlot[8:12], uint32(newIndex))
	}

	setBit(c.validity.Buf(), toIndex)
	c.lastSet = toIndex

	return nil
}

// ValidateScalars decodes every non-null logical value, checks its slot
// invariants, and runs the codec's content validator when the codec
// implements Validator. It reports the first offending index and is an
// explicit, opt-in pass: mutations never validate.
func (c *Container[T]) ValidateScalars() error {
	validator, hasValidator := any(c.codec).(Validator)

	for i := 0; i < c.valueCount; i++ {
		if !c.IsSet(i) {
			continue
		}

		slot := c.slotAt(i)
		length := int32(c.engine.Uint32(slot[0:LengthWidth]))
		if length < 0 {
			return fmt.Errorf("%w: index %d: negative length %d", errs.ErrInvalidSlot, i, length)
		}

		if length > InlineSize {
			bufferIndex := int32(c.engine.Uint32(slot[8:12]))
			offset := int32(c.engine.Uint32(slot[12:16]))
			if bufferIndex < 0 || int(bufferIndex) >= c.data.count() {
				return fmt.Errorf("%w: index %d: buffer index %d out of %d buffers",
					errs.ErrInvalidSlot, i, bufferIndex, c.data.count())
			}
			buf := c.data.bufs[bufferIndex]
			if offset < 0 || int(offset)+int(length) > buf.Len() {
				return fmt.Errorf("%w: index %d: range [%d, %d) exceeds buffer length %d",
					errs.ErrInvalidSlot, i, offset, offset+length, buf.Len())
			}
		}

		if hasValidator {
			if err := validator.ValidateValue(c.valueBytes(i)); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
	}

	return nil
}

// All iterates logical indices in order, yielding nil for null indices.
// The yielded slice is a copy owned by the consumer.
func (c *Container[T]) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i := 0; i < c.valueCount; i++ {
			if !yield(i, c.Get(i)) {
				return
			}
		}
	}
}

// SlotBytes returns the raw descriptor bytes covering the logical values.
// Exposed for adjacent components (snapshot encoder, field readers); the
// slice aliases container memory.
func (c *Container[T]) SlotBytes() []byte {
	if c.slots == nil {
		return nil
	}

	return c.slots.Buf()[:c.valueCount*SlotSize]
}

// ValidityBytes returns the raw validity bitmap bytes covering the logical
// values. The slice aliases container memory.
func (c *Container[T]) ValidityBytes() []byte {
	if c.validity == nil {
		return nil
	}

	return c.validity.Buf()[:validityBytesFor(c.valueCount)]
}

// DataBufferCount returns the number of data buffers the container holds.
func (c *Container[T]) DataBufferCount() int {
	return c.data.count()
}

// DataBuffer returns the data buffer at position i in the pool.
func (c *Container[T]) DataBuffer(i int) *memory.Buffer {
	return c.data.bufs[i]
}

// Allocator returns the allocator supplied at construction.
func (c *Container[T]) Allocator() memory.Allocator {
	return c.alloc
}

// slotAt returns the 16-byte descriptor region for index i.
func (c *Container[T]) slotAt(i int) []byte {
	return c.slots.Buf()[i*SlotSize : (i+1)*SlotSize]
}

// valueBytes returns the payload bytes at index i without copying.
// The caller has already established the index is non-null.
func (c *Container[T]) valueBytes(i int) []byte {
	slot := c.slotAt(i)
	length := int32(c.engine.Uint32(slot[0:LengthWidth]))
	if length <= InlineSize {
		return slot[LengthWidth : LengthWidth+length]
	}

	bufferIndex := int32(c.engine.Uint32(slot[8:12]))
	offset := int32(c.engine.Uint32(slot[12:16]))

	return c.data.bytesAt(bufferIndex, offset, length)
}

// grow extends slot and validity capacity to the smallest power of two
// covering minCapacity (at least defaultMinCapacity), preserving existing
// content and leaving the new region null.
//
// Growth is failure-safe: both new arrays are allocated before any swap, so
// an allocation failure leaves the container in its prior valid state.
func (c *Container[T]) grow(minCapacity int) error {
	newCapacity := defaultMinCapacity
	for newCapacity < minCapacity {
		newCapacity <<= 1
	}
	if newCapacity <= c.capacity {
		return nil
	}

	newSlots, err := memory.NewBuffer(c.alloc, newCapacity*SlotSize)
	if err != nil {
		return fmt.Errorf("%w: slot array of %d slots: %v", errs.ErrAllocationFailed, newCapacity, err)
	}

	newValidity, err := memory.NewBuffer(c.alloc, validityBytesFor(newCapacity))
	if err != nil {
		newSlots.Release()
		return fmt.Errorf("%w: validity bitmap for %d slots: %v", errs.ErrAllocationFailed, newCapacity, err)
	}

	if c.slots != nil {
		copy(newSlots.Buf(), c.slots.Buf()[:c.capacity*SlotSize])
		copy(newValidity.Buf(), c.validity.Buf())
		c.slots.Release()
		c.validity.Release()
	}

	c.slots = newSlots
	c.validity = newValidity
	c.capacity = newCapacity

	return nil
}
