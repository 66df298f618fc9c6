package memory

import "sync/atomic"

// Buffer is a reference-counted byte region obtained from an Allocator.
//
// A Buffer starts with a reference count of one, owned by its creator.
// Retain takes shared ownership (after a cross-container slot copy or a
// slice operation); Release drops one reference and returns the region to
// the allocator when the count reaches zero.
//
// The length tracks the append cursor for data buffers: bytes below Len are
// committed and immutable, bytes between Len and Cap are writable headroom.
type Buffer struct {
	alloc    Allocator
	buf      []byte
	length   int
	refCount atomic.Int64
}

// NewBuffer allocates a buffer of the given capacity through alloc.
// The returned buffer has length 0 and a reference count of one.
func NewBuffer(alloc Allocator, capacity int) (*Buffer, error) {
	raw, err := alloc.Allocate(capacity)
	if err != nil {
		return nil, err
	}

	b := &Buffer{alloc: alloc, buf: raw}
	b.refCount.Store(1)

	return b, nil
}

// NewBufferBytes wraps an existing byte slice in a Buffer without copying.
// The slice's length becomes the committed length. Used when deserializing
// snapshot blobs, where the payload is already materialized.
func NewBufferBytes(alloc Allocator, data []byte) *Buffer {
	b := &Buffer{alloc: alloc, buf: data, length: len(data)}
	b.refCount.Store(1)

	return b
}

// Retain increments the reference count, taking shared ownership.
func (b *Buffer) Retain() {
	b.refCount.Add(1)
}

// Release decrements the reference count and frees the region through the
// allocator when no references remain. Using the buffer after its final
// release is a caller error.
func (b *Buffer) Release() {
	if b.refCount.Add(-1) == 0 {
		b.alloc.Free(b.buf)
		b.buf = nil
		b.length = 0
	}
}

// RefCount returns the current reference count. Intended for tests and
// lifecycle assertions, not for synchronization.
func (b *Buffer) RefCount() int64 {
	return b.refCount.Load()
}

// Cap returns the allocated capacity in bytes.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Len returns the committed length (the append cursor).
func (b *Buffer) Len() int {
	return b.length
}

// Bytes returns the committed portion of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.length]
}

// Buf returns the full backing region up to capacity.
func (b *Buffer) Buf() []byte {
	return b.buf[:cap(b.buf)]
}

// Append commits data at the current cursor and advances it.
// The caller must ensure Remaining() >= len(data); committed bytes are
// never rewritten.
func (b *Buffer) Append(data []byte) int {
	offset := b.length
	copy(b.buf[offset:cap(b.buf)], data)
	b.length += len(data)

	return offset
}

// Remaining returns the writable headroom between cursor and capacity.
func (b *Buffer) Remaining() int {
	return cap(b.buf) - b.length
}

// SetLen moves the append cursor. Used when reconstructing buffers from a
// snapshot; n must not exceed Cap.
func (b *Buffer) SetLen(n int) {
	b.length = n
}
