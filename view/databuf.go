package view

import (
	"fmt"

	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/memory"
)

// DefaultChunkSize is the capacity of a freshly allocated data buffer when
// no larger size is required.
const DefaultChunkSize = 32 * 1024

// dataBuffers manages the ordered, append-only list of payload buffers
// backing reference-variant slots.
//
// Writes always append to the current (last) buffer; committed bytes are
// never rewritten, which keeps sharing across containers aliasing-free.
// The list may also hold buffers the container did not allocate itself:
// cross-container slot copies retain the source's buffer and append it here.
type dataBuffers struct {
	alloc     memory.Allocator
	bufs      []*memory.Buffer
	chunkSize int
}

// write appends payload to the current buffer, allocating a new one when the
// remaining headroom is insufficient. It returns the buffer's position in
// the list and the offset the payload was written at.
func (d *dataBuffers) write(payload []byte) (bufferIndex, offset int32, err error) {
	last := len(d.bufs) - 1
	if last < 0 || d.bufs[last].Remaining() < len(payload) {
		size := d.chunkSize
		if last >= 0 && d.bufs[last].Cap() > size {
			size = d.bufs[last].Cap()
		}
		if len(payload) > size {
			size = len(payload)
		}

		buf, allocErr := memory.NewBuffer(d.alloc, size)
		if allocErr != nil {
			return 0, 0, fmt.Errorf("%w: data buffer of %d bytes: %v", errs.ErrAllocationFailed, size, allocErr)
		}

		d.bufs = append(d.bufs, buf)
		last = len(d.bufs) - 1
	}

	off := d.bufs[last].Append(payload)

	return int32(last), int32(off), nil
}

// bytesAt returns the committed payload bytes at (bufferIndex, offset).
// The caller guarantees the slot was produced by write or appendShared, so
// the range is in bounds.
func (d *dataBuffers) bytesAt(bufferIndex, offset, length int32) []byte {
	return d.bufs[bufferIndex].Bytes()[offset : offset+length]
}

// appendShared takes shared ownership of a buffer allocated elsewhere and
// returns its position in the list. If the buffer is already present, the
// existing position is returned without an extra retain.
func (d *dataBuffers) appendShared(buf *memory.Buffer) int32 {
	for i, b := range d.bufs {
		if b == buf {
			return int32(i)
		}
	}

	buf.Retain()
	d.bufs = append(d.bufs, buf)

	return int32(len(d.bufs) - 1)
}

// retainAll takes one extra reference on every buffer in the list.
// Used by slice operations, which share the entire list with the target.
func (d *dataBuffers) retainAll() {
	for _, b := range d.bufs {
		b.Retain()
	}
}

// releaseAll drops this container's reference on every buffer and empties
// the list.
func (d *dataBuffers) releaseAll() {
	for _, b := range d.bufs {
		b.Release()
	}
	d.bufs = nil
}

// count returns the number of buffers in the list.
func (d *dataBuffers) count() int {
	return len(d.bufs)
}
