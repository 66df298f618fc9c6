// Package memory provides the allocator capability and reference-counted
// buffers that back variable-width view containers.
//
// Containers never assume a global allocator; one is supplied at
// construction and every raw byte region the container owns is obtained
// through it. Buffers are reference-counted because a data buffer can be
// shared by slots in multiple containers after a copy or slice operation.
package memory

import "fmt"

// Allocator produces and reclaims raw byte regions.
//
// Allocate returns a slice with length equal to size; implementations may
// return more capacity than requested. Free reclaims a region previously
// returned by Allocate. Implementations must be safe for use from a single
// goroutine at a time per container; they need no internal locking beyond
// what their own bookkeeping requires.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Free(buf []byte)
}

// GoAllocator allocates buffers from the Go heap and leaves reclamation to
// the garbage collector.
type GoAllocator struct{}

var _ Allocator = (*GoAllocator)(nil)

// NewGoAllocator creates an allocator backed by the Go runtime.
func NewGoAllocator() *GoAllocator {
	return &GoAllocator{}
}

// Allocate returns a zeroed buffer of exactly size bytes.
func (*GoAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("allocate: negative size %d", size)
	}

	return make([]byte, size), nil
}

// Free is a no-op; the garbage collector reclaims the region once
// unreferenced.
func (*GoAllocator) Free(buf []byte) {}

// DefaultAllocator is the allocator used when none is supplied.
var DefaultAllocator Allocator = NewGoAllocator()
