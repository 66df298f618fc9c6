package view

import (
	"fmt"

	"github.com/arloliu/varview/errs"
	"github.com/arloliu/varview/memory"
)

// TransferTo moves ownership of the slot array, validity bitmap and the full
// data buffer pool to dest without copying any payload bytes. No retain or
// release happens on the moved buffers.
//
// dest's prior state is released first. The source is left empty (zero
// capacity, zero values, no owned buffers) and may be reused. dest must be a
// distinct container; transferring to the source itself panics.
func (c *Container[T]) TransferTo(dest *Container[T]) {
	if dest == c {
		panic("view: transfer destination is the source container")
	}

	dest.Clear()

	dest.slots = c.slots
	dest.validity = c.validity
	dest.data.bufs = c.data.bufs
	dest.capacity = c.capacity
	dest.valueCount = c.valueCount
	dest.lastSet = c.lastSet

	c.slots = nil
	c.validity = nil
	c.data.bufs = nil
	c.capacity = 0
	c.valueCount = 0
	c.lastSet = -1
}

// SplitAndTransfer populates dest with the logical values
// [startIndex, startIndex+length) from this container. Slot bytes and
// validity bits for the sub-range are copied into dest's freshly sized
// arrays; payload bytes are not copied.
//
// The entire data buffer pool is retained and shared with dest, not just the
// buffers backing the requested range. This preserves slot buffer indices
// but pins bytes the slice never references; no byte-level reclamation of
// the unused portion is performed. The source is unaffected. dest must be a
// distinct container; slicing into the source itself panics.
func (c *Container[T]) SplitAndTransfer(startIndex, length int, dest *Container[T]) error {
	if dest == c {
		panic("view: transfer destination is the source container")
	}
	if startIndex < 0 || length < 0 || startIndex+length > c.valueCount {
		return fmt.Errorf("%w: range [%d, %d) of %d values",
			errs.ErrIndexOutOfRange, startIndex, startIndex+length, c.valueCount)
	}

	dest.Clear()
	if length == 0 {
		return nil
	}

	if err := dest.grow(length); err != nil {
		return err
	}

	copy(dest.slots.Buf(), c.slots.Buf()[startIndex*SlotSize:(startIndex+length)*SlotSize])
	copyBitRange(dest.validity.Buf(), c.validity.Buf(), startIndex, length)

	c.data.retainAll()
	dest.data.bufs = append([]*memory.Buffer(nil), c.data.bufs...)

	dest.valueCount = length
	dest.lastSet = length - 1

	return nil
}

// CopyValueSafe copies the single value at fromIndex into dest at toIndex,
// growing dest as needed. Used by algorithms that reorder values between a
// source and destination container (sorts, permutations). Reference-variant
// slots share the backing buffer; see CopyFromSafe.
func (c *Container[T]) CopyValueSafe(fromIndex, toIndex int, dest *Container[T]) error {
	return dest.CopyFromSafe(fromIndex, toIndex, c)
}
