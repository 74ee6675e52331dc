// Package block implements the fixed-capacity circular buffer underlying the
// tiered vector, what Goodrich and Kloss call a circular deque.
//
// A Block supports push and pop at both ends plus insert and remove at
// arbitrary offsets. Unlike container/list or a growable ring, a Block never
// reallocates: pushing into a full block is a caller error and panics. The
// tiered vector relies on this to keep every block at exactly its configured
// capacity.
//
// Slots outside the live range are always zeroed so the garbage collector can
// reclaim element payloads as soon as they leave the block.
package block

import (
	"errors"
	"fmt"
	"unsafe"
)

// Tracker accounts for backing-buffer memory. Implementations must not block:
// a rejected acquisition is fatal for the caller.
type Tracker interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}

// ErrMemoryLimit is the panic value when a block allocation is rejected by
// the tracker. There is no degraded mode without backing storage.
var ErrMemoryLimit = errors.New("block: memory limit exceeded")

// ErrFull is the panic value when pushing or inserting into a full block.
// Callers are expected to verify spare capacity up front.
var ErrFull = errors.New("block: block is full")

// ErrOddCapacity is the panic value when splitting a block whose capacity is
// not an even number.
var ErrOddCapacity = errors.New("block: capacity must be even to split")

// OutOfRangeError is the panic value for an insert or remove offset outside
// the block's logical bounds.
type OutOfRangeError struct {
	Op    string // "insert" or "remove"
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	if e.Op == "insert" {
		return fmt.Sprintf("block: insertion index (is %d) should be <= len (is %d)", e.Index, e.Len)
	}
	return fmt.Sprintf("block: removal index (is %d) should be < len (is %d)", e.Index, e.Len)
}

// CapacityError is the panic value when re-homing elements into a block that
// cannot hold them.
type CapacityError struct {
	Capacity int
	Count    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("block: capacity (is %d) should be greater than len (is %d)", e.Capacity, e.Count)
}

// Block is a fixed-capacity circular buffer. Logical element i lives at
// physical slot (head + i) mod cap. The zero value is not usable; construct
// blocks with New, NewFrom, Combine or Split.
type Block[T any] struct {
	buf      []T
	head     int
	count    int
	reserved int64 // bytes held from the tracker, released exactly once
	tracker  Tracker
}

// New returns an empty block with the given capacity. A capacity of zero is
// legal; such a block is simultaneously empty and full. When tr is non-nil
// the backing buffer is accounted against it; a rejected acquisition panics
// with ErrMemoryLimit.
func New[T any](capacity int, tr Tracker) *Block[T] {
	b := &Block[T]{tracker: tr}
	if capacity > 0 {
		if tr != nil {
			var zero T
			b.reserved = int64(capacity) * int64(unsafe.Sizeof(zero))
			if !tr.TryAcquireMemory(b.reserved) {
				panic(ErrMemoryLimit)
			}
		}
		b.buf = make([]T, capacity)
	}
	return b
}

// Combine consumes two blocks and returns a new block of the combined
// capacity holding a's elements followed by b's. Each source is copied as one
// or two contiguous runs depending on whether it wraps, then released.
func Combine[T any](a, b *Block[T]) *Block[T] {
	tr := a.tracker
	if tr == nil {
		tr = b.tracker
	}
	out := New[T](a.Cap()+b.Cap(), tr)
	pos := 0
	for _, src := range []*Block[T]{a, b} {
		pos += src.copyRuns(out.buf[pos:])
		src.discard()
	}
	out.count = pos
	return out
}

// NewFrom consumes other and re-homes its live elements into a freshly
// allocated block of the given capacity. Panics if the elements do not fit.
func NewFrom[T any](capacity int, other *Block[T]) *Block[T] {
	if capacity <= other.count {
		panic(&CapacityError{Capacity: capacity, Count: other.count})
	}
	out := New[T](capacity, other.tracker)
	out.count = other.copyRuns(out.buf)
	other.discard()
	return out
}

// Split consumes the block and returns two blocks of half its capacity. The
// first receives elements up to its capacity before any overflow goes to the
// second, so the second may be empty.
func (b *Block[T]) Split() (*Block[T], *Block[T]) {
	if b.Cap()%2 != 0 {
		panic(ErrOddCapacity)
	}
	half := b.Cap() / 2
	first := New[T](half, b.tracker)
	second := New[T](half, b.tracker)
	remaining := b.count
	for _, out := range []*Block[T]{first, second} {
		pos := 0
		for remaining > 0 && !out.IsFull() {
			// copy the run up to the wraparound boundary or the
			// destination's spare room, whichever ends first
			run := remaining
			if b.head+remaining > b.Cap() {
				run = b.Cap() - b.head
			}
			if fit := out.Cap() - out.count; run > fit {
				run = fit
			}
			copy(out.buf[pos:pos+run], b.buf[b.head:b.head+run])
			pos += run
			out.count += run
			b.head = b.physicalAdd(run)
			remaining -= run
		}
	}
	b.discard()
	return first, second
}

// copyRuns copies the live elements into dst in logical order, as one run or
// as two runs split at the wraparound boundary. Returns the element count.
func (b *Block[T]) copyRuns(dst []T) int {
	if b.head+b.count > len(b.buf) {
		n := copy(dst, b.buf[b.head:])
		n += copy(dst[n:], b.buf[:b.count-(len(b.buf)-b.head)])
		return n
	}
	return copy(dst, b.buf[b.head:b.head+b.count])
}

// discard drops the backing buffer of a consumed block without zeroing: the
// elements now live in another block. The tracker reservation is returned
// exactly once.
func (b *Block[T]) discard() {
	if b.reserved > 0 {
		b.tracker.ReleaseMemory(b.reserved)
		b.reserved = 0
	}
	b.buf = nil
	b.head = 0
	b.count = 0
}

// PushBack appends an element. Panics with ErrFull if the block is full.
func (b *Block[T]) PushBack(value T) {
	if b.count == len(b.buf) {
		panic(ErrFull)
	}
	b.buf[b.physicalAdd(b.count)] = value
	b.count++
}

// PushFront prepends an element. Panics with ErrFull if the block is full.
func (b *Block[T]) PushFront(value T) {
	if b.count == len(b.buf) {
		panic(ErrFull)
	}
	b.head = b.physicalSub(1)
	b.buf[b.head] = value
	b.count++
}

// PopBack removes and returns the last element, reporting false if the block
// is empty.
func (b *Block[T]) PopBack() (T, bool) {
	var zero T
	if b.count == 0 {
		return zero, false
	}
	b.count--
	off := b.physicalAdd(b.count)
	value := b.buf[off]
	b.buf[off] = zero
	return value, true
}

// PopFront removes and returns the first element, reporting false if the
// block is empty.
func (b *Block[T]) PopFront() (T, bool) {
	var zero T
	if b.count == 0 {
		return zero, false
	}
	old := b.head
	b.head = b.physicalAdd(1)
	b.count--
	value := b.buf[old]
	b.buf[old] = zero
	return value, true
}

// Insert places value at logical offset index, shifting whichever side needs
// fewer element moves. Panics on an out-of-range index or a full block.
func (b *Block[T]) Insert(index int, value T) {
	if index < 0 || index > b.count {
		panic(&OutOfRangeError{Op: "insert", Index: index, Len: b.count})
	}
	if b.count == len(b.buf) {
		panic(ErrFull)
	}
	r := b.physicalAdd(index)
	if b.count > 0 && index < b.count {
		if b.head == 0 || r < b.head {
			// target sits in the wrapped segment: slide the elements
			// at and after it one slot toward the tail
			n := b.count - index
			copy(b.buf[r+1:r+1+n], b.buf[r:r+n])
		} else {
			// slide the elements before it one slot toward the head
			n := r - b.head
			src := b.head
			b.head = b.physicalSub(1)
			copy(b.buf[b.head:b.head+n], b.buf[src:src+n])
			r--
		}
	}
	b.buf[r] = value
	b.count++
}

// Remove deletes and returns the element at logical offset index, shifting
// whichever side needs fewer element moves. Panics on an out-of-range index.
func (b *Block[T]) Remove(index int) T {
	if index < 0 || index >= b.count {
		panic(&OutOfRangeError{Op: "remove", Index: index, Len: b.count})
	}
	var zero T
	r := b.physicalAdd(index)
	ret := b.buf[r]
	switch {
	case index == b.count-1:
		b.buf[r] = zero
	case b.head == 0 || r < b.head:
		// slide the trailing elements one slot toward the head
		n := b.count - index - 1
		copy(b.buf[r:r+n], b.buf[r+1:r+1+n])
		b.buf[r+n] = zero
	default:
		// slide the leading elements one slot toward the tail
		n := r - b.head
		src := b.head
		b.head = b.physicalAdd(1)
		copy(b.buf[b.head:b.head+n], b.buf[src:src+n])
		b.buf[src] = zero
	}
	b.count--
	return ret
}

// Get returns the element at logical offset index, reporting false when the
// offset is at or beyond the live count.
func (b *Block[T]) Get(index int) (T, bool) {
	if index < 0 || index >= b.count {
		var zero T
		return zero, false
	}
	return b.buf[b.physicalAdd(index)], true
}

// At returns a pointer to the element at logical offset index, or nil when
// the offset is out of range. The pointer is invalidated by any subsequent
// mutation of the block.
func (b *Block[T]) At(index int) *T {
	if index < 0 || index >= b.count {
		return nil
	}
	return &b.buf[b.physicalAdd(index)]
}

// Clear zeroes every live slot and resets the block to empty without
// releasing the backing buffer. The live range is cleared as one or two
// contiguous runs split at the wraparound boundary.
func (b *Block[T]) Clear() {
	if b.count > 0 {
		first := b.head
		last := b.physicalAdd(b.count)
		if first < last {
			clear(b.buf[first:last])
		} else {
			clear(b.buf[first:])
			clear(b.buf[:last])
		}
	}
	b.head = 0
	b.count = 0
}

// Release zeroes every live slot and returns the backing buffer. Releasing an
// already-released block is a no-op; the tracker reservation is returned
// exactly once.
func (b *Block[T]) Release() {
	b.Clear()
	b.discard()
}

// Len returns the number of live elements.
func (b *Block[T]) Len() int { return b.count }

// Cap returns the number of allocated slots.
func (b *Block[T]) Cap() int { return len(b.buf) }

// IsEmpty reports whether the block holds no elements.
func (b *Block[T]) IsEmpty() bool { return b.count == 0 }

// IsFull reports whether the block has no spare slots.
func (b *Block[T]) IsFull() bool { return b.count == len(b.buf) }

// String implements fmt.Stringer for diagnostics.
func (b *Block[T]) String() string {
	return fmt.Sprintf("Block(capacity: %d, head: %d, count: %d)", len(b.buf), b.head, b.count)
}

// physicalAdd converts a logical offset to a physical slot by wrapping
// addition relative to head.
func (b *Block[T]) physicalAdd(addend int) int {
	idx := b.head + addend
	if idx >= len(b.buf) {
		idx -= len(b.buf)
	}
	return idx
}

// physicalSub converts a logical offset to a physical slot by wrapping
// subtraction relative to head.
func (b *Block[T]) physicalSub(subtrahend int) int {
	idx := b.head - subtrahend + len(b.buf)
	if idx >= len(b.buf) {
		idx -= len(b.buf)
	}
	return idx
}
