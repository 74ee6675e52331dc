package tieredvec

import (
	"fmt"
	"iter"

	"github.com/hupe1980/tieredvec/internal/block"
	"github.com/hupe1980/tieredvec/resource"
)

// Compile time check to ensure the resource controller satisfies the block
// tracker interface.
var _ block.Tracker = (*resource.Controller)(nil)

// Vector is a tiered vector: an ordered index of fixed-capacity circular
// blocks, every one full except possibly the last. Logical index i maps to
// block i >> k, offset i & (2^k - 1).
//
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	geo   geometry
	count int
	index []*block.Block[T] // dope vector

	logger  *Logger
	metrics MetricsCollector
	rc      *resource.Controller
}

// New returns an empty vector with zero capacity. Like the initial growth of
// a built-in slice, the first allocation uses blocks of four slots.
func New[T any](optFns ...Option) *Vector[T] {
	o := applyOptions(optFns)
	return &Vector[T]{
		geo:     newGeometry(minExponent),
		logger:  o.logger,
		metrics: o.metrics,
		rc:      o.controller,
	}
}

// From returns a vector holding the given values in order.
func From[T any](values ...T) *Vector[T] {
	v := New[T]()
	for _, value := range values {
		v.Push(value)
	}
	return v
}

// Collect builds a vector from a sequence by repeated Push. Amortized O(n).
func Collect[T any](seq iter.Seq[T], optFns ...Option) *Vector[T] {
	v := New[T](optFns...)
	for value := range seq {
		v.Push(value)
	}
	return v
}

// tracker returns the block tracker, avoiding a boxed nil controller.
func (v *Vector[T]) tracker() block.Tracker {
	if v.rc == nil {
		return nil
	}
	return v.rc
}

// Insert places value at position index, shifting later elements to the
// right. Panics with *OutOfRangeError if index > Len().
//
// O(√N) worst case: the relay moves one element per block between the target
// block and the tail block.
func (v *Vector[T]) Insert(index int, value T) {
	if index < 0 || index > v.count {
		panic(&OutOfRangeError{Op: OpInsert, Index: index, Len: v.count})
	}
	if v.count >= v.geo.upperLimit {
		v.expand()
	}
	if v.count >= v.Cap() {
		v.index = append(v.index, block.New[T](v.geo.l, v.tracker()))
	}
	target := index >> v.geo.k
	end := v.count >> v.geo.k
	offset := index & v.geo.mask
	relayed := 0
	if target < end {
		// relay phase: cascade one displaced element per block toward
		// the tail to open a gap in the target block
		head, _ := v.index[target].PopBack()
		for i := target + 1; i < end; i++ {
			tail, _ := v.index[i].PopBack()
			v.index[i].PushFront(head)
			head = tail
		}
		v.index[end].PushFront(head)
		relayed = end - target
	}
	// shift phase
	v.index[target].Insert(offset, value)
	v.count++
	v.metrics.RecordInsert(relayed)
}

// Remove deletes and returns the element at position index, shifting later
// elements to the left. Panics with *OutOfRangeError if index >= Len().
//
// O(√N) worst case.
func (v *Vector[T]) Remove(index int) T {
	if index < 0 || index >= v.count {
		panic(&OutOfRangeError{Op: OpRemove, Index: index, Len: v.count})
	}
	// avoid compressing to blocks smaller than four slots
	if v.count < v.geo.lowerLimit && v.geo.k > minExponent {
		v.compress()
	}
	target := index >> v.geo.k
	end := (v.count - 1) >> v.geo.k
	offset := index & v.geo.mask
	// shift phase
	ret := v.index[target].Remove(offset)
	relayed := 0
	if target < end {
		// relay phase: cascade one element per block toward the head
		// to close the gap in the target block
		tail, _ := v.index[end].PopFront()
		for i := end - 1; i > target; i-- {
			head, _ := v.index[i].PopFront()
			v.index[i].PushBack(tail)
			tail = head
		}
		v.index[target].PushBack(tail)
		relayed = end - target
	}
	if v.index[end].IsEmpty() {
		// prune blocks as they become empty; the pruned block is the
		// logical last, which compress may have left as a trailing
		// empty block distinct from the end block
		last := len(v.index) - 1
		v.index[last].Release()
		v.index = v.index[:last]
	}
	v.count--
	v.metrics.RecordRemove(relayed)
	return ret
}

// Push appends an element to the back of the vector. O(√N) amortized.
func (v *Vector[T]) Push(value T) {
	v.Insert(v.count, value)
}

// PushWithinCapacity appends an element only if there is spare capacity,
// reporting whether the push happened. On false the vector is unchanged.
func (v *Vector[T]) PushWithinCapacity(value T) bool {
	if v.Cap() <= v.count {
		return false
	}
	v.Push(value)
	return true
}

// Pop removes and returns the last element, reporting false if the vector is
// empty. O(√N) worst case.
func (v *Vector[T]) Pop() (T, bool) {
	if v.count == 0 {
		var zero T
		return zero, false
	}
	return v.Remove(v.count - 1), true
}

// PopIf removes and returns the last element when predicate reports true for
// it. The predicate receives a mutable reference, is called at most once, and
// is never called on an empty vector.
func (v *Vector[T]) PopIf(predicate func(*T) bool) (T, bool) {
	if v.count == 0 {
		var zero T
		return zero, false
	}
	if last := v.At(v.count - 1); last != nil && predicate(last) {
		return v.Pop()
	}
	var zero T
	return zero, false
}

// Get returns the element at the given position, reporting false when the
// position is at or beyond the length. Constant time.
func (v *Vector[T]) Get(index int) (T, bool) {
	if index < 0 || index >= v.count {
		var zero T
		return zero, false
	}
	return v.index[index>>v.geo.k].Get(index & v.geo.mask)
}

// At returns a pointer to the element at the given position, or nil when the
// position is out of range. The pointer is invalidated by any subsequent
// mutation of the vector. Constant time.
func (v *Vector[T]) At(index int) *T {
	if index < 0 || index >= v.count {
		return nil
	}
	return v.index[index>>v.geo.k].At(index & v.geo.mask)
}

// Set replaces the element at the given position, reporting false when the
// position is out of range. Constant time.
func (v *Vector[T]) Set(index int, value T) bool {
	p := v.At(index)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Len returns the number of elements in the vector. Constant time.
func (v *Vector[T]) Len() int { return v.count }

// Cap returns the total number of elements the vector can hold without
// allocating another block. Constant time.
func (v *Vector[T]) Cap() int { return v.geo.l * len(v.index) }

// IsEmpty reports whether the vector has a length of zero.
func (v *Vector[T]) IsEmpty() bool { return v.count == 0 }

// BlockSize returns the current per-block capacity (2^k). It doubles on
// expansion, halves on compression and never drops below four.
func (v *Vector[T]) BlockSize() int { return v.geo.l }

// Clear removes all values and releases every block, resetting the vector to
// its empty defaults. Clearing an empty vector is a no-op.
//
// O(n) when elements hold references, otherwise O(√N).
func (v *Vector[T]) Clear() {
	n := v.count
	for _, b := range v.index {
		b.Release()
	}
	v.index = nil
	v.count = 0
	v.geo = newGeometry(minExponent)
	v.metrics.RecordClear(n)
	v.logger.LogClear(n)
}

// String implements fmt.Stringer for diagnostics.
func (v *Vector[T]) String() string {
	return fmt.Sprintf("Vector(k: %d, count: %d, blocks: %d)", v.geo.k, v.count, len(v.index))
}

// expand doubles the per-block capacity by combining adjacent blocks into new
// blocks of twice the size. An unpaired trailing block is re-homed into the
// new capacity.
func (v *Vector[T]) expand() {
	next := newGeometry(v.geo.k + 1)
	old := v.index
	v.index = make([]*block.Block[T], 0, (len(old)+1)/2)
	for i := 0; i < len(old); i += 2 {
		if i+1 < len(old) {
			v.index = append(v.index, block.Combine(old[i], old[i+1]))
		} else {
			v.index = append(v.index, block.NewFrom(next.l, old[i]))
		}
	}
	v.geo = next
	v.metrics.RecordExpand(next.l)
	v.logger.LogExpand(next.l, len(v.index))
}

// compress halves the per-block capacity by splitting every block in two.
func (v *Vector[T]) compress() {
	next := newGeometry(v.geo.k - 1)
	old := v.index
	v.index = make([]*block.Block[T], 0, len(old)*2)
	for _, b := range old {
		first, second := b.Split()
		v.index = append(v.index, first, second)
	}
	v.geo = next
	v.metrics.RecordCompress(next.l)
	v.logger.LogCompress(next.l, len(v.index))
}
