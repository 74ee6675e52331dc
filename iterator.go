package tieredvec

import (
	"iter"

	"github.com/hupe1980/tieredvec/internal/block"
)

// Values returns a non-owning forward view over the vector: a lazy, finite,
// restartable sequence produced by repeated Get calls from position zero
// upward, terminating at the first absent result.
//
// The vector must not be mutated while a ranging loop is in progress.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; ; i++ {
			value, ok := v.Get(i)
			if !ok || !yield(value) {
				return
			}
		}
	}
}

// All returns an index/value variant of Values, following the convention of
// slices.All.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; ; i++ {
			value, ok := v.Get(i)
			if !ok || !yield(i, value) {
				return
			}
		}
	}
}

// Drain transfers ownership of the vector's blocks into a consuming iterator
// and resets the vector to its empty defaults. The vector remains valid and
// reusable; the drain becomes the sole owner of the remaining elements and
// block buffers.
func (v *Vector[T]) Drain() *Drain[T] {
	d := &Drain[T]{
		count: v.count,
		index: v.index,
	}
	v.index = nil
	v.count = 0
	v.geo = newGeometry(minExponent)
	return d
}

// Drain is an owning iterator that moves elements out of a tiered vector,
// popping the front of the first block and pruning blocks as they empty.
//
// A drain discarded before exhaustion must be closed: Close releases every
// not-yet-yielded element and every remaining block buffer exactly once.
type Drain[T any] struct {
	// count is the number of remaining elements
	count int
	// index is the remaining block list, front block first
	index []*block.Block[T]
}

// Next returns the next element, reporting false when the drain is
// exhausted.
func (d *Drain[T]) Next() (T, bool) {
	if d.count == 0 {
		var zero T
		return zero, false
	}
	value, _ := d.index[0].PopFront()
	d.count--
	// shed emptied blocks eagerly; exhaustion may expose a trailing empty
	// block left behind by a compression
	for len(d.index) > 0 && d.index[0].IsEmpty() {
		d.index[0].Release()
		d.index = d.index[1:]
	}
	return value, true
}

// Len returns the number of elements remaining in the drain.
func (d *Drain[T]) Len() int { return d.count }

// Values returns the remaining elements as a single-use sequence. The drain
// is consumed as the sequence is ranged; breaking out of the loop leaves the
// remainder in the drain, and Close still applies.
func (d *Drain[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			value, ok := d.Next()
			if !ok || !yield(value) {
				return
			}
		}
	}
}

// Close releases every remaining element and block buffer. Closing an
// exhausted or already-closed drain is a no-op.
func (d *Drain[T]) Close() {
	for _, b := range d.index {
		b.Release()
	}
	d.index = nil
	d.count = 0
}
