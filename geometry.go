package tieredvec

// minExponent is the smallest block-capacity exponent: blocks never shrink
// below 2^2 = 4 slots, matching the initial allocation of a built-in slice.
const minExponent = 2

// geometry holds the sizing fields of the vector, all derived from the
// block-capacity exponent k. It is recomputed as one value on every resize.
type geometry struct {
	// k is the block-capacity exponent; each block holds l = 2^k slots
	k int
	// l is 2^k, cached
	l int
	// mask extracts the offset within a block from a logical index
	mask int
	// upperLimit is the count at which the vector expands (l²)
	upperLimit int
	// lowerLimit is the count below which the vector compresses (l²/8)
	lowerLimit int
}

func newGeometry(k int) geometry {
	l := 1 << k
	return geometry{
		k:          k,
		l:          l,
		mask:       l - 1,
		upperLimit: l * l,
		lowerLimit: l * l / 8,
	}
}
