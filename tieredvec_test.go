package tieredvec_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tieredvec"
	"github.com/hupe1980/tieredvec/internal/testutil"
	"github.com/hupe1980/tieredvec/resource"
)

func TestVectorInsertHead(t *testing.T) {
	v := tieredvec.New[int]()
	assert.True(t, v.IsEmpty())
	for value := 16; value >= 1; value-- {
		v.Insert(0, value)
	}
	assert.False(t, v.IsEmpty())
	for i := 0; i < 16; i++ {
		value, ok := v.Get(i)
		require.True(t, ok)
		assert.Equal(t, i+1, value)
	}
}

func TestVectorPushAndClear(t *testing.T) {
	v := tieredvec.New[int]()
	for value := 0; value < 64; value++ {
		v.Push(value)
	}
	assert.Equal(t, 64, v.Len())
	assert.Equal(t, 64, v.Cap())
	for i := 0; i < 64; i++ {
		value, ok := v.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, value)
	}
	v.Clear()
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
}

func TestVectorClearIdempotent(t *testing.T) {
	v := tieredvec.New[int]()
	v.Clear()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
	v.Push(1)
	v.Clear()
	v.Clear()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())
	// reusable after clear
	v.Push(2)
	value, ok := v.Get(0)
	require.True(t, ok)
	assert.Equal(t, 2, value)
}

func TestVectorAtAndSet(t *testing.T) {
	v := tieredvec.New[int]()
	for value := 0; value < 4; value++ {
		v.Push(value)
	}
	p := v.At(1)
	require.NotNil(t, p)
	*p = 11
	require.True(t, v.Set(2, 12))
	assert.False(t, v.Set(4, 99))
	assert.Nil(t, v.At(4))

	want := []int{0, 11, 12, 3}
	for i, w := range want {
		value, ok := v.Get(i)
		require.True(t, ok)
		assert.Equal(t, w, value)
	}
}

func TestVectorGetOutOfRange(t *testing.T) {
	v := tieredvec.New[int]()
	_, ok := v.Get(0)
	assert.False(t, ok)
	v.Push(1)
	_, ok = v.Get(1)
	assert.False(t, ok)
	_, ok = v.Get(-1)
	assert.False(t, ok)
}

func TestVectorInsertExpand(t *testing.T) {
	v := tieredvec.New[int]()
	for value := 130; value >= 1; value-- {
		v.Insert(0, value)
	}
	assert.Equal(t, 130, v.Len())
	assert.Equal(t, 144, v.Cap())
	for i := 0; i < 130; i++ {
		value, ok := v.Get(i)
		require.True(t, ok)
		assert.Equal(t, i+1, value)
	}
}

func TestVectorPushMany(t *testing.T) {
	v := tieredvec.New[int]()
	for value := 0; value < 100_000; value++ {
		v.Push(value)
	}
	assert.Equal(t, 100_000, v.Len())
	assert.Equal(t, 100_352, v.Cap())
	for i := 0; i < 100_000; i++ {
		value, ok := v.Get(i)
		require.True(t, ok)
		require.Equal(t, i, value)
	}
}

func TestVectorPushWithinCapacity(t *testing.T) {
	// an empty vector has no allocated space
	v := tieredvec.New[int]()
	assert.False(t, v.PushWithinCapacity(101))
	assert.Equal(t, 0, v.Len())

	v.Push(1)
	v.Push(2)
	assert.True(t, v.PushWithinCapacity(3))
	assert.True(t, v.PushWithinCapacity(4))
	assert.False(t, v.PushWithinCapacity(5))
	assert.Equal(t, 4, v.Len())
}

func TestVectorRemoveSmall(t *testing.T) {
	v := tieredvec.New[int]()
	for value := 0; value < 15; value++ {
		v.Push(value)
	}
	require.Equal(t, 15, v.Len())
	for value := 0; value < 15; value++ {
		assert.Equal(t, value, v.Remove(0))
	}
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 0, v.Cap())
}

func TestVectorRemoveMedium(t *testing.T) {
	v := tieredvec.New[int]()
	for value := 0; value < 2048; value++ {
		v.Push(value)
	}
	require.Equal(t, 2048, v.Len())
	require.Equal(t, 2048, v.Cap())
	for value := 0; value < 2048; value++ {
		require.Equal(t, value, v.Remove(0))
	}
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 0, v.Cap())
}

func TestVectorExpandAndCompress(t *testing.T) {
	// add enough to cause multiple expansions
	v := tieredvec.New[int]()
	for value := 0; value < 1024; value++ {
		v.Push(value)
	}
	assert.Equal(t, 1024, v.Len())
	assert.Equal(t, 1024, v.Cap())
	// remove enough to cause multiple compressions
	for i := 0; i < 960; i++ {
		v.Pop()
	}
	// ensure the correct elements remain
	assert.Equal(t, 64, v.Len())
	assert.Equal(t, 64, v.Cap())
	for i := 0; i < 64; i++ {
		value, ok := v.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, value)
	}
}

func TestVectorResizeTriggers(t *testing.T) {
	v := tieredvec.New[int]()
	assert.Equal(t, 4, v.BlockSize())
	for value := 0; value < 16; value++ {
		v.Push(value)
	}
	// the upper threshold is reached but the expansion happens on the
	// insert that crosses it
	assert.Equal(t, 4, v.BlockSize())
	v.Push(16)
	assert.Equal(t, 8, v.BlockSize())

	// popping below the lower threshold halves the block size, never
	// below four
	for v.Len() > 0 {
		v.Pop()
		assert.GreaterOrEqual(t, v.BlockSize(), 4)
	}
	assert.Equal(t, 4, v.BlockSize())
}

func TestVectorPopSmall(t *testing.T) {
	v := tieredvec.New[int]()
	for value := 0; value < 15; value++ {
		v.Push(value)
	}
	for value := 14; value >= 0; value-- {
		got, ok := v.Pop()
		require.True(t, ok)
		assert.Equal(t, value, got)
	}
	_, ok := v.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, v.Cap())
}

func TestVectorPopIf(t *testing.T) {
	v := tieredvec.New[int]()
	_, ok := v.PopIf(func(*int) bool {
		panic("should not be called")
	})
	assert.False(t, ok)

	for value := 0; value < 10; value++ {
		v.Push(value)
	}
	_, ok = v.PopIf(func(*int) bool { return false })
	assert.False(t, ok)
	assert.Equal(t, 10, v.Len())

	got, ok := v.PopIf(func(p *int) bool { return *p == 9 })
	require.True(t, ok)
	assert.Equal(t, 9, got)

	_, ok = v.PopIf(func(p *int) bool { return *p == 9 })
	assert.False(t, ok)
}

func TestVectorInsertBoundsPanics(t *testing.T) {
	v := tieredvec.New[int]()
	v.Push(1)
	want := &tieredvec.OutOfRangeError{Op: tieredvec.OpInsert, Index: 3, Len: 1}
	assert.PanicsWithError(t, want.Error(), func() {
		v.Insert(3, 2)
	})
	// state unchanged
	assert.Equal(t, 1, v.Len())
}

func TestVectorRemoveBoundsPanics(t *testing.T) {
	v := tieredvec.New[int]()
	v.Push(1)
	// the removal bound is strict: an index equal to the length is
	// rejected before any block lookup
	want := &tieredvec.OutOfRangeError{Op: tieredvec.OpRemove, Index: 1, Len: 1}
	assert.PanicsWithError(t, want.Error(), func() {
		v.Remove(1)
	})
	assert.Equal(t, 1, v.Len())
}

func TestVectorRemoveInsertBasic(t *testing.T) {
	v := tieredvec.New[int]()
	for value := 1; value <= 16; value++ {
		v.Push(value)
	}
	value := v.Remove(3)
	v.Insert(7, value)

	var sorted []int
	for val := range v.Values() {
		sorted = append(sorted, val)
	}
	slices.Sort(sorted)
	for i, want := 0, 1; want <= 16; i, want = i+1, want+1 {
		assert.Equal(t, want, sorted[i])
	}
}

func TestVectorRandomInsertRemove(t *testing.T) {
	const size = 10_000
	rng := testutil.NewRNG(42)
	v := tieredvec.New[int]()
	for value := 1; value <= size; value++ {
		v.Push(value)
	}
	for i := 0; i < 20_000; i++ {
		from := rng.IntN(size)
		to := rng.IntN(size - 1)
		value := v.Remove(from)
		v.Insert(to, value)
	}
	require.Equal(t, size, v.Len())

	sorted := slices.Collect(v.Values())
	slices.Sort(sorted)
	for i := 0; i < size; i++ {
		require.Equal(t, i+1, sorted[i])
	}
}

func TestVectorBoundaryInsertRemove(t *testing.T) {
	v := tieredvec.New[int]()
	for value := 0; value < 100; value++ {
		v.Push(value)
	}
	// index 0 and the final valid index behave like interior positions
	v.Insert(0, -1)
	v.Insert(v.Len(), 100)
	v.Insert(50, 999)
	assert.Equal(t, 103, v.Len())

	first, _ := v.Get(0)
	assert.Equal(t, -1, first)
	mid, _ := v.Get(50)
	assert.Equal(t, 999, mid)
	last, _ := v.Get(v.Len() - 1)
	assert.Equal(t, 100, last)

	assert.Equal(t, 999, v.Remove(50))
	assert.Equal(t, 100, v.Remove(v.Len()-1))
	assert.Equal(t, -1, v.Remove(0))
	assert.Equal(t, 100, v.Len())
	for i := 0; i < 100; i++ {
		value, _ := v.Get(i)
		require.Equal(t, i, value)
	}
}

func TestVectorPushPopStrings(t *testing.T) {
	rng := testutil.NewRNG(7)
	v := tieredvec.New[string]()
	for i := 0; i < 1024; i++ {
		v.Push(rng.ULID())
	}
	assert.Equal(t, 1024, v.Len())
	for {
		s, ok := v.Pop()
		if !ok {
			break
		}
		assert.NotEmpty(t, s)
	}
	assert.True(t, v.IsEmpty())
}

func TestVectorFrom(t *testing.T) {
	v := tieredvec.From(1, 2, 3, 4, 5)
	assert.Equal(t, 5, v.Len())
	for i := 0; i < 5; i++ {
		value, _ := v.Get(i)
		assert.Equal(t, i+1, value)
	}
}

func TestVectorCollect(t *testing.T) {
	inputs := make([]int, 10_000)
	for i := range inputs {
		inputs[i] = i
	}
	v := tieredvec.Collect(slices.Values(inputs))
	require.Equal(t, 10_000, v.Len())
	for i := 0; i < 10_000; i++ {
		value, ok := v.Get(i)
		require.True(t, ok)
		require.Equal(t, i, value)
	}
}

func TestVectorInvariants(t *testing.T) {
	rng := testutil.NewRNG(11)
	v := tieredvec.New[int]()
	check := func() {
		assert.LessOrEqual(t, v.Len(), v.Cap())
		if v.BlockSize() > 0 {
			assert.Zero(t, v.Cap()%v.BlockSize())
		}
	}
	for i := 0; i < 3000; i++ {
		switch rng.IntN(4) {
		case 0, 1:
			v.Push(i)
		case 2:
			if v.Len() > 0 {
				v.Remove(rng.IntN(v.Len()))
			}
		case 3:
			if v.Len() > 0 {
				v.Insert(rng.IntN(v.Len()+1), i)
			}
		}
		check()
	}
}

func TestVectorString(t *testing.T) {
	v := tieredvec.New[int]()
	assert.Equal(t, "Vector(k: 2, count: 0, blocks: 0)", v.String())
	for i := 0; i < 5; i++ {
		v.Push(i)
	}
	assert.Equal(t, "Vector(k: 2, count: 5, blocks: 2)", v.String())
}

func TestVectorMemoryAccounting(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	v := tieredvec.New[int](tieredvec.WithResourceController(rc))
	assert.Zero(t, rc.MemoryUsage())

	for value := 0; value < 1024; value++ {
		v.Push(value)
	}
	assert.Positive(t, rc.MemoryUsage())

	// popping down prunes blocks and returns their reservations
	for i := 0; i < 1000; i++ {
		v.Pop()
	}
	usage := rc.MemoryUsage()
	assert.Positive(t, usage)

	v.Clear()
	assert.Zero(t, rc.MemoryUsage())
}

func TestVectorMemoryLimit(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 16})
	v := tieredvec.New[int](tieredvec.WithResourceController(rc))
	// the first block needs 4 slots of 8 bytes
	assert.PanicsWithError(t, tieredvec.ErrMemoryLimit.Error(), func() {
		v.Push(1)
	})
}

func TestVectorMetrics(t *testing.T) {
	metrics := &tieredvec.BasicMetricsCollector{}
	v := tieredvec.New[int](tieredvec.WithMetricsCollector(metrics))
	for value := 0; value < 17; value++ {
		v.Push(value)
	}
	v.Insert(0, -1)
	v.Remove(0)
	v.Clear()

	stats := metrics.GetStats()
	assert.Equal(t, int64(18), stats.InsertCount)
	assert.Equal(t, int64(1), stats.RemoveCount)
	assert.Equal(t, int64(1), stats.ExpandCount)
	assert.Equal(t, int64(1), stats.ClearCount)
	assert.Equal(t, int64(17), stats.ClearElements)
	assert.Positive(t, stats.InsertRelayed)
}
