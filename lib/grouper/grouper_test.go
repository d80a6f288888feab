package grouper

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/cursor"
	"github.com/ValentinKolb/xgroup/lib/queue"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// twoGroups is a budget that fits exactly two keys: (34 - 4) / 10 - 1 = 2
func twoGroups[E any, K comparable]() Options[E, K] {
	return Options[E, K]{MemSize: 34, ObjectSize: 4, KeySize: 10}
}

type group[K comparable, E any] struct {
	key   K
	elems []E
}

// drain opens g and reads all groups in emission order
func drain[E any, K comparable](t *testing.T, g *NestedLoopsGrouper[E, K]) []group[K, E] {
	t.Helper()
	require.NoError(t, g.Open())

	var groups []group[K, E]
	for {
		ok, err := g.HasNext()
		require.NoError(t, err)
		if !ok {
			return groups
		}
		key, c, err := g.NextGroup()
		require.NoError(t, err)
		elems, err := cursor.Collect(c)
		require.NoError(t, err)
		groups = append(groups, group[K, E]{key: key, elems: elems})
	}
}

func byKey[E any, K comparable](groups []group[K, E]) map[K][]E {
	m := make(map[K][]E, len(groups))
	for _, g := range groups {
		m[g.key] = g.elems
	}
	return m
}

func mod5(v int) int { return v % 5 }

func rangeInts(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

// --------------------------------------------------------------------------
// Tests
// --------------------------------------------------------------------------

func TestModFiveWithTwoGroups(t *testing.T) {
	g, err := NewNestedLoopsGrouper(cursor.FromSlice(rangeInts(21)), mod5, twoGroups[int, int]())
	require.NoError(t, err)
	defer g.Close()
	require.Equal(t, 2, g.MaxGroups())

	require.NoError(t, g.Open())
	ok, err := g.HasNext()
	require.NoError(t, err)
	require.True(t, ok)

	// keys 2, 3 and 4 did not fit into the first sweep
	info := g.GetInfo()
	assert.Equal(t, int64(1), info.Sweeps)
	assert.Equal(t, int64(21), info.ElementsRead)
	assert.Equal(t, 12, info.SpillSize)
	assert.Equal(t, 2, info.TrackedGroups)

	key, c, err := g.NextGroup()
	require.NoError(t, err)
	elems, err := cursor.Collect(c)
	require.NoError(t, err)
	assert.Equal(t, 0, key)
	assert.Equal(t, []int{0, 5, 10, 15, 20}, elems)

	key, c, err = g.NextGroup()
	require.NoError(t, err)
	elems, err = cursor.Collect(c)
	require.NoError(t, err)
	assert.Equal(t, 1, key)
	assert.Equal(t, []int{1, 6, 11, 16}, elems)

	rest := drain(t, g)
	require.Len(t, rest, 3)
	assert.Equal(t, map[int][]int{
		2: {2, 7, 12, 17},
		3: {3, 8, 13, 18},
		4: {4, 9, 14, 19},
	}, byKey(rest))

	// key 4 was spilled again by the second sweep
	info = g.GetInfo()
	assert.Equal(t, int64(3), info.Sweeps)
	assert.Equal(t, int64(12+4), info.ElementsSpilled)
	assert.Equal(t, int64(5), info.GroupsEmitted)
	assert.Equal(t, int64(4), info.GroupSizeMin)
	assert.Equal(t, int64(5), info.GroupSizeMax)
	assert.Equal(t, 0, info.SpillSize)
	assert.Equal(t, cursor.StateExhausted.String(), info.State)
}

func TestEmptyInput(t *testing.T) {
	g, err := NewNestedLoopsGrouper(cursor.Empty[int](), mod5, twoGroups[int, int]())
	require.NoError(t, err)
	defer g.Close()

	require.NoError(t, g.Open())
	ok, err := g.HasNext()
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = g.Next()
	assert.True(t, common.HasCode(err, common.RetCNotFound), "got %v", err)
	assert.Equal(t, cursor.StateExhausted, g.State())
}

func TestPartition(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	input := make([]int, 5000)
	for i := range input {
		input[i] = rnd.Intn(100_000)
	}
	keyOf := func(v int) int { return v % 97 }

	opts := Options[int, int]{MemSize: 1000, ObjectSize: 0, KeySize: 100} // 9 groups per sweep
	g, err := NewNestedLoopsGrouper(cursor.FromSlice(input), keyOf, opts)
	require.NoError(t, err)
	defer g.Close()

	groups := drain(t, g)
	assert.Len(t, groups, 97)

	// no loss and no duplication
	var all []int
	seen := make(map[int]bool)
	for _, grp := range groups {
		require.NotEmpty(t, grp.elems)
		require.False(t, seen[grp.key], "key %d emitted twice", grp.key)
		seen[grp.key] = true
		for _, e := range grp.elems {
			require.Equal(t, grp.key, keyOf(e))
		}
		all = append(all, grp.elems...)
	}
	assert.ElementsMatch(t, input, all)

	// elements keep their input order within a group
	for _, grp := range groups {
		var want []int
		for _, e := range input {
			if keyOf(e) == grp.key {
				want = append(want, e)
			}
		}
		assert.Equal(t, want, grp.elems)
	}

	assert.Equal(t, int64(11), g.GetInfo().Sweeps) // ceil(97 / 9)
}

func TestOneShotInput(t *testing.T) {
	g, err := FromSeq(slices.Values(rangeInts(21)), mod5, twoGroups[int, int]())
	require.NoError(t, err)
	defer g.Close()

	assert.False(t, g.SupportsReset())
	assert.Len(t, drain(t, g), 5)

	err = g.Reset()
	assert.True(t, common.HasCode(err, common.RetCUnsupportedOperation), "got %v", err)
}

func TestReset(t *testing.T) {
	g, err := NewNestedLoopsGrouper(cursor.FromSlice(rangeInts(21)), mod5, twoGroups[int, int]())
	require.NoError(t, err)
	defer g.Close()
	require.True(t, g.SupportsReset())

	first := byKey(drain(t, g))

	require.NoError(t, g.Reset())
	assert.Equal(t, cursor.StateReady, g.State())
	assert.Equal(t, first, byKey(drain(t, g)))

	// reset in the middle of a replay sweep
	require.NoError(t, g.Reset())
	for i := 0; i < 3; i++ {
		_, _, err := g.NextGroup()
		require.NoError(t, err)
	}
	require.NoError(t, g.Reset())
	assert.Equal(t, 0, g.GetInfo().SpillSize)
	assert.Equal(t, 0, g.GetInfo().TrackedGroups)
	assert.Equal(t, first, byKey(drain(t, g)))
}

func TestLifecycle(t *testing.T) {
	g, err := NewNestedLoopsGrouper(cursor.FromSlice(rangeInts(21)), mod5, twoGroups[int, int]())
	require.NoError(t, err)
	assert.Equal(t, cursor.StateUnopened, g.State())

	_, err = g.HasNext()
	assert.True(t, common.HasCode(err, common.RetCIllegalState), "HasNext before open: %v", err)
	_, err = g.Next()
	assert.True(t, common.HasCode(err, common.RetCIllegalState), "Next before open: %v", err)
	err = g.Reset()
	assert.True(t, common.HasCode(err, common.RetCIllegalState), "Reset before open: %v", err)

	require.NoError(t, g.Open())
	require.NoError(t, g.Open())
	ok, err := g.HasNext()
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, g.Close())
	require.NoError(t, g.Close())
	assert.Equal(t, cursor.StateClosed, g.State())

	require.NoError(t, g.Open(), "open after close is a no-op")
	_, err = g.HasNext()
	assert.True(t, common.HasCode(err, common.RetCIllegalState), "HasNext after close: %v", err)
}

func TestGroupCursorOutlivesGrouper(t *testing.T) {
	g, err := NewNestedLoopsGrouper(cursor.FromSlice(rangeInts(21)), mod5, twoGroups[int, int]())
	require.NoError(t, err)
	require.NoError(t, g.Open())

	_, c, err := g.NextGroup()
	require.NoError(t, err)
	require.NoError(t, g.Close())

	elems, err := cursor.Collect(c)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5, 10, 15, 20}, elems)
}

func TestInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		opts Options[int, int]
	}{
		{"ZeroKeySize", Options[int, int]{MemSize: 100, ObjectSize: 4, KeySize: 0}},
		{"NegativeKeySize", Options[int, int]{MemSize: 100, ObjectSize: 4, KeySize: -1}},
		{"NegativeObjectSize", Options[int, int]{MemSize: 100, ObjectSize: -1, KeySize: 10}},
		{"BudgetTooSmall", Options[int, int]{MemSize: 23, ObjectSize: 4, KeySize: 10}},
		{"ObjectLargerThanBudget", Options[int, int]{MemSize: 10, ObjectSize: 11, KeySize: 1}},
		{"HugeKeySize", Options[int, int]{MemSize: 10, ObjectSize: 0, KeySize: 1 << 62}},
		{"HugeKeyAndObjectSize", Options[int, int]{MemSize: math.MaxInt, ObjectSize: math.MaxInt / 2, KeySize: math.MaxInt/2 + 1}},
		{"NegativeMemSize", Options[int, int]{MemSize: math.MinInt, ObjectSize: math.MaxInt, KeySize: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNestedLoopsGrouper(cursor.Empty[int](), mod5, tt.opts)
			assert.True(t, common.HasCode(err, common.RetCInvalidConfiguration), "got %v", err)
		})
	}

	t.Run("SmallestBudget", func(t *testing.T) {
		g, err := NewNestedLoopsGrouper(cursor.Empty[int](), mod5, Options[int, int]{MemSize: 24, ObjectSize: 4, KeySize: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, g.MaxGroups())
	})

	t.Run("NilMapping", func(t *testing.T) {
		_, err := NewNestedLoopsGrouper[int, int](cursor.Empty[int](), nil, twoGroups[int, int]())
		assert.True(t, common.HasCode(err, common.RetCInvalidConfiguration), "got %v", err)
	})
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions[int, int]()
	assert.Equal(t, (64<<20-128)/256-1, opts.MaxGroups())

	g, err := NewNestedLoopsGrouper(cursor.FromSlice(rangeInts(21)), mod5, opts)
	require.NoError(t, err)
	defer g.Close()
	assert.NotEmpty(t, g.GetInfo().Name)
	assert.Len(t, drain(t, g), 5)
	assert.Equal(t, int64(1), g.GetInfo().Sweeps)
}

// --------------------------------------------------------------------------
// Close error aggregation
// --------------------------------------------------------------------------

type failingCloseCursor struct {
	cursor.Cursor[int]
}

func (c failingCloseCursor) Close() error {
	_ = c.Cursor.Close()
	return errors.New("input close failed")
}

type failingCloseQueue struct {
	queue.IQueue[int]
}

func (q failingCloseQueue) Close() error {
	_ = q.IQueue.Close()
	return errors.New("spill close failed")
}

func TestCloseAggregatesErrors(t *testing.T) {
	opts := twoGroups[int, int]()
	opts.NewQueue = func() (queue.IQueue[int], error) {
		return failingCloseQueue{queue.NewArrayQueue[int]()}, nil
	}
	g, err := NewNestedLoopsGrouper[int, int](failingCloseCursor{cursor.FromSlice(rangeInts(21))}, mod5, opts)
	require.NoError(t, err)

	require.NoError(t, g.Open())
	_, err = g.HasNext()
	require.NoError(t, err)

	err = g.Close()
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)

	assert.NoError(t, g.Close(), "second close has no effect")
}

// --------------------------------------------------------------------------
// Benchmarks
// --------------------------------------------------------------------------

func benchmarkGrouper(b *testing.B, opts Options[int, int]) {
	input := rangeInts(10_000)
	keyOf := func(v int) int { return v % 100 }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g, err := NewNestedLoopsGrouper(cursor.FromSlice(input), keyOf, opts)
		if err != nil {
			b.Fatal(err)
		}
		if err := g.Open(); err != nil {
			b.Fatal(err)
		}
		for {
			ok, err := g.HasNext()
			if err != nil {
				b.Fatal(err)
			}
			if !ok {
				break
			}
			c, err := g.Next()
			if err != nil {
				b.Fatal(err)
			}
			if _, err := cursor.Collect(c); err != nil {
				b.Fatal(err)
			}
		}
		_ = g.Close()
	}
}

func BenchmarkSingleSweep(b *testing.B) {
	benchmarkGrouper(b, DefaultOptions[int, int]())
}

func BenchmarkTenSweeps(b *testing.B) {
	// 10 groups per sweep for 100 keys
	benchmarkGrouper(b, Options[int, int]{MemSize: 110, ObjectSize: 0, KeySize: 10})
}
