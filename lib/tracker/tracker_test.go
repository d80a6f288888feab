package tracker

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factories() map[string]func() ITracker[int, string] {
	return map[string]func() ITracker[int, string]{
		"Ordered":    NewOrdered[int, string],
		"Concurrent": NewConcurrent[int, string],
		"Sorted":     NewSorted[int, string],
	}
}

func TestTrackers(t *testing.T) {
	for name, newTracker := range factories() {
		t.Run(name, func(t *testing.T) {
			t.Run("PutGet", func(t *testing.T) {
				tr := newTracker()
				_, ok := tr.Get(1)
				assert.False(t, ok)

				tr.Put(1, "a")
				tr.Put(2, "b")
				v, ok := tr.Get(1)
				require.True(t, ok)
				assert.Equal(t, "a", v)
				assert.Equal(t, 2, tr.Len())

				tr.Put(1, "c")
				v, _ = tr.Get(1)
				assert.Equal(t, "c", v)
				assert.Equal(t, 2, tr.Len())
			})

			t.Run("Delete", func(t *testing.T) {
				tr := newTracker()
				tr.Put(1, "a")
				tr.Delete(1)
				tr.Delete(42)
				_, ok := tr.Get(1)
				assert.False(t, ok)
				assert.Equal(t, 0, tr.Len())
			})

			t.Run("RangeVisitsAll", func(t *testing.T) {
				tr := newTracker()
				for i := 0; i < 100; i++ {
					tr.Put(i, "x")
				}
				keys := Keys(tr)
				sort.Ints(keys)
				require.Len(t, keys, 100)
				for i, k := range keys {
					assert.Equal(t, i, k)
				}
			})

			t.Run("RangeStops", func(t *testing.T) {
				tr := newTracker()
				for i := 0; i < 10; i++ {
					tr.Put(i, "x")
				}
				calls := 0
				tr.Range(func(int, string) bool {
					calls++
					return calls < 3
				})
				assert.Equal(t, 3, calls)
			})

			t.Run("Clear", func(t *testing.T) {
				tr := newTracker()
				for i := 0; i < 10; i++ {
					tr.Put(i, "x")
				}
				tr.Clear()
				assert.Equal(t, 0, tr.Len())
				assert.Empty(t, Keys(tr))
				tr.Put(3, "y")
				assert.Equal(t, []int{3}, Keys(tr))
			})
		})
	}
}

func TestOrderedRangesInInsertionOrder(t *testing.T) {
	tr := NewOrdered[int, string]()
	for _, k := range []int{5, 1, 9, 3} {
		tr.Put(k, "x")
	}
	tr.Put(1, "updated") // keeps its position
	tr.Delete(9)
	tr.Put(9, "x") // moves to the end
	assert.Equal(t, []int{5, 1, 3, 9}, Keys(tr))
}

func TestSortedRangesInKeyOrder(t *testing.T) {
	tr := NewSorted[string, int]()
	for i, k := range []string{"pear", "apple", "fig", "banana"} {
		tr.Put(k, i)
	}
	assert.Equal(t, []string{"apple", "banana", "fig", "pear"}, Keys(tr))
}

func TestConcurrentPut(t *testing.T) {
	tr := NewConcurrent[int, int]()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				tr.Put(w*1000+i, i)
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 8000, tr.Len())
}
