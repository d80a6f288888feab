package tracker

import (
	"cmp"

	"github.com/google/btree"
)

const btreeDegree = 32

// sortedImpl keeps the entries in a B-tree ordered by key
type sortedImpl[K cmp.Ordered, V any] struct {
	tree *btree.BTreeG[entry[K, V]]
}

// NewSorted creates a tracker that ranges in ascending key order.
//
// Thread-safety: The tracker is not thread-safe.
func NewSorted[K cmp.Ordered, V any]() ITracker[K, V] {
	return &sortedImpl[K, V]{
		tree: btree.NewG[entry[K, V]](btreeDegree, func(a, b entry[K, V]) bool {
			return cmp.Less(a.key, b.key)
		}),
	}
}

func (t *sortedImpl[K, V]) Get(k K) (V, bool) {
	e, ok := t.tree.Get(entry[K, V]{key: k})
	return e.val, ok
}

func (t *sortedImpl[K, V]) Put(k K, v V) {
	t.tree.ReplaceOrInsert(entry[K, V]{key: k, val: v})
}

func (t *sortedImpl[K, V]) Delete(k K) {
	t.tree.Delete(entry[K, V]{key: k})
}

func (t *sortedImpl[K, V]) Len() int {
	return t.tree.Len()
}

func (t *sortedImpl[K, V]) Range(fn func(k K, v V) bool) {
	t.tree.Ascend(func(e entry[K, V]) bool {
		return fn(e.key, e.val)
	})
}

func (t *sortedImpl[K, V]) Clear() {
	t.tree.Clear(false)
}
