package tracker

import (
	"github.com/puzpuzpuz/xsync/v3"
)

type concurrentImpl[K comparable, V any] struct {
	m *xsync.MapOf[K, V]
}

// NewConcurrent creates a tracker backed by a concurrent hash map.
// Range visits the keys in no particular order.
//
// Thread-safety: All methods are safe for concurrent use.
func NewConcurrent[K comparable, V any]() ITracker[K, V] {
	return &concurrentImpl[K, V]{
		m: xsync.NewMapOf[K, V](),
	}
}

func (t *concurrentImpl[K, V]) Get(k K) (V, bool) {
	return t.m.Load(k)
}

func (t *concurrentImpl[K, V]) Put(k K, v V) {
	t.m.Store(k, v)
}

func (t *concurrentImpl[K, V]) Delete(k K) {
	t.m.Delete(k)
}

func (t *concurrentImpl[K, V]) Len() int {
	return t.m.Size()
}

func (t *concurrentImpl[K, V]) Range(fn func(k K, v V) bool) {
	t.m.Range(fn)
}

func (t *concurrentImpl[K, V]) Clear() {
	t.m.Clear()
}
