package tracker

import (
	"container/list"
)

// entry is one key/value pair of the ordered tracker
type entry[K comparable, V any] struct {
	key K
	val V
}

// orderedImpl keeps a hash index into a linked list holding the keys in
// insertion order. Re-putting an existing key keeps its position.
type orderedImpl[K comparable, V any] struct {
	index map[K]*list.Element
	order *list.List
}

// NewOrdered creates a tracker that ranges in insertion order.
//
// Thread-safety: The tracker is not thread-safe.
func NewOrdered[K comparable, V any]() ITracker[K, V] {
	return &orderedImpl[K, V]{
		index: make(map[K]*list.Element),
		order: list.New(),
	}
}

func (t *orderedImpl[K, V]) Get(k K) (V, bool) {
	if el, ok := t.index[k]; ok {
		return el.Value.(*entry[K, V]).val, true
	}
	var zero V
	return zero, false
}

func (t *orderedImpl[K, V]) Put(k K, v V) {
	if el, ok := t.index[k]; ok {
		el.Value.(*entry[K, V]).val = v
		return
	}
	t.index[k] = t.order.PushBack(&entry[K, V]{key: k, val: v})
}

func (t *orderedImpl[K, V]) Delete(k K) {
	if el, ok := t.index[k]; ok {
		t.order.Remove(el)
		delete(t.index, k)
	}
}

func (t *orderedImpl[K, V]) Len() int {
	return len(t.index)
}

func (t *orderedImpl[K, V]) Range(fn func(k K, v V) bool) {
	for el := t.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[K, V])
		if !fn(e.key, e.val) {
			return
		}
	}
}

func (t *orderedImpl[K, V]) Clear() {
	clear(t.index)
	t.order.Init()
}
