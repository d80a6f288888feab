package tracker

// --------------------------------------------------------------------------
// Tracker Interface
// --------------------------------------------------------------------------

// ITracker maps group keys to their group stores during a sweep.
// The iteration order of Range depends on the implementation.
type ITracker[K comparable, V any] interface {
	// Get returns the value stored for k.
	Get(k K) (v V, ok bool)

	// Put stores v for k, replacing an existing value.
	Put(k K, v V)

	// Delete removes k. Deleting a missing key has no effect.
	Delete(k K)

	// Len returns the number of keys.
	Len() (n int)

	// Range calls fn for every key until fn returns false.
	// fn must not modify the tracker.
	Range(fn func(k K, v V) bool)

	// Clear removes all keys.
	Clear()
}

// Type names a tracker implementation
type Type string

const (
	TypeOrdered    Type = "ordered"    // insertion order
	TypeConcurrent Type = "concurrent" // arbitrary order, safe for concurrent use
	TypeSorted     Type = "sorted"     // ascending key order
)

// Keys returns the keys of t in Range order.
func Keys[K comparable, V any](t ITracker[K, V]) []K {
	keys := make([]K, 0, t.Len())
	t.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}
