package queue

import (
	"github.com/ValentinKolb/xgroup/lib/common"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Factory creates a new, unopened queue. It is used by operators that create
// spill queues lazily.
type Factory[E any] func() (IQueue[E], error)

// IQueue is a FIFO sequence that elements can be appended to and drained from.
// Queues must be opened before use; every operation after Close fails with an
// IllegalState error.
type IQueue[E any] interface {
	// Open acquires the resources of the queue (files, databases, ...).
	// Open is idempotent.
	Open() (err error)

	// Enqueue appends an element to the tail of the queue.
	Enqueue(elem E) (err error)

	// Dequeue removes and returns the element at the head of the queue.
	// A NotFound error is returned if the queue is empty.
	Dequeue() (elem E, err error)

	// Size returns the number of elements in the queue.
	Size() (n int)

	// Clear removes all elements from the queue. The queue stays open.
	Clear() (err error)

	// Close releases all resources of the queue. Close is idempotent.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Common errors
// --------------------------------------------------------------------------

// ErrEmpty returns the error used by Dequeue on an empty queue.
func ErrEmpty() error {
	return common.NewError(common.RetCNotFound, "queue is empty")
}

// CheckOpen returns an IllegalState error if a queue is not (or no longer) open.
func CheckOpen(opened, closed bool, op string) error {
	if closed {
		return common.Errorf(common.RetCIllegalState, "queue: %s called after close", op)
	}
	if !opened {
		return common.Errorf(common.RetCIllegalState, "queue: %s called before open", op)
	}
	return nil
}
