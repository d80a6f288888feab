package queue

import (
	"github.com/eapache/queue"
)

// arrayQueueImpl is an in-memory FIFO backed by a ring buffer
type arrayQueueImpl[E any] struct {
	buf    *queue.Queue
	opened bool
	closed bool
}

// NewArrayQueue creates a new in-memory queue backed by a growable ring buffer.
//
// Thread-safety: The queue is not thread-safe.
func NewArrayQueue[E any]() IQueue[E] {
	return &arrayQueueImpl[E]{
		buf: queue.New(),
	}
}

// ArrayQueueFactory returns a Factory creating array queues.
func ArrayQueueFactory[E any]() Factory[E] {
	return func() (IQueue[E], error) {
		return NewArrayQueue[E](), nil
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see queue.IQueue)
// --------------------------------------------------------------------------

func (q *arrayQueueImpl[E]) Open() error {
	if !q.closed {
		q.opened = true
	}
	return nil
}

func (q *arrayQueueImpl[E]) Enqueue(elem E) error {
	if err := CheckOpen(q.opened, q.closed, "Enqueue"); err != nil {
		return err
	}
	q.buf.Add(elem)
	return nil
}

func (q *arrayQueueImpl[E]) Dequeue() (E, error) {
	var zero E
	if err := CheckOpen(q.opened, q.closed, "Dequeue"); err != nil {
		return zero, err
	}
	if q.buf.Length() == 0 {
		return zero, ErrEmpty()
	}
	elem, _ := q.buf.Remove().(E) // nil interface values come back as zero
	return elem, nil
}

func (q *arrayQueueImpl[E]) Size() int {
	if q.buf == nil {
		return 0
	}
	return q.buf.Length()
}

func (q *arrayQueueImpl[E]) Clear() error {
	if err := CheckOpen(q.opened, q.closed, "Clear"); err != nil {
		return err
	}
	q.buf = queue.New()
	return nil
}

func (q *arrayQueueImpl[E]) Close() error {
	if q.closed {
		return nil
	}
	q.closed = true
	q.buf = nil // help the go gc
	return nil
}
