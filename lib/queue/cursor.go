package queue

import (
	"github.com/ValentinKolb/xgroup/lib/cursor"
)

// queueCursor reads a fixed number of elements from the head of a queue
type queueCursor[E any] struct {
	state     cursor.State
	q         IQueue[E]
	remaining int
}

// NewCursor creates a cursor that dequeues at most limit elements from q.
// Elements enqueued while the cursor is in use are only read if they lie within
// the limit. Closing the cursor does not close the queue.
func NewCursor[E any](q IQueue[E], limit int) cursor.Cursor[E] {
	return &queueCursor[E]{
		q:         q,
		remaining: limit,
	}
}

func (c *queueCursor[E]) Open() error {
	if c.state.Open() {
		return c.q.Open()
	}
	return nil
}

func (c *queueCursor[E]) Close() error {
	c.state.Close()
	return nil
}

func (c *queueCursor[E]) HasNext() (bool, error) {
	if err := c.state.Check("HasNext"); err != nil {
		return false, err
	}
	return c.remaining > 0 && c.q.Size() > 0, nil
}

func (c *queueCursor[E]) Next() (E, error) {
	var zero E
	if ok, err := c.HasNext(); err != nil {
		return zero, err
	} else if !ok {
		return zero, cursor.ErrNoSuchElement()
	}
	elem, err := c.q.Dequeue()
	if err != nil {
		return zero, err
	}
	c.remaining--
	return elem, nil
}

func (c *queueCursor[E]) Reset() error {
	return cursor.ErrResetUnsupported()
}

func (c *queueCursor[E]) SupportsReset() bool { return false }
