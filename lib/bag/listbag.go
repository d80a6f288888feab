package bag

import (
	"github.com/ValentinKolb/xgroup/lib/cursor"
)

// --------------------------------------------------------------------------
// List Bag
// --------------------------------------------------------------------------

type listBagImpl[E any] struct {
	elems  []E
	closed bool
}

// NewListBag creates a slice-backed bag.
//
// Thread-safety: The bag is not thread-safe.
func NewListBag[E any]() IBag[E] {
	return &listBagImpl[E]{}
}

// ListBagFactory returns a Factory creating list bags.
func ListBagFactory[E any]() Factory[E] {
	return NewListBag[E]
}

func (b *listBagImpl[E]) Insert(elem E) error {
	if b.closed {
		return errClosed("Insert")
	}
	b.elems = append(b.elems, elem)
	return nil
}

func (b *listBagImpl[E]) Size() int {
	return len(b.elems)
}

func (b *listBagImpl[E]) Cursor() cursor.Cursor[E] {
	elems := b.elems
	b.elems = nil
	return &drainCursor[E]{elems: elems}
}

func (b *listBagImpl[E]) Clear() error {
	b.elems = nil
	return nil
}

func (b *listBagImpl[E]) Close() error {
	b.closed = true
	b.elems = nil
	return nil
}

// --------------------------------------------------------------------------
// Drain Cursor
// --------------------------------------------------------------------------

// drainCursor reads a detached slice once and zeroes every slot it returned
type drainCursor[E any] struct {
	state cursor.State
	elems []E
	pos   int
}

func (c *drainCursor[E]) Open() error {
	c.state.Open()
	return nil
}

func (c *drainCursor[E]) Close() error {
	if c.state.Close() {
		c.elems = nil
	}
	return nil
}

func (c *drainCursor[E]) HasNext() (bool, error) {
	if err := c.state.Check("HasNext"); err != nil {
		return false, err
	}
	if c.pos < len(c.elems) {
		return true, nil
	}
	c.state = cursor.StateExhausted
	return false, nil
}

func (c *drainCursor[E]) Next() (E, error) {
	var zero E
	if ok, err := c.HasNext(); err != nil {
		return zero, err
	} else if !ok {
		return zero, cursor.ErrNoSuchElement()
	}
	e := c.elems[c.pos]
	c.elems[c.pos] = zero
	c.pos++
	return e, nil
}

func (c *drainCursor[E]) Reset() error {
	return cursor.ErrResetUnsupported()
}

func (c *drainCursor[E]) SupportsReset() bool { return false }
