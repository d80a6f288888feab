package bag

import (
	"iter"

	"github.com/ValentinKolb/xgroup/lib/container"
	"github.com/ValentinKolb/xgroup/lib/container/arraycontainer"
	"github.com/ValentinKolb/xgroup/lib/cursor"
)

// --------------------------------------------------------------------------
// Container Bag
// --------------------------------------------------------------------------

const defaultContainerBagSize = 16 // initial slots per group

type containerBagImpl[E any] struct {
	opts   arraycontainer.Options
	store  container.IContainer[E]
	closed bool
}

// NewContainerBag creates a bag that stores its elements in an array container.
// opts is optional; by default each bag starts with a small capacity.
//
// Thread-safety: The bag is not thread-safe.
func NewContainerBag[E any](opts *arraycontainer.Options) IBag[E] {
	o := arraycontainer.Options{InitialSize: defaultContainerBagSize}
	if opts != nil {
		o = *opts
	}
	return &containerBagImpl[E]{opts: o}
}

// ContainerBagFactory returns a Factory creating container bags with opts (optional).
func ContainerBagFactory[E any](opts *arraycontainer.Options) Factory[E] {
	return func() IBag[E] {
		return NewContainerBag[E](opts)
	}
}

func (b *containerBagImpl[E]) Insert(elem E) error {
	if b.closed {
		return errClosed("Insert")
	}
	if b.store == nil {
		b.store = arraycontainer.NewArrayContainer[E](&b.opts)
	}
	b.store.Insert(elem)
	return nil
}

func (b *containerBagImpl[E]) Size() int {
	if b.store == nil {
		return 0
	}
	return b.store.Size()
}

func (b *containerBagImpl[E]) Cursor() cursor.Cursor[E] {
	store := b.store
	b.store = nil
	if store == nil {
		return cursor.Empty[E]()
	}
	return &containerCursor[E]{store: store}
}

func (b *containerBagImpl[E]) Clear() error {
	if b.store != nil {
		b.store.Clear()
	}
	return nil
}

func (b *containerBagImpl[E]) Close() error {
	b.closed = true
	b.store = nil
	return nil
}

// --------------------------------------------------------------------------
// Container Cursor
// --------------------------------------------------------------------------

// containerCursor walks the live handle sequence of a detached container and
// clears the container on close
type containerCursor[E any] struct {
	state cursor.State
	store container.IContainer[E]

	next    func() (container.Handle, bool)
	stop    func()
	peeked  bool
	peekVal container.Handle
}

func (c *containerCursor[E]) Open() error {
	if c.state.Open() {
		c.next, c.stop = iter.Pull(c.store.Ids())
	}
	return nil
}

func (c *containerCursor[E]) Close() error {
	if c.state.Close() && c.stop != nil {
		c.stop()
		c.store.Clear()
	}
	return nil
}

func (c *containerCursor[E]) HasNext() (bool, error) {
	if err := c.state.Check("HasNext"); err != nil {
		return false, err
	}
	if c.peeked {
		return true, nil
	}
	h, ok := c.next()
	if !ok {
		c.state = cursor.StateExhausted
		return false, nil
	}
	c.peeked, c.peekVal = true, h
	return true, nil
}

func (c *containerCursor[E]) Next() (E, error) {
	var zero E
	if ok, err := c.HasNext(); err != nil {
		return zero, err
	} else if !ok {
		return zero, cursor.ErrNoSuchElement()
	}
	c.peeked = false
	return c.store.Get(c.peekVal)
}

func (c *containerCursor[E]) Reset() error {
	return cursor.ErrResetUnsupported()
}

func (c *containerCursor[E]) SupportsReset() bool { return false }
