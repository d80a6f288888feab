package cursor

import (
	"iter"
)

// --------------------------------------------------------------------------
// Slice Cursor (resettable)
// --------------------------------------------------------------------------

type sliceCursor[E any] struct {
	state State
	elems []E
	pos   int
}

// FromSlice creates a resettable cursor over the elements of s.
// The slice is not copied and must not be modified while the cursor is in use.
func FromSlice[E any](s []E) Cursor[E] {
	return &sliceCursor[E]{elems: s}
}

// Empty creates a resettable cursor without elements.
func Empty[E any]() Cursor[E] {
	return FromSlice[E](nil)
}

func (c *sliceCursor[E]) Open() error {
	c.state.Open()
	return nil
}

func (c *sliceCursor[E]) Close() error {
	c.state.Close()
	return nil
}

func (c *sliceCursor[E]) HasNext() (bool, error) {
	if err := c.state.Check("HasNext"); err != nil {
		return false, err
	}
	return c.pos < len(c.elems), nil
}

func (c *sliceCursor[E]) Next() (E, error) {
	var zero E
	if ok, err := c.HasNext(); err != nil {
		return zero, err
	} else if !ok {
		return zero, ErrNoSuchElement()
	}
	e := c.elems[c.pos]
	c.pos++
	return e, nil
}

func (c *sliceCursor[E]) Reset() error {
	if err := c.state.Check("Reset"); err != nil {
		return err
	}
	c.pos = 0
	return nil
}

func (c *sliceCursor[E]) SupportsReset() bool { return true }

// --------------------------------------------------------------------------
// Sequence Cursor (one-shot or resettable via factory)
// --------------------------------------------------------------------------

type seqCursor[E any] struct {
	state   State
	factory func() iter.Seq[E] // nil for one-shot cursors
	seq     iter.Seq[E]

	// pull iterator, created on open
	next func() (E, bool)
	stop func()

	// one element look-ahead
	peeked  bool
	peekVal E
	done    bool
}

// FromSeq wraps a single-pass sequence into a cursor.
// The resulting cursor does not support Reset.
func FromSeq[E any](seq iter.Seq[E]) Cursor[E] {
	return &seqCursor[E]{seq: seq}
}

// FromSeqFunc creates a resettable cursor. Each (re)start calls factory to
// obtain a fresh sequence.
func FromSeqFunc[E any](factory func() iter.Seq[E]) Cursor[E] {
	return &seqCursor[E]{factory: factory}
}

func (c *seqCursor[E]) start() {
	seq := c.seq
	if c.factory != nil {
		seq = c.factory()
	}
	c.next, c.stop = iter.Pull(seq)
	c.peeked = false
	c.done = false
}

func (c *seqCursor[E]) Open() error {
	if c.state.Open() {
		c.start()
	}
	return nil
}

func (c *seqCursor[E]) Close() error {
	if c.state.Close() && c.stop != nil {
		c.stop()
	}
	return nil
}

func (c *seqCursor[E]) HasNext() (bool, error) {
	if err := c.state.Check("HasNext"); err != nil {
		return false, err
	}
	if c.peeked {
		return true, nil
	}
	if c.done {
		return false, nil
	}
	v, ok := c.next()
	if !ok {
		c.done = true
		return false, nil
	}
	c.peeked, c.peekVal = true, v
	return true, nil
}

func (c *seqCursor[E]) Next() (E, error) {
	var zero E
	if ok, err := c.HasNext(); err != nil {
		return zero, err
	} else if !ok {
		return zero, ErrNoSuchElement()
	}
	v := c.peekVal
	c.peeked, c.peekVal = false, zero
	return v, nil
}

func (c *seqCursor[E]) Reset() error {
	if !c.SupportsReset() {
		return ErrResetUnsupported()
	}
	if err := c.state.Check("Reset"); err != nil {
		return err
	}
	c.stop()
	c.start()
	return nil
}

func (c *seqCursor[E]) SupportsReset() bool { return c.factory != nil }
