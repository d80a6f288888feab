package cursor

import (
	"iter"

	"github.com/hashicorp/go-multierror"
)

// Collect opens c, reads all remaining elements and closes it.
func Collect[E any](c Cursor[E]) (elems []E, err error) {
	if err := c.Open(); err != nil {
		return nil, err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()

	for {
		ok, err := c.HasNext()
		if err != nil {
			return elems, err
		}
		if !ok {
			return elems, nil
		}
		e, err := c.Next()
		if err != nil {
			return elems, err
		}
		elems = append(elems, e)
	}
}

// All adapts an opened cursor to a range-over-func sequence.
// Iteration stops after the first error, which is yielded with a zero element.
// The cursor is not closed.
func All[E any](c Cursor[E]) iter.Seq2[E, error] {
	return func(yield func(E, error) bool) {
		var zero E
		for {
			ok, err := c.HasNext()
			if err != nil {
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			e, err := c.Next()
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}
