package grouper

import (
	"iter"

	"github.com/ValentinKolb/xgroup/lib/bag"
	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/cursor"
	"github.com/ValentinKolb/xgroup/lib/queue"
	"github.com/ValentinKolb/xgroup/lib/tracker"
	"github.com/hashicorp/go-multierror"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
)

var plog = logger.GetLogger(common.LoggerGrouper)

var _ cursor.Cursor[cursor.Cursor[int]] = (*NestedLoopsGrouper[int, string])(nil)

// --------------------------------------------------------------------------
// Core structure
// --------------------------------------------------------------------------

// NestedLoopsGrouper partitions its input into groups of equal keys using a
// bounded number of group stores.
//
// Every sweep reads a source (the input first, then the spill queue) and
// tracks at most MaxGroups keys. Elements of keys that did not fit are
// appended to the spill queue and grouped by a later sweep. A sweep limited
// to the spill size at its start reads exactly the elements spilled before
// it, so the same queue takes the overflow of the running sweep. Sweeps repeat
// until the spill queue is empty.
//
// The grouper is itself a cursor: each element is the cursor of one group.
//
// Thread-safety: The grouper is not thread-safe.
type NestedLoopsGrouper[E any, K comparable] struct {
	input     cursor.Cursor[E]
	mapping   func(E) K
	opts      Options[E, K]
	maxGroups int

	tracker tracker.ITracker[K, bag.IBag[E]]
	spill   queue.IQueue[E] // nil until the first overflow

	// keys of the current sweep in emission order, pos is the next one
	pending []K
	pos     int

	state       cursor.State
	initialized bool // the input was read, further sweeps replay the spill
	stats       *stats
}

// NewNestedLoopsGrouper creates a grouper over input using mapping to compute
// the key of each element.
// An InvalidConfiguration error is returned if the memory budget of opts can
// not hold two keys and one element.
func NewNestedLoopsGrouper[E any, K comparable](input cursor.Cursor[E], mapping func(E) K, opts Options[E, K]) (*NestedLoopsGrouper[E, K], error) {
	if input == nil {
		return nil, common.NewError(common.RetCInvalidConfiguration, "input cursor must not be nil")
	}
	if mapping == nil {
		return nil, common.NewError(common.RetCInvalidConfiguration, "mapping function must not be nil")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &NestedLoopsGrouper[E, K]{
		input:     input,
		mapping:   mapping,
		opts:      opts,
		maxGroups: opts.MaxGroups(),
		tracker:   opts.Tracker,
		stats:     newStats(),
	}, nil
}

// FromSeq creates a grouper over a single-pass sequence. The grouper does not
// support Reset.
func FromSeq[E any, K comparable](seq iter.Seq[E], mapping func(E) K, opts Options[E, K]) (*NestedLoopsGrouper[E, K], error) {
	return NewNestedLoopsGrouper(cursor.FromSeq(seq), mapping, opts)
}

// --------------------------------------------------------------------------
// Cursor Methods (docu see cursor.Cursor)
// --------------------------------------------------------------------------

func (g *NestedLoopsGrouper[E, K]) Open() error {
	if !g.state.Open() {
		return nil
	}
	plog.Debugf("%s: open (max groups: %d)", g.opts.Name, g.maxGroups)
	return g.input.Open()
}

func (g *NestedLoopsGrouper[E, K]) Close() error {
	if !g.state.Close() {
		return nil
	}

	var result *multierror.Error
	if err := g.input.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := g.discardGroups(); err != nil {
		result = multierror.Append(result, err)
	}
	if g.spill != nil {
		if err := g.spill.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		g.spill = nil
	}

	if err := result.ErrorOrNil(); err != nil {
		plog.Warningf("%s: close: %v", g.opts.Name, err)
		return err
	}
	plog.Debugf("%s: closed", g.opts.Name)
	return nil
}

// HasNext reports whether another group is available. If the groups of the
// current sweep are used up, it runs sweeps until one tracks a group or no
// spilled elements are left. A sweep reads its whole source before HasNext returns.
func (g *NestedLoopsGrouper[E, K]) HasNext() (bool, error) {
	if err := g.state.Check("HasNext"); err != nil {
		return false, err
	}

	for g.pos >= len(g.pending) {
		if g.initialized && g.spillSize() == 0 {
			g.state = cursor.StateExhausted
			return false, nil
		}
		if err := g.sweep(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Next returns a consume-once cursor over the elements of the next group in
// their input order. The group is removed from the grouper before it is
// returned, so the cursor stays valid after the grouper is closed.
func (g *NestedLoopsGrouper[E, K]) Next() (cursor.Cursor[E], error) {
	_, c, err := g.NextGroup()
	return c, err
}

// NextGroup works like Next and also returns the key of the group.
func (g *NestedLoopsGrouper[E, K]) NextGroup() (K, cursor.Cursor[E], error) {
	var zero K
	if ok, err := g.HasNext(); err != nil {
		return zero, nil, err
	} else if !ok {
		return zero, nil, cursor.ErrNoSuchElement()
	}

	key := g.pending[g.pos]
	g.pending[g.pos] = zero
	g.pos++

	b, ok := g.tracker.Get(key)
	if !ok {
		return zero, nil, common.Errorf(common.RetCInternalError, "%s: group of key %v is not tracked", g.opts.Name, key)
	}
	g.tracker.Delete(key)

	g.stats.groupEmitted(b.Size())
	c := b.Cursor()
	if err := b.Close(); err != nil {
		return zero, nil, err
	}
	return key, c, nil
}

// Reset restarts the grouping from the beginning of the input. Groups not yet
// emitted and spilled elements are discarded.
// An UnsupportedOperation error is returned if the input can not be reset.
func (g *NestedLoopsGrouper[E, K]) Reset() error {
	if !g.input.SupportsReset() {
		return cursor.ErrResetUnsupported()
	}
	if err := g.state.Check("Reset"); err != nil {
		return err
	}

	if err := g.input.Reset(); err != nil {
		return err
	}
	if err := g.discardGroups(); err != nil {
		return err
	}
	if g.spill != nil {
		if err := g.spill.Clear(); err != nil {
			return err
		}
	}
	g.initialized = false
	g.state = cursor.StateReady

	plog.Debugf("%s: reset", g.opts.Name)
	return nil
}

// SupportsReset reports whether the input supports Reset.
func (g *NestedLoopsGrouper[E, K]) SupportsReset() bool {
	return g.input.SupportsReset()
}

// --------------------------------------------------------------------------
// Query Methods
// --------------------------------------------------------------------------

// MaxGroups returns the number of groups tracked at most during one sweep.
func (g *NestedLoopsGrouper[E, K]) MaxGroups() int {
	return g.maxGroups
}

// State returns the lifecycle state of the grouper.
func (g *NestedLoopsGrouper[E, K]) State() cursor.State {
	return g.state
}

// Metrics returns the registry holding the statistics of this grouper.
func (g *NestedLoopsGrouper[E, K]) Metrics() gometrics.Registry {
	return g.stats.registry
}

// GetInfo returns the configuration and statistics of the grouper.
func (g *NestedLoopsGrouper[E, K]) GetInfo() GrouperInfo {
	info := GrouperInfo{
		Name:          g.opts.Name,
		State:         g.state.String(),
		MaxGroups:     g.maxGroups,
		TrackedGroups: g.tracker.Len(),
		SpillSize:     g.spillSize(),
	}
	g.stats.fill(&info)
	return info
}

// --------------------------------------------------------------------------
// Sweep
// --------------------------------------------------------------------------

// sweep routes all elements of the next source into the tracker or the spill
// queue and prepares the emission of the tracked groups
func (g *NestedLoopsGrouper[E, K]) sweep() (err error) {
	src := g.input
	if g.initialized {
		// only the elements spilled before this sweep belong to it
		src = queue.NewCursor(g.spill, g.spill.Size())
		if err := src.Open(); err != nil {
			return err
		}
		defer func() {
			if closeErr := src.Close(); err == nil {
				err = closeErr
			}
		}()
	}

	g.stats.sweep()
	read, spilled := 0, 0
	for {
		ok, err := src.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		elem, err := src.Next()
		if err != nil {
			return err
		}

		wasSpilled, err := g.route(elem)
		if err != nil {
			return err
		}
		read++
		if wasSpilled {
			spilled++
		}
	}

	g.initialized = true
	g.pending = tracker.Keys(g.tracker)
	g.pos = 0

	plog.Debugf("%s: sweep read %d elements into %d groups, spilled %d",
		g.opts.Name, read, len(g.pending), spilled)
	return nil
}

// route appends elem to the group of its key. If the key is new and the
// tracker is full, elem is spilled instead.
func (g *NestedLoopsGrouper[E, K]) route(elem E) (spilled bool, err error) {
	g.stats.elementRead()
	key := g.mapping(elem)

	b, ok := g.tracker.Get(key)
	if !ok {
		if g.tracker.Len() >= g.maxGroups {
			return true, g.spillElement(elem)
		}
		b = g.opts.NewBag()
		g.tracker.Put(key, b)
	}
	return false, b.Insert(elem)
}

func (g *NestedLoopsGrouper[E, K]) spillElement(elem E) error {
	if g.spill == nil {
		q, err := g.opts.NewQueue()
		if err != nil {
			return err
		}
		if err := q.Open(); err != nil {
			return err
		}
		g.spill = q
		plog.Debugf("%s: created spill queue", g.opts.Name)
	}
	g.stats.elementSpilled()
	return g.spill.Enqueue(elem)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func (g *NestedLoopsGrouper[E, K]) spillSize() int {
	if g.spill == nil {
		return 0
	}
	return g.spill.Size()
}

// discardGroups closes the stores of all groups not yet emitted
func (g *NestedLoopsGrouper[E, K]) discardGroups() error {
	var result *multierror.Error
	g.tracker.Range(func(_ K, b bag.IBag[E]) bool {
		if err := b.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		return true
	})
	g.tracker.Clear()
	g.pending, g.pos = nil, 0
	return result.ErrorOrNil()
}
