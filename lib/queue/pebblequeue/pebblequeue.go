package pebblequeue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ValentinKolb/xgroup/lib/codec"
	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/queue"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger(common.LoggerQueue)

const dirPrefix = "xgroup-pebble-"

// Options configures the pebble queue
type Options struct {
	Dir string // Parent directory for the store ("" = os temp dir)
	// FS overrides the filesystem used by pebble (nil = disk). Tests use vfs.NewMem().
	FS vfs.FS
}

// --------------------------------------------------------------------------
// Core structure
// --------------------------------------------------------------------------

// pebbleQueueImpl keeps one pebble entry per element. Keys are 8 byte big-endian
// sequence numbers, so the key order is the insertion order. head is the
// sequence number of the oldest element, tail the next free one.
type pebbleQueueImpl[E any] struct {
	opts  Options
	codec codec.ICodec[E]

	path string
	db   *pebble.DB
	head uint64
	tail uint64

	opened bool
	closed bool
}

// New creates a new pebble queue. The store is created on Open and removed on Close.
//
// Thread-safety: The queue is not thread-safe.
func New[E any](opts Options, c codec.ICodec[E]) queue.IQueue[E] {
	return &pebbleQueueImpl[E]{
		opts:  opts,
		codec: c,
	}
}

// Factory returns a queue.Factory creating pebble queues with the given options and codec.
func Factory[E any](opts Options, c codec.ICodec[E]) queue.Factory[E] {
	return func() (queue.IQueue[E], error) {
		return New[E](opts, c), nil
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see queue.IQueue)
// --------------------------------------------------------------------------

func (q *pebbleQueueImpl[E]) Open() error {
	if q.opened || q.closed {
		return nil
	}

	dir := q.opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	q.path = filepath.Join(dir, dirPrefix+uuid.NewString())

	pebbleOpts := &pebble.Options{}
	if q.opts.FS != nil {
		pebbleOpts.FS = q.opts.FS
	}

	db, err := pebble.Open(q.path, pebbleOpts)
	if err != nil {
		return fmt.Errorf("pebblequeue: open store: %w", err)
	}
	q.db = db
	q.opened = true

	plog.Debugf("opened pebble spill store %s", q.path)
	return nil
}

func (q *pebbleQueueImpl[E]) Enqueue(elem E) error {
	if err := queue.CheckOpen(q.opened, q.closed, "Enqueue"); err != nil {
		return err
	}
	if q.tail == math.MaxUint64 {
		return common.NewError(common.RetCInternalError, "pebblequeue: sequence exhausted")
	}

	payload, err := q.codec.Encode(elem)
	if err != nil {
		return fmt.Errorf("pebblequeue: encode element: %w", err)
	}
	if err := q.db.Set(seqKey(q.tail), payload, pebble.NoSync); err != nil {
		return fmt.Errorf("pebblequeue: write element: %w", err)
	}
	q.tail++
	return nil
}

func (q *pebbleQueueImpl[E]) Dequeue() (E, error) {
	var zero E
	if err := queue.CheckOpen(q.opened, q.closed, "Dequeue"); err != nil {
		return zero, err
	}
	if q.head == q.tail {
		return zero, queue.ErrEmpty()
	}

	key := seqKey(q.head)
	value, closer, err := q.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return zero, common.Errorf(common.RetCInternalError, "pebblequeue: missing element %d", q.head)
		}
		return zero, fmt.Errorf("pebblequeue: read element: %w", err)
	}
	// value is only valid until closer.Close
	elem, decodeErr := q.codec.Decode(value)
	if err := closer.Close(); err != nil {
		return zero, fmt.Errorf("pebblequeue: release element: %w", err)
	}
	if decodeErr != nil {
		return zero, fmt.Errorf("pebblequeue: decode element: %w", decodeErr)
	}

	if err := q.db.Delete(key, pebble.NoSync); err != nil {
		return zero, fmt.Errorf("pebblequeue: delete element: %w", err)
	}
	q.head++
	return elem, nil
}

func (q *pebbleQueueImpl[E]) Size() int {
	if !q.opened || q.closed {
		return 0
	}
	return int(q.tail - q.head)
}

func (q *pebbleQueueImpl[E]) Clear() error {
	if err := queue.CheckOpen(q.opened, q.closed, "Clear"); err != nil {
		return err
	}
	if q.head == q.tail {
		return nil
	}
	if err := q.db.DeleteRange(seqKey(q.head), seqKey(q.tail), pebble.NoSync); err != nil {
		return fmt.Errorf("pebblequeue: clear: %w", err)
	}
	q.head = q.tail
	return nil
}

func (q *pebbleQueueImpl[E]) Close() error {
	if q.closed {
		return nil
	}
	q.closed = true
	if q.db == nil {
		return nil
	}

	var result *multierror.Error
	if err := q.db.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("pebblequeue: close store: %w", err))
	}
	q.db = nil
	if q.opts.FS == nil {
		if err := os.RemoveAll(q.path); err != nil {
			result = multierror.Append(result, fmt.Errorf("pebblequeue: remove store %s: %w", q.path, err))
		}
	}

	plog.Debugf("closed pebble spill store %s", q.path)
	return result.ErrorOrNil()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func seqKey(seq uint64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 8), seq)
}
