package filequeue

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ValentinKolb/xgroup/lib/codec"
	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/queue"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger(common.LoggerQueue)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	headerSize        = 4          // uint32 record length
	defaultBufferSize = 256 * 1024 // write buffer
	filePrefix        = "xgroup-spill-"
	fileSuffix        = ".q"
)

// Options configures the file queue
type Options struct {
	Dir        string // Directory for the spill file ("" = os temp dir)
	BufferSize int    // Size of the write buffer in bytes (0 = use default: 256 KB)
}

// --------------------------------------------------------------------------
// Core structure
// --------------------------------------------------------------------------

// fileQueueImpl appends length-prefixed records to a spill file and reads them
// back from a separate read offset. Reading and writing use positional I/O, so
// the same file can be appended to while it is drained.
type fileQueueImpl[E any] struct {
	opts  Options
	codec codec.ICodec[E]

	path     string
	file     *os.File
	w        *bufio.Writer
	readOff  int64
	writeOff int64 // logical end of the queue (including buffered bytes)
	dirty    bool  // buffered bytes not yet flushed
	size     int

	opened bool
	closed bool
}

// New creates a new file queue. The spill file is created on Open and removed on Close.
//
// Thread-safety: The queue is not thread-safe.
func New[E any](opts Options, c codec.ICodec[E]) queue.IQueue[E] {
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaultBufferSize
	}
	return &fileQueueImpl[E]{
		opts:  opts,
		codec: c,
	}
}

// Factory returns a queue.Factory creating file queues with the given options and codec.
func Factory[E any](opts Options, c codec.ICodec[E]) queue.Factory[E] {
	return func() (queue.IQueue[E], error) {
		return New[E](opts, c), nil
	}
}

// Path returns the path of the spill file ("" before Open).
func (q *fileQueueImpl[E]) Path() string {
	return q.path
}

// --------------------------------------------------------------------------
// Interface Methods (docu see queue.IQueue)
// --------------------------------------------------------------------------

func (q *fileQueueImpl[E]) Open() error {
	if q.opened || q.closed {
		return nil
	}

	dir := q.opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("filequeue: create spill directory: %w", err)
	}

	path := filepath.Join(dir, filePrefix+uuid.NewString()+fileSuffix)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("filequeue: create spill file: %w", err)
	}

	q.path = path
	q.file = file
	q.w = bufio.NewWriterSize(io.NewOffsetWriter(file, 0), q.opts.BufferSize)
	q.opened = true

	plog.Debugf("opened spill file %s", path)
	return nil
}

func (q *fileQueueImpl[E]) Enqueue(elem E) error {
	if err := queue.CheckOpen(q.opened, q.closed, "Enqueue"); err != nil {
		return err
	}

	payload, err := q.codec.Encode(elem)
	if err != nil {
		return fmt.Errorf("filequeue: encode element: %w", err)
	}

	var header [headerSize]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := q.w.Write(header[:]); err != nil {
		return fmt.Errorf("filequeue: write record header: %w", err)
	}
	if _, err := q.w.Write(payload); err != nil {
		return fmt.Errorf("filequeue: write record: %w", err)
	}

	q.writeOff += int64(headerSize + len(payload))
	q.dirty = true
	q.size++
	return nil
}

func (q *fileQueueImpl[E]) Dequeue() (E, error) {
	var zero E
	if err := queue.CheckOpen(q.opened, q.closed, "Dequeue"); err != nil {
		return zero, err
	}
	if q.size == 0 {
		return zero, queue.ErrEmpty()
	}

	// records are read from the file, so buffered records must be written first
	if q.dirty {
		if err := q.w.Flush(); err != nil {
			return zero, fmt.Errorf("filequeue: flush spill file: %w", err)
		}
		q.dirty = false
	}

	var header [headerSize]byte
	if err := q.readAt(header[:], q.readOff); err != nil {
		return zero, fmt.Errorf("filequeue: read record header: %w", err)
	}
	length := int64(binary.BigEndian.Uint32(header[:]))

	payload := make([]byte, length)
	if err := q.readAt(payload, q.readOff+headerSize); err != nil {
		return zero, fmt.Errorf("filequeue: read record: %w", err)
	}

	elem, err := q.codec.Decode(payload)
	if err != nil {
		return zero, fmt.Errorf("filequeue: decode element: %w", err)
	}

	q.readOff += headerSize + length
	q.size--

	// reclaim disk space once the queue is drained. The offsets are reset even
	// if truncating fails, so the queue stays usable and only the space is lost.
	if q.size == 0 {
		if err := q.truncate(); err != nil {
			plog.Warningf("could not reclaim spill file %s: %v", q.path, err)
		}
	}
	return elem, nil
}

func (q *fileQueueImpl[E]) Size() int {
	return q.size
}

func (q *fileQueueImpl[E]) Clear() error {
	if err := queue.CheckOpen(q.opened, q.closed, "Clear"); err != nil {
		return err
	}
	q.size = 0
	return q.truncate()
}

func (q *fileQueueImpl[E]) Close() error {
	if q.closed {
		return nil
	}
	q.closed = true
	q.size = 0
	if q.file == nil {
		return nil
	}

	var result *multierror.Error
	if err := q.file.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("filequeue: close spill file: %w", err))
	}
	if err := os.Remove(q.path); err != nil && !os.IsNotExist(err) {
		result = multierror.Append(result, fmt.Errorf("filequeue: remove spill file %s: %w", q.path, err))
	}
	q.file, q.w = nil, nil

	plog.Debugf("closed spill file %s", q.path)
	return result.ErrorOrNil()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// readAt fills p from offset off
func (q *fileQueueImpl[E]) readAt(p []byte, off int64) error {
	n, err := q.file.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// truncate drops all records (buffered and written) and restarts at offset 0
func (q *fileQueueImpl[E]) truncate() error {
	q.w.Reset(io.NewOffsetWriter(q.file, 0))
	q.dirty = false
	q.readOff, q.writeOff = 0, 0
	if err := q.file.Truncate(0); err != nil {
		return fmt.Errorf("filequeue: truncate spill file: %w", err)
	}
	return nil
}
