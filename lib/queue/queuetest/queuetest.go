package queuetest

import (
	"testing"

	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/queue"
)

// QueueFactory creates a new, unopened queue of integers
type QueueFactory func(t *testing.T) queue.IQueue[int]

// RunQueueTests runs a comprehensive test suite for a queue implementation.
func RunQueueTests(t *testing.T, name string, factory QueueFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("FIFO", func(t *testing.T) {
			testFIFO(t, open(t, factory))
		})

		t.Run("Interleaved", func(t *testing.T) {
			testInterleaved(t, open(t, factory))
		})

		t.Run("Empty", func(t *testing.T) {
			testEmpty(t, open(t, factory))
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, open(t, factory))
		})

		t.Run("Lifecycle", func(t *testing.T) {
			testLifecycle(t, factory(t))
		})

		t.Run("CursorLimit", func(t *testing.T) {
			testCursorLimit(t, open(t, factory))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func open(t *testing.T, factory QueueFactory) queue.IQueue[int] {
	q := factory(t)
	if err := q.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := q.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return q
}

func mustEnqueue(t *testing.T, q queue.IQueue[int], values ...int) {
	t.Helper()
	for _, v := range values {
		if err := q.Enqueue(v); err != nil {
			t.Fatalf("Enqueue(%d) failed: %v", v, err)
		}
	}
}

func mustDequeue(t *testing.T, q queue.IQueue[int], expected int) {
	t.Helper()
	v, err := q.Dequeue()
	if err != nil {
		t.Fatalf("Dequeue failed: %v", err)
	}
	if v != expected {
		t.Errorf("Expected %d, got %d", expected, v)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testFIFO(t *testing.T, q queue.IQueue[int]) {
	for i := 0; i < 1000; i++ {
		mustEnqueue(t, q, i)
	}
	if q.Size() != 1000 {
		t.Errorf("Expected size 1000, got %d", q.Size())
	}
	for i := 0; i < 1000; i++ {
		mustDequeue(t, q, i)
	}
	if q.Size() != 0 {
		t.Errorf("Expected empty queue, got size %d", q.Size())
	}
}

func testInterleaved(t *testing.T, q queue.IQueue[int]) {
	mustEnqueue(t, q, 1, 2, 3)
	mustDequeue(t, q, 1)
	mustEnqueue(t, q, 4)
	mustDequeue(t, q, 2)
	mustDequeue(t, q, 3)
	mustEnqueue(t, q, 5, 6)
	mustDequeue(t, q, 4)
	mustDequeue(t, q, 5)
	mustDequeue(t, q, 6)
}

func testEmpty(t *testing.T, q queue.IQueue[int]) {
	if _, err := q.Dequeue(); !common.HasCode(err, common.RetCNotFound) {
		t.Errorf("Expected NotFound on empty queue, got %v", err)
	}
	mustEnqueue(t, q, 0)
	mustDequeue(t, q, 0)
	if _, err := q.Dequeue(); !common.HasCode(err, common.RetCNotFound) {
		t.Errorf("Expected NotFound on drained queue, got %v", err)
	}
}

func testClear(t *testing.T, q queue.IQueue[int]) {
	mustEnqueue(t, q, 1, 2, 3)
	mustDequeue(t, q, 1)
	if err := q.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if q.Size() != 0 {
		t.Errorf("Expected size 0 after clear, got %d", q.Size())
	}
	mustEnqueue(t, q, 9)
	mustDequeue(t, q, 9)
}

func testLifecycle(t *testing.T, q queue.IQueue[int]) {
	if err := q.Enqueue(1); !common.HasCode(err, common.RetCIllegalState) {
		t.Errorf("Expected IllegalState before open, got %v", err)
	}
	if err := q.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := q.Open(); err != nil {
		t.Fatalf("Second open failed: %v", err)
	}
	mustEnqueue(t, q, 1)
	if err := q.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
	if _, err := q.Dequeue(); !common.HasCode(err, common.RetCIllegalState) {
		t.Errorf("Expected IllegalState after close, got %v", err)
	}
	if err := q.Open(); err != nil {
		t.Errorf("Open after close should be a no-op, got %v", err)
	}
	if err := q.Enqueue(2); !common.HasCode(err, common.RetCIllegalState) {
		t.Errorf("Expected IllegalState after reopen attempt, got %v", err)
	}
}

func testCursorLimit(t *testing.T, q queue.IQueue[int]) {
	mustEnqueue(t, q, 0, 1, 2)
	c := queue.NewCursor(q, q.Size())
	if err := c.Open(); err != nil {
		t.Fatalf("Open cursor failed: %v", err)
	}
	defer c.Close()

	var read []int
	for {
		ok, err := c.HasNext()
		if err != nil {
			t.Fatalf("HasNext failed: %v", err)
		}
		if !ok {
			break
		}
		v, err := c.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, v)
		// re-enqueue: must not be read by this cursor
		mustEnqueue(t, q, v+10)
	}

	if len(read) != 3 || read[0] != 0 || read[2] != 2 {
		t.Errorf("Expected [0 1 2], got %v", read)
	}
	if q.Size() != 3 {
		t.Errorf("Expected 3 re-enqueued elements, got %d", q.Size())
	}
	mustDequeue(t, q, 10)
}
