package pebblequeue

import (
	"os"
	"testing"

	"github.com/ValentinKolb/xgroup/lib/codec"
	"github.com/ValentinKolb/xgroup/lib/queue"
	"github.com/ValentinKolb/xgroup/lib/queue/queuetest"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPebbleQueue(t *testing.T) {
	cborCodec, err := codec.NewCBORCodec[int]()
	require.NoError(t, err)

	queuetest.RunQueueTests(t, "PebbleQueue/Mem", func(t *testing.T) queue.IQueue[int] {
		return New[int](Options{Dir: "/spill", FS: vfs.NewMem()}, cborCodec)
	})
	queuetest.RunQueueTests(t, "PebbleQueue/Disk", func(t *testing.T) queue.IQueue[int] {
		return New[int](Options{Dir: t.TempDir()}, cborCodec)
	})
}

func TestPebbleQueueRemovesStoreOnClose(t *testing.T) {
	q := New[string](Options{Dir: t.TempDir()}, codec.NewJSONCodec[string]())
	require.NoError(t, q.Open())

	path := q.(*pebbleQueueImpl[string]).path
	_, err := os.Stat(path)
	require.NoError(t, err, "store should exist after open")

	require.NoError(t, q.Enqueue("spilled"))
	require.NoError(t, q.Close())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "store should be removed on close")
}

func TestPebbleQueueSequenceKeysOrder(t *testing.T) {
	// big-endian keys must sort like the sequence numbers
	assert.Less(t, string(seqKey(255)), string(seqKey(256)))
	assert.Less(t, string(seqKey(1)), string(seqKey(1<<40)))
}
