package group

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ValentinKolb/xgroup/lib/cursor"
	"github.com/ValentinKolb/xgroup/lib/grouper"
	"github.com/ValentinKolb/xgroup/lib/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField(t *testing.T) {
	assert.Equal(t, "a,b", Field("a,b", ",", 0))
	assert.Equal(t, "a", Field("a,b", ",", 1))
	assert.Equal(t, "b", Field("a, b ", ",", 2))
	assert.Equal(t, "", Field("a,b", ",", 3))
	assert.Equal(t, "y", Field("x\ty", "\t", 2))
}

func TestPrintGroups(t *testing.T) {
	input := []string{"berlin,1", "hamburg,2", "munich,3", "berlin,4"}
	opts := grouper.Options[string, string]{MemSize: 34, ObjectSize: 4, KeySize: 10}
	g, err := grouper.NewNestedLoopsGrouper(cursor.FromSlice(input), func(l string) string {
		return Field(l, ",", 1)
	}, opts)
	require.NoError(t, err)
	defer g.Close()

	var out bytes.Buffer
	require.NoError(t, PrintGroups(&out, g))

	want := strings.Join([]string{
		"[berlin] (2)", "  berlin,1", "  berlin,4",
		"[hamburg] (1)", "  hamburg,2",
		"[munich] (1)", "  munich,3",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

type failingCloseQueue struct {
	queue.IQueue[string]
}

func (q failingCloseQueue) Close() error {
	_ = q.IQueue.Close()
	return errors.New("remove spill file failed")
}

func firstField(l string) string { return Field(l, ",", 1) }

func TestGroupLines(t *testing.T) {
	opts := grouper.Options[string, string]{MemSize: 34, ObjectSize: 4, KeySize: 10}
	var out bytes.Buffer
	require.NoError(t, GroupLines(strings.NewReader("a,1\nb,2\nc,3\na,4\n"), &out, firstField, opts, false))
	assert.Equal(t, "[a] (2)\n  a,1\n  a,4\n[b] (1)\n  b,2\n[c] (1)\n  c,3\n", out.String())
}

func TestGroupLinesReportsCloseError(t *testing.T) {
	opts := grouper.Options[string, string]{MemSize: 34, ObjectSize: 4, KeySize: 10}
	opts.NewQueue = func() (queue.IQueue[string], error) {
		return failingCloseQueue{queue.NewArrayQueue[string]()}, nil
	}

	var out bytes.Buffer
	err := GroupLines(strings.NewReader("a,1\nb,2\nc,3\n"), &out, firstField, opts, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove spill file failed")
	// groups were still written
	assert.Contains(t, out.String(), "[c] (1)")
}
