package bag

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/container/arraycontainer"
	"github.com/ValentinKolb/xgroup/lib/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var factories = map[string]Factory[int]{
	"ListBag":           ListBagFactory[int](),
	"ContainerBag":      ContainerBagFactory[int](nil),
	"ContainerBag/Tiny": ContainerBagFactory[int](&arraycontainer.Options{InitialSize: 1}),
}

func TestBags(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			t.Run("InsertionOrder", func(t *testing.T) {
				b := factory()
				for i := 0; i < 100; i++ {
					require.NoError(t, b.Insert(i))
				}
				assert.Equal(t, 100, b.Size())

				elems, err := cursor.Collect(b.Cursor())
				require.NoError(t, err)
				require.Len(t, elems, 100)
				for i, e := range elems {
					assert.Equal(t, i, e)
				}
			})

			t.Run("CursorDetaches", func(t *testing.T) {
				b := factory()
				require.NoError(t, b.Insert(1))
				require.NoError(t, b.Insert(2))

				c := b.Cursor()
				assert.Equal(t, 0, b.Size(), "bag should be empty after handing out its cursor")

				// new elements belong to the bag, not to the detached cursor
				require.NoError(t, b.Insert(3))
				elems, err := cursor.Collect(c)
				require.NoError(t, err)
				assert.Equal(t, []int{1, 2}, elems)

				elems, err = cursor.Collect(b.Cursor())
				require.NoError(t, err)
				assert.Equal(t, []int{3}, elems)
			})

			t.Run("EmptyCursor", func(t *testing.T) {
				elems, err := cursor.Collect(factory().Cursor())
				require.NoError(t, err)
				assert.Empty(t, elems)
			})

			t.Run("CursorIsConsumeOnce", func(t *testing.T) {
				b := factory()
				require.NoError(t, b.Insert(1))
				c := b.Cursor()
				require.NoError(t, c.Open())
				defer c.Close()

				assert.False(t, c.SupportsReset())
				err := c.Reset()
				assert.True(t, common.HasCode(err, common.RetCUnsupportedOperation), "got %v", err)

				v, err := c.Next()
				require.NoError(t, err)
				assert.Equal(t, 1, v)

				_, err = c.Next()
				assert.True(t, common.HasCode(err, common.RetCNotFound), "got %v", err)
			})

			t.Run("CursorBeforeOpen", func(t *testing.T) {
				b := factory()
				require.NoError(t, b.Insert(1))
				c := b.Cursor()
				_, err := c.Next()
				assert.True(t, common.HasCode(err, common.RetCIllegalState), "got %v", err)
			})

			t.Run("Clear", func(t *testing.T) {
				b := factory()
				for i := 0; i < 10; i++ {
					require.NoError(t, b.Insert(i))
				}
				require.NoError(t, b.Clear())
				assert.Equal(t, 0, b.Size())
				require.NoError(t, b.Insert(42))
				assert.Equal(t, 1, b.Size())
			})

			t.Run("Close", func(t *testing.T) {
				b := factory()
				require.NoError(t, b.Insert(1))
				require.NoError(t, b.Close())
				require.NoError(t, b.Close())
				assert.Equal(t, 0, b.Size())

				err := b.Insert(2)
				assert.True(t, common.HasCode(err, common.RetCIllegalState), "got %v", err)
			})
		})
	}
}

func TestListBagReleasesReadElements(t *testing.T) {
	b := NewListBag[*string]()
	for i := 0; i < 3; i++ {
		s := fmt.Sprint(i)
		require.NoError(t, b.Insert(&s))
	}

	c := b.Cursor().(*drainCursor[*string])
	require.NoError(t, c.Open())
	_, err := c.Next()
	require.NoError(t, err)
	assert.Nil(t, c.elems[0], "read slot should be released")
	assert.NotNil(t, c.elems[1])

	require.NoError(t, c.Close())
	assert.Nil(t, c.elems)
}
