package bag

import (
	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/cursor"
)

// --------------------------------------------------------------------------
// Bag Interface
// --------------------------------------------------------------------------

// IBag collects the elements of one group in insertion order.
type IBag[E any] interface {
	// Insert appends elem to the bag.
	// An IllegalState error is returned if the bag is closed.
	Insert(elem E) (err error)

	// Size returns the number of elements in the bag.
	Size() (n int)

	// Cursor hands the elements over to a consume-once cursor and leaves the
	// bag empty. The cursor releases every element after it was read and all
	// remaining ones when it is closed.
	Cursor() cursor.Cursor[E]

	// Clear drops all elements.
	Clear() (err error)

	// Close drops all elements and makes the bag unusable. It is idempotent.
	Close() (err error)
}

// Factory creates an empty bag for a new group.
type Factory[E any] func() IBag[E]

// errClosed is returned by write operations on a closed bag
func errClosed(op string) error {
	return common.Errorf(common.RetCIllegalState, "bag: %s called after close", op)
}
