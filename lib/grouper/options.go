package grouper

import (
	"github.com/ValentinKolb/xgroup/lib/bag"
	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/queue"
	"github.com/ValentinKolb/xgroup/lib/tracker"
	"github.com/google/uuid"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	defaultMemSize    = 64 << 20 // 64 MB
	defaultObjectSize = 128      // bytes per element
	defaultKeySize    = 256      // bytes per tracked key (key + group bookkeeping)
)

// Options configures the nested-loops grouper. Sizes are given in bytes.
type Options[E any, K comparable] struct {
	MemSize    int // Memory budget of the operator
	ObjectSize int // Estimated size of one element
	KeySize    int // Estimated bookkeeping cost of one tracked key

	// Tracker maps keys to their group stores (nil = tracker.NewOrdered).
	// The grouper owns the tracker while it is open.
	Tracker tracker.ITracker[K, bag.IBag[E]]

	NewBag   bag.Factory[E]   // Creates the store of a new group (nil = bag.NewListBag)
	NewQueue queue.Factory[E] // Creates the spill queue on first overflow (nil = queue.NewArrayQueue)

	Name string // Used in logs and metrics ("" = generated)
}

// DefaultOptions returns options with a 64 MB budget and in-memory backends
func DefaultOptions[E any, K comparable]() Options[E, K] {
	return Options[E, K]{
		MemSize:    defaultMemSize,
		ObjectSize: defaultObjectSize,
		KeySize:    defaultKeySize,
	}
}

// FromConfig returns options with the sizes of cfg. Backends are left unset.
func FromConfig[E any, K comparable](cfg *common.GrouperConfig) Options[E, K] {
	return Options[E, K]{
		MemSize:    cfg.MemSize,
		ObjectSize: cfg.ObjectSize,
		KeySize:    cfg.KeySize,
	}
}

// MaxGroups returns the number of groups that fit into the memory budget.
func (o *Options[E, K]) MaxGroups() int {
	return (o.MemSize-o.ObjectSize)/o.KeySize - 1
}

// validate checks the budget and fills in defaults
func (o *Options[E, K]) validate() error {
	if err := common.CheckBudget(o.MemSize, o.ObjectSize, o.KeySize); err != nil {
		return err
	}

	if o.Tracker == nil {
		o.Tracker = tracker.NewOrdered[K, bag.IBag[E]]()
	}
	if o.NewBag == nil {
		o.NewBag = bag.ListBagFactory[E]()
	}
	if o.NewQueue == nil {
		o.NewQueue = queue.ArrayQueueFactory[E]()
	}
	if o.Name == "" {
		o.Name = "grouper-" + uuid.NewString()[:8]
	}
	return nil
}
