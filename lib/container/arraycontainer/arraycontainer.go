package arraycontainer

import (
	"iter"

	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/container"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger(common.LoggerContainer)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	defaultInitialSize = 2048 // Default capacity hint
)

// --------------------------------------------------------------------------
// Core structure
// --------------------------------------------------------------------------

// slot holds one stored value. empty marks a reserved slot without a value.
type slot[V any] struct {
	value V
	empty bool
}

// arrayImpl stores values in a growable slice. The handle of a value is its
// index in the slice, so handles are issued strictly increasing from 0 and
// never reused (removal is not supported, so no gaps can form).
type arrayImpl[V any] struct {
	slots    []slot[V]
	reserved int // number of reserved slots that were never updated
}

// Options configures the array container during initialization
type Options struct {
	InitialSize int // Capacity hint (0 = use default: 2048)
}

// DefaultOptions returns the default array container options
func DefaultOptions() *Options {
	return &Options{
		InitialSize: defaultInitialSize,
	}
}

// --------------------------------------------------------------------------
// Initialization
// --------------------------------------------------------------------------

// NewArrayContainer creates a new array container with the specified options (optional)
//
// Thread-safety: The container is not thread-safe. For concurrent use, external
// synchronization must be applied.
func NewArrayContainer[V any](opts *Options) container.IContainer[V] {
	if opts == nil {
		opts = DefaultOptions()
	}
	size := opts.InitialSize
	if size <= 0 {
		size = defaultInitialSize
	}

	return &arrayImpl[V]{
		slots: make([]slot[V], 0, size),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see container.IContainer)
// --------------------------------------------------------------------------

func (a *arrayImpl[V]) Insert(value V) container.Handle {
	h := container.Handle(len(a.slots))
	a.slots = append(a.slots, slot[V]{value: value})
	return h
}

// Reserve stores an empty placeholder, the factory is not needed for in-memory slots
func (a *arrayImpl[V]) Reserve(_ func() V) container.Handle {
	h := container.Handle(len(a.slots))
	a.slots = append(a.slots, slot[V]{empty: true})
	a.reserved++
	return h
}

func (a *arrayImpl[V]) Update(h container.Handle, value V) error {
	if !a.IsUsed(h) {
		return notFound(h)
	}
	if a.slots[h].empty {
		a.reserved--
	}
	a.slots[h] = slot[V]{value: value}
	return nil
}

func (a *arrayImpl[V]) Remove(h container.Handle) error {
	return common.NewError(common.RetCUnsupportedOperation, "array container does not support remove operation")
}

// Clear empties the backing storage. The handle counter is the slice length,
// so handles issued afterwards start at 0 again.
func (a *arrayImpl[V]) Clear() {
	plog.Debugf("clearing array container with %d slots", len(a.slots))
	clear(a.slots) // release references for the go gc
	a.slots = a.slots[:0]
	a.reserved = 0
}

// Get returns the stored value (the zero value for reserved slots)
func (a *arrayImpl[V]) Get(h container.Handle) (V, error) {
	if !a.Contains(h) {
		var zero V
		return zero, notFound(h)
	}
	return a.slots[h].value, nil
}

func (a *arrayImpl[V]) Contains(h container.Handle) bool {
	return uint64(h) < uint64(len(a.slots))
}

func (a *arrayImpl[V]) IsUsed(h container.Handle) bool {
	return a.Contains(h)
}

// Ids returns a live view: the bound is evaluated again before every handle,
// so values inserted during iteration are visited as well.
func (a *arrayImpl[V]) Ids() iter.Seq[container.Handle] {
	return func(yield func(container.Handle) bool) {
		for i := 0; i < len(a.slots); i++ {
			if !yield(container.Handle(i)) {
				return
			}
		}
	}
}

func (a *arrayImpl[V]) Size() int {
	return len(a.slots)
}

func (a *arrayImpl[V]) IDSize() int {
	return container.HandleSize
}

func (a *arrayImpl[V]) IDConverter() container.HandleConverter {
	return container.Uint64Converter()
}

// --------------------------------------------------------------------------
// Features and Metadata
// --------------------------------------------------------------------------

const supportedFeatures = container.FeatureInsert |
	container.FeatureReserve |
	container.FeatureGet |
	container.FeatureUpdate |
	container.FeatureClear |
	container.FeatureIds

func (a *arrayImpl[V]) SupportsFeature(feature container.Feature) bool {
	return supportedFeatures&feature == feature
}

func (a *arrayImpl[V]) GetInfo() container.ContainerInfo {
	return container.ContainerInfo{
		Size:     len(a.slots),
		Reserved: a.reserved,
		Type:     container.ImplArray,
		IDSize:   container.HandleSize,
		SupportedFeatures: []container.Feature{
			container.FeatureInsert, container.FeatureReserve,
			container.FeatureGet, container.FeatureUpdate,
			container.FeatureClear, container.FeatureIds,
		},
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func notFound(h container.Handle) error {
	return common.Errorf(common.RetCNotFound, "handle %d is not used", h)
}
