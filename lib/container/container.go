package container

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
)

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplArray Implementation = "array"
)

// Handle identifies an object stored in a container.
type Handle uint64

// Feature represents container features as bit flags
type Feature uint64

const (
	FeatureInsert  Feature = 1 << iota // Support for Insert operations
	FeatureReserve                     // Support for Reserve operations
	FeatureGet                         // Support for Get operations
	FeatureUpdate                      // Support for Update operations
	FeatureRemove                      // Support for Remove operations
	FeatureClear                       // Support for Clear operations
	FeatureIds                         // Support for Ids operations
)

func (f Feature) String() string {
	switch f {
	case FeatureInsert:
		return "Insert"
	case FeatureReserve:
		return "Reserve"
	case FeatureGet:
		return "Get"
	case FeatureUpdate:
		return "Update"
	case FeatureRemove:
		return "Remove"
	case FeatureClear:
		return "Clear"
	case FeatureIds:
		return "Ids"
	default:
		return "Unknown"
	}
}

type ContainerInfo struct {
	Size              int            `json:"size"`
	Reserved          int            `json:"reserved"`
	Type              Implementation `json:"type"`
	IDSize            int            `json:"id_size"`
	SupportedFeatures []Feature      `json:"supported_features"`
}

// --------------------------------------------------------------------------
// Handle Conversion
// --------------------------------------------------------------------------

// HandleSize is the number of bytes of an encoded handle
const HandleSize = 8

// HandleConverter encodes handles with a fixed width so that they can be
// persisted or transmitted by collaborators of a container.
type HandleConverter interface {
	// Size returns the number of bytes of an encoded handle.
	Size() int
	// Append appends the encoding of h to dst and returns the extended buffer.
	Append(dst []byte, h Handle) []byte
	// Decode decodes a handle from the first Size() bytes of b.
	Decode(b []byte) (h Handle, err error)
}

type uint64Converter struct{}

// Uint64Converter returns the 8 byte big-endian HandleConverter.
func Uint64Converter() HandleConverter {
	return uint64Converter{}
}

func (uint64Converter) Size() int { return HandleSize }

func (uint64Converter) Append(dst []byte, h Handle) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(h))
}

func (uint64Converter) Decode(b []byte) (Handle, error) {
	if len(b) < HandleSize {
		return 0, fmt.Errorf("decode handle: need %d bytes, got %d: %w", HandleSize, len(b), io.ErrUnexpectedEOF)
	}
	return Handle(binary.BigEndian.Uint64(b[:HandleSize])), nil
}

// --------------------------------------------------------------------------
// Container Interface
// --------------------------------------------------------------------------

// IContainer defines an object store that issues handles for stored values.
// Implementations can vary in their feature support, which can be queried with SupportsFeature.
type IContainer[V any] interface {

	// --------------------------------------------------------------------------
	// Write Operations
	// --------------------------------------------------------------------------

	// Insert stores value and returns the handle issued for it.
	Insert(value V) (h Handle)

	// Reserve allocates a slot without a value and returns its handle.
	// Implementations that must materialize an object may call factory.
	Reserve(factory func() V) (h Handle)

	// Update replaces the value stored for h.
	// A NotFound error is returned if h is not used.
	Update(h Handle, value V) (err error)

	// Remove deletes the value stored for h.
	// Implementations without FeatureRemove return an UnsupportedOperation error.
	Remove(h Handle) (err error)

	// Clear removes all values. Handles issued before are no longer valid.
	Clear()

	// --------------------------------------------------------------------------
	// Query Operations
	// --------------------------------------------------------------------------

	// Get returns the value stored for h.
	// A NotFound error is returned if h is not used.
	Get(h Handle) (value V, err error)

	// Contains reports whether h identifies a stored (or reserved) slot.
	Contains(h Handle) (ok bool)

	// IsUsed reports whether h is used by the container.
	IsUsed(h Handle) (ok bool)

	// Ids returns the handles of the container in ascending order.
	Ids() iter.Seq[Handle]

	// Size returns the number of issued handles.
	Size() (n int)

	// --------------------------------------------------------------------------
	// Handle Encoding
	// --------------------------------------------------------------------------

	// IDSize returns the number of bytes of an encoded handle.
	IDSize() (n int)

	// IDConverter returns the converter used to encode handles.
	IDConverter() HandleConverter

	// --------------------------------------------------------------------------
	// Feature Support
	// --------------------------------------------------------------------------

	// SupportsFeature checks if the container supports the specified feature.
	// Multiple features can be checked at once using bitwise OR (|) operator.
	SupportsFeature(feature Feature) (ok bool)

	// GetInfo returns information about the container.
	GetInfo() (info ContainerInfo)
}
