package cursor

import (
	"github.com/ValentinKolb/xgroup/lib/common"
)

// --------------------------------------------------------------------------
// Cursor Interface
// --------------------------------------------------------------------------

// Cursor is a pull-based sequence of elements.
//
// A cursor must be opened before HasNext, Next or Reset are called and fails
// with an IllegalState error before Open and after Close. Open and Close are
// idempotent; opening a closed cursor has no effect.
type Cursor[E any] interface {
	// Open acquires the resources of the cursor.
	Open() (err error)

	// Close releases all resources of the cursor. It is safe to call Close
	// multiple times and in any state.
	Close() (err error)

	// HasNext reports whether a further element can be obtained with Next.
	// Calling HasNext multiple times without Next must not skip elements.
	HasNext() (ok bool, err error)

	// Next returns the next element.
	// If there is no such element a NotFound error is returned.
	Next() (elem E, err error)

	// Reset repositions the cursor at its first element.
	// If the cursor does not support it an UnsupportedOperation error is returned.
	Reset() (err error)

	// SupportsReset reports whether Reset can be called.
	SupportsReset() (ok bool)
}

// --------------------------------------------------------------------------
// Cursor State
// --------------------------------------------------------------------------

// State is the lifecycle state of a cursor.
type State uint8

const (
	StateUnopened  State = iota // created but not yet opened
	StateReady                  // opened, elements may be available
	StateExhausted              // opened, HasNext returned false
	StateClosed                 // closed, no further use possible
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "Unopened"
	case StateReady:
		return "Ready"
	case StateExhausted:
		return "Exhausted"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Open moves an unopened state to ready and reports whether the transition happened.
func (s *State) Open() bool {
	if *s != StateUnopened {
		return false
	}
	*s = StateReady
	return true
}

// Close moves the state to closed and reports whether the transition happened.
func (s *State) Close() bool {
	if *s == StateClosed {
		return false
	}
	*s = StateClosed
	return true
}

// IsOpen reports whether the cursor can be used (ready or exhausted).
func (s State) IsOpen() bool {
	return s == StateReady || s == StateExhausted
}

// Check returns an IllegalState error if the cursor can not be used for op.
func (s State) Check(op string) error {
	switch s {
	case StateUnopened:
		return common.Errorf(common.RetCIllegalState, "%s called before open", op)
	case StateClosed:
		return common.Errorf(common.RetCIllegalState, "%s called after close", op)
	default:
		return nil
	}
}

// --------------------------------------------------------------------------
// Common errors
// --------------------------------------------------------------------------

// ErrNoSuchElement returns the error used by Next when the cursor is exhausted.
func ErrNoSuchElement() error {
	return common.NewError(common.RetCNotFound, "no such element")
}

// ErrResetUnsupported returns the error used by Reset on a non-resettable cursor.
func ErrResetUnsupported() error {
	return common.NewError(common.RetCUnsupportedOperation, "reset is not supported by this cursor")
}
