package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// NewCBORCodec creates a new codec using CBOR encoding.
// CBOR preserves integer and float widths of typed Go values and is the
// default codec of the external spill backends.
func NewCBORCodec[E any]() (ICodec[E], error) {
	encMode, err := cbor.EncOptions{
		Sort:          cbor.SortNone,          // Don't sort map keys
		ShortestFloat: cbor.ShortestFloatNone, // Don't convert float types
		Time:          cbor.TimeRFC3339Nano,   // Keep time zone and precision
	}.EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	decMode, err := cbor.DecOptions{
		UTF8: cbor.UTF8DecodeInvalid, // Allow decoding CBOR Text containing invalid UTF-8 strings
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR decoder: %w", err)
	}

	return &cborCodecImpl[E]{
		encMode: encMode,
		decMode: decMode,
	}, nil
}

// cborCodecImpl implements the ICodec interface using CBOR encoding
type cborCodecImpl[E any] struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (c *cborCodecImpl[E]) Encode(elem E) ([]byte, error) {
	return c.encMode.Marshal(elem)
}

func (c *cborCodecImpl[E]) Decode(b []byte) (E, error) {
	var elem E
	err := c.decMode.Unmarshal(b, &elem)
	return elem, err
}
