package codec

import (
	"bytes"
	"encoding/gob"
)

// NewGOBCodec creates a new codec using Go's binary gob format
func NewGOBCodec[E any]() ICodec[E] {
	return &gobCodecImpl[E]{}
}

// gobCodecImpl implements the ICodec interface using gob encoding.
// Every element is encoded as a self-contained gob stream (including type information).
type gobCodecImpl[E any] struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (g gobCodecImpl[E]) Encode(elem E) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(elem); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobCodecImpl[E]) Decode(b []byte) (E, error) {
	var elem E
	dec := gob.NewDecoder(bytes.NewReader(b))
	err := dec.Decode(&elem)
	return elem, err
}
