package codec

import (
	"encoding/json"
)

// NewJSONCodec creates a new codec using json encoding
func NewJSONCodec[E any]() ICodec[E] {
	return &jsonCodecImpl[E]{}
}

// jsonCodecImpl implements the ICodec interface using json encoding
type jsonCodecImpl[E any] struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (j jsonCodecImpl[E]) Encode(elem E) ([]byte, error) {
	return json.Marshal(elem)
}

func (j jsonCodecImpl[E]) Decode(b []byte) (E, error) {
	var elem E
	err := json.Unmarshal(b, &elem)
	return elem, err
}
