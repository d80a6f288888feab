package codec

// ICodec is the interface for all element codecs used by external spill backends
type ICodec[E any] interface {
	// Encode encodes an element into a byte array
	// It returns the encoded byte array and an error if any
	Encode(elem E) ([]byte, error)
	// Decode decodes a byte array into an element
	// It returns the element and an error if any
	Decode(b []byte) (E, error)
}
