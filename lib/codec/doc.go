// Package codec provides a unified interface for encoding elements before
// they are written to an external spill backend.
//
// The package supports:
//   - CBOR: compact binary encoding (github.com/fxamacker/cbor/v2), the default
//   - GOB: Go's native binary format
//   - JSON: human-readable, useful for debugging spill files
//
// All implementations are generic over the element type and stateless, so a
// single codec can be shared by several queues.
//
// Example usage:
//
//	c, err := codec.NewCBORCodec[Row]()
//	b, err := c.Encode(row)
//	row, err = c.Decode(b)
package codec
