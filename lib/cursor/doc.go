// Package cursor defines the pull-based iteration contract used by all
// operators and collections of the xgroup module.
//
// A Cursor has an explicit lifecycle (Open, HasNext/Next, Reset, Close) that
// is tracked with the State type. Implementations in this package:
//
//   - FromSlice: a resettable cursor over a slice
//   - FromSeq: a single-pass cursor over an iter.Seq (wrapped with iter.Pull)
//   - FromSeqFunc: a resettable cursor that re-creates its sequence on Reset
//   - Empty: a cursor without elements
//
// The helpers Collect and All bridge cursors to slices and range-over-func loops.
//
// Example usage:
//
//	c := cursor.FromSlice([]int{1, 2, 3})
//	elems, err := cursor.Collect(c)
package cursor
