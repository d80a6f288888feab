// Package grouper implements a memory-bounded nested-loops grouping operator.
//
// NestedLoopsGrouper reads a cursor of elements and returns one cursor per
// group of elements with equal keys. The number of groups held in memory at
// once is derived from a byte budget:
//
//	maxGroups = (MemSize - ObjectSize) / KeySize - 1
//
// Elements whose key does not fit into the current sweep are spilled to a
// queue (in memory, a file or a pebble store) and grouped by later sweeps.
//
// Basic usage:
//
//	g, err := grouper.NewNestedLoopsGrouper(cursor.FromSlice(rows), keyOf, grouper.DefaultOptions[Row, string]())
//	if err != nil {
//		return err
//	}
//	defer g.Close()
//
//	if err := g.Open(); err != nil {
//		return err
//	}
//	for {
//		ok, err := g.HasNext()
//		if err != nil || !ok {
//			return err
//		}
//		key, group, err := g.NextGroup()
//		...
//	}
//
// Statistics of a single grouper are available through GetInfo and Metrics;
// WriteMetrics exports counters of all groupers of the process.
package grouper
