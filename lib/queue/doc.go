// Package queue provides FIFO queues used as spill sequences: elements are
// appended while a sweep runs and drained in a later sweep.
//
// Key Components:
//
//   - IQueue Interface: Open, Enqueue, Dequeue, Size, Clear and Close.
//
//   - ArrayQueue: the default in-memory implementation on a growable ring
//     buffer (github.com/eapache/queue).
//
//   - NewCursor: a sequential reader that drains a fixed number of elements.
//     The limit is fixed upfront so that elements appended to the same queue
//     while reading are left for a later reader.
//
// Related Packages:
//
// The filequeue package (github.com/ValentinKolb/xgroup/lib/queue/filequeue)
// spills elements into an append-only file, the pebblequeue package
// (github.com/ValentinKolb/xgroup/lib/queue/pebblequeue) into a Pebble LSM
// store. Both encode elements with a codec.ICodec.
//
// The queuetest package (github.com/ValentinKolb/xgroup/lib/queue/queuetest)
// provides a test suite that every implementation runs.
package queue
