// Package pebblequeue implements queue.IQueue on a private pebble store.
//
// Elements are encoded with a codec.ICodec and stored under 8 byte big-endian
// sequence numbers. Writes use pebble.NoSync: the store only lives as long as
// the queue, so durability across crashes is not needed. The store directory
// is created on Open and removed on Close.
package pebblequeue
