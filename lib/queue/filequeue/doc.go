// Package filequeue implements queue.IQueue on an append-only spill file.
//
// Each element is encoded with a codec.ICodec and written as a record
// consisting of a 4 byte big-endian length followed by the payload. Writes are
// buffered; the buffer is flushed before the next read. Reads use their own
// offset, so a replay sweep can drain the head of the file while overflow of
// the same sweep is appended at the tail. When the queue becomes empty the
// file is truncated.
//
// The spill file is created in Options.Dir on Open and removed on Close.
package filequeue
