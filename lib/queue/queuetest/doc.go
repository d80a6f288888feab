// Package queuetest provides a standardised test suite for implementations of
// queue.IQueue. All implementations in this module run it.
package queuetest
