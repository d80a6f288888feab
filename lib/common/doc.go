// Package common provides the data structures and utilities shared by all
// packages of the xgroup module.
//
// The package focuses on:
//   - A single error type (Error) carrying a RetCode, used by every package
//     so that callers can react to error kinds with HasCode or errors.Is
//   - Configuration of a grouping run (GrouperConfig), including validation
//     of the memory budget and a human-readable String() representation
//   - Custom logging implementation integrated with Dragonboat's logger facade
//
// Key Components:
//
//   - Error / RetCode: InvalidConfiguration (bad construction parameters),
//     NotFound (unknown handle, exhausted cursor or empty queue),
//     UnsupportedOperation (removal from the array container, reset of a
//     one-shot input), IllegalState (use before open or after close) and
//     InternalError (inconsistent backend state). I/O and codec failures of
//     the external spill backends are returned as the underlying error
//     wrapped with %w.
//
//   - GrouperConfig: memory budget triple (MemSize, ObjectSize, KeySize) and
//     backend selection (tracker, bag, spill, codec). CheckBudget validates
//     the triple without overflowing.
//
//   - Logger: every package obtains its logger with logger.GetLogger(name);
//     each package has a default level, and InitLoggers installs the
//     formatting factory and applies a level setting such as "warn,queue=debug".
package common
