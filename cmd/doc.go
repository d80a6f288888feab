// Package cmd implements the command-line interface of xgroup. It groups the
// lines of a file or stdin with a memory-bounded nested-loops grouper and
// benchmarks the available backends.
//
// The package is organized into several subpackages:
//
//   - group: Group lines of an input by one of their fields
//   - perf: Benchmark the grouper with all spill backends and trackers
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See xgroup -help for a list of all commands.
package cmd
