// Package tracker provides the key to group-store maps used during a sweep.
//
// The tracker decides the order in which groups of one sweep are emitted:
//   - NewOrdered: first-seen order of the keys (default)
//   - NewConcurrent: no particular order, backed by xsync.MapOf
//   - NewSorted: ascending key order, backed by a btree.BTreeG
package tracker
