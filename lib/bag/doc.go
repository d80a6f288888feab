// Package bag provides the per-group element stores of the grouper.
//
// A bag collects the elements that map to one key during a sweep. When the
// group is emitted, Cursor hands the elements over to a consume-once cursor,
// so the memory of a group is released as it is read.
//
// Two implementations exist:
//   - NewListBag: a plain slice (default)
//   - NewContainerBag: an arraycontainer.IContainer walked by its live handle sequence
package bag
