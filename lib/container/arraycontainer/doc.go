// Package arraycontainer implements container.IContainer on top of a growable
// slice.
//
// The handle of a value is the index of its slot. Handles are issued strictly
// increasing starting at 0 and are never reused; since removal is not
// supported no gaps can form, so Contains(h) and IsUsed(h) are both simply
// h < Size(). Reserve appends an empty placeholder slot whose value reads as
// the zero value until it is updated.
//
// Clear empties the storage and restarts handle issuing at 0. Handles obtained
// before a Clear must not be used afterwards.
//
// Example usage:
//
//	c := arraycontainer.NewArrayContainer[string](nil)
//	h := c.Insert("hello")
//	v, err := c.Get(h)
package arraycontainer
