// Package container provides a standardized interface for object stores that
// issue handles for the values they store.
//
// Key Components:
//
//   - IContainer Interface: insert, reserve, get, update, remove, clear and
//     iteration over live handles.
//
//   - Feature Flags: implementations advertise their capabilities through
//     SupportsFeature. The array container for example does not support removal.
//
//   - HandleConverter: a fixed-width (8 byte) encoding of handles for
//     collaborators that persist or transmit handles.
//
// Related Packages:
//
// The arraycontainer package (github.com/ValentinKolb/xgroup/lib/container/arraycontainer)
// provides the slice backed implementation used as in-memory store for groups.
//
// The testing package (github.com/ValentinKolb/xgroup/lib/container/testing) provides
// a standardized test suite for implementations of IContainer.
package container
