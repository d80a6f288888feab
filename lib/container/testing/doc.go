// Package testing provides a standardised test suite for container
// implementations that satisfy the container.IContainer interface.
//
// Tests for features an implementation does not advertise via SupportsFeature
// are skipped, except for Remove: an implementation without FeatureRemove must
// reject removal with an UnsupportedOperation error.
//
// Example usage:
//
//	ctesting.RunContainerTests(t, "MyContainer", func() container.IContainer[string] {
//		return NewMyContainer()
//	})
//
// RunContainerBenchmarks measures the same operations with testing.B.
package testing
