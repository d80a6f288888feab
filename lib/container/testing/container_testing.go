package testing

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/xgroup/lib/common"
	"github.com/ValentinKolb/xgroup/lib/container"
)

// ContainerFactory is a function that creates a new, empty container
type ContainerFactory func() container.IContainer[string]

// RunContainerTests runs a comprehensive test suite for a container implementation.
func RunContainerTests(t *testing.T, name string, factory ContainerFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Insert&Get", func(t *testing.T) {
			testInsertGet(t, factory())
		})

		t.Run("HandlesIncrease", func(t *testing.T) {
			testHandlesIncrease(t, factory())
		})

		t.Run("Reserve", func(t *testing.T) {
			testReserve(t, factory())
		})

		t.Run("Update", func(t *testing.T) {
			testUpdate(t, factory())
		})

		t.Run("Contains", func(t *testing.T) {
			testContains(t, factory())
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory())
		})

		t.Run("Ids", func(t *testing.T) {
			testIds(t, factory())
		})

		t.Run("IdsLiveView", func(t *testing.T) {
			testIdsLiveView(t, factory())
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, factory())
		})

		t.Run("HandleEncoding", func(t *testing.T) {
			testHandleEncoding(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// Checks if the container supports the specified feature
// Skip the test if it is not supported
func requireFeature(t testing.TB, c container.IContainer[string], feature container.Feature) {
	if !c.SupportsFeature(feature) {
		t.Skip()
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testInsertGet(t *testing.T, c container.IContainer[string]) {
	requireFeature(t, c, container.FeatureInsert|container.FeatureGet)

	handles := make([]container.Handle, 0, 100)
	for i := 0; i < 100; i++ {
		handles = append(handles, c.Insert(fmt.Sprintf("value-%d", i)))
	}

	if c.Size() != 100 {
		t.Errorf("Expected size 100 after 100 inserts, got %d", c.Size())
	}

	for i, h := range handles {
		value, err := c.Get(h)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", h, err)
		}
		if expected := fmt.Sprintf("value-%d", i); value != expected {
			t.Errorf("Expected value %s for handle %d, got %s", expected, h, value)
		}
	}

	if _, err := c.Get(container.Handle(c.Size())); !common.HasCode(err, common.RetCNotFound) {
		t.Errorf("Expected NotFound for unused handle, got %v", err)
	}
}

func testHandlesIncrease(t *testing.T, c container.IContainer[string]) {
	requireFeature(t, c, container.FeatureInsert)

	seen := make(map[container.Handle]bool)
	var last container.Handle
	for i := 0; i < 50; i++ {
		var h container.Handle
		if i%3 == 0 && c.SupportsFeature(container.FeatureReserve) {
			h = c.Reserve(func() string { return "" })
		} else {
			h = c.Insert("x")
		}
		if seen[h] {
			t.Fatalf("Handle %d was issued twice", h)
		}
		if i > 0 && h <= last {
			t.Errorf("Handle %d is not greater than previous handle %d", h, last)
		}
		seen[h] = true
		last = h
	}
}

func testReserve(t *testing.T, c container.IContainer[string]) {
	requireFeature(t, c, container.FeatureReserve|container.FeatureGet)

	h := c.Reserve(func() string { return "materialized" })
	if !c.Contains(h) || !c.IsUsed(h) {
		t.Errorf("Reserved handle %d should be contained and used", h)
	}
	if c.Size() != 1 {
		t.Errorf("Expected size 1 after reserve, got %d", c.Size())
	}
	if _, err := c.Get(h); err != nil {
		t.Errorf("Get on reserved handle failed: %v", err)
	}
}

func testUpdate(t *testing.T, c container.IContainer[string]) {
	requireFeature(t, c, container.FeatureInsert|container.FeatureUpdate|container.FeatureGet)

	h := c.Insert("old")
	if err := c.Update(h, "new"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	value, err := c.Get(h)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "new" {
		t.Errorf("Expected updated value new, got %s", value)
	}

	if err := c.Update(h+1, "nope"); !common.HasCode(err, common.RetCNotFound) {
		t.Errorf("Expected NotFound when updating an unused handle, got %v", err)
	}

	if c.SupportsFeature(container.FeatureReserve) {
		r := c.Reserve(nil)
		if err := c.Update(r, "filled"); err != nil {
			t.Fatalf("Update of reserved handle failed: %v", err)
		}
		if value, _ := c.Get(r); value != "filled" {
			t.Errorf("Expected filled, got %s", value)
		}
	}
}

func testContains(t *testing.T, c container.IContainer[string]) {
	requireFeature(t, c, container.FeatureInsert)

	if c.Contains(0) || c.IsUsed(0) {
		t.Errorf("Empty container should not contain handle 0")
	}

	h := c.Insert("a")
	if !c.Contains(h) || !c.IsUsed(h) {
		t.Errorf("Container should contain inserted handle %d", h)
	}
	if c.Contains(h+1) || c.IsUsed(h+1) {
		t.Errorf("Container should not contain handle %d", h+1)
	}
}

func testRemove(t *testing.T, c container.IContainer[string]) {
	h := c.Insert("a")
	err := c.Remove(h)

	if !c.SupportsFeature(container.FeatureRemove) {
		if !common.HasCode(err, common.RetCUnsupportedOperation) {
			t.Errorf("Expected UnsupportedOperation for remove, got %v", err)
		}
		if !c.Contains(h) {
			t.Errorf("Failed remove must not change the container")
		}
		return
	}

	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if c.IsUsed(h) {
		t.Errorf("Removed handle %d should not be used", h)
	}
}

func testIds(t *testing.T, c container.IContainer[string]) {
	requireFeature(t, c, container.FeatureInsert|container.FeatureIds)

	for i := 0; i < 10; i++ {
		c.Insert("v")
	}

	var ids []container.Handle
	for h := range c.Ids() {
		ids = append(ids, h)
	}

	if len(ids) != 10 {
		t.Fatalf("Expected 10 ids, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Errorf("Ids are not ascending: %v", ids)
			break
		}
	}
}

func testIdsLiveView(t *testing.T, c container.IContainer[string]) {
	requireFeature(t, c, container.FeatureInsert|container.FeatureIds)

	c.Insert("first")
	count := 0
	for range c.Ids() {
		count++
		if count == 1 {
			c.Insert("added during iteration")
		}
		if count > 10 {
			t.Fatalf("Ids did not terminate")
		}
	}
	if count != 2 {
		t.Errorf("Expected the live view to visit 2 handles, got %d", count)
	}
}

func testClear(t *testing.T, c container.IContainer[string]) {
	requireFeature(t, c, container.FeatureInsert|container.FeatureClear)

	h := c.Insert("a")
	c.Insert("b")
	c.Clear()

	if c.Size() != 0 {
		t.Errorf("Expected size 0 after clear, got %d", c.Size())
	}
	if c.Contains(h) {
		t.Errorf("Handle %d should be invalid after clear", h)
	}
	for range c.Ids() {
		t.Errorf("Ids should be empty after clear")
	}

	if h2 := c.Insert("c"); c.Size() != 1 || !c.Contains(h2) {
		t.Errorf("Container should be usable after clear")
	}
}

func testHandleEncoding(t *testing.T, c container.IContainer[string]) {
	conv := c.IDConverter()
	if c.IDSize() != conv.Size() {
		t.Errorf("IDSize %d does not match converter size %d", c.IDSize(), conv.Size())
	}

	h := c.Insert("x")
	buf := conv.Append(nil, h)
	if len(buf) != c.IDSize() {
		t.Fatalf("Encoded handle has %d bytes, expected %d", len(buf), c.IDSize())
	}
	decoded, err := conv.Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != h {
		t.Errorf("Expected decoded handle %d, got %d", h, decoded)
	}
}
