package testing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ValentinKolb/xgroup/lib/container"
)

const benchmarkPrefill = 10_000

// RunContainerBenchmarks runs all benchmarks for a container implementation
func RunContainerBenchmarks(b *testing.B, name string, factory ContainerFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Insert", func(b *testing.B) {
			benchmarkInsert(b, factory())
		})

		b.Run("InsertLargeValue", func(b *testing.B) {
			benchmarkInsertLargeValue(b, factory())
		})

		b.Run("Reserve", func(b *testing.B) {
			benchmarkReserve(b, factory())
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkGet(b, factory())
		})

		b.Run("Update", func(b *testing.B) {
			benchmarkUpdate(b, factory())
		})

		b.Run("Ids", func(b *testing.B) {
			benchmarkIds(b, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

func benchmarkInsert(b *testing.B, c container.IContainer[string]) {
	requireFeature(b, c, container.FeatureInsert)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Insert("value")
	}
}

func benchmarkInsertLargeValue(b *testing.B, c container.IContainer[string]) {
	requireFeature(b, c, container.FeatureInsert)
	value := strings.Repeat("x", 64*1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Insert(value)
	}
}

func benchmarkReserve(b *testing.B, c container.IContainer[string]) {
	requireFeature(b, c, container.FeatureReserve)
	factory := func() string { return "" }

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Reserve(factory)
	}
}

func benchmarkGet(b *testing.B, c container.IContainer[string]) {
	requireFeature(b, c, container.FeatureInsert|container.FeatureGet)
	handles := prefill(c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Get(handles[i%len(handles)]); err != nil {
			b.Fatalf("Get failed: %v", err)
		}
	}
}

func benchmarkUpdate(b *testing.B, c container.IContainer[string]) {
	requireFeature(b, c, container.FeatureInsert|container.FeatureUpdate)
	handles := prefill(c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Update(handles[i%len(handles)], "updated"); err != nil {
			b.Fatalf("Update failed: %v", err)
		}
	}
}

func benchmarkIds(b *testing.B, c container.IContainer[string]) {
	requireFeature(b, c, container.FeatureInsert|container.FeatureIds)
	prefill(c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n := 0
		for range c.Ids() {
			n++
		}
		if n != benchmarkPrefill {
			b.Fatalf("Expected %d handles, got %d", benchmarkPrefill, n)
		}
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func prefill(c container.IContainer[string]) []container.Handle {
	handles := make([]container.Handle, benchmarkPrefill)
	for i := range handles {
		handles[i] = c.Insert(fmt.Sprintf("value-%d", i))
	}
	return handles
}
