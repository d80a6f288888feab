package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID     int64
	Name   string
	Score  float64
	Tags   []string
	Weight uint32
}

// testCodecs is a map of codec name to factory function
var testCodecs = map[string]func() (ICodec[testRow], error){
	"CBOR": NewCBORCodec[testRow],
	"GOB":  func() (ICodec[testRow], error) { return NewGOBCodec[testRow](), nil },
	"JSON": func() (ICodec[testRow], error) { return NewJSONCodec[testRow](), nil },
}

func TestCodecsPreserveRows(t *testing.T) {
	rows := []testRow{
		{},
		{ID: -1, Name: "alice", Score: 95.5, Tags: []string{"a", "b"}, Weight: 7},
		{ID: 1 << 60, Name: "ünïcödé", Score: -0.25},
	}

	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c, err := factory()
			require.NoError(t, err)

			for _, row := range rows {
				b, err := c.Encode(row)
				require.NoError(t, err)

				decoded, err := c.Decode(b)
				require.NoError(t, err)
				assert.Equal(t, row.ID, decoded.ID)
				assert.Equal(t, row.Name, decoded.Name)
				assert.Equal(t, row.Score, decoded.Score)
				assert.Equal(t, row.Weight, decoded.Weight)
				assert.Equal(t, len(row.Tags), len(decoded.Tags))
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c, err := factory()
			require.NoError(t, err)
			_, err = c.Decode([]byte{0xff, 0x00, 0x13})
			assert.Error(t, err)
		})
	}
}

func BenchmarkCBOREncode(b *testing.B) {
	c, err := NewCBORCodec[testRow]()
	if err != nil {
		b.Fatal(err)
	}
	row := testRow{ID: 42, Name: "bench", Score: 1.5, Tags: []string{"x"}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Encode(row); err != nil {
			b.Fatal(err)
		}
	}
}
