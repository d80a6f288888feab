package container

import (
	"errors"
	"io"
	"testing"
)

func TestUint64Converter(t *testing.T) {
	conv := Uint64Converter()
	if conv.Size() != 8 {
		t.Fatalf("Expected handle size 8, got %d", conv.Size())
	}

	buf := conv.Append(nil, Handle(0x0102030405060708))
	if len(buf) != 8 || buf[0] != 0x01 || buf[7] != 0x08 {
		t.Errorf("Expected big-endian encoding, got %x", buf)
	}

	h, err := conv.Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if h != 0x0102030405060708 {
		t.Errorf("Expected decoded handle %x, got %x", 0x0102030405060708, h)
	}

	if _, err := conv.Decode(buf[:4]); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected error for short buffer, got %v", err)
	}
}
