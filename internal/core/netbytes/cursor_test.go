package netbytes

import (
	"errors"
	"testing"
)

func TestCursorReadsLittleEndian(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07})
	if v := c.Uint8(); v != 0x01 {
		t.Errorf("Uint8() = %#x, expected 0x01", v)
	}
	if v := c.Uint16(); v != 0x0302 {
		t.Errorf("Uint16() = %#x, expected 0x0302", v)
	}
	if v := c.Uint32(); v != 0x07060504 {
		t.Errorf("Uint32() = %#x, expected 0x07060504", v)
	}
	if err := c.Err(); err != nil {
		t.Errorf("unexpected cursor error: %v", err)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %d, expected 0", c.Remaining())
	}
}

func TestCursorShortBufferIsSticky(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})
	if v := c.Uint32(); v != 0 {
		t.Errorf("Uint32() on short buffer = %#x, expected 0", v)
	}
	if !errors.Is(c.Err(), ErrShortBuffer) {
		t.Errorf("Err() = %v, expected ErrShortBuffer", c.Err())
	}
	// Reads after a failure must not consume the remaining bytes.
	if v := c.Uint8(); v != 0 {
		t.Errorf("Uint8() after failure = %#x, expected 0", v)
	}
	if c.Offset() != 0 {
		t.Errorf("Offset() after failure = %d, expected 0", c.Offset())
	}
}

func TestCursorNegativeLengthIsHardError(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03})
	c.Skip(-1)
	if c.Err() == nil {
		t.Fatal("expected an error for a negative read length")
	}
	if errors.Is(c.Err(), ErrShortBuffer) {
		t.Error("negative length must not be reported as a short buffer")
	}
}

func TestCursorString(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		width    int
		expected string
	}{
		{"nul terminated", []byte{'m', 'a', 'p', 0x00, 0xcc, 0xcc}, 6, "map"},
		{"full width", []byte{'a', 'b', 'c'}, 3, "abc"},
		{"empty", []byte{0x00, 0x00}, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.data)
			if s := c.String(tt.width); s != tt.expected {
				t.Errorf("String(%d) = %q, expected %q", tt.width, s, tt.expected)
			}
			if c.Err() != nil {
				t.Errorf("unexpected cursor error: %v", c.Err())
			}
		})
	}
}

func TestCursorPeekDoesNotAdvance(t *testing.T) {
	c := NewCursor([]byte{0x34, 0x12, 0xff})
	if v := c.PeekUint16(); v != 0x1234 {
		t.Errorf("PeekUint16() = %#x, expected 0x1234", v)
	}
	if c.Offset() != 0 {
		t.Errorf("Offset() after peek = %d, expected 0", c.Offset())
	}
	if b := c.PeekBytes(4); b != nil {
		t.Errorf("PeekBytes(4) on 3 byte buffer = %v, expected nil", b)
	}
	if c.Err() != nil {
		t.Errorf("peek must not fail the cursor: %v", c.Err())
	}
}

func TestVersionAtLeast(t *testing.T) {
	v := Version{Major: 6, Minor: 3}
	if !v.AtLeast(6, 3) || !v.AtLeast(6, 0) || !v.AtLeast(5, 9) {
		t.Error("AtLeast() rejected an older or equal version")
	}
	if v.AtLeast(6, 4) || v.AtLeast(7, 0) {
		t.Error("AtLeast() accepted a newer version")
	}
}

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Uint16(0x0064)
	w.Uint32(0xdeadbeef)
	w.String("ragnet", 8)
	w.Zero(2)

	c := NewCursor(w.Data())
	if v := c.Uint16(); v != 0x0064 {
		t.Errorf("header = %#x, expected 0x0064", v)
	}
	if v := c.Uint32(); v != 0xdeadbeef {
		t.Errorf("value = %#x, expected 0xdeadbeef", v)
	}
	if s := c.String(8); s != "ragnet" {
		t.Errorf("string = %q, expected %q", s, "ragnet")
	}
	c.Skip(2)
	if c.Err() != nil || c.Remaining() != 0 {
		t.Errorf("expected fully consumed buffer, err=%v remaining=%d", c.Err(), c.Remaining())
	}
}

func TestWriterPatchUint16(t *testing.T) {
	w := NewWriter()
	w.Uint16(0x00f3)
	w.Uint16(0)
	w.Bytes([]byte("hello"))
	w.PatchUint16(2, uint16(w.Len()))

	c := NewCursor(w.Data())
	c.Skip(2)
	if v := c.Uint16(); int(v) != len(w.Data()) {
		t.Errorf("patched length = %d, expected %d", v, len(w.Data()))
	}
}
