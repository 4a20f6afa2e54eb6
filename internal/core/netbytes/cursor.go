// Package netbytes implements the forward-only cursor and writer used to
// decode and encode the little-endian wire format shared by the login,
// character, and map servers.
package netbytes

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortBuffer is reported when a read would run past the end of the
// underlying buffer. During steady-state dispatch this is an expected
// condition (a frame split across TCP reads) and callers must treat it
// as "retry once more data arrives", not as a protocol violation.
var ErrShortBuffer = errors.New("netbytes: not enough bytes remaining")

// Version identifies the protocol revision a buffer was produced by.
// Some record layouts gain or lose fields between revisions.
type Version struct {
	Major uint8
	Minor uint8
}

// AtLeast reports whether v is the same as or newer than major.minor.
func (v Version) AtLeast(major, minor uint8) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

// Color is a 4-byte color value as it appears on the wire.
type Color struct {
	R, G, B, A uint8
}

// Cursor is a forward-only reader over a borrowed byte slice. It never
// copies the underlying buffer. The first failed read sets a sticky
// error and all subsequent reads return zero values, so decode code can
// read an entire record and check Err once.
type Cursor struct {
	data    []byte
	off     int
	version Version
	err     error
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// NewVersionedCursor returns a cursor whose version gate is set, for
// record types that decode differently across protocol revisions.
func NewVersionedCursor(data []byte, version Version) *Cursor {
	return &Cursor{data: data, version: version}
}

func (c *Cursor) Version() Version { return c.version }

// Err returns the first error encountered by any read.
func (c *Cursor) Err() error { return c.err }

// Fail records err if the cursor has not already failed. It is used by
// value decoders to report protocol violations (bad enum codes and the
// like) through the same channel as short reads.
func (c *Cursor) Fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.off }

// Remaining returns the number of unconsumed bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.off }

// take returns the next n bytes as a view, or nil after marking the
// cursor failed if fewer than n remain.
func (c *Cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 {
		// A negative count means a corrupt length field, which is a
		// protocol violation rather than a partial read.
		c.err = fmt.Errorf("netbytes: negative read length %d", n)
		return nil
	}
	if c.Remaining() < n {
		c.err = fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, n, c.Remaining())
		return nil
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b
}

func (c *Cursor) Uint8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *Cursor) Uint16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (c *Cursor) Uint32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (c *Cursor) Uint64() uint64 {
	b := c.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (c *Cursor) Int8() int8   { return int8(c.Uint8()) }
func (c *Cursor) Int16() int16 { return int16(c.Uint16()) }
func (c *Cursor) Int32() int32 { return int32(c.Uint32()) }
func (c *Cursor) Int64() int64 { return int64(c.Uint64()) }

func (c *Cursor) Float32() float32 {
	return math.Float32frombits(c.Uint32())
}

// Bytes returns the next n bytes as a view into the buffer.
func (c *Cursor) Bytes(n int) []byte {
	return c.take(n)
}

// Skip discards the next n bytes.
func (c *Cursor) Skip(n int) {
	c.take(n)
}

// PeekBytes returns a view of the next n bytes without advancing the
// cursor, or nil if fewer than n remain. Unlike the consuming reads it
// never marks the cursor failed.
func (c *Cursor) PeekBytes(n int) []byte {
	if c.err != nil || n < 0 || c.Remaining() < n {
		return nil
	}
	return c.data[c.off : c.off+n]
}

// PeekUint16 reads a u16 without advancing the cursor.
func (c *Cursor) PeekUint16() uint16 {
	if c.err != nil || c.Remaining() < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(c.data[c.off:])
}

// String reads a fixed-width byte field and interprets it as text,
// trimming at the first NUL byte.
func (c *Cursor) String(width int) string {
	b := c.take(width)
	if b == nil {
		return ""
	}
	for i, v := range b {
		if v == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func (c *Cursor) Vector2() [2]float32 {
	return [2]float32{c.Float32(), c.Float32()}
}

func (c *Cursor) Vector3() [3]float32 {
	return [3]float32{c.Float32(), c.Float32(), c.Float32()}
}

func (c *Cursor) Color() Color {
	b := c.take(4)
	if b == nil {
		return Color{}
	}
	return Color{R: b[0], G: b[1], B: b[2], A: b[3]}
}

// ColorBGRA reads a color stored blue-first, as some chat packets do.
func (c *Cursor) ColorBGRA() Color {
	b := c.take(4)
	if b == nil {
		return Color{}
	}
	return Color{B: b[0], G: b[1], R: b[2], A: b[3]}
}
