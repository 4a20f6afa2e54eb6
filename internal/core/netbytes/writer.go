package netbytes

import (
	"encoding/binary"
	"math"
)

// Writer builds wire-format byte sequences with the same primitives the
// Cursor reads. The zero value is ready to use.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{}
}

// Data returns the accumulated bytes.
func (w *Writer) Data() []byte { return w.buf }

func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) Int8(v int8)   { w.Uint8(uint8(v)) }
func (w *Writer) Int16(v int16) { w.Uint16(uint16(v)) }
func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }
func (w *Writer) Int64(v int64) { w.Uint64(uint64(v)) }

func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

func (w *Writer) Bytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Zero appends n zero bytes, used for unused and padding fields.
func (w *Writer) Zero(n int) {
	w.buf = append(w.buf, make([]byte, n)...)
}

// String writes s into a fixed-width field, truncating if necessary and
// padding the remainder with NUL bytes.
func (w *Writer) String(s string, width int) {
	b := []byte(s)
	if len(b) > width {
		b = b[:width]
	}
	w.buf = append(w.buf, b...)
	w.Zero(width - len(b))
}

// PatchUint16 overwrites a previously written u16, used to fix up
// length prefixes once a frame's full size is known.
func (w *Writer) PatchUint16(offset int, v uint16) {
	binary.LittleEndian.PutUint16(w.buf[offset:], v)
}
