package scale

import (
	"bytes"
	"encoding/binary"
)

// Writer encodes SCALE values into a growable buffer.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes raw bytes without a length prefix.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU8 writes a fixed-width u8.
func (w *Writer) WriteU8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteU32LE writes a fixed-width little-endian u32.
func (w *Writer) WriteU32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteBool writes a one-byte boolean.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// WriteOption writes a one-byte option presence tag.
func (w *Writer) WriteOption(present bool) {
	w.WriteBool(present)
}

// WriteCompact writes a compact-encoded unsigned integer using the
// narrowest mode that fits the value.
func (w *Writer) WriteCompact(v uint64) {
	switch {
	case v < 1<<6:
		w.buf.WriteByte(byte(v) << 2)
	case v < 1<<14:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(v<<2)|0b01)
		w.buf.Write(buf[:])
	case v < 1<<30:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v<<2)|0b10)
		w.buf.Write(buf[:])
	default:
		n := 4
		for tmp := v >> 32; tmp != 0; tmp >>= 8 {
			n++
		}
		w.buf.WriteByte(byte((n-4)<<2) | 0b11)
		for i := 0; i < n; i++ {
			w.buf.WriteByte(byte(v >> (8 * i)))
		}
	}
}

// WriteLen writes a compact-encoded collection length.
func (w *Writer) WriteLen(n int) {
	w.WriteCompact(uint64(n))
}

// WriteString writes a compact-length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteLen(len(s))
	w.buf.WriteString(s)
}

// WriteStrings writes a sequence of strings.
func (w *Writer) WriteStrings(ss []string) {
	w.WriteLen(len(ss))
	for _, s := range ss {
		w.WriteString(s)
	}
}

// WriteByteSlice writes a compact-length-prefixed byte sequence.
func (w *Writer) WriteByteSlice(data []byte) {
	w.WriteLen(len(data))
	w.buf.Write(data)
}
