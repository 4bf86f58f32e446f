package scale

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Decoding errors returned by Reader.
var (
	// ErrUnexpectedEOF is returned when the input ends before a value
	// is complete.
	ErrUnexpectedEOF = errors.New("scale: unexpected end of input")

	// ErrCompactOverflow is returned when a compact integer does not
	// fit the requested width.
	ErrCompactOverflow = errors.New("scale: compact integer overflow")

	// ErrNonCanonical is returned when a compact integer uses a wider
	// mode than its value requires.
	ErrNonCanonical = errors.New("scale: non-canonical compact encoding")
)

// Reader decodes SCALE values from a byte slice with position tracking.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte offset.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of bytes left to read.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. The count is checked against the
// remaining input before any allocation.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("scale: negative length %d", n)
	}
	if n > r.Remaining() {
		return nil, ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:r.pos+n])
	r.pos += n
	return buf, nil
}

// ReadU8 reads a fixed-width u8.
func (r *Reader) ReadU8() (uint8, error) {
	return r.ReadByte()
}

// ReadU32LE reads a fixed-width little-endian u32.
func (r *Reader) ReadU32LE() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadBool reads a one-byte boolean. Values other than 0 and 1 are
// rejected.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, r.wrapError(fmt.Errorf("invalid bool value 0x%02x", b))
	}
}

// ReadOption reads a one-byte option tag and reports whether a value
// follows.
func (r *Reader) ReadOption() (bool, error) {
	return r.ReadBool()
}

// ReadCompact reads a compact-encoded unsigned integer up to 64 bits.
func (r *Reader) ReadCompact() (uint64, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch b & 0b11 {
	case 0b00:
		return uint64(b >> 2), nil
	case 0b01:
		b2, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v := (uint64(b) | uint64(b2)<<8) >> 2
		if v < 1<<6 {
			return 0, r.wrapError(ErrNonCanonical)
		}
		return v, nil
	case 0b10:
		if r.Remaining() < 3 {
			return 0, ErrUnexpectedEOF
		}
		v := (uint64(b) | uint64(r.data[r.pos])<<8 |
			uint64(r.data[r.pos+1])<<16 | uint64(r.data[r.pos+2])<<24) >> 2
		r.pos += 3
		if v < 1<<14 {
			return 0, r.wrapError(ErrNonCanonical)
		}
		return v, nil
	default:
		n := int(b>>2) + 4
		if n > 8 {
			return 0, r.wrapError(ErrCompactOverflow)
		}
		if r.Remaining() < n {
			return 0, ErrUnexpectedEOF
		}
		var v uint64
		for i := 0; i < n; i++ {
			v |= uint64(r.data[r.pos+i]) << (8 * i)
		}
		r.pos += n
		if v < 1<<30 || r.data[r.pos-1] == 0 {
			return 0, r.wrapError(ErrNonCanonical)
		}
		return v, nil
	}
}

// ReadCompactU32 reads a compact-encoded integer and checks it fits in
// 32 bits.
func (r *Reader) ReadCompactU32() (uint32, error) {
	v, err := r.ReadCompact()
	if err != nil {
		return 0, err
	}
	if v > 0xFFFFFFFF {
		return 0, r.wrapError(ErrCompactOverflow)
	}
	return uint32(v), nil
}

// ReadLen reads a compact-encoded collection length. The length is
// bounds-checked against the remaining input so a hostile prefix can
// never force an oversized allocation.
func (r *Reader) ReadLen() (int, error) {
	v, err := r.ReadCompact()
	if err != nil {
		return 0, err
	}
	if v > uint64(r.Remaining()) {
		return 0, r.wrapError(fmt.Errorf("length prefix %d exceeds %d remaining bytes", v, r.Remaining()))
	}
	return int(v), nil
}

// ReadString reads a compact-length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadLen()
	if err != nil {
		return "", err
	}
	data, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", r.wrapError(errors.New("invalid UTF-8 in string"))
	}
	return string(data), nil
}

// ReadStrings reads a sequence of strings.
func (r *Reader) ReadStrings() ([]string, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = r.ReadString(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadByteSlice reads a compact-length-prefixed byte sequence.
func (r *Reader) ReadByteSlice() ([]byte, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(n)
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at offset %d: %w", r.pos, err)
}

// DecodeError carries the input offset and the value being decoded
// when a structural decode fails.
type DecodeError struct {
	Err     error
	Context string
	Offset  int
}

func (e *DecodeError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("scale: %s at offset %d: %v", e.Context, e.Offset, e.Err)
	}
	return fmt.Sprintf("scale: at offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// WrapError creates a DecodeError at the current position.
func (r *Reader) WrapError(context string, err error) error {
	return &DecodeError{
		Offset:  r.pos,
		Context: context,
		Err:     err,
	}
}
