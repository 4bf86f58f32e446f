package scale_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wippyai/chain-metadata/scale"
)

func TestCompactRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 42, 63,
		64, 255, 16383,
		16384, 65535, 1<<30 - 1,
		1 << 30, 1<<32 - 1,
		1 << 32, 1 << 40, 1 << 56, 1<<64 - 1,
	}
	for _, v := range values {
		w := scale.NewWriter()
		w.WriteCompact(v)
		r := scale.NewReader(w.Bytes())
		got, err := r.ReadCompact()
		if err != nil {
			t.Fatalf("ReadCompact(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
		if r.Remaining() != 0 {
			t.Errorf("value %d: %d trailing bytes", v, r.Remaining())
		}
	}
}

func TestCompactKnownEncodings(t *testing.T) {
	tests := []struct {
		value uint64
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x04}},
		{42, []byte{0xa8}},
		{63, []byte{0xfc}},
		{64, []byte{0x01, 0x01}},
		{69, []byte{0x15, 0x01}},
		{16384, []byte{0x02, 0x00, 0x01, 0x00}},
		{1 << 30, []byte{0x03, 0x00, 0x00, 0x00, 0x40}},
	}
	for _, tt := range tests {
		w := scale.NewWriter()
		w.WriteCompact(tt.value)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("WriteCompact(%d) = %x, want %x", tt.value, w.Bytes(), tt.want)
		}
	}
}

func TestCompactNonCanonical(t *testing.T) {
	// 1 encoded in two-byte mode.
	r := scale.NewReader([]byte{0x05, 0x00})
	if _, err := r.ReadCompact(); !errors.Is(err, scale.ErrNonCanonical) {
		t.Errorf("expected ErrNonCanonical, got %v", err)
	}
}

func TestCompactU32Overflow(t *testing.T) {
	w := scale.NewWriter()
	w.WriteCompact(1 << 40)
	r := scale.NewReader(w.Bytes())
	if _, err := r.ReadCompactU32(); !errors.Is(err, scale.ErrCompactOverflow) {
		t.Errorf("expected ErrCompactOverflow, got %v", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "Balances", "路径", "a b c"} {
		w := scale.NewWriter()
		w.WriteString(s)
		r := scale.NewReader(w.Bytes())
		got, err := r.ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestStringInvalidUTF8(t *testing.T) {
	r := scale.NewReader([]byte{0x08, 0xff, 0xfe})
	if _, err := r.ReadString(); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}

func TestLenPrefixBounded(t *testing.T) {
	// Claims 2^20 elements with two bytes of input left.
	w := scale.NewWriter()
	w.WriteCompact(1 << 20)
	data := append(w.Bytes(), 0x00, 0x00)
	r := scale.NewReader(data)
	if _, err := r.ReadLen(); err == nil {
		t.Error("expected error for oversized length prefix")
	}
}

func TestReadBytesTruncated(t *testing.T) {
	r := scale.NewReader([]byte{1, 2})
	if _, err := r.ReadBytes(3); !errors.Is(err, scale.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestBoolRejectsJunk(t *testing.T) {
	r := scale.NewReader([]byte{0x02})
	if _, err := r.ReadBool(); err == nil {
		t.Error("expected error for bool value 2")
	}
}

func TestU32LERoundTrip(t *testing.T) {
	w := scale.NewWriter()
	w.WriteU32LE(0x6174656d)
	if !bytes.Equal(w.Bytes(), []byte{0x6d, 0x65, 0x74, 0x61}) {
		t.Fatalf("unexpected encoding %x", w.Bytes())
	}
	r := scale.NewReader(w.Bytes())
	v, err := r.ReadU32LE()
	if err != nil {
		t.Fatalf("ReadU32LE: %v", err)
	}
	if v != 0x6174656d {
		t.Errorf("got 0x%08x", v)
	}
}

func TestPositionTracking(t *testing.T) {
	w := scale.NewWriter()
	w.WriteString("abc")
	w.WriteCompact(500)
	r := scale.NewReader(w.Bytes())
	if _, err := r.ReadString(); err != nil {
		t.Fatal(err)
	}
	if r.Position() != 4 {
		t.Errorf("position after string: %d", r.Position())
	}
	if _, err := r.ReadCompact(); err != nil {
		t.Fatal(err)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining: %d", r.Remaining())
	}
}

func TestByteSliceRoundTrip(t *testing.T) {
	in := []byte{0xde, 0xad, 0xbe, 0xef}
	w := scale.NewWriter()
	w.WriteByteSlice(in)
	r := scale.NewReader(w.Bytes())
	got, err := r.ReadByteSlice()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, in) {
		t.Errorf("got %x", got)
	}
}

func FuzzReadCompact(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0x01, 0x01})
	f.Add([]byte{0x03, 0xff, 0xff, 0xff, 0xff})
	f.Fuzz(func(t *testing.T, data []byte) {
		r := scale.NewReader(data)
		v, err := r.ReadCompact()
		if err != nil {
			return
		}
		// Whatever decoded must re-encode to the bytes consumed.
		w := scale.NewWriter()
		w.WriteCompact(v)
		if !bytes.Equal(w.Bytes(), data[:r.Position()]) {
			t.Errorf("value %d: consumed %x, re-encoded %x", v, data[:r.Position()], w.Bytes())
		}
	})
}
