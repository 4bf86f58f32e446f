package v9_test

import (
	"bytes"
	"strings"
	"testing"

	v9 "github.com/wippyai/chain-metadata/metadata/v9"
	"github.com/wippyai/chain-metadata/scale"
)

func TestRoundTrip(t *testing.T) {
	tree := &v9.Metadata{
		Modules: []v9.Module{
			{
				Name: "System",
				Storage: &v9.Storage{
					Prefix: "System",
					Entries: []v9.Entry{
						{
							Name:       "AccountNonce",
							Visibility: v9.Public,
							Modifier:   v9.Default,
							Type: v9.EntryType{Map: &v9.Map{
								Keys:  []v9.KeyHasher{{Hasher: v9.Blake2_256, Key: "T::AccountId"}},
								Value: "T::Index",
							}},
						},
					},
				},
				Errors: []v9.Error{{Name: "InvalidSpecName"}},
			},
		},
	}

	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := v9.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	w2 := scale.NewWriter()
	if err := decoded.Encode(w2); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(w.Bytes(), w2.Bytes()) {
		t.Error("re-encoded tree differs from original bytes")
	}
}

func TestHasherNumbering(t *testing.T) {
	// The five-hasher numbering differs from V10 and later, where
	// Blake2_128Concat shifts the Twox values up.
	if v9.Twox128 != 2 || v9.Twox64Concat != 4 {
		t.Errorf("Twox128 = %d, Twox64Concat = %d", v9.Twox128, v9.Twox64Concat)
	}
}

func TestDecodeRejectsConcatHasher(t *testing.T) {
	w := scale.NewWriter()
	w.WriteLen(1)
	w.WriteString("M")
	w.WriteOption(true)
	w.WriteString("M")
	w.WriteLen(1)
	w.WriteString("E")
	w.WriteU8(0)
	w.WriteU8(1)
	w.Byte(v9.TagMap)
	w.WriteU8(5) // out of range for the five-hasher set
	_, err := v9.Decode(scale.NewReader(w.Bytes()))
	if err == nil || !strings.Contains(err.Error(), "unknown hasher") {
		t.Errorf("expected unknown hasher error, got %v", err)
	}
}
