package v10_test

import (
	"bytes"
	"strings"
	"testing"

	v10 "github.com/wippyai/chain-metadata/metadata/v10"
	"github.com/wippyai/chain-metadata/scale"
)

func sampleTree() *v10.Metadata {
	return &v10.Metadata{
		Modules: []v10.Module{
			{
				Name: "Balances",
				Storage: &v10.Storage{
					Prefix: "Balances",
					Entries: []v10.Entry{
						{
							Name:       "TotalIssuance",
							Visibility: v10.Public,
							Modifier:   v10.Default,
							Type:       v10.EntryType{Plain: &v10.Plain{Value: "T::Balance"}},
						},
						{
							Name:       "FreeBalance",
							Visibility: v10.Public,
							Modifier:   v10.Default,
							Type: v10.EntryType{Map: &v10.Map{
								Keys:   []v10.KeyHasher{{Hasher: v10.Blake2_128Concat, Key: "T::AccountId"}},
								Value:  "T::Balance",
								Linked: true,
							}},
						},
					},
				},
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := v10.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Modules[0].Storage.Entries[1].Type.Map.Linked {
		t.Error("linked flag lost")
	}

	w2 := scale.NewWriter()
	if err := decoded.Encode(w2); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(w.Bytes(), w2.Bytes()) {
		t.Error("re-encoded tree differs from original bytes")
	}
}

func TestDecodeRejectsIdentityHasher(t *testing.T) {
	w := scale.NewWriter()
	w.WriteLen(1)
	w.WriteString("M")
	w.WriteOption(true)
	w.WriteString("M")
	w.WriteLen(1)
	w.WriteString("E")
	w.WriteU8(0)
	w.WriteU8(1)
	w.Byte(v10.TagMap)
	w.WriteU8(6) // Identity only exists from V11 on
	_, err := v10.Decode(scale.NewReader(w.Bytes()))
	if err == nil || !strings.Contains(err.Error(), "unknown hasher") {
		t.Errorf("expected unknown hasher error, got %v", err)
	}
}
