package v8_test

import (
	"bytes"
	"testing"

	v8 "github.com/wippyai/chain-metadata/metadata/v8"
	"github.com/wippyai/chain-metadata/scale"
)

func TestRoundTrip(t *testing.T) {
	calls := []v8.Function{
		{Name: "set", Args: []v8.Arg{{Name: "now", Type: "Compact<T::Moment>"}}},
	}
	tree := &v8.Metadata{
		Modules: []v8.Module{
			{
				Name: "Timestamp",
				Storage: &v8.Storage{
					Prefix: "Timestamp",
					Entries: []v8.Entry{
						{
							Name:       "Now",
							Visibility: v8.Public,
							Modifier:   v8.Default,
							Type:       v8.EntryType{Plain: &v8.Plain{Value: "T::Moment"}},
							Docs:       []string{"Current time for the current block."},
						},
					},
				},
				Calls: &calls,
			},
		},
	}

	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := v8.Decode(scale.NewReader(w.Bytes()))
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

func TestEmptyTree(t *testing.T) {
	w := scale.NewWriter()
	if err := (&v8.Metadata{}).Encode(w); err != nil {
		t.Fatal(err)
	}
	// An empty tree is a single zero-length modules vector.
	if len(w.Bytes()) != 1 || w.Bytes()[0] != 0 {
		t.Errorf("empty tree = %x", w.Bytes())
	}
	decoded, err := v8.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Modules) != 0 {
		t.Errorf("modules = %d", len(decoded.Modules))
	}
}
