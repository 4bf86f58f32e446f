package v11_test

import (
	"bytes"
	"testing"

	v11 "github.com/wippyai/chain-metadata/metadata/v11"
	"github.com/wippyai/chain-metadata/scale"
)

func sampleTree() *v11.Metadata {
	calls := []v11.Function{
		{
			Name: "transfer",
			Args: []v11.Arg{
				{Name: "dest", Type: "T::AccountId"},
				{Name: "value", Type: "Compact<T::Balance>"},
			},
		},
	}
	return &v11.Metadata{
		Modules: []v11.Module{
			{
				Name: "Balances",
				Storage: &v11.Storage{
					Prefix: "Balances",
					Entries: []v11.Entry{
						{
							Name:       "TotalIssuance",
							Visibility: v11.Public,
							Modifier:   v11.Default,
							Type:       v11.EntryType{Plain: &v11.Plain{Value: "T::Balance"}},
						},
						{
							Name:       "Locks",
							Visibility: v11.Public,
							Modifier:   v11.Default,
							Type: v11.EntryType{Map: &v11.Map{
								Keys:  []v11.KeyHasher{{Hasher: v11.Identity, Key: "T::AccountId"}},
								Value: "Vec<BalanceLock<T::Balance>>",
							}},
						},
					},
				},
				Calls: &calls,
			},
		},
		Extrinsic: v11.Extrinsic{
			Version:          4,
			SignedExtensions: []string{"CheckEra", "CheckNonce"},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := v11.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Extrinsic.Version != 4 || len(decoded.Extrinsic.SignedExtensions) != 2 {
		t.Errorf("extrinsic = %+v", decoded.Extrinsic)
	}

	w2 := scale.NewWriter()
	if err := decoded.Encode(w2); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(w.Bytes(), w2.Bytes()) {
		t.Error("re-encoded tree differs from original bytes")
	}
}

func TestIdentityHasherAccepted(t *testing.T) {
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatal(err)
	}
	decoded, err := v11.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if h := decoded.Modules[0].Storage.Entries[1].Type.Map.Keys[0].Hasher; h != v11.Identity {
		t.Errorf("hasher = %v, want Identity", h)
	}
}
