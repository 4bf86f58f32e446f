package v14_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/chain-metadata/errors"
	v14 "github.com/wippyai/chain-metadata/metadata/v14"
	"github.com/wippyai/chain-metadata/registry"
	"github.com/wippyai/chain-metadata/scale"
)

func strPtr(s string) *string { return &s }

// sampleTree builds a small but complete runtime: a Balances pallet
// with plain and map storage, a call enum, a constant, and an
// extrinsic with one signed extension.
func sampleTree() *v14.Metadata {
	b := registry.NewBuilder()
	u128 := b.Register(registry.Type{Def: registry.PrimitiveDef(registry.PrimU128)})
	u32 := b.Register(registry.Type{Def: registry.PrimitiveDef(registry.PrimU32)})
	account := b.Register(registry.Type{
		Path: []string{"sp_core", "crypto", "AccountId32"},
		Def:  registry.CompositeDef(registry.Field{Type: u32}),
	})
	call := b.Register(registry.Type{
		Path: []string{"pallet_balances", "pallet", "Call"},
		Def: registry.VariantDef(registry.VariantCase{
			Name:  "transfer",
			Index: 0,
			Fields: []registry.Field{
				{Name: strPtr("dest"), Type: account},
				{Name: strPtr("value"), Type: u128},
			},
		}),
	})
	extrinsic := b.Register(registry.Type{
		Path: []string{"sp_runtime", "UncheckedExtrinsic"},
		Def:  registry.CompositeDef(registry.Field{Type: call}),
	})
	runtime := b.Register(registry.Type{
		Path: []string{"kitchensink_runtime", "Runtime"},
		Def:  registry.CompositeDef(),
	})

	return &v14.Metadata{
		Types: b.Finish(),
		Pallets: []v14.Pallet{
			{
				Name: "Balances",
				Storage: &v14.Storage{
					Prefix: "Balances",
					Entries: []v14.Entry{
						{
							Name:     "TotalIssuance",
							Modifier: v14.Default,
							Type:     v14.EntryType{Plain: &v14.Plain{Value: u128}},
							Default:  make([]byte, 16),
							Docs:     []string{"The total units issued."},
						},
						{
							Name:     "Account",
							Modifier: v14.Default,
							Type: v14.EntryType{Map: &v14.Map{
								Hashers: []v14.Hasher{v14.Blake2_128Concat},
								Key:     account,
								Value:   u128,
							}},
						},
					},
				},
				Calls: &v14.Calls{Type: call},
				Constants: []v14.Constant{
					{Name: "ExistentialDeposit", Type: u128, Value: make([]byte, 16)},
				},
				Index: 5,
			},
		},
		Extrinsic: v14.Extrinsic{
			Type:    extrinsic,
			Version: 4,
			SignedExtensions: []v14.SignedExtension{
				{Identifier: "CheckNonce", Type: u32, AdditionalSigned: u32},
			},
		},
		Type: runtime,
	}
}

func TestRoundTrip(t *testing.T) {
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := v14.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if err := decoded.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	w2 := scale.NewWriter()
	if err := decoded.Encode(w2); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(w.Bytes(), w2.Bytes()) {
		t.Error("re-encoded tree differs from original bytes")
	}
}

func TestTotalIssuanceResolves(t *testing.T) {
	tree := sampleTree()
	var entry *v14.Entry
	for i := range tree.Pallets {
		if tree.Pallets[i].Name != "Balances" || tree.Pallets[i].Storage == nil {
			continue
		}
		for j := range tree.Pallets[i].Storage.Entries {
			if tree.Pallets[i].Storage.Entries[j].Name == "TotalIssuance" {
				entry = &tree.Pallets[i].Storage.Entries[j]
			}
		}
	}
	if entry == nil {
		t.Fatal("TotalIssuance not found")
	}
	ty, err := tree.Types.Resolve(entry.Type.Plain.Value)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ty.Def.Kind != registry.DefPrimitive || *ty.Def.Primitive != registry.PrimU128 {
		t.Errorf("TotalIssuance type = %+v, want u128", ty.Def)
	}
}

func TestValidateCatchesDanglingRef(t *testing.T) {
	tree := sampleTree()
	tree.Pallets[0].Calls = &v14.Calls{Type: 999}
	err := tree.Validate()
	if err == nil {
		t.Fatal("expected dangling type error")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindDanglingType {
		t.Errorf("expected dangling_type kind, got %v", err)
	}
}

func TestDecodeRejectsUnknownHasher(t *testing.T) {
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatal(err)
	}
	data := w.Bytes()
	// Locate the single Blake2_128Concat hasher byte: it follows the
	// one-element hasher vector length prefix after the "Account"
	// entry name and modifier.
	idx := bytes.Index(data, []byte{0x1c, 'A', 'c', 'c', 'o', 'u', 'n', 't', 1, 1, 4, 2})
	if idx < 0 {
		t.Fatal("hasher byte pattern not found")
	}
	data[idx+11] = 200
	if _, err := v14.Decode(scale.NewReader(data)); err == nil {
		t.Error("expected unknown hasher error")
	}
}

func TestWireLayout(t *testing.T) {
	tree := &v14.Metadata{
		Types: registry.NewBuilder().Finish(),
		Extrinsic: v14.Extrinsic{
			Version: 4,
			SignedExtensions: []v14.SignedExtension{
				{Identifier: "CheckNonce"},
			},
		},
	}
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0,    // registry
		0,    // pallets
		0,    // extrinsic type
		4,    // extrinsic version
		0x04, // one signed extension
		0x28, 'C', 'h', 'e', 'c', 'k', 'N', 'o', 'n', 'c', 'e',
		0, 0, // extension type, additional signed
		0, // runtime type
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("encoded = %x, want %x", w.Bytes(), want)
	}
	decoded, err := v14.Decode(scale.NewReader(want))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Extrinsic.Version != 4 || decoded.Extrinsic.SignedExtensions[0].Identifier != "CheckNonce" {
		t.Errorf("extrinsic = %+v", decoded.Extrinsic)
	}
}

func FuzzDecode(f *testing.F) {
	w := scale.NewWriter()
	if err := sampleTree().Encode(w); err != nil {
		f.Fatal(err)
	}
	f.Add(w.Bytes())
	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := v14.Decode(scale.NewReader(data))
		if err != nil {
			return
		}
		w1 := scale.NewWriter()
		if err := m.Encode(w1); err != nil {
			t.Fatalf("re-encode of decoded tree failed: %v", err)
		}
	})
}
