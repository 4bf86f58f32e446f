package v16_test

import (
	"bytes"
	"strings"
	"testing"

	v16 "github.com/wippyai/chain-metadata/metadata/v16"
	"github.com/wippyai/chain-metadata/registry"
	"github.com/wippyai/chain-metadata/scale"
)

func strPtr(s string) *string { return &s }

func sampleTree() *v16.Metadata {
	b := registry.NewBuilder()
	u32 := b.Register(registry.Type{Def: registry.PrimitiveDef(registry.PrimU32)})
	u128 := b.Register(registry.Type{Def: registry.PrimitiveDef(registry.PrimU128)})
	account := b.Register(registry.Type{
		Path: []string{"sp_core", "crypto", "AccountId32"},
		Def:  registry.CompositeDef(registry.Field{Type: u32}),
	})
	call := b.Register(registry.Type{
		Path: []string{"kitchensink_runtime", "RuntimeCall"},
		Def:  registry.VariantDef(),
	})
	event := b.Register(registry.Type{
		Path: []string{"kitchensink_runtime", "RuntimeEvent"},
		Def:  registry.VariantDef(),
	})
	errEnum := b.Register(registry.Type{
		Path: []string{"kitchensink_runtime", "RuntimeError"},
		Def:  registry.VariantDef(),
	})

	var viewID [32]byte
	for i := range viewID {
		viewID[i] = byte(i)
	}

	return &v16.Metadata{
		Types: b.Finish(),
		Pallets: []v16.Pallet{
			{
				Name: "Balances",
				Storage: &v16.Storage{
					Prefix: "Balances",
					Entries: []v16.Entry{
						{
							Name:     "TotalIssuance",
							Modifier: v16.Default,
							Type:     v16.EntryType{Plain: &v16.Plain{Value: u128}},
						},
						{
							Name:     "Account",
							Modifier: v16.Default,
							Type: v16.EntryType{Map: &v16.Map{
								Hashers: []v16.Hasher{v16.Blake2_128Concat},
								Key:     account,
								Value:   u128,
							}},
							Deprecation: v16.DeprecationStatus{
								Kind:  v16.StatusDeprecated,
								Note:  "use the system account store",
								Since: strPtr("v2"),
							},
						},
					},
				},
				Calls: &v16.Calls{
					Type: call,
					Deprecation: v16.DeprecationInfo{
						Kind: v16.InfoVariantsDeprecated,
						Variants: []v16.VariantDeprecation{
							{Index: 1, Status: v16.DeprecationStatus{Kind: v16.StatusDeprecatedWithoutNote}},
							{Index: 3, Status: v16.DeprecationStatus{Kind: v16.StatusDeprecated, Note: "gone"}},
						},
					},
				},
				AssociatedTypes: []v16.AssociatedType{
					{Name: "Balance", Type: u128, Docs: []string{"The balance type."}},
				},
				ViewFunctions: []v16.ViewFunction{
					{
						Name:   "total_issuance",
						ID:     viewID,
						Inputs: []v16.Param{{Name: "include_reserved", Type: u32}},
						Output: u128,
					},
				},
				Index: 5,
				Docs:  []string{"The Balances pallet."},
			},
		},
		Extrinsic: v16.Extrinsic{
			Versions:      []uint8{4, 5},
			AddressType:   account,
			SignatureType: u32,
			ExtensionsByVersion: []v16.VersionExtensions{
				{Version: 4, Indices: []uint32{0, 1}},
				{Version: 5, Indices: []uint32{1}},
			},
			Extensions: []v16.Extension{
				{Identifier: "CheckNonce", Type: u32, Implicit: u32},
				{Identifier: "CheckMortality", Type: u32, Implicit: u32},
			},
		},
		APIs: []v16.Api{
			{
				Name: "Core",
				Methods: []v16.Method{
					{Name: "version", Output: u32},
				},
				Version: 5,
			},
		},
		OuterEnums: v16.OuterEnums{CallType: call, EventType: event, ErrorType: errEnum},
		Custom: v16.Custom{Values: []v16.CustomValue{
			{Name: "spec_label", Type: u32, Value: []byte{7}},
		}},
	}
}

func TestRoundTrip(t *testing.T) {
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := v16.Decode(scale.NewReader(w.Bytes()))
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

func TestDeprecationSurvivesRoundTrip(t *testing.T) {
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatal(err)
	}
	decoded, err := v16.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	entry := decoded.Pallets[0].Storage.Entries[1]
	if entry.Deprecation.Kind != v16.StatusDeprecated ||
		entry.Deprecation.Note != "use the system account store" ||
		entry.Deprecation.Since == nil || *entry.Deprecation.Since != "v2" {
		t.Errorf("entry deprecation = %+v", entry.Deprecation)
	}

	calls := decoded.Pallets[0].Calls
	if calls.Deprecation.Kind != v16.InfoVariantsDeprecated || len(calls.Deprecation.Variants) != 2 {
		t.Fatalf("calls deprecation = %+v", calls.Deprecation)
	}
	if calls.Deprecation.Variants[1].Index != 3 || calls.Deprecation.Variants[1].Status.Note != "gone" {
		t.Errorf("variant deprecation = %+v", calls.Deprecation.Variants[1])
	}
}

func TestViewFunctionIDPreserved(t *testing.T) {
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatal(err)
	}
	decoded, err := v16.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	vf := decoded.Pallets[0].ViewFunctions[0]
	if vf.ID != tree.Pallets[0].ViewFunctions[0].ID {
		t.Errorf("view function id = %x", vf.ID)
	}
	if vf.Name != "total_issuance" || len(vf.Inputs) != 1 {
		t.Errorf("view function = %+v", vf)
	}
}

func TestValidateCatchesBadExtensionIndex(t *testing.T) {
	tree := sampleTree()
	tree.Extrinsic.ExtensionsByVersion[0].Indices = []uint32{9}
	err := tree.Validate()
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestExtensionVersionsMustAscend(t *testing.T) {
	tree := sampleTree()
	tree.Extrinsic.ExtensionsByVersion[0].Version = 9
	err := tree.Encode(scale.NewWriter())
	if err == nil || !strings.Contains(err.Error(), "ascending") {
		t.Errorf("expected sort order error, got %v", err)
	}
}

func TestMinimalTreeEncoding(t *testing.T) {
	tree := &v16.Metadata{Types: registry.NewBuilder().Finish()}
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatal(err)
	}
	// Empty registry, no pallets, empty extrinsic collections, three
	// zero-id outer enums, no custom values: every collection is one
	// zero byte, every id one compact zero.
	want := []byte{
		0,       // registry
		0,       // pallets
		0,       // extrinsic versions
		0, 0,    // address, signature types
		0, 0,    // extensions by version, extensions
		0,       // apis
		0, 0, 0, // outer enums
		0, // custom
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("minimal tree = %x, want %x", w.Bytes(), want)
	}
	decoded, err := v16.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded.Pallets) != 0 || len(decoded.APIs) != 0 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestApiWireLayout(t *testing.T) {
	tree := &v16.Metadata{
		Types: registry.NewBuilder().Finish(),
		APIs: []v16.Api{{
			Name:        "Core",
			Deprecation: v16.DeprecationStatus{Kind: v16.StatusDeprecated, Note: "v2"},
			Version:     1,
		}},
	}
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatal(err)
	}
	// The deprecation status sits between the docs and the compact
	// version, matching the reference descriptor layout.
	want := []byte{
		0,             // registry
		0,             // pallets
		0, 0, 0, 0, 0, // extrinsic: versions, address, signature, by-version, pool
		0x04, // one api
		0x10, 'C', 'o', 'r', 'e',
		0,                    // methods
		0,                    // docs
		2, 0x08, 'v', '2', 0, // deprecation: tag, note, no since
		0x04,    // version 1
		0, 0, 0, // outer enums
		0, // custom
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("encoded = %x, want %x", w.Bytes(), want)
	}

	decoded, err := v16.Decode(scale.NewReader(want))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	a := decoded.APIs[0]
	if a.Version != 1 || a.Deprecation.Kind != v16.StatusDeprecated || a.Deprecation.Note != "v2" {
		t.Errorf("api = %+v", a)
	}
}

func FuzzDecode(f *testing.F) {
	w := scale.NewWriter()
	if err := sampleTree().Encode(w); err != nil {
		f.Fatal(err)
	}
	f.Add(w.Bytes())
	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := v16.Decode(scale.NewReader(data))
		if err != nil {
			return
		}
		w1 := scale.NewWriter()
		if err := m.Encode(w1); err != nil {
			t.Fatalf("re-encode of decoded tree failed: %v", err)
		}
	})
}
