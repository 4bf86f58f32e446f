package registry_test

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/chain-metadata/errors"
	"github.com/wippyai/chain-metadata/registry"
	"github.com/wippyai/chain-metadata/scale"
)

func strPtr(s string) *string { return &s }
func idPtr(id registry.ID) *registry.ID { return &id }

func buildSample() *registry.Registry {
	b := registry.NewBuilder()
	u128 := b.Register(registry.Type{
		Def: registry.PrimitiveDef(registry.PrimU128),
	})
	b.Register(registry.Type{
		Path: []string{"sp_core", "crypto", "AccountId32"},
		Def: registry.CompositeDef(registry.Field{
			Type:     registry.ID(2),
			TypeName: strPtr("[u8; 32]"),
		}),
	})
	b.Register(registry.Type{
		Def: registry.ArrayDef(32, registry.ID(3)),
	})
	b.Register(registry.Type{
		Def: registry.PrimitiveDef(registry.PrimU8),
	})
	b.Register(registry.Type{
		Path: []string{"pallet_balances", "pallet", "Call"},
		Params: []registry.TypeParam{
			{Name: "T", Type: nil},
		},
		Def: registry.VariantDef(registry.VariantCase{
			Name:  "transfer",
			Index: 0,
			Fields: []registry.Field{
				{Name: strPtr("dest"), Type: registry.ID(1)},
				{Name: strPtr("value"), Type: u128},
			},
			Docs: []string{"Transfer some balance to another account."},
		}),
	})
	return b.Finish()
}

func TestBuilderAssignsSequentialIDs(t *testing.T) {
	b := registry.NewBuilder()
	first := b.Register(registry.Type{Def: registry.PrimitiveDef(registry.PrimBool)})
	second := b.Register(registry.Type{Def: registry.PrimitiveDef(registry.PrimBool)})
	if first != 0 || second != 1 {
		t.Errorf("ids = %d, %d; want 0, 1", first, second)
	}
}

func TestBuilderDoesNotDeduplicate(t *testing.T) {
	// Structurally identical descriptors get distinct IDs on purpose:
	// identical types in different contexts may diverge later.
	b := registry.NewBuilder()
	ty := registry.Type{Def: registry.PrimitiveDef(registry.PrimU32)}
	if b.Register(ty) == b.Register(ty) {
		t.Error("expected distinct ids for repeated registration")
	}
	if b.Len() != 2 {
		t.Errorf("len = %d, want 2", b.Len())
	}
}

func TestResolveTotal(t *testing.T) {
	reg := buildSample()
	ty, err := reg.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve(0): %v", err)
	}
	if ty.Def.Kind != registry.DefPrimitive || *ty.Def.Primitive != registry.PrimU128 {
		t.Errorf("unexpected type at id 0: %+v", ty.Def)
	}

	if _, err := reg.Resolve(999); err == nil {
		t.Fatal("expected error for absent id")
	} else {
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindDanglingType {
			t.Errorf("expected dangling_type kind, got %v", err)
		}
	}
}

func TestValidateClosedWorld(t *testing.T) {
	if err := buildSample().Validate(); err != nil {
		t.Fatalf("valid registry rejected: %v", err)
	}

	b := registry.NewBuilder()
	b.Register(registry.Type{Def: registry.SequenceDef(registry.ID(41))})
	if err := b.Finish().Validate(); err == nil {
		t.Fatal("expected dangling reference error")
	} else {
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindDanglingType {
			t.Errorf("expected dangling_type kind, got %v", err)
		}
	}
}

func TestValidateParamBinding(t *testing.T) {
	b := registry.NewBuilder()
	b.Register(registry.Type{
		Params: []registry.TypeParam{{Name: "T", Type: idPtr(7)}},
		Def:    registry.CompositeDef(),
	})
	if err := b.Finish().Validate(); err == nil {
		t.Error("expected dangling param binding error")
	}
}

func TestCyclicRegistryValidates(t *testing.T) {
	// A recursive list type: Node { next: Option-like self reference }.
	b := registry.NewBuilder()
	node := b.Register(registry.Type{
		Path: []string{"demo", "Node"},
		Def: registry.VariantDef(
			registry.VariantCase{Name: "Nil", Index: 0},
			registry.VariantCase{
				Name:   "Cons",
				Index:  1,
				Fields: []registry.Field{{Type: registry.ID(0)}},
			},
		),
	})
	reg := b.Finish()
	if err := reg.Validate(); err != nil {
		t.Fatalf("cyclic registry rejected: %v", err)
	}
	// Resolution stays a flat lookup, no expansion.
	if _, err := reg.Resolve(node); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
}

func TestSharedPathsPermitted(t *testing.T) {
	// Generic instantiations share one display path; only IDs matter.
	b := registry.NewBuilder()
	path := []string{"demo", "Wrapper"}
	a := b.Register(registry.Type{Path: path, Def: registry.PrimitiveDef(registry.PrimU32)})
	c := b.Register(registry.Type{Path: path, Def: registry.PrimitiveDef(registry.PrimU64)})
	reg := b.Finish()
	if err := reg.Validate(); err != nil {
		t.Fatalf("shared paths rejected: %v", err)
	}
	if a == c {
		t.Error("expected distinct ids")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	reg := buildSample()
	w := scale.NewWriter()
	reg.Encode(w)

	decoded, err := registry.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Len() != reg.Len() {
		t.Fatalf("len = %d, want %d", decoded.Len(), reg.Len())
	}

	// Byte-for-byte re-encode equality is the round-trip contract.
	w2 := scale.NewWriter()
	decoded.Encode(w2)
	if !bytes.Equal(w.Bytes(), w2.Bytes()) {
		t.Error("re-encoded registry differs from original bytes")
	}
}

func TestDecodeEmptyRegistry(t *testing.T) {
	w := scale.NewWriter()
	registry.NewBuilder().Finish().Encode(w)
	if len(w.Bytes()) != 1 {
		t.Fatalf("empty registry should be one length byte, got %x", w.Bytes())
	}
	decoded, err := registry.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Len() != 0 {
		t.Errorf("len = %d", decoded.Len())
	}
}

func TestDecodeRejectsUnknownDefTag(t *testing.T) {
	w := scale.NewWriter()
	w.WriteLen(1)
	w.WriteCompact(0)    // id
	w.WriteStrings(nil)  // path
	w.WriteLen(0)        // params
	w.Byte(0xAA)         // bogus def tag
	_, err := registry.Decode(scale.NewReader(w.Bytes()))
	if err == nil || !strings.Contains(err.Error(), "unknown type def tag") {
		t.Errorf("expected unknown tag error, got %v", err)
	}
}

func TestDecodeRejectsDuplicateIDs(t *testing.T) {
	w := scale.NewWriter()
	w.WriteLen(2)
	for i := 0; i < 2; i++ {
		w.WriteCompact(5)
		w.WriteStrings(nil)
		w.WriteLen(0)
		w.Byte(5) // primitive
		w.WriteU8(0)
		w.WriteStrings(nil)
	}
	if _, err := registry.Decode(scale.NewReader(w.Bytes())); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestMarshalJSON(t *testing.T) {
	reg := buildSample()
	data, err := reg.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	for _, want := range []string{`"primitive":"u128"`, `"pallet_balances"`, `"transfer"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON missing %s", want)
		}
	}
}

func FuzzDecode(f *testing.F) {
	w := scale.NewWriter()
	buildSample().Encode(w)
	f.Add(w.Bytes())
	f.Add([]byte{0x00})
	f.Fuzz(func(t *testing.T, data []byte) {
		reg, err := registry.Decode(scale.NewReader(data))
		if err != nil {
			return
		}
		// Anything that decodes must re-encode deterministically.
		w1 := scale.NewWriter()
		reg.Encode(w1)
		again, err := registry.Decode(scale.NewReader(w1.Bytes()))
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		w2 := scale.NewWriter()
		again.Encode(w2)
		if !bytes.Equal(w1.Bytes(), w2.Bytes()) {
			t.Error("encode/decode not a fixpoint")
		}
	})
}
