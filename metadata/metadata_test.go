package metadata_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/chain-metadata/errors"
	"github.com/wippyai/chain-metadata/metadata"
	v13 "github.com/wippyai/chain-metadata/metadata/v13"
	v14 "github.com/wippyai/chain-metadata/metadata/v14"
	"github.com/wippyai/chain-metadata/registry"
)

func isKind(err error, kind errors.Kind) bool {
	var e *errors.Error
	return stderrors.As(err, &e) && e.Kind == kind
}

func sampleV14() *metadata.Metadata {
	b := registry.NewBuilder()
	u128 := b.Register(registry.Type{Def: registry.PrimitiveDef(registry.PrimU128)})
	runtime := b.Register(registry.Type{
		Path: []string{"kitchensink_runtime", "Runtime"},
		Def:  registry.CompositeDef(),
	})
	return &metadata.Metadata{
		Version: metadata.V14,
		V14: &v14.Metadata{
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
							},
						},
					},
					Index: 5,
				},
			},
			Extrinsic: v14.Extrinsic{Type: runtime, Version: 4},
			Type:      runtime,
		},
	}
}

func TestMagicBytes(t *testing.T) {
	data, err := sampleV14().Encode()
	if err != nil {
		t.Fatal(err)
	}
	// Little-endian u32 0x6174656d reads "meta" in ASCII.
	if !bytes.Equal(data[:4], []byte{'m', 'e', 't', 'a'}) {
		t.Errorf("magic = %x", data[:4])
	}
	if data[4] != metadata.V14 {
		t.Errorf("discriminant = %d", data[4])
	}
}

func TestRoundTripModern(t *testing.T) {
	data, err := sampleV14().Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := metadata.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Version != metadata.V14 || decoded.V14 == nil {
		t.Fatalf("decoded = %+v", decoded)
	}
	again, err := decoded.Encode()
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("re-encoded payload differs")
	}
}

func TestRoundTripLegacy(t *testing.T) {
	m := &metadata.Metadata{
		Version: metadata.V13,
		V13: &v13.Metadata{
			Modules:   []v13.Module{{Name: "System", Index: 0}},
			Extrinsic: v13.Extrinsic{Version: 4},
		},
	}
	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := metadata.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.V13 == nil || decoded.V13.Modules[0].Name != "System" {
		t.Errorf("decoded = %+v", decoded.V13)
	}
}

func TestBadMagicBeforeAnyParsing(t *testing.T) {
	data, err := sampleV14().Encode()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		flipped := bytes.Clone(data)
		flipped[i] ^= 0xFF
		_, err := metadata.Decode(flipped)
		if !isKind(err, errors.KindBadMagic) {
			t.Errorf("byte %d flip: got %v, want bad_magic", i, err)
		}
	}
}

func TestUnsupportedVersions(t *testing.T) {
	base, err := sampleV14().Encode()
	if err != nil {
		t.Fatal(err)
	}
	for _, version := range []uint8{0, 1, 7, 17, 42, 255} {
		data := bytes.Clone(base)
		data[4] = version
		_, err := metadata.Decode(data)
		if !isKind(err, errors.KindUnsupportedVersion) {
			t.Errorf("version %d: got %v, want unsupported_version", version, err)
		}
		// Distinguishable from corrupt data.
		if isKind(err, errors.KindMalformed) {
			t.Errorf("version %d: unsupported_version conflated with malformed", version)
		}
	}
}

func TestVersionOfReadsHeaderOnly(t *testing.T) {
	data, err := sampleV14().Encode()
	if err != nil {
		t.Fatal(err)
	}
	// Truncate to header plus one byte: the payload is garbage but
	// VersionOf must not care.
	version, err := metadata.VersionOf(data[:6])
	if err != nil {
		t.Fatalf("VersionOf: %v", err)
	}
	if version != metadata.V14 {
		t.Errorf("version = %d", version)
	}

	if _, err := metadata.VersionOf([]byte{'m', 'e'}); !isKind(err, errors.KindMalformed) {
		t.Errorf("truncated header: %v", err)
	}
}

func TestTruncatedPayloadIsMalformed(t *testing.T) {
	data, err := sampleV14().Encode()
	if err != nil {
		t.Fatal(err)
	}
	_, err = metadata.Decode(data[:len(data)-3])
	if !isKind(err, errors.KindMalformed) {
		t.Errorf("got %v, want malformed", err)
	}
}

func TestTrailingBytesRejected(t *testing.T) {
	data, err := sampleV14().Encode()
	if err != nil {
		t.Fatal(err)
	}
	_, err = metadata.Decode(append(data, 0xFF))
	if !isKind(err, errors.KindMalformed) {
		t.Errorf("got %v, want malformed", err)
	}
}

func TestDecodeValidatesClosedWorld(t *testing.T) {
	m := sampleV14()
	m.V14.Type = 999
	data, err := m.Encode()
	if err != nil {
		t.Fatal(err)
	}
	_, err = metadata.Decode(data)
	if !isKind(err, errors.KindDanglingType) {
		t.Errorf("got %v, want dangling_type", err)
	}
}

func TestEncodeRequiresPopulatedTree(t *testing.T) {
	m := &metadata.Metadata{Version: metadata.V14}
	if _, err := m.Encode(); err == nil {
		t.Error("expected error for empty version tree")
	}
}

func TestOpaqueRoundTrip(t *testing.T) {
	data, err := sampleV14().Encode()
	if err != nil {
		t.Fatal(err)
	}
	wrapped := metadata.EncodeOpaque(data)
	inner, err := metadata.DecodeOpaque(wrapped)
	if err != nil {
		t.Fatalf("DecodeOpaque: %v", err)
	}
	if !bytes.Equal(inner, data) {
		t.Error("opaque wrapper corrupted payload")
	}
	if _, err := metadata.Decode(inner); err != nil {
		t.Errorf("inner payload does not decode: %v", err)
	}
}

func FuzzDecode(f *testing.F) {
	data, err := sampleV14().Encode()
	if err != nil {
		f.Fatal(err)
	}
	f.Add(data)
	f.Add([]byte("meta"))
	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := metadata.Decode(data)
		if err != nil {
			return
		}
		again, err := m.Encode()
		if err != nil {
			t.Fatalf("re-encode of decoded payload failed: %v", err)
		}
		if _, err := metadata.Decode(again); err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
	})
}
