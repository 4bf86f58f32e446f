package v13_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	v13 "github.com/wippyai/chain-metadata/metadata/v13"
	"github.com/wippyai/chain-metadata/scale"
)

func sampleTree() *v13.Metadata {
	calls := []v13.Function{
		{
			Name: "transfer",
			Args: []v13.Arg{
				{Name: "dest", Type: "T::AccountId"},
				{Name: "value", Type: "Compact<T::Balance>"},
			},
			Docs: []string{"Transfer some balance to another account."},
		},
	}
	events := []v13.Event{
		{Name: "Transfer", Args: []string{"AccountId", "AccountId", "Balance"}},
	}
	return &v13.Metadata{
		Modules: []v13.Module{
			{
				Name: "Balances",
				Storage: &v13.Storage{
					Prefix: "Balances",
					Entries: []v13.Entry{
						{
							Name:       "TotalIssuance",
							Visibility: v13.Public,
							Modifier:   v13.Default,
							Type:       v13.EntryType{Plain: &v13.Plain{Value: "T::Balance"}},
							Default:    []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
						},
						{
							Name:       "Account",
							Visibility: v13.Public,
							Modifier:   v13.Default,
							Type: v13.EntryType{Map: &v13.Map{
								Keys:  []v13.KeyHasher{{Hasher: v13.Blake2_128Concat, Key: "T::AccountId"}},
								Value: "AccountData<T::Balance>",
							}},
						},
						{
							Name:       "Approvals",
							Visibility: v13.Private,
							Modifier:   v13.Optional,
							Type: v13.EntryType{Map: &v13.Map{
								Keys: []v13.KeyHasher{
									{Hasher: v13.Blake2_128Concat, Key: "T::AccountId"},
									{Hasher: v13.Twox64Concat, Key: "T::AccountId"},
								},
								Value: "T::Balance",
							}},
						},
						{
							Name:       "Ledger",
							Visibility: v13.Public,
							Modifier:   v13.Fallback,
							Type: v13.EntryType{Map: &v13.Map{
								Keys: []v13.KeyHasher{
									{Hasher: v13.Twox64Concat, Key: "EraIndex"},
									{Hasher: v13.Blake2_128Concat, Key: "T::AccountId"},
									{Hasher: v13.Identity, Key: "u32"},
								},
								Value: "Exposure",
							}},
							Default: []byte{0},
						},
					},
				},
				Calls:  &calls,
				Events: &events,
				Constants: []v13.Constant{
					{Name: "ExistentialDeposit", Type: "T::Balance", Value: []byte{1, 0}},
				},
				Errors: []v13.Error{{Name: "InsufficientBalance"}},
				Index:  5,
			},
			{Name: "Timestamp", Index: 3},
		},
		Extrinsic: v13.Extrinsic{
			Version:          4,
			SignedExtensions: []string{"CheckNonce", "CheckWeight"},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := v13.Decode(scale.NewReader(w.Bytes()))
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

func TestHasherOrderPreserved(t *testing.T) {
	// Hasher order feeds key derivation, so decode must never reorder.
	tree := sampleTree()
	w := scale.NewWriter()
	if err := tree.Encode(w); err != nil {
		t.Fatal(err)
	}
	decoded, err := v13.Decode(scale.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	got := decoded.Modules[0].Storage.Entries[3].Type.Map.Keys
	want := tree.Modules[0].Storage.Entries[3].Type.Map.Keys
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %+v, want %+v", got, want)
	}
}

func TestStorageTagFromArity(t *testing.T) {
	encodeEntry := func(keys []v13.KeyHasher) byte {
		m := &v13.Metadata{Modules: []v13.Module{{
			Name: "M",
			Storage: &v13.Storage{Prefix: "M", Entries: []v13.Entry{{
				Name: "E",
				Type: v13.EntryType{Map: &v13.Map{Keys: keys, Value: "u32"}},
			}}},
		}}}
		w := scale.NewWriter()
		if err := m.Encode(w); err != nil {
			t.Fatal(err)
		}
		// modules len, name, storage option, prefix, entries len,
		// entry name, visibility, modifier, then the tag.
		data := w.Bytes()
		return data[1+2+1+2+1+2+1+1]
	}

	kh := v13.KeyHasher{Hasher: v13.Identity, Key: "u8"}
	if tag := encodeEntry([]v13.KeyHasher{kh}); tag != v13.TagMap {
		t.Errorf("one key: tag = %d, want %d", tag, v13.TagMap)
	}
	if tag := encodeEntry([]v13.KeyHasher{kh, kh}); tag != v13.TagDoubleMap {
		t.Errorf("two keys: tag = %d, want %d", tag, v13.TagDoubleMap)
	}
	if tag := encodeEntry([]v13.KeyHasher{kh, kh, kh}); tag != v13.TagNMap {
		t.Errorf("three keys: tag = %d, want %d", tag, v13.TagNMap)
	}
}

func TestEncodeRejectsEmptyMap(t *testing.T) {
	m := &v13.Metadata{Modules: []v13.Module{{
		Name: "M",
		Storage: &v13.Storage{Prefix: "M", Entries: []v13.Entry{{
			Name: "E",
			Type: v13.EntryType{Map: &v13.Map{Value: "u32"}},
		}}},
	}}}
	if err := m.Encode(scale.NewWriter()); err == nil {
		t.Error("expected error for map with no keys")
	}
}

func TestDecodeRejectsUnknownHasher(t *testing.T) {
	w := scale.NewWriter()
	w.WriteLen(1)
	w.WriteString("M")
	w.WriteOption(true)
	w.WriteString("M")
	w.WriteLen(1)
	w.WriteString("E")
	w.WriteU8(0) // visibility
	w.WriteU8(1) // modifier
	w.Byte(v13.TagMap)
	w.WriteU8(200) // bogus hasher
	_, err := v13.Decode(scale.NewReader(w.Bytes()))
	if err == nil || !strings.Contains(err.Error(), "unknown hasher") {
		t.Errorf("expected unknown hasher error, got %v", err)
	}
}

func TestDecodeRejectsMismatchedNMapLengths(t *testing.T) {
	w := scale.NewWriter()
	w.WriteLen(1)
	w.WriteString("M")
	w.WriteOption(true)
	w.WriteString("M")
	w.WriteLen(1)
	w.WriteString("E")
	w.WriteU8(0)
	w.WriteU8(1)
	w.Byte(v13.TagNMap)
	w.WriteStrings([]string{"u8", "u16"})
	w.WriteLen(1)
	w.WriteU8(uint8(v13.Identity))
	_, err := v13.Decode(scale.NewReader(w.Bytes()))
	if err == nil || !strings.Contains(err.Error(), "hashers for") {
		t.Errorf("expected length mismatch error, got %v", err)
	}
}
