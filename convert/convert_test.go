package convert_test

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/chain-metadata/convert"
	"github.com/wippyai/chain-metadata/errors"
	"github.com/wippyai/chain-metadata/metadata"
	v14 "github.com/wippyai/chain-metadata/metadata/v14"
	v9 "github.com/wippyai/chain-metadata/metadata/v9"
	"github.com/wippyai/chain-metadata/registry"
)

func sampleV9() *metadata.Metadata {
	calls := []v9.Function{
		{Name: "transfer", Args: []v9.Arg{{Name: "dest", Type: "T::AccountId"}}},
	}
	return &metadata.Metadata{
		Version: metadata.V9,
		V9: &v9.Metadata{
			Modules: []v9.Module{
				{
					Name: "Balances",
					Storage: &v9.Storage{
						Prefix: "Balances",
						Entries: []v9.Entry{
							{
								Name:       "TotalIssuance",
								Visibility: v9.Public,
								Modifier:   v9.Default,
								Type:       v9.EntryType{Plain: &v9.Plain{Value: "T::Balance"}},
							},
							{
								Name:       "FreeBalance",
								Visibility: v9.Public,
								Modifier:   v9.Fallback,
								Type: v9.EntryType{Map: &v9.Map{
									Keys:  []v9.KeyHasher{{Hasher: v9.Twox64Concat, Key: "T::AccountId"}},
									Value: "T::Balance",
								}},
								Default: []byte{1},
							},
						},
					},
					Calls: &calls,
				},
				{Name: "Timestamp"},
			},
		},
	}
}

func TestUpgradeChainToV13(t *testing.T) {
	src := sampleV9()
	out, err := convert.Upgrade(src, metadata.V13)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if out.Version != metadata.V13 || out.V13 == nil {
		t.Fatalf("out = %+v", out)
	}

	m := out.V13
	if len(m.Modules) != 2 || m.Modules[0].Name != "Balances" {
		t.Fatalf("modules = %+v", m.Modules)
	}
	// V11->V12 assigns positional indices.
	if m.Modules[0].Index != 0 || m.Modules[1].Index != 1 {
		t.Errorf("indices = %d, %d", m.Modules[0].Index, m.Modules[1].Index)
	}
	// V10->V11 defaults the extrinsic to unspecified.
	if m.Extrinsic.Version != 0 || len(m.Extrinsic.SignedExtensions) != 0 {
		t.Errorf("extrinsic = %+v", m.Extrinsic)
	}
}

func TestHasherRenumberingAcrossV10(t *testing.T) {
	out, err := convert.Upgrade(sampleV9(), metadata.V10)
	if err != nil {
		t.Fatal(err)
	}
	// Twox64Concat is 4 in the five-hasher set and 5 from V10 on.
	h := out.V10.Modules[0].Storage.Entries[1].Type.Map.Keys[0].Hasher
	if uint8(h) != 5 {
		t.Errorf("hasher = %d, want 5", h)
	}
}

func TestFieldsPreservedStepwise(t *testing.T) {
	out, err := convert.Upgrade(sampleV9(), metadata.V13)
	if err != nil {
		t.Fatal(err)
	}
	entry := out.V13.Modules[0].Storage.Entries[1]
	if entry.Name != "FreeBalance" || len(entry.Default) != 1 {
		t.Errorf("entry = %+v", entry)
	}
	if uint8(entry.Modifier) != 2 {
		t.Errorf("modifier = %d, want fallback", entry.Modifier)
	}
	if uint8(entry.Visibility) != 0 {
		t.Errorf("visibility = %d, want public", entry.Visibility)
	}
}

func TestSameVersionIsIdentity(t *testing.T) {
	src := sampleV9()
	out, err := convert.Upgrade(src, metadata.V9)
	if err != nil {
		t.Fatal(err)
	}
	if out != src {
		t.Error("same-version upgrade should return the input")
	}
}

func TestDowngradeFails(t *testing.T) {
	_, err := convert.Upgrade(sampleV9(), metadata.V8)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindUnsupportedDowngrade {
		t.Errorf("got %v, want unsupported_downgrade", err)
	}
}

func TestModernDowngradeFails(t *testing.T) {
	m := &metadata.Metadata{
		Version: metadata.V14,
		V14:     &v14.Metadata{Types: registry.NewBuilder().Finish()},
	}
	_, err := convert.Upgrade(m, metadata.V13)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindUnsupportedDowngrade {
		t.Errorf("got %v, want unsupported_downgrade", err)
	}
}

func TestNoUpgradeIntoModern(t *testing.T) {
	_, err := convert.Upgrade(sampleV9(), metadata.V14)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidData {
		t.Errorf("got %v, want invalid_data", err)
	}
}

func TestNoUpgradeBetweenModern(t *testing.T) {
	m := &metadata.Metadata{
		Version: metadata.V14,
		V14:     &v14.Metadata{Types: registry.NewBuilder().Finish()},
	}
	_, err := convert.Upgrade(m, metadata.V15)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidData {
		t.Errorf("got %v, want invalid_data", err)
	}
}

func TestSourceNotMutated(t *testing.T) {
	src := sampleV9()
	if _, err := convert.Upgrade(src, metadata.V13); err != nil {
		t.Fatal(err)
	}
	if src.Version != metadata.V9 || src.V9 == nil || src.V13 != nil {
		t.Error("source mutated by upgrade")
	}
	if uint8(src.V9.Modules[0].Storage.Entries[1].Type.Map.Keys[0].Hasher) != 4 {
		t.Error("source hasher renumbered in place")
	}
}
