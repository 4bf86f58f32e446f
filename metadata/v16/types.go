// Package v16 implements the version 16 metadata schema tree.
//
// V16 extends V15 with pallet associated types, view functions,
// deprecation tracking on most items, versioned runtime APIs and a
// multi-version extrinsic descriptor. The top-level runtime type of
// V14/V15 is gone; the outer enums cover its role.
package v16

import "github.com/wippyai/chain-metadata/registry"

// Metadata is the decoded V16 schema tree.
type Metadata struct {
	// Types is the embedded type registry all references resolve in.
	Types *registry.Registry
	// Pallets in declaration order.
	Pallets []Pallet
	// Extrinsic describes the outer transaction envelope across all
	// supported extrinsic versions.
	Extrinsic Extrinsic
	// APIs lists the runtime API traits the runtime implements.
	APIs []Api
	// OuterEnums references the runtime-wide call, event and error
	// enums.
	OuterEnums OuterEnums
	// Custom carries producer-defined extension values.
	Custom Custom
}

// Pallet describes one runtime pallet's surface.
type Pallet struct {
	Name      string
	Storage   *Storage
	Calls     *Calls
	Event     *Event
	Constants []Constant
	Error     *Error
	// AssociatedTypes names the pallet's resolved associated types.
	AssociatedTypes []AssociatedType
	// ViewFunctions are the pallet's callable read-only queries.
	ViewFunctions []ViewFunction
	// Index is the pallet's dispatch index, preserved exactly as
	// encoded and not necessarily positional.
	Index       uint8
	Docs        []string
	Deprecation DeprecationStatus
}

// Calls points at the variant type enumerating a pallet's dispatchable
// calls, with per-variant deprecation.
type Calls struct {
	Type        registry.ID
	Deprecation DeprecationInfo
}

// Event points at the variant type enumerating a pallet's events.
type Event struct {
	Type        registry.ID
	Deprecation DeprecationInfo
}

// Error points at the variant type enumerating a pallet's errors.
type Error struct {
	Type        registry.ID
	Deprecation DeprecationInfo
}

// AssociatedType is one named type binding of a pallet's config.
type AssociatedType struct {
	Name string
	Type registry.ID
	Docs []string
}

// ViewFunction is a read-only runtime query addressable by a stable
// 32-byte identifier.
type ViewFunction struct {
	Name string
	// ID is the function's query hash, stable across runtimes.
	ID          [32]byte
	Inputs      []Param
	Output      registry.ID
	Docs        []string
	Deprecation DeprecationStatus
}

// Storage describes a pallet's storage namespace.
type Storage struct {
	Prefix  string
	Entries []Entry
}

// Modifier indicates what fetching a missing storage key yields.
type Modifier uint8

// Modifier values.
const (
	Optional Modifier = 0
	Default  Modifier = 1
)

// Entry is one storage entry.
type Entry struct {
	Name     string
	Modifier Modifier
	Type     EntryType
	// Default is the encoded default value blob.
	Default     []byte
	Docs        []string
	Deprecation DeprecationStatus
}

// Storage entry type wire tags.
const (
	TagPlain byte = 0
	TagMap   byte = 1
)

// EntryType is the storage entry shape: exactly one of Plain or Map is
// set.
type EntryType struct {
	Plain *Plain
	Map   *Map
}

// Plain is a single stored value.
type Plain struct {
	Value registry.ID
}

// Map is keyed storage. Key is one registry type, a tuple for higher
// arities, with one hasher per key component in derivation order.
type Map struct {
	Hashers []Hasher
	Key     registry.ID
	Value   registry.ID
}

// Hasher identifies the storage key hashing algorithm.
type Hasher uint8

// Hashers supported by V16.
const (
	Blake2_128       Hasher = 0
	Blake2_256       Hasher = 1
	Blake2_128Concat Hasher = 2
	Twox128          Hasher = 3
	Twox256          Hasher = 4
	Twox64Concat     Hasher = 5
	Identity         Hasher = 6

	hasherMax = Identity
)

// String returns the canonical hasher name.
func (h Hasher) String() string {
	switch h {
	case Blake2_128:
		return "Blake2_128"
	case Blake2_256:
		return "Blake2_256"
	case Blake2_128Concat:
		return "Blake2_128Concat"
	case Twox128:
		return "Twox128"
	case Twox256:
		return "Twox256"
	case Twox64Concat:
		return "Twox64Concat"
	case Identity:
		return "Identity"
	default:
		return "unknown"
	}
}

// Constant is one pallet constant with its pre-encoded value.
type Constant struct {
	Name        string
	Type        registry.ID
	Value       []byte
	Docs        []string
	Deprecation DeprecationStatus
}

// Extrinsic describes the outer transaction envelope. A runtime may
// accept several extrinsic format versions at once, each with its own
// subset of transaction extensions.
type Extrinsic struct {
	// Versions lists every supported extrinsic format version.
	Versions []uint8
	// AddressType is the sender address type.
	AddressType registry.ID
	// SignatureType is the transaction signature type.
	SignatureType registry.ID
	// ExtensionsByVersion maps an extrinsic version to indices into
	// Extensions, sorted by version.
	ExtensionsByVersion []VersionExtensions
	// Extensions is the pool of transaction extension descriptors.
	Extensions []Extension
}

// VersionExtensions selects the extensions active for one extrinsic
// version.
type VersionExtensions struct {
	Version uint8
	// Indices into Extrinsic.Extensions, in envelope order.
	Indices []uint32
}

// Extension is one transaction extension slot.
type Extension struct {
	Identifier string
	// Type of the extension's in-envelope representation.
	Type registry.ID
	// Implicit is the type of data the extension contributes to the
	// signing payload without appearing in the envelope.
	Implicit registry.ID
}

// Api is one runtime API trait.
type Api struct {
	Name        string
	Methods     []Method
	Docs        []string
	Deprecation DeprecationStatus
	// Version of the API trait.
	Version uint32
}

// Method is one callable method of a runtime API.
type Method struct {
	Name   string
	Inputs []Param
	// Output is the method's return type.
	Output      registry.ID
	Docs        []string
	Deprecation DeprecationStatus
}

// Param is a named input of a method or view function.
type Param struct {
	Name string
	Type registry.ID
}

// OuterEnums references the runtime-wide enums.
type OuterEnums struct {
	CallType  registry.ID
	EventType registry.ID
	ErrorType registry.ID
}

// Custom is an open extension slot: arbitrary named values attached by
// the producer without a version bump. Values stay sorted by name so
// encoding is deterministic.
type Custom struct {
	Values []CustomValue
}

// CustomValue is one custom entry.
type CustomValue struct {
	Name string
	Type registry.ID
	// Value is the encoded payload.
	Value []byte
}

// Deprecation status wire tags.
const (
	StatusNotDeprecated         byte = 0
	StatusDeprecatedWithoutNote byte = 1
	StatusDeprecated            byte = 2
)

// DeprecationStatus marks a single item as current or deprecated.
type DeprecationStatus struct {
	Kind byte
	// Note explains the deprecation. Only set for StatusDeprecated.
	Note string
	// Since optionally records the version the deprecation started.
	Since *string
}

// Deprecation info wire tags for variant types.
const (
	InfoNotDeprecated      byte = 0
	InfoItemDeprecated     byte = 1
	InfoVariantsDeprecated byte = 2
)

// DeprecationInfo marks a variant type: either the whole enum is
// deprecated or individual variants are, keyed by discriminant.
type DeprecationInfo struct {
	Kind byte
	// Item is set for InfoItemDeprecated.
	Item *DeprecationStatus
	// Variants is set for InfoVariantsDeprecated, sorted by Index.
	Variants []VariantDeprecation
}

// VariantDeprecation deprecates one variant of an enum.
type VariantDeprecation struct {
	Index  uint8
	Status DeprecationStatus
}
