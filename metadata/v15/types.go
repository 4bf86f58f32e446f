// Package v15 implements the version 15 metadata schema tree.
//
// V15 extends V14 with runtime API descriptors, outer enum references
// for whole-runtime call/event/error decoding, an open custom-value
// map, pallet documentation and a reshaped extrinsic descriptor that
// names the address, call, signature and extra types explicitly.
package v15

import "github.com/wippyai/chain-metadata/registry"

// Metadata is the decoded V15 schema tree.
type Metadata struct {
	// Types is the embedded type registry all references resolve in.
	Types *registry.Registry
	// Pallets in declaration order.
	Pallets []Pallet
	// Extrinsic describes the outer transaction envelope.
	Extrinsic Extrinsic
	// Type is the registry id of the outer runtime type.
	Type registry.ID
	// APIs lists the runtime API traits the runtime implements.
	APIs []Api
	// OuterEnums references the runtime-wide call, event and error
	// enums so consumers can decode opaque payloads without walking
	// every pallet.
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
	// Index is the pallet's dispatch index, preserved exactly as
	// encoded and not necessarily positional.
	Index uint8
	Docs  []string
}

// Calls points at the variant type enumerating a pallet's dispatchable
// calls.
type Calls struct {
	Type registry.ID
}

// Event points at the variant type enumerating a pallet's events.
type Event struct {
	Type registry.ID
}

// Error points at the variant type enumerating a pallet's errors.
type Error struct {
	Type registry.ID
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
	Default []byte
	Docs    []string
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

// Hashers supported by V15.
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
	Name  string
	Type  registry.ID
	Value []byte
	Docs  []string
}

// Extrinsic describes the outer transaction envelope. Unlike V14 it
// references the envelope's component types directly instead of one
// opaque extrinsic type.
type Extrinsic struct {
	// Version of the extrinsic format.
	Version uint8
	// AddressType is the sender address type.
	AddressType registry.ID
	// CallType is the runtime call enum.
	CallType registry.ID
	// SignatureType is the transaction signature type.
	SignatureType registry.ID
	// ExtraType is the signed extension data included in the envelope.
	ExtraType registry.ID
	// SignedExtensions in the order they appear in the envelope.
	SignedExtensions []SignedExtension
}

// SignedExtension is one extension slot of the extrinsic envelope.
type SignedExtension struct {
	Identifier string
	// Type of the extension's in-envelope representation.
	Type registry.ID
	// AdditionalSigned is the type of data the extension contributes
	// to the signing payload without appearing in the envelope.
	AdditionalSigned registry.ID
}

// Api is one runtime API trait.
type Api struct {
	Name    string
	Methods []Method
	Docs    []string
}

// Method is one callable method of a runtime API.
type Method struct {
	Name   string
	Inputs []Param
	// Output is the method's return type.
	Output registry.ID
	Docs   []string
}

// Param is a named method input.
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
