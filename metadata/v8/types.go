// Package v8 implements the version 8 metadata schema tree, the
// earliest supported version.
//
// V8 carries the original five-hasher set and no extrinsic
// descriptor. V9 shares the same shape but stays a separate frozen
// package: versions never alias each other structurally.
package v8

// Metadata is the decoded V8 schema tree.
type Metadata struct {
	// Modules in declaration order.
	Modules []Module
}

// Module describes one runtime module's surface.
type Module struct {
	Name      string
	Storage   *Storage
	Calls     *[]Function
	Events    *[]Event
	Constants []Constant
	Errors    []Error
}

// Storage describes a module's storage namespace.
type Storage struct {
	// Prefix common to all entries of this module.
	Prefix  string
	Entries []Entry
}

// Visibility of a storage entry.
type Visibility uint8

// Visibility values.
const (
	Public  Visibility = 0
	Private Visibility = 1
)

// Modifier indicates what fetching a missing storage key yields.
// This is a tri-state on purpose: "returns absent" and "returns the
// declared default" have different semantics, and some legacy
// producers emitted an explicit fallback carried as raw default bytes.
type Modifier uint8

// Modifier values.
const (
	// Optional entries yield an absent result for missing keys.
	Optional Modifier = 0
	// Default entries yield the declared default for missing keys.
	Default Modifier = 1
	// Fallback entries yield the raw default bytes as-is.
	Fallback Modifier = 2
)

// Entry is one storage entry.
type Entry struct {
	Name       string
	Visibility Visibility
	Modifier   Modifier
	Type       EntryType
	// Default is the encoded default value blob.
	Default []byte
	Docs    []string
}

// Storage entry type wire tags. Map and DoubleMap both decode to the
// generalized Map shape; the tag is chosen from the key count when
// encoding.
const (
	TagPlain     byte = 0
	TagMap       byte = 1
	TagDoubleMap byte = 2
)

// EntryType is the storage entry shape: exactly one of Plain or Map is
// set.
type EntryType struct {
	Plain *Plain
	Map   *Map
}

// Plain is a single stored value.
type Plain struct {
	// Value is the display name of the value type.
	Value string
}

// Map is the generalized keyed storage shape. One (hasher, key) pair
// per key component, in the exact order they contribute to storage key
// derivation. Legacy wire forms map onto it by arity: Map (1),
// DoubleMap (2).
type Map struct {
	Keys  []KeyHasher
	Value string
	// Linked preserves the historical is_linked flag of single-key
	// maps. Meaningless for arities above one.
	Linked bool
}

// KeyHasher pairs one key component's type with its hasher.
type KeyHasher struct {
	Hasher Hasher
	Key    string
}

// Hasher identifies the storage key hashing algorithm.
type Hasher uint8

// Hashers supported by V8.
const (
	Blake2_128   Hasher = 0
	Blake2_256   Hasher = 1
	Twox128      Hasher = 2
	Twox256      Hasher = 3
	Twox64Concat Hasher = 4

	hasherMax = Twox64Concat
)

// String returns the canonical hasher name.
func (h Hasher) String() string {
	switch h {
	case Blake2_128:
		return "Blake2_128"
	case Blake2_256:
		return "Blake2_256"
	case Twox128:
		return "Twox128"
	case Twox256:
		return "Twox256"
	case Twox64Concat:
		return "Twox64Concat"
	default:
		return "unknown"
	}
}

// Function is one callable entry point.
type Function struct {
	Name string
	Args []Arg
	Docs []string
}

// Arg is a single call argument.
type Arg struct {
	Name string
	// Type is the display name of the argument type.
	Type string
}

// Event is one emitted event kind.
type Event struct {
	Name string
	// Args are display names of the event payload types.
	Args []string
	Docs []string
}

// Constant is one module constant.
type Constant struct {
	Name string
	Type string
	// Value is the encoded constant value.
	Value []byte
	Docs  []string
}

// Error is one declared module error.
type Error struct {
	Name string
	Docs []string
}
