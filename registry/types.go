package registry

// ID is an opaque handle into one Registry instance. It has no meaning
// outside its owning registry and is not stable across producer runs.
type ID uint32

// Type is one structural type descriptor.
type Type struct {
	// Path is the module-qualified display name, e.g.
	// ["pallet_balances", "pallet", "Call"]. Paths are documentation
	// only: several descriptors may share one path (generic
	// instantiations), and decoding never dispatches on them.
	Path []string
	// Params are the generic parameter bindings, display only.
	Params []TypeParam
	// Def is the structural definition.
	Def TypeDef
	// Docs are documentation lines.
	Docs []string
}

// TypeParam is a generic parameter binding. Type is nil for an
// unresolved (skipped) parameter.
type TypeParam struct {
	Name string
	Type *ID
}

// TypeDef kind tags. Values are the wire discriminants.
const (
	DefComposite   byte = 0
	DefVariant     byte = 1
	DefSequence    byte = 2
	DefArray       byte = 3
	DefTuple       byte = 4
	DefPrimitive   byte = 5
	DefCompact     byte = 6
	DefBitSequence byte = 7
)

// TypeDef is the tagged structural definition of a type. Exactly one
// pointer matching Kind is set.
type TypeDef struct {
	Composite   *Composite
	Variant     *Variant
	Sequence    *Sequence
	Array       *Array
	Tuple       *Tuple
	Primitive   *Primitive
	Compact     *Compact
	BitSequence *BitSequence
	Kind        byte
}

// Composite is an ordered list of named or positional fields.
type Composite struct {
	Fields []Field
}

// Variant is a tagged union: an ordered list of named alternatives,
// each with an explicit discriminant byte.
type Variant struct {
	Variants []VariantCase
}

// VariantCase is one alternative of a Variant type.
type VariantCase struct {
	Name string
	// Fields of the alternative; one call/event/error argument each
	// when the variant models a pallet surface.
	Fields []Field
	// Index is the discriminant byte as encoded, not the position.
	Index uint8
	Docs  []string
}

// Field is a single field of a composite or variant alternative.
// Name is nil for positional (tuple-struct) fields. TypeName is the
// display name of the field type as written in the source, if any.
type Field struct {
	Name     *string
	Type     ID
	TypeName *string
	Docs     []string
}

// Sequence is a dynamically sized sequence of one element type.
type Sequence struct {
	Elem ID
}

// Array is a fixed-length sequence of one element type.
type Array struct {
	Len  uint32
	Elem ID
}

// Tuple is an ordered list of element types.
type Tuple struct {
	Fields []ID
}

// Primitive is a built-in scalar type.
type Primitive uint8

// Primitive values. Wire discriminants.
const (
	PrimBool Primitive = iota
	PrimChar
	PrimStr
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimU128
	PrimU256
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimI128
	PrimI256
)

// Compact marks a type whose values are encoded with variable-length
// integer compaction.
type Compact struct {
	Elem ID
}

// BitSequence is a bit-level packed sequence. Store and Order reference
// the bit-store and bit-order descriptor types.
type BitSequence struct {
	Store ID
	Order ID
}

// String returns the source-level name of the primitive.
func (p Primitive) String() string {
	switch p {
	case PrimBool:
		return "bool"
	case PrimChar:
		return "char"
	case PrimStr:
		return "str"
	case PrimU8:
		return "u8"
	case PrimU16:
		return "u16"
	case PrimU32:
		return "u32"
	case PrimU64:
		return "u64"
	case PrimU128:
		return "u128"
	case PrimU256:
		return "u256"
	case PrimI8:
		return "i8"
	case PrimI16:
		return "i16"
	case PrimI32:
		return "i32"
	case PrimI64:
		return "i64"
	case PrimI128:
		return "i128"
	case PrimI256:
		return "i256"
	default:
		return "unknown"
	}
}

// Convenience constructors for TypeDef.

// PrimitiveDef returns a TypeDef for a primitive type.
func PrimitiveDef(p Primitive) TypeDef {
	return TypeDef{Kind: DefPrimitive, Primitive: &p}
}

// CompositeDef returns a TypeDef with the given fields.
func CompositeDef(fields ...Field) TypeDef {
	return TypeDef{Kind: DefComposite, Composite: &Composite{Fields: fields}}
}

// VariantDef returns a TypeDef with the given alternatives.
func VariantDef(cases ...VariantCase) TypeDef {
	return TypeDef{Kind: DefVariant, Variant: &Variant{Variants: cases}}
}

// SequenceDef returns a TypeDef for a sequence of elem.
func SequenceDef(elem ID) TypeDef {
	return TypeDef{Kind: DefSequence, Sequence: &Sequence{Elem: elem}}
}

// ArrayDef returns a TypeDef for a fixed-length array of elem.
func ArrayDef(length uint32, elem ID) TypeDef {
	return TypeDef{Kind: DefArray, Array: &Array{Len: length, Elem: elem}}
}

// TupleDef returns a TypeDef for a tuple of the given element types.
func TupleDef(fields ...ID) TypeDef {
	return TypeDef{Kind: DefTuple, Tuple: &Tuple{Fields: fields}}
}

// CompactDef returns a TypeDef for a compact-encoded wrapper of elem.
func CompactDef(elem ID) TypeDef {
	return TypeDef{Kind: DefCompact, Compact: &Compact{Elem: elem}}
}

// BitSequenceDef returns a TypeDef for a bit sequence.
func BitSequenceDef(store, order ID) TypeDef {
	return TypeDef{Kind: DefBitSequence, BitSequence: &BitSequence{Store: store, Order: order}}
}

// refs appends every ID referenced by the definition to dst.
func (d *TypeDef) refs(dst []ID) []ID {
	switch d.Kind {
	case DefComposite:
		for _, f := range d.Composite.Fields {
			dst = append(dst, f.Type)
		}
	case DefVariant:
		for _, v := range d.Variant.Variants {
			for _, f := range v.Fields {
				dst = append(dst, f.Type)
			}
		}
	case DefSequence:
		dst = append(dst, d.Sequence.Elem)
	case DefArray:
		dst = append(dst, d.Array.Elem)
	case DefTuple:
		dst = append(dst, d.Tuple.Fields...)
	case DefCompact:
		dst = append(dst, d.Compact.Elem)
	case DefBitSequence:
		dst = append(dst, d.BitSequence.Store, d.BitSequence.Order)
	}
	return dst
}
