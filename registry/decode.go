package registry

import (
	"fmt"

	"github.com/wippyai/chain-metadata/scale"
)

// Decode reads a registry from its portable wire form. The result is
// structurally sound but not yet validated against the closed-world
// invariant; callers run Validate once the full payload is in hand.
func Decode(r *scale.Reader) (*Registry, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("type registry", err)
	}
	entries := make([]Entry, n)
	for i := range entries {
		id, err := r.ReadCompactU32()
		if err != nil {
			return nil, r.WrapError("type id", err)
		}
		entries[i].ID = ID(id)
		if err := decodeType(r, &entries[i].Type); err != nil {
			return nil, err
		}
	}
	reg, err := NewRegistry(entries)
	if err != nil {
		return nil, r.WrapError("type registry", err)
	}
	return reg, nil
}

func decodeType(r *scale.Reader, t *Type) error {
	var err error
	if t.Path, err = r.ReadStrings(); err != nil {
		return r.WrapError("type path", err)
	}
	n, err := r.ReadLen()
	if err != nil {
		return r.WrapError("type params", err)
	}
	t.Params = make([]TypeParam, n)
	for i := range t.Params {
		if t.Params[i].Name, err = r.ReadString(); err != nil {
			return r.WrapError("type param name", err)
		}
		present, err := r.ReadOption()
		if err != nil {
			return r.WrapError("type param", err)
		}
		if present {
			id, err := r.ReadCompactU32()
			if err != nil {
				return r.WrapError("type param id", err)
			}
			bound := ID(id)
			t.Params[i].Type = &bound
		}
	}
	if err := decodeTypeDef(r, &t.Def); err != nil {
		return err
	}
	if t.Docs, err = r.ReadStrings(); err != nil {
		return r.WrapError("type docs", err)
	}
	return nil
}

func decodeTypeDef(r *scale.Reader, d *TypeDef) error {
	kind, err := r.ReadByte()
	if err != nil {
		return r.WrapError("type def", err)
	}
	d.Kind = kind
	switch kind {
	case DefComposite:
		fields, err := decodeFields(r)
		if err != nil {
			return err
		}
		d.Composite = &Composite{Fields: fields}
	case DefVariant:
		n, err := r.ReadLen()
		if err != nil {
			return r.WrapError("variants", err)
		}
		variants := make([]VariantCase, n)
		for i := range variants {
			if variants[i].Name, err = r.ReadString(); err != nil {
				return r.WrapError("variant name", err)
			}
			if variants[i].Fields, err = decodeFields(r); err != nil {
				return err
			}
			if variants[i].Index, err = r.ReadU8(); err != nil {
				return r.WrapError("variant index", err)
			}
			if variants[i].Docs, err = r.ReadStrings(); err != nil {
				return r.WrapError("variant docs", err)
			}
		}
		d.Variant = &Variant{Variants: variants}
	case DefSequence:
		elem, err := r.ReadCompactU32()
		if err != nil {
			return r.WrapError("sequence elem", err)
		}
		d.Sequence = &Sequence{Elem: ID(elem)}
	case DefArray:
		length, err := r.ReadU32LE()
		if err != nil {
			return r.WrapError("array len", err)
		}
		elem, err := r.ReadCompactU32()
		if err != nil {
			return r.WrapError("array elem", err)
		}
		d.Array = &Array{Len: length, Elem: ID(elem)}
	case DefTuple:
		n, err := r.ReadLen()
		if err != nil {
			return r.WrapError("tuple", err)
		}
		fields := make([]ID, n)
		for i := range fields {
			id, err := r.ReadCompactU32()
			if err != nil {
				return r.WrapError("tuple elem", err)
			}
			fields[i] = ID(id)
		}
		d.Tuple = &Tuple{Fields: fields}
	case DefPrimitive:
		p, err := r.ReadU8()
		if err != nil {
			return r.WrapError("primitive", err)
		}
		if p > uint8(PrimI256) {
			return r.WrapError("primitive", fmt.Errorf("unknown primitive tag %d", p))
		}
		prim := Primitive(p)
		d.Primitive = &prim
	case DefCompact:
		elem, err := r.ReadCompactU32()
		if err != nil {
			return r.WrapError("compact elem", err)
		}
		d.Compact = &Compact{Elem: ID(elem)}
	case DefBitSequence:
		store, err := r.ReadCompactU32()
		if err != nil {
			return r.WrapError("bit sequence store", err)
		}
		order, err := r.ReadCompactU32()
		if err != nil {
			return r.WrapError("bit sequence order", err)
		}
		d.BitSequence = &BitSequence{Store: ID(store), Order: ID(order)}
	default:
		return r.WrapError("type def", fmt.Errorf("unknown type def tag %d", kind))
	}
	return nil
}

func decodeFields(r *scale.Reader) ([]Field, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("fields", err)
	}
	fields := make([]Field, n)
	for i := range fields {
		if fields[i].Name, err = decodeOptionString(r); err != nil {
			return nil, r.WrapError("field name", err)
		}
		id, err := r.ReadCompactU32()
		if err != nil {
			return nil, r.WrapError("field type", err)
		}
		fields[i].Type = ID(id)
		if fields[i].TypeName, err = decodeOptionString(r); err != nil {
			return nil, r.WrapError("field type name", err)
		}
		if fields[i].Docs, err = r.ReadStrings(); err != nil {
			return nil, r.WrapError("field docs", err)
		}
	}
	return fields, nil
}

func decodeOptionString(r *scale.Reader) (*string, error) {
	present, err := r.ReadOption()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}
