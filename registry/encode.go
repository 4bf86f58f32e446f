package registry

import (
	"github.com/wippyai/chain-metadata/scale"
)

// Encode writes the registry in its portable wire form: a sequence of
// (compact id, type descriptor) pairs.
func (r *Registry) Encode(w *scale.Writer) {
	w.WriteLen(len(r.entries))
	for i := range r.entries {
		e := &r.entries[i]
		w.WriteCompact(uint64(e.ID))
		encodeType(w, &e.Type)
	}
}

func encodeType(w *scale.Writer, t *Type) {
	w.WriteStrings(t.Path)
	w.WriteLen(len(t.Params))
	for _, p := range t.Params {
		w.WriteString(p.Name)
		if p.Type != nil {
			w.WriteOption(true)
			w.WriteCompact(uint64(*p.Type))
		} else {
			w.WriteOption(false)
		}
	}
	encodeTypeDef(w, &t.Def)
	w.WriteStrings(t.Docs)
}

func encodeTypeDef(w *scale.Writer, d *TypeDef) {
	w.Byte(d.Kind)
	switch d.Kind {
	case DefComposite:
		encodeFields(w, d.Composite.Fields)
	case DefVariant:
		w.WriteLen(len(d.Variant.Variants))
		for _, v := range d.Variant.Variants {
			w.WriteString(v.Name)
			encodeFields(w, v.Fields)
			w.WriteU8(v.Index)
			w.WriteStrings(v.Docs)
		}
	case DefSequence:
		w.WriteCompact(uint64(d.Sequence.Elem))
	case DefArray:
		w.WriteU32LE(d.Array.Len)
		w.WriteCompact(uint64(d.Array.Elem))
	case DefTuple:
		w.WriteLen(len(d.Tuple.Fields))
		for _, id := range d.Tuple.Fields {
			w.WriteCompact(uint64(id))
		}
	case DefPrimitive:
		w.WriteU8(uint8(*d.Primitive))
	case DefCompact:
		w.WriteCompact(uint64(d.Compact.Elem))
	case DefBitSequence:
		w.WriteCompact(uint64(d.BitSequence.Store))
		w.WriteCompact(uint64(d.BitSequence.Order))
	}
}

func encodeFields(w *scale.Writer, fields []Field) {
	w.WriteLen(len(fields))
	for _, f := range fields {
		encodeOptionString(w, f.Name)
		w.WriteCompact(uint64(f.Type))
		encodeOptionString(w, f.TypeName)
		w.WriteStrings(f.Docs)
	}
}

func encodeOptionString(w *scale.Writer, s *string) {
	if s != nil {
		w.WriteOption(true)
		w.WriteString(*s)
	} else {
		w.WriteOption(false)
	}
}
