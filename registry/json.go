package registry

import (
	"encoding/json"
)

// JSON projection of the registry for tooling and debugging. The
// projection is value-compatible with the binary form, not
// byte-compatible: tagged unions become single-key objects and
// primitives become their source-level names.

type entryJSON struct {
	ID   ID        `json:"id"`
	Type *typeJSON `json:"type"`
}

type typeJSON struct {
	Path   []string        `json:"path,omitempty"`
	Params []typeParamJSON `json:"params,omitempty"`
	Def    *TypeDef        `json:"def"`
	Docs   []string        `json:"docs,omitempty"`
}

type typeParamJSON struct {
	Name string `json:"name"`
	Type *ID    `json:"type"`
}

type fieldJSON struct {
	Name     *string  `json:"name,omitempty"`
	Type     ID       `json:"type"`
	TypeName *string  `json:"typeName,omitempty"`
	Docs     []string `json:"docs,omitempty"`
}

type variantCaseJSON struct {
	Name   string      `json:"name"`
	Fields []fieldJSON `json:"fields,omitempty"`
	Index  uint8       `json:"index"`
	Docs   []string    `json:"docs,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r *Registry) MarshalJSON() ([]byte, error) {
	out := make([]entryJSON, len(r.entries))
	for i := range r.entries {
		e := &r.entries[i]
		out[i] = entryJSON{ID: e.ID, Type: newTypeJSON(&e.Type)}
	}
	return json.Marshal(out)
}

// MarshalJSON implements json.Marshaler.
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(newTypeJSON(&t))
}

func newTypeJSON(t *Type) *typeJSON {
	out := &typeJSON{Path: t.Path, Def: &t.Def, Docs: t.Docs}
	for _, p := range t.Params {
		out.Params = append(out.Params, typeParamJSON{Name: p.Name, Type: p.Type})
	}
	return out
}

// MarshalJSON implements json.Marshaler. The definition is rendered as
// a single-key object named after its kind.
func (d TypeDef) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DefComposite:
		return json.Marshal(map[string]any{
			"composite": map[string]any{"fields": fieldsJSON(d.Composite.Fields)},
		})
	case DefVariant:
		cases := make([]variantCaseJSON, len(d.Variant.Variants))
		for i, v := range d.Variant.Variants {
			cases[i] = variantCaseJSON{Name: v.Name, Fields: fieldsJSON(v.Fields), Index: v.Index, Docs: v.Docs}
		}
		return json.Marshal(map[string]any{
			"variant": map[string]any{"variants": cases},
		})
	case DefSequence:
		return json.Marshal(map[string]any{
			"sequence": map[string]any{"type": d.Sequence.Elem},
		})
	case DefArray:
		return json.Marshal(map[string]any{
			"array": map[string]any{"len": d.Array.Len, "type": d.Array.Elem},
		})
	case DefTuple:
		return json.Marshal(map[string]any{"tuple": d.Tuple.Fields})
	case DefPrimitive:
		return json.Marshal(map[string]any{"primitive": d.Primitive.String()})
	case DefCompact:
		return json.Marshal(map[string]any{
			"compact": map[string]any{"type": d.Compact.Elem},
		})
	case DefBitSequence:
		return json.Marshal(map[string]any{
			"bitSequence": map[string]any{
				"bitStoreType": d.BitSequence.Store,
				"bitOrderType": d.BitSequence.Order,
			},
		})
	default:
		return json.Marshal(nil)
	}
}

func fieldsJSON(fields []Field) []fieldJSON {
	out := make([]fieldJSON, len(fields))
	for i, f := range fields {
		out[i] = fieldJSON{Name: f.Name, Type: f.Type, TypeName: f.TypeName, Docs: f.Docs}
	}
	return out
}
