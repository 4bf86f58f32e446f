package v16

import (
	"fmt"

	"github.com/wippyai/chain-metadata/registry"
	"github.com/wippyai/chain-metadata/scale"
)

// Decode reads a V16 schema tree from the reader. The envelope header
// has already been consumed by the caller. The result is structurally
// sound; callers run Validate to enforce the closed-world invariant.
func Decode(r *scale.Reader) (*Metadata, error) {
	types, err := registry.Decode(r)
	if err != nil {
		return nil, err
	}
	m := &Metadata{Types: types}
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("pallets", err)
	}
	m.Pallets = make([]Pallet, n)
	for i := range m.Pallets {
		if err := decodePallet(r, &m.Pallets[i]); err != nil {
			return nil, err
		}
	}
	if err := decodeExtrinsic(r, &m.Extrinsic); err != nil {
		return nil, err
	}
	if m.APIs, err = decodeAPIs(r); err != nil {
		return nil, err
	}
	if err := decodeOuterEnums(r, &m.OuterEnums); err != nil {
		return nil, err
	}
	if err := decodeCustom(r, &m.Custom); err != nil {
		return nil, err
	}
	return m, nil
}

func readID(r *scale.Reader, context string) (registry.ID, error) {
	id, err := r.ReadCompactU32()
	if err != nil {
		return 0, r.WrapError(context, err)
	}
	return registry.ID(id), nil
}

func decodePallet(r *scale.Reader, p *Pallet) error {
	var err error
	if p.Name, err = r.ReadString(); err != nil {
		return r.WrapError("pallet name", err)
	}
	present, err := r.ReadOption()
	if err != nil {
		return r.WrapError("pallet storage", err)
	}
	if present {
		p.Storage = new(Storage)
		if err := decodeStorage(r, p.Storage); err != nil {
			return err
		}
	}
	if present, err = r.ReadOption(); err != nil {
		return r.WrapError("pallet calls", err)
	}
	if present {
		p.Calls = new(Calls)
		if p.Calls.Type, err = readID(r, "calls type"); err != nil {
			return err
		}
		if err := decodeDeprecationInfo(r, &p.Calls.Deprecation); err != nil {
			return err
		}
	}
	if present, err = r.ReadOption(); err != nil {
		return r.WrapError("pallet event", err)
	}
	if present {
		p.Event = new(Event)
		if p.Event.Type, err = readID(r, "event type"); err != nil {
			return err
		}
		if err := decodeDeprecationInfo(r, &p.Event.Deprecation); err != nil {
			return err
		}
	}
	n, err := r.ReadLen()
	if err != nil {
		return r.WrapError("constants", err)
	}
	p.Constants = make([]Constant, n)
	for i := range p.Constants {
		if err := decodeConstant(r, &p.Constants[i]); err != nil {
			return err
		}
	}
	if present, err = r.ReadOption(); err != nil {
		return r.WrapError("pallet error", err)
	}
	if present {
		p.Error = new(Error)
		if p.Error.Type, err = readID(r, "error type"); err != nil {
			return err
		}
		if err := decodeDeprecationInfo(r, &p.Error.Deprecation); err != nil {
			return err
		}
	}
	if p.AssociatedTypes, err = decodeAssociatedTypes(r); err != nil {
		return err
	}
	if p.ViewFunctions, err = decodeViewFunctions(r); err != nil {
		return err
	}
	if p.Index, err = r.ReadU8(); err != nil {
		return r.WrapError("pallet index", err)
	}
	if p.Docs, err = r.ReadStrings(); err != nil {
		return r.WrapError("pallet docs", err)
	}
	return decodeDeprecationStatus(r, &p.Deprecation)
}

func decodeAssociatedTypes(r *scale.Reader) ([]AssociatedType, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("associated types", err)
	}
	out := make([]AssociatedType, n)
	for i := range out {
		if out[i].Name, err = r.ReadString(); err != nil {
			return nil, r.WrapError("associated type name", err)
		}
		if out[i].Type, err = readID(r, "associated type"); err != nil {
			return nil, err
		}
		if out[i].Docs, err = r.ReadStrings(); err != nil {
			return nil, r.WrapError("associated type docs", err)
		}
	}
	return out, nil
}

func decodeViewFunctions(r *scale.Reader) ([]ViewFunction, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("view functions", err)
	}
	out := make([]ViewFunction, n)
	for i := range out {
		vf := &out[i]
		if vf.Name, err = r.ReadString(); err != nil {
			return nil, r.WrapError("view function name", err)
		}
		id, err := r.ReadBytes(32)
		if err != nil {
			return nil, r.WrapError("view function id", err)
		}
		copy(vf.ID[:], id)
		if vf.Inputs, err = decodeParams(r); err != nil {
			return nil, err
		}
		if vf.Output, err = readID(r, "view function output"); err != nil {
			return nil, err
		}
		if vf.Docs, err = r.ReadStrings(); err != nil {
			return nil, r.WrapError("view function docs", err)
		}
		if err := decodeDeprecationStatus(r, &vf.Deprecation); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeParams(r *scale.Reader) ([]Param, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("params", err)
	}
	out := make([]Param, n)
	for i := range out {
		if out[i].Name, err = r.ReadString(); err != nil {
			return nil, r.WrapError("param name", err)
		}
		if out[i].Type, err = readID(r, "param type"); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeStorage(r *scale.Reader, s *Storage) error {
	var err error
	if s.Prefix, err = r.ReadString(); err != nil {
		return r.WrapError("storage prefix", err)
	}
	n, err := r.ReadLen()
	if err != nil {
		return r.WrapError("storage entries", err)
	}
	s.Entries = make([]Entry, n)
	for i := range s.Entries {
		if err := decodeEntry(r, &s.Entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func decodeEntry(r *scale.Reader, e *Entry) error {
	var err error
	if e.Name, err = r.ReadString(); err != nil {
		return r.WrapError("entry name", err)
	}
	mod, err := r.ReadU8()
	if err != nil {
		return r.WrapError("entry modifier", err)
	}
	if mod > uint8(Default) {
		return r.WrapError("entry modifier", fmt.Errorf("unknown modifier %d", mod))
	}
	e.Modifier = Modifier(mod)
	if err := decodeEntryType(r, &e.Type); err != nil {
		return err
	}
	if e.Default, err = r.ReadByteSlice(); err != nil {
		return r.WrapError("entry default", err)
	}
	if e.Docs, err = r.ReadStrings(); err != nil {
		return r.WrapError("entry docs", err)
	}
	return decodeDeprecationStatus(r, &e.Deprecation)
}

func decodeEntryType(r *scale.Reader, t *EntryType) error {
	tag, err := r.ReadByte()
	if err != nil {
		return r.WrapError("entry type", err)
	}
	switch tag {
	case TagPlain:
		id, err := readID(r, "plain value")
		if err != nil {
			return err
		}
		t.Plain = &Plain{Value: id}
	case TagMap:
		n, err := r.ReadLen()
		if err != nil {
			return r.WrapError("map hashers", err)
		}
		hashers := make([]Hasher, n)
		for i := range hashers {
			h, err := r.ReadU8()
			if err != nil {
				return r.WrapError("hasher", err)
			}
			if h > uint8(hasherMax) {
				return r.WrapError("hasher", fmt.Errorf("unknown hasher %d", h))
			}
			hashers[i] = Hasher(h)
		}
		key, err := readID(r, "map key")
		if err != nil {
			return err
		}
		value, err := readID(r, "map value")
		if err != nil {
			return err
		}
		t.Map = &Map{Hashers: hashers, Key: key, Value: value}
	default:
		return r.WrapError("entry type", fmt.Errorf("unknown entry type tag %d", tag))
	}
	return nil
}

func decodeConstant(r *scale.Reader, c *Constant) error {
	var err error
	if c.Name, err = r.ReadString(); err != nil {
		return r.WrapError("constant name", err)
	}
	if c.Type, err = readID(r, "constant type"); err != nil {
		return err
	}
	if c.Value, err = r.ReadByteSlice(); err != nil {
		return r.WrapError("constant value", err)
	}
	if c.Docs, err = r.ReadStrings(); err != nil {
		return r.WrapError("constant docs", err)
	}
	return decodeDeprecationStatus(r, &c.Deprecation)
}

func decodeExtrinsic(r *scale.Reader, e *Extrinsic) error {
	n, err := r.ReadLen()
	if err != nil {
		return r.WrapError("extrinsic versions", err)
	}
	e.Versions = make([]uint8, n)
	for i := range e.Versions {
		if e.Versions[i], err = r.ReadU8(); err != nil {
			return r.WrapError("extrinsic version", err)
		}
	}
	if e.AddressType, err = readID(r, "address type"); err != nil {
		return err
	}
	if e.SignatureType, err = readID(r, "signature type"); err != nil {
		return err
	}
	if n, err = r.ReadLen(); err != nil {
		return r.WrapError("extensions by version", err)
	}
	e.ExtensionsByVersion = make([]VersionExtensions, n)
	for i := range e.ExtensionsByVersion {
		ve := &e.ExtensionsByVersion[i]
		if ve.Version, err = r.ReadU8(); err != nil {
			return r.WrapError("extension version", err)
		}
		if i > 0 && e.ExtensionsByVersion[i-1].Version >= ve.Version {
			return r.WrapError("extensions by version",
				fmt.Errorf("versions not strictly ascending at %d", ve.Version))
		}
		cnt, err := r.ReadLen()
		if err != nil {
			return r.WrapError("extension indices", err)
		}
		ve.Indices = make([]uint32, cnt)
		for j := range ve.Indices {
			if ve.Indices[j], err = r.ReadCompactU32(); err != nil {
				return r.WrapError("extension index", err)
			}
		}
	}
	if n, err = r.ReadLen(); err != nil {
		return r.WrapError("extensions", err)
	}
	e.Extensions = make([]Extension, n)
	for i := range e.Extensions {
		ext := &e.Extensions[i]
		if ext.Identifier, err = r.ReadString(); err != nil {
			return r.WrapError("extension identifier", err)
		}
		if ext.Type, err = readID(r, "extension type"); err != nil {
			return err
		}
		if ext.Implicit, err = readID(r, "extension implicit"); err != nil {
			return err
		}
	}
	return nil
}

func decodeAPIs(r *scale.Reader) ([]Api, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("apis", err)
	}
	apis := make([]Api, n)
	for i := range apis {
		a := &apis[i]
		if a.Name, err = r.ReadString(); err != nil {
			return nil, r.WrapError("api name", err)
		}
		mn, err := r.ReadLen()
		if err != nil {
			return nil, r.WrapError("api methods", err)
		}
		a.Methods = make([]Method, mn)
		for j := range a.Methods {
			if err := decodeMethod(r, &a.Methods[j]); err != nil {
				return nil, err
			}
		}
		if a.Docs, err = r.ReadStrings(); err != nil {
			return nil, r.WrapError("api docs", err)
		}
		if err := decodeDeprecationStatus(r, &a.Deprecation); err != nil {
			return nil, err
		}
		if a.Version, err = r.ReadCompactU32(); err != nil {
			return nil, r.WrapError("api version", err)
		}
	}
	return apis, nil
}

func decodeMethod(r *scale.Reader, m *Method) error {
	var err error
	if m.Name, err = r.ReadString(); err != nil {
		return r.WrapError("method name", err)
	}
	if m.Inputs, err = decodeParams(r); err != nil {
		return err
	}
	if m.Output, err = readID(r, "method output"); err != nil {
		return err
	}
	if m.Docs, err = r.ReadStrings(); err != nil {
		return r.WrapError("method docs", err)
	}
	return decodeDeprecationStatus(r, &m.Deprecation)
}

func decodeOuterEnums(r *scale.Reader, o *OuterEnums) error {
	var err error
	if o.CallType, err = readID(r, "outer call enum"); err != nil {
		return err
	}
	if o.EventType, err = readID(r, "outer event enum"); err != nil {
		return err
	}
	if o.ErrorType, err = readID(r, "outer error enum"); err != nil {
		return err
	}
	return nil
}

func decodeCustom(r *scale.Reader, c *Custom) error {
	n, err := r.ReadLen()
	if err != nil {
		return r.WrapError("custom values", err)
	}
	c.Values = make([]CustomValue, n)
	for i := range c.Values {
		v := &c.Values[i]
		if v.Name, err = r.ReadString(); err != nil {
			return r.WrapError("custom name", err)
		}
		if i > 0 && c.Values[i-1].Name >= v.Name {
			return r.WrapError("custom values",
				fmt.Errorf("keys not strictly ascending at %q", v.Name))
		}
		if v.Type, err = readID(r, "custom type"); err != nil {
			return err
		}
		if v.Value, err = r.ReadByteSlice(); err != nil {
			return r.WrapError("custom value", err)
		}
	}
	return nil
}

func decodeDeprecationStatus(r *scale.Reader, s *DeprecationStatus) error {
	tag, err := r.ReadByte()
	if err != nil {
		return r.WrapError("deprecation status", err)
	}
	s.Kind = tag
	switch tag {
	case StatusNotDeprecated, StatusDeprecatedWithoutNote:
	case StatusDeprecated:
		if s.Note, err = r.ReadString(); err != nil {
			return r.WrapError("deprecation note", err)
		}
		present, err := r.ReadOption()
		if err != nil {
			return r.WrapError("deprecation since", err)
		}
		if present {
			since, err := r.ReadString()
			if err != nil {
				return r.WrapError("deprecation since", err)
			}
			s.Since = &since
		}
	default:
		return r.WrapError("deprecation status", fmt.Errorf("unknown status tag %d", tag))
	}
	return nil
}

func decodeDeprecationInfo(r *scale.Reader, d *DeprecationInfo) error {
	tag, err := r.ReadByte()
	if err != nil {
		return r.WrapError("deprecation info", err)
	}
	d.Kind = tag
	switch tag {
	case InfoNotDeprecated:
	case InfoItemDeprecated:
		d.Item = new(DeprecationStatus)
		return decodeDeprecationStatus(r, d.Item)
	case InfoVariantsDeprecated:
		n, err := r.ReadLen()
		if err != nil {
			return r.WrapError("deprecated variants", err)
		}
		d.Variants = make([]VariantDeprecation, n)
		for i := range d.Variants {
			if d.Variants[i].Index, err = r.ReadU8(); err != nil {
				return r.WrapError("deprecated variant index", err)
			}
			if i > 0 && d.Variants[i-1].Index >= d.Variants[i].Index {
				return r.WrapError("deprecated variants",
					fmt.Errorf("indices not strictly ascending at %d", d.Variants[i].Index))
			}
			if err := decodeDeprecationStatus(r, &d.Variants[i].Status); err != nil {
				return err
			}
		}
	default:
		return r.WrapError("deprecation info", fmt.Errorf("unknown info tag %d", tag))
	}
	return nil
}
