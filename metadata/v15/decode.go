package v15

import (
	"fmt"

	"github.com/wippyai/chain-metadata/registry"
	"github.com/wippyai/chain-metadata/scale"
)

// Decode reads a V15 schema tree from the reader. The envelope header
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
	if m.Type, err = readID(r, "runtime type"); err != nil {
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
		id, err := readID(r, "calls type")
		if err != nil {
			return err
		}
		p.Calls = &Calls{Type: id}
	}
	if present, err = r.ReadOption(); err != nil {
		return r.WrapError("pallet event", err)
	}
	if present {
		id, err := readID(r, "event type")
		if err != nil {
			return err
		}
		p.Event = &Event{Type: id}
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
		id, err := readID(r, "error type")
		if err != nil {
			return err
		}
		p.Error = &Error{Type: id}
	}
	if p.Index, err = r.ReadU8(); err != nil {
		return r.WrapError("pallet index", err)
	}
	if p.Docs, err = r.ReadStrings(); err != nil {
		return r.WrapError("pallet docs", err)
	}
	return nil
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
	return nil
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
	return nil
}

func decodeExtrinsic(r *scale.Reader, e *Extrinsic) error {
	var err error
	if e.Version, err = r.ReadU8(); err != nil {
		return r.WrapError("extrinsic version", err)
	}
	if e.AddressType, err = readID(r, "address type"); err != nil {
		return err
	}
	if e.CallType, err = readID(r, "call type"); err != nil {
		return err
	}
	if e.SignatureType, err = readID(r, "signature type"); err != nil {
		return err
	}
	if e.ExtraType, err = readID(r, "extra type"); err != nil {
		return err
	}
	n, err := r.ReadLen()
	if err != nil {
		return r.WrapError("signed extensions", err)
	}
	e.SignedExtensions = make([]SignedExtension, n)
	for i := range e.SignedExtensions {
		se := &e.SignedExtensions[i]
		if se.Identifier, err = r.ReadString(); err != nil {
			return r.WrapError("extension identifier", err)
		}
		if se.Type, err = readID(r, "extension type"); err != nil {
			return err
		}
		if se.AdditionalSigned, err = readID(r, "extension additional signed"); err != nil {
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
	}
	return apis, nil
}

func decodeMethod(r *scale.Reader, m *Method) error {
	var err error
	if m.Name, err = r.ReadString(); err != nil {
		return r.WrapError("method name", err)
	}
	n, err := r.ReadLen()
	if err != nil {
		return r.WrapError("method inputs", err)
	}
	m.Inputs = make([]Param, n)
	for i := range m.Inputs {
		if m.Inputs[i].Name, err = r.ReadString(); err != nil {
			return r.WrapError("input name", err)
		}
		if m.Inputs[i].Type, err = readID(r, "input type"); err != nil {
			return err
		}
	}
	if m.Output, err = readID(r, "method output"); err != nil {
		return err
	}
	if m.Docs, err = r.ReadStrings(); err != nil {
		return r.WrapError("method docs", err)
	}
	return nil
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
