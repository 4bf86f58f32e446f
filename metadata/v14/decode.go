package v14

import (
	"fmt"

	"github.com/wippyai/chain-metadata/registry"
	"github.com/wippyai/chain-metadata/scale"
)

// Decode reads a V14 schema tree from the reader. The envelope header
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
	if e.Type, err = readID(r, "extrinsic type"); err != nil {
		return err
	}
	if e.Version, err = r.ReadU8(); err != nil {
		return r.WrapError("extrinsic version", err)
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
