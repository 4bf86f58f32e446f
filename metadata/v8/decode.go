package v8

import (
	"fmt"

	"github.com/wippyai/chain-metadata/scale"
)

// Decode reads a V8 schema tree from the reader. The envelope header
// has already been consumed by the caller.
func Decode(r *scale.Reader) (*Metadata, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("modules", err)
	}
	m := &Metadata{Modules: make([]Module, n)}
	for i := range m.Modules {
		if err := decodeModule(r, &m.Modules[i]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func decodeModule(r *scale.Reader, m *Module) error {
	var err error
	if m.Name, err = r.ReadString(); err != nil {
		return r.WrapError("module name", err)
	}
	present, err := r.ReadOption()
	if err != nil {
		return r.WrapError("module storage", err)
	}
	if present {
		m.Storage = new(Storage)
		if err := decodeStorage(r, m.Storage); err != nil {
			return err
		}
	}
	if present, err = r.ReadOption(); err != nil {
		return r.WrapError("module calls", err)
	}
	if present {
		calls, err := decodeFunctions(r)
		if err != nil {
			return err
		}
		m.Calls = &calls
	}
	if present, err = r.ReadOption(); err != nil {
		return r.WrapError("module events", err)
	}
	if present {
		events, err := decodeEvents(r)
		if err != nil {
			return err
		}
		m.Events = &events
	}
	if m.Constants, err = decodeConstants(r); err != nil {
		return err
	}
	if m.Errors, err = decodeErrors(r); err != nil {
		return err
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
	vis, err := r.ReadU8()
	if err != nil {
		return r.WrapError("entry visibility", err)
	}
	if vis > uint8(Private) {
		return r.WrapError("entry visibility", fmt.Errorf("unknown visibility %d", vis))
	}
	e.Visibility = Visibility(vis)
	mod, err := r.ReadU8()
	if err != nil {
		return r.WrapError("entry modifier", err)
	}
	if mod > uint8(Fallback) {
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
		value, err := r.ReadString()
		if err != nil {
			return r.WrapError("plain value", err)
		}
		t.Plain = &Plain{Value: value}
	case TagMap:
		hasher, err := decodeHasher(r)
		if err != nil {
			return err
		}
		key, err := r.ReadString()
		if err != nil {
			return r.WrapError("map key", err)
		}
		value, err := r.ReadString()
		if err != nil {
			return r.WrapError("map value", err)
		}
		linked, err := r.ReadBool()
		if err != nil {
			return r.WrapError("map linked", err)
		}
		t.Map = &Map{
			Keys:   []KeyHasher{{Hasher: hasher, Key: key}},
			Value:  value,
			Linked: linked,
		}
	case TagDoubleMap:
		hasher, err := decodeHasher(r)
		if err != nil {
			return err
		}
		key1, err := r.ReadString()
		if err != nil {
			return r.WrapError("double map key1", err)
		}
		key2, err := r.ReadString()
		if err != nil {
			return r.WrapError("double map key2", err)
		}
		value, err := r.ReadString()
		if err != nil {
			return r.WrapError("double map value", err)
		}
		key2Hasher, err := decodeHasher(r)
		if err != nil {
			return err
		}
		t.Map = &Map{
			Keys: []KeyHasher{
				{Hasher: hasher, Key: key1},
				{Hasher: key2Hasher, Key: key2},
			},
			Value: value,
		}
	default:
		return r.WrapError("entry type", fmt.Errorf("unknown entry type tag %d", tag))
	}
	return nil
}

func decodeHasher(r *scale.Reader) (Hasher, error) {
	h, err := r.ReadU8()
	if err != nil {
		return 0, r.WrapError("hasher", err)
	}
	if h > uint8(hasherMax) {
		return 0, r.WrapError("hasher", fmt.Errorf("unknown hasher %d", h))
	}
	return Hasher(h), nil
}

func decodeFunctions(r *scale.Reader) ([]Function, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("calls", err)
	}
	fns := make([]Function, n)
	for i := range fns {
		if fns[i].Name, err = r.ReadString(); err != nil {
			return nil, r.WrapError("call name", err)
		}
		argc, err := r.ReadLen()
		if err != nil {
			return nil, r.WrapError("call args", err)
		}
		fns[i].Args = make([]Arg, argc)
		for j := range fns[i].Args {
			if fns[i].Args[j].Name, err = r.ReadString(); err != nil {
				return nil, r.WrapError("arg name", err)
			}
			if fns[i].Args[j].Type, err = r.ReadString(); err != nil {
				return nil, r.WrapError("arg type", err)
			}
		}
		if fns[i].Docs, err = r.ReadStrings(); err != nil {
			return nil, r.WrapError("call docs", err)
		}
	}
	return fns, nil
}

func decodeEvents(r *scale.Reader) ([]Event, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("events", err)
	}
	events := make([]Event, n)
	for i := range events {
		if events[i].Name, err = r.ReadString(); err != nil {
			return nil, r.WrapError("event name", err)
		}
		if events[i].Args, err = r.ReadStrings(); err != nil {
			return nil, r.WrapError("event args", err)
		}
		if events[i].Docs, err = r.ReadStrings(); err != nil {
			return nil, r.WrapError("event docs", err)
		}
	}
	return events, nil
}

func decodeConstants(r *scale.Reader) ([]Constant, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("constants", err)
	}
	consts := make([]Constant, n)
	for i := range consts {
		if consts[i].Name, err = r.ReadString(); err != nil {
			return nil, r.WrapError("constant name", err)
		}
		if consts[i].Type, err = r.ReadString(); err != nil {
			return nil, r.WrapError("constant type", err)
		}
		if consts[i].Value, err = r.ReadByteSlice(); err != nil {
			return nil, r.WrapError("constant value", err)
		}
		if consts[i].Docs, err = r.ReadStrings(); err != nil {
			return nil, r.WrapError("constant docs", err)
		}
	}
	return consts, nil
}

func decodeErrors(r *scale.Reader) ([]Error, error) {
	n, err := r.ReadLen()
	if err != nil {
		return nil, r.WrapError("errors", err)
	}
	errs := make([]Error, n)
	for i := range errs {
		if errs[i].Name, err = r.ReadString(); err != nil {
			return nil, r.WrapError("error name", err)
		}
		if errs[i].Docs, err = r.ReadStrings(); err != nil {
			return nil, r.WrapError("error docs", err)
		}
	}
	return errs, nil
}
