package v10

import (
	"fmt"

	"github.com/wippyai/chain-metadata/scale"
)

// Encode writes the schema tree in its wire form. The storage entry
// tag is chosen from the key count: one key encodes as Map, two as
// DoubleMap. Higher arities need V13.
func (m *Metadata) Encode(w *scale.Writer) error {
	w.WriteLen(len(m.Modules))
	for i := range m.Modules {
		if err := encodeModule(w, &m.Modules[i]); err != nil {
			return err
		}
	}
	return nil
}

func encodeModule(w *scale.Writer, m *Module) error {
	w.WriteString(m.Name)
	if m.Storage != nil {
		w.WriteOption(true)
		if err := encodeStorage(w, m.Storage); err != nil {
			return err
		}
	} else {
		w.WriteOption(false)
	}
	if m.Calls != nil {
		w.WriteOption(true)
		encodeFunctions(w, *m.Calls)
	} else {
		w.WriteOption(false)
	}
	if m.Events != nil {
		w.WriteOption(true)
		encodeEvents(w, *m.Events)
	} else {
		w.WriteOption(false)
	}
	encodeConstants(w, m.Constants)
	encodeErrors(w, m.Errors)
	return nil
}

func encodeStorage(w *scale.Writer, s *Storage) error {
	w.WriteString(s.Prefix)
	w.WriteLen(len(s.Entries))
	for i := range s.Entries {
		e := &s.Entries[i]
		w.WriteString(e.Name)
		w.WriteU8(uint8(e.Visibility))
		w.WriteU8(uint8(e.Modifier))
		if err := encodeEntryType(w, &e.Type); err != nil {
			return fmt.Errorf("entry %s: %w", e.Name, err)
		}
		w.WriteByteSlice(e.Default)
		w.WriteStrings(e.Docs)
	}
	return nil
}

func encodeEntryType(w *scale.Writer, t *EntryType) error {
	switch {
	case t.Plain != nil:
		w.Byte(TagPlain)
		w.WriteString(t.Plain.Value)
	case t.Map != nil:
		m := t.Map
		switch len(m.Keys) {
		case 0:
			return fmt.Errorf("map storage entry with no keys")
		case 1:
			w.Byte(TagMap)
			w.WriteU8(uint8(m.Keys[0].Hasher))
			w.WriteString(m.Keys[0].Key)
			w.WriteString(m.Value)
			w.WriteBool(m.Linked)
		case 2:
			w.Byte(TagDoubleMap)
			w.WriteU8(uint8(m.Keys[0].Hasher))
			w.WriteString(m.Keys[0].Key)
			w.WriteString(m.Keys[1].Key)
			w.WriteString(m.Value)
			w.WriteU8(uint8(m.Keys[1].Hasher))
		default:
			return fmt.Errorf("map storage entry with %d keys", len(m.Keys))
		}
	default:
		return fmt.Errorf("storage entry type is neither plain nor map")
	}
	return nil
}

func encodeFunctions(w *scale.Writer, fns []Function) {
	w.WriteLen(len(fns))
	for i := range fns {
		w.WriteString(fns[i].Name)
		w.WriteLen(len(fns[i].Args))
		for _, a := range fns[i].Args {
			w.WriteString(a.Name)
			w.WriteString(a.Type)
		}
		w.WriteStrings(fns[i].Docs)
	}
}

func encodeEvents(w *scale.Writer, events []Event) {
	w.WriteLen(len(events))
	for i := range events {
		w.WriteString(events[i].Name)
		w.WriteStrings(events[i].Args)
		w.WriteStrings(events[i].Docs)
	}
}

func encodeConstants(w *scale.Writer, consts []Constant) {
	w.WriteLen(len(consts))
	for i := range consts {
		w.WriteString(consts[i].Name)
		w.WriteString(consts[i].Type)
		w.WriteByteSlice(consts[i].Value)
		w.WriteStrings(consts[i].Docs)
	}
}

func encodeErrors(w *scale.Writer, errs []Error) {
	w.WriteLen(len(errs))
	for i := range errs {
		w.WriteString(errs[i].Name)
		w.WriteStrings(errs[i].Docs)
	}
}
