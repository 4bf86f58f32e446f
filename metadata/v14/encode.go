package v14

import (
	"fmt"

	"github.com/wippyai/chain-metadata/scale"
)

// Encode writes the schema tree in its wire form.
func (m *Metadata) Encode(w *scale.Writer) error {
	if m.Types == nil {
		return fmt.Errorf("metadata without a type registry")
	}
	m.Types.Encode(w)
	w.WriteLen(len(m.Pallets))
	for i := range m.Pallets {
		if err := encodePallet(w, &m.Pallets[i]); err != nil {
			return err
		}
	}
	encodeExtrinsic(w, &m.Extrinsic)
	w.WriteCompact(uint64(m.Type))
	return nil
}

func encodePallet(w *scale.Writer, p *Pallet) error {
	w.WriteString(p.Name)
	if p.Storage != nil {
		w.WriteOption(true)
		if err := encodeStorage(w, p.Storage); err != nil {
			return err
		}
	} else {
		w.WriteOption(false)
	}
	if p.Calls != nil {
		w.WriteOption(true)
		w.WriteCompact(uint64(p.Calls.Type))
	} else {
		w.WriteOption(false)
	}
	if p.Event != nil {
		w.WriteOption(true)
		w.WriteCompact(uint64(p.Event.Type))
	} else {
		w.WriteOption(false)
	}
	w.WriteLen(len(p.Constants))
	for i := range p.Constants {
		c := &p.Constants[i]
		w.WriteString(c.Name)
		w.WriteCompact(uint64(c.Type))
		w.WriteByteSlice(c.Value)
		w.WriteStrings(c.Docs)
	}
	if p.Error != nil {
		w.WriteOption(true)
		w.WriteCompact(uint64(p.Error.Type))
	} else {
		w.WriteOption(false)
	}
	w.WriteU8(p.Index)
	return nil
}

func encodeStorage(w *scale.Writer, s *Storage) error {
	w.WriteString(s.Prefix)
	w.WriteLen(len(s.Entries))
	for i := range s.Entries {
		e := &s.Entries[i]
		w.WriteString(e.Name)
		w.WriteU8(uint8(e.Modifier))
		switch {
		case e.Type.Plain != nil:
			w.Byte(TagPlain)
			w.WriteCompact(uint64(e.Type.Plain.Value))
		case e.Type.Map != nil:
			w.Byte(TagMap)
			w.WriteLen(len(e.Type.Map.Hashers))
			for _, h := range e.Type.Map.Hashers {
				w.WriteU8(uint8(h))
			}
			w.WriteCompact(uint64(e.Type.Map.Key))
			w.WriteCompact(uint64(e.Type.Map.Value))
		default:
			return fmt.Errorf("entry %s: type is neither plain nor map", e.Name)
		}
		w.WriteByteSlice(e.Default)
		w.WriteStrings(e.Docs)
	}
	return nil
}

func encodeExtrinsic(w *scale.Writer, e *Extrinsic) {
	w.WriteCompact(uint64(e.Type))
	w.WriteU8(e.Version)
	w.WriteLen(len(e.SignedExtensions))
	for i := range e.SignedExtensions {
		se := &e.SignedExtensions[i]
		w.WriteString(se.Identifier)
		w.WriteCompact(uint64(se.Type))
		w.WriteCompact(uint64(se.AdditionalSigned))
	}
}
