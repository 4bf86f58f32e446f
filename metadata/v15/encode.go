package v15

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
	encodeAPIs(w, m.APIs)
	w.WriteCompact(uint64(m.OuterEnums.CallType))
	w.WriteCompact(uint64(m.OuterEnums.EventType))
	w.WriteCompact(uint64(m.OuterEnums.ErrorType))
	if err := encodeCustom(w, &m.Custom); err != nil {
		return err
	}
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
	w.WriteStrings(p.Docs)
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
	w.WriteU8(e.Version)
	w.WriteCompact(uint64(e.AddressType))
	w.WriteCompact(uint64(e.CallType))
	w.WriteCompact(uint64(e.SignatureType))
	w.WriteCompact(uint64(e.ExtraType))
	w.WriteLen(len(e.SignedExtensions))
	for i := range e.SignedExtensions {
		se := &e.SignedExtensions[i]
		w.WriteString(se.Identifier)
		w.WriteCompact(uint64(se.Type))
		w.WriteCompact(uint64(se.AdditionalSigned))
	}
}

func encodeAPIs(w *scale.Writer, apis []Api) {
	w.WriteLen(len(apis))
	for i := range apis {
		a := &apis[i]
		w.WriteString(a.Name)
		w.WriteLen(len(a.Methods))
		for j := range a.Methods {
			m := &a.Methods[j]
			w.WriteString(m.Name)
			w.WriteLen(len(m.Inputs))
			for _, in := range m.Inputs {
				w.WriteString(in.Name)
				w.WriteCompact(uint64(in.Type))
			}
			w.WriteCompact(uint64(m.Output))
			w.WriteStrings(m.Docs)
		}
		w.WriteStrings(a.Docs)
	}
}

// encodeCustom writes the custom-value map. Keys must already be
// strictly ascending; the map encodes like a SCALE BTreeMap and an
// unsorted slice would not round-trip.
func encodeCustom(w *scale.Writer, c *Custom) error {
	for i := 1; i < len(c.Values); i++ {
		if c.Values[i-1].Name >= c.Values[i].Name {
			return fmt.Errorf("custom value keys not strictly ascending at %q", c.Values[i].Name)
		}
	}
	w.WriteLen(len(c.Values))
	for i := range c.Values {
		v := &c.Values[i]
		w.WriteString(v.Name)
		w.WriteCompact(uint64(v.Type))
		w.WriteByteSlice(v.Value)
	}
	return nil
}
