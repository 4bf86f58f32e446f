package v16

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
	if err := encodeExtrinsic(w, &m.Extrinsic); err != nil {
		return err
	}
	encodeAPIs(w, m.APIs)
	w.WriteCompact(uint64(m.OuterEnums.CallType))
	w.WriteCompact(uint64(m.OuterEnums.EventType))
	w.WriteCompact(uint64(m.OuterEnums.ErrorType))
	return encodeCustom(w, &m.Custom)
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
		if err := encodeDeprecationInfo(w, &p.Calls.Deprecation); err != nil {
			return err
		}
	} else {
		w.WriteOption(false)
	}
	if p.Event != nil {
		w.WriteOption(true)
		w.WriteCompact(uint64(p.Event.Type))
		if err := encodeDeprecationInfo(w, &p.Event.Deprecation); err != nil {
			return err
		}
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
		encodeDeprecationStatus(w, &c.Deprecation)
	}
	if p.Error != nil {
		w.WriteOption(true)
		w.WriteCompact(uint64(p.Error.Type))
		if err := encodeDeprecationInfo(w, &p.Error.Deprecation); err != nil {
			return err
		}
	} else {
		w.WriteOption(false)
	}
	w.WriteLen(len(p.AssociatedTypes))
	for i := range p.AssociatedTypes {
		at := &p.AssociatedTypes[i]
		w.WriteString(at.Name)
		w.WriteCompact(uint64(at.Type))
		w.WriteStrings(at.Docs)
	}
	w.WriteLen(len(p.ViewFunctions))
	for i := range p.ViewFunctions {
		vf := &p.ViewFunctions[i]
		w.WriteString(vf.Name)
		w.WriteBytes(vf.ID[:])
		encodeParams(w, vf.Inputs)
		w.WriteCompact(uint64(vf.Output))
		w.WriteStrings(vf.Docs)
		encodeDeprecationStatus(w, &vf.Deprecation)
	}
	w.WriteU8(p.Index)
	w.WriteStrings(p.Docs)
	encodeDeprecationStatus(w, &p.Deprecation)
	return nil
}

func encodeParams(w *scale.Writer, params []Param) {
	w.WriteLen(len(params))
	for _, p := range params {
		w.WriteString(p.Name)
		w.WriteCompact(uint64(p.Type))
	}
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
		encodeDeprecationStatus(w, &e.Deprecation)
	}
	return nil
}

func encodeExtrinsic(w *scale.Writer, e *Extrinsic) error {
	w.WriteLen(len(e.Versions))
	for _, v := range e.Versions {
		w.WriteU8(v)
	}
	w.WriteCompact(uint64(e.AddressType))
	w.WriteCompact(uint64(e.SignatureType))
	for i := 1; i < len(e.ExtensionsByVersion); i++ {
		if e.ExtensionsByVersion[i-1].Version >= e.ExtensionsByVersion[i].Version {
			return fmt.Errorf("extension versions not strictly ascending at %d",
				e.ExtensionsByVersion[i].Version)
		}
	}
	w.WriteLen(len(e.ExtensionsByVersion))
	for i := range e.ExtensionsByVersion {
		ve := &e.ExtensionsByVersion[i]
		w.WriteU8(ve.Version)
		w.WriteLen(len(ve.Indices))
		for _, idx := range ve.Indices {
			w.WriteCompact(uint64(idx))
		}
	}
	w.WriteLen(len(e.Extensions))
	for i := range e.Extensions {
		ext := &e.Extensions[i]
		w.WriteString(ext.Identifier)
		w.WriteCompact(uint64(ext.Type))
		w.WriteCompact(uint64(ext.Implicit))
	}
	return nil
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
			encodeParams(w, m.Inputs)
			w.WriteCompact(uint64(m.Output))
			w.WriteStrings(m.Docs)
			encodeDeprecationStatus(w, &m.Deprecation)
		}
		w.WriteStrings(a.Docs)
		encodeDeprecationStatus(w, &a.Deprecation)
		w.WriteCompact(uint64(a.Version))
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

func encodeDeprecationStatus(w *scale.Writer, s *DeprecationStatus) {
	w.Byte(s.Kind)
	if s.Kind == StatusDeprecated {
		w.WriteString(s.Note)
		if s.Since != nil {
			w.WriteOption(true)
			w.WriteString(*s.Since)
		} else {
			w.WriteOption(false)
		}
	}
}

func encodeDeprecationInfo(w *scale.Writer, d *DeprecationInfo) error {
	w.Byte(d.Kind)
	switch d.Kind {
	case InfoNotDeprecated:
	case InfoItemDeprecated:
		if d.Item == nil {
			return fmt.Errorf("item deprecation without a status")
		}
		encodeDeprecationStatus(w, d.Item)
	case InfoVariantsDeprecated:
		for i := 1; i < len(d.Variants); i++ {
			if d.Variants[i-1].Index >= d.Variants[i].Index {
				return fmt.Errorf("deprecated variant indices not strictly ascending at %d",
					d.Variants[i].Index)
			}
		}
		w.WriteLen(len(d.Variants))
		for i := range d.Variants {
			w.WriteU8(d.Variants[i].Index)
			encodeDeprecationStatus(w, &d.Variants[i].Status)
		}
	}
	return nil
}
