package v16

import (
	"github.com/wippyai/chain-metadata/errors"
	"github.com/wippyai/chain-metadata/registry"
)

// Validate enforces the closed-world invariant: every type reference
// in the tree and inside the registry itself must resolve. Cycles are
// fine; only absent identifiers are errors. Extension indices in the
// per-version map must point inside the extension pool.
func (m *Metadata) Validate() error {
	if m.Types == nil {
		return errors.InvalidData(errors.PhaseValidate, nil, "metadata without a type registry")
	}
	if err := m.Types.Validate(); err != nil {
		return err
	}
	for i := range m.Pallets {
		if err := validatePallet(m.Types, &m.Pallets[i]); err != nil {
			return err
		}
	}
	if err := m.validateExtrinsic(); err != nil {
		return err
	}
	for i := range m.APIs {
		a := &m.APIs[i]
		for j := range a.Methods {
			meth := &a.Methods[j]
			for k := range meth.Inputs {
				if err := m.Types.Check(meth.Inputs[k].Type, "api", a.Name, meth.Name); err != nil {
					return err
				}
			}
			if err := m.Types.Check(meth.Output, "api", a.Name, meth.Name); err != nil {
				return err
			}
		}
	}
	if err := m.Types.Check(m.OuterEnums.CallType, "outer enums", "call"); err != nil {
		return err
	}
	if err := m.Types.Check(m.OuterEnums.EventType, "outer enums", "event"); err != nil {
		return err
	}
	if err := m.Types.Check(m.OuterEnums.ErrorType, "outer enums", "error"); err != nil {
		return err
	}
	for i := range m.Custom.Values {
		if err := m.Types.Check(m.Custom.Values[i].Type, "custom", m.Custom.Values[i].Name); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metadata) validateExtrinsic() error {
	e := &m.Extrinsic
	if err := m.Types.Check(e.AddressType, "extrinsic", "address"); err != nil {
		return err
	}
	if err := m.Types.Check(e.SignatureType, "extrinsic", "signature"); err != nil {
		return err
	}
	for i := range e.ExtensionsByVersion {
		ve := &e.ExtensionsByVersion[i]
		for _, idx := range ve.Indices {
			if int(idx) >= len(e.Extensions) {
				return errors.InvalidData(errors.PhaseValidate,
					[]string{"extrinsic", "extensions"},
					"extension index out of range")
			}
		}
	}
	for i := range e.Extensions {
		ext := &e.Extensions[i]
		if err := m.Types.Check(ext.Type, "extrinsic", ext.Identifier); err != nil {
			return err
		}
		if err := m.Types.Check(ext.Implicit, "extrinsic", ext.Identifier); err != nil {
			return err
		}
	}
	return nil
}

func validatePallet(reg *registry.Registry, p *Pallet) error {
	if p.Storage != nil {
		for i := range p.Storage.Entries {
			e := &p.Storage.Entries[i]
			switch {
			case e.Type.Plain != nil:
				if err := reg.Check(e.Type.Plain.Value, p.Name, e.Name); err != nil {
					return err
				}
			case e.Type.Map != nil:
				if err := reg.Check(e.Type.Map.Key, p.Name, e.Name); err != nil {
					return err
				}
				if err := reg.Check(e.Type.Map.Value, p.Name, e.Name); err != nil {
					return err
				}
			}
		}
	}
	if p.Calls != nil {
		if err := reg.Check(p.Calls.Type, p.Name, "calls"); err != nil {
			return err
		}
	}
	if p.Event != nil {
		if err := reg.Check(p.Event.Type, p.Name, "event"); err != nil {
			return err
		}
	}
	if p.Error != nil {
		if err := reg.Check(p.Error.Type, p.Name, "error"); err != nil {
			return err
		}
	}
	for i := range p.Constants {
		if err := reg.Check(p.Constants[i].Type, p.Name, p.Constants[i].Name); err != nil {
			return err
		}
	}
	for i := range p.AssociatedTypes {
		if err := reg.Check(p.AssociatedTypes[i].Type, p.Name, p.AssociatedTypes[i].Name); err != nil {
			return err
		}
	}
	for i := range p.ViewFunctions {
		vf := &p.ViewFunctions[i]
		for j := range vf.Inputs {
			if err := reg.Check(vf.Inputs[j].Type, p.Name, vf.Name); err != nil {
				return err
			}
		}
		if err := reg.Check(vf.Output, p.Name, vf.Name); err != nil {
			return err
		}
	}
	return nil
}
