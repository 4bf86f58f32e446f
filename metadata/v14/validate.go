package v14

import (
	"github.com/wippyai/chain-metadata/errors"
	"github.com/wippyai/chain-metadata/registry"
)

// Validate enforces the closed-world invariant: every type reference
// in the tree and inside the registry itself must resolve. Cycles are
// fine; only absent identifiers are errors.
func (m *Metadata) Validate() error {
	if m.Types == nil {
		return errors.InvalidData(errors.PhaseValidate, nil, "metadata without a type registry")
	}
	if err := m.Types.Validate(); err != nil {
		return err
	}
	for i := range m.Pallets {
		p := &m.Pallets[i]
		if err := validatePallet(m.Types, p); err != nil {
			return err
		}
	}
	for i := range m.Extrinsic.SignedExtensions {
		se := &m.Extrinsic.SignedExtensions[i]
		if err := m.Types.Check(se.Type, "extrinsic", se.Identifier); err != nil {
			return err
		}
		if err := m.Types.Check(se.AdditionalSigned, "extrinsic", se.Identifier); err != nil {
			return err
		}
	}
	if err := m.Types.Check(m.Extrinsic.Type, "extrinsic"); err != nil {
		return err
	}
	return m.Types.Check(m.Type, "runtime")
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
	return nil
}
