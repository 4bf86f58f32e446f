package main

import (
	"github.com/wippyai/chain-metadata/metadata"
)

// treeSummary is a version-neutral projection of a decoded payload
// used by the inspect and explore commands.
type treeSummary struct {
	Version uint8
	// RegistryLen is -1 for legacy versions without a registry.
	RegistryLen int
	Pallets     []palletSummary
	// SignedExtensions are identifier names; legacy trees carry them
	// as plain strings.
	SignedExtensions []string
	APIs             int
	CustomValues     int
}

type palletSummary struct {
	Name      string
	Index     uint8
	Entries   []entrySummary
	HasCalls  bool
	HasEvents bool
	HasErrors bool
	Constants int
}

type entrySummary struct {
	Name string
	// Shape is "plain" or "map(N)" with the key arity.
	Shape string
	Docs  []string
}

func summarize(m *metadata.Metadata) treeSummary {
	s := treeSummary{Version: m.Version, RegistryLen: -1}
	switch {
	case m.V8 != nil:
		for i := range m.V8.Modules {
			mod := &m.V8.Modules[i]
			p := palletSummary{
				Name:      mod.Name,
				Index:     uint8(i),
				HasCalls:  mod.Calls != nil,
				HasEvents: mod.Events != nil,
				HasErrors: len(mod.Errors) > 0,
				Constants: len(mod.Constants),
			}
			if mod.Storage != nil {
				for _, e := range mod.Storage.Entries {
					shape := "plain"
					if e.Type.Map != nil {
						shape = mapShape(len(e.Type.Map.Keys))
					}
					p.Entries = append(p.Entries, entrySummary{Name: e.Name, Shape: shape, Docs: e.Docs})
				}
			}
			s.Pallets = append(s.Pallets, p)
		}
	case m.V9 != nil:
		for i := range m.V9.Modules {
			mod := &m.V9.Modules[i]
			p := palletSummary{
				Name:      mod.Name,
				Index:     uint8(i),
				HasCalls:  mod.Calls != nil,
				HasEvents: mod.Events != nil,
				HasErrors: len(mod.Errors) > 0,
				Constants: len(mod.Constants),
			}
			if mod.Storage != nil {
				for _, e := range mod.Storage.Entries {
					shape := "plain"
					if e.Type.Map != nil {
						shape = mapShape(len(e.Type.Map.Keys))
					}
					p.Entries = append(p.Entries, entrySummary{Name: e.Name, Shape: shape, Docs: e.Docs})
				}
			}
			s.Pallets = append(s.Pallets, p)
		}
	case m.V10 != nil:
		for i := range m.V10.Modules {
			mod := &m.V10.Modules[i]
			p := palletSummary{
				Name:      mod.Name,
				Index:     uint8(i),
				HasCalls:  mod.Calls != nil,
				HasEvents: mod.Events != nil,
				HasErrors: len(mod.Errors) > 0,
				Constants: len(mod.Constants),
			}
			if mod.Storage != nil {
				for _, e := range mod.Storage.Entries {
					shape := "plain"
					if e.Type.Map != nil {
						shape = mapShape(len(e.Type.Map.Keys))
					}
					p.Entries = append(p.Entries, entrySummary{Name: e.Name, Shape: shape, Docs: e.Docs})
				}
			}
			s.Pallets = append(s.Pallets, p)
		}
	case m.V11 != nil:
		s.SignedExtensions = m.V11.Extrinsic.SignedExtensions
		for i := range m.V11.Modules {
			mod := &m.V11.Modules[i]
			p := palletSummary{
				Name:      mod.Name,
				Index:     uint8(i),
				HasCalls:  mod.Calls != nil,
				HasEvents: mod.Events != nil,
				HasErrors: len(mod.Errors) > 0,
				Constants: len(mod.Constants),
			}
			if mod.Storage != nil {
				for _, e := range mod.Storage.Entries {
					shape := "plain"
					if e.Type.Map != nil {
						shape = mapShape(len(e.Type.Map.Keys))
					}
					p.Entries = append(p.Entries, entrySummary{Name: e.Name, Shape: shape, Docs: e.Docs})
				}
			}
			s.Pallets = append(s.Pallets, p)
		}
	case m.V12 != nil:
		s.SignedExtensions = m.V12.Extrinsic.SignedExtensions
		for i := range m.V12.Modules {
			mod := &m.V12.Modules[i]
			p := palletSummary{
				Name:      mod.Name,
				Index:     mod.Index,
				HasCalls:  mod.Calls != nil,
				HasEvents: mod.Events != nil,
				HasErrors: len(mod.Errors) > 0,
				Constants: len(mod.Constants),
			}
			if mod.Storage != nil {
				for _, e := range mod.Storage.Entries {
					shape := "plain"
					if e.Type.Map != nil {
						shape = mapShape(len(e.Type.Map.Keys))
					}
					p.Entries = append(p.Entries, entrySummary{Name: e.Name, Shape: shape, Docs: e.Docs})
				}
			}
			s.Pallets = append(s.Pallets, p)
		}
	case m.V13 != nil:
		s.SignedExtensions = m.V13.Extrinsic.SignedExtensions
		for i := range m.V13.Modules {
			mod := &m.V13.Modules[i]
			p := palletSummary{
				Name:      mod.Name,
				Index:     mod.Index,
				HasCalls:  mod.Calls != nil,
				HasEvents: mod.Events != nil,
				HasErrors: len(mod.Errors) > 0,
				Constants: len(mod.Constants),
			}
			if mod.Storage != nil {
				for _, e := range mod.Storage.Entries {
					shape := "plain"
					if e.Type.Map != nil {
						shape = mapShape(len(e.Type.Map.Keys))
					}
					p.Entries = append(p.Entries, entrySummary{Name: e.Name, Shape: shape, Docs: e.Docs})
				}
			}
			s.Pallets = append(s.Pallets, p)
		}
	case m.V14 != nil:
		s.RegistryLen = m.V14.Types.Len()
		for i := range m.V14.Extrinsic.SignedExtensions {
			s.SignedExtensions = append(s.SignedExtensions, m.V14.Extrinsic.SignedExtensions[i].Identifier)
		}
		for i := range m.V14.Pallets {
			pal := &m.V14.Pallets[i]
			p := palletSummary{
				Name:      pal.Name,
				Index:     pal.Index,
				HasCalls:  pal.Calls != nil,
				HasEvents: pal.Event != nil,
				HasErrors: pal.Error != nil,
				Constants: len(pal.Constants),
			}
			if pal.Storage != nil {
				for _, e := range pal.Storage.Entries {
					shape := "plain"
					if e.Type.Map != nil {
						shape = mapShape(len(e.Type.Map.Hashers))
					}
					p.Entries = append(p.Entries, entrySummary{Name: e.Name, Shape: shape, Docs: e.Docs})
				}
			}
			s.Pallets = append(s.Pallets, p)
		}
	case m.V15 != nil:
		s.RegistryLen = m.V15.Types.Len()
		s.APIs = len(m.V15.APIs)
		s.CustomValues = len(m.V15.Custom.Values)
		for i := range m.V15.Extrinsic.SignedExtensions {
			s.SignedExtensions = append(s.SignedExtensions, m.V15.Extrinsic.SignedExtensions[i].Identifier)
		}
		for i := range m.V15.Pallets {
			pal := &m.V15.Pallets[i]
			p := palletSummary{
				Name:      pal.Name,
				Index:     pal.Index,
				HasCalls:  pal.Calls != nil,
				HasEvents: pal.Event != nil,
				HasErrors: pal.Error != nil,
				Constants: len(pal.Constants),
			}
			if pal.Storage != nil {
				for _, e := range pal.Storage.Entries {
					shape := "plain"
					if e.Type.Map != nil {
						shape = mapShape(len(e.Type.Map.Hashers))
					}
					p.Entries = append(p.Entries, entrySummary{Name: e.Name, Shape: shape, Docs: e.Docs})
				}
			}
			s.Pallets = append(s.Pallets, p)
		}
	case m.V16 != nil:
		s.RegistryLen = m.V16.Types.Len()
		s.APIs = len(m.V16.APIs)
		s.CustomValues = len(m.V16.Custom.Values)
		for i := range m.V16.Extrinsic.Extensions {
			s.SignedExtensions = append(s.SignedExtensions, m.V16.Extrinsic.Extensions[i].Identifier)
		}
		for i := range m.V16.Pallets {
			pal := &m.V16.Pallets[i]
			p := palletSummary{
				Name:      pal.Name,
				Index:     pal.Index,
				HasCalls:  pal.Calls != nil,
				HasEvents: pal.Event != nil,
				HasErrors: pal.Error != nil,
				Constants: len(pal.Constants),
			}
			if pal.Storage != nil {
				for _, e := range pal.Storage.Entries {
					shape := "plain"
					if e.Type.Map != nil {
						shape = mapShape(len(e.Type.Map.Hashers))
					}
					p.Entries = append(p.Entries, entrySummary{Name: e.Name, Shape: shape, Docs: e.Docs})
				}
			}
			s.Pallets = append(s.Pallets, p)
		}
	}
	return s
}

func mapShape(arity int) string {
	switch arity {
	case 1:
		return "map"
	default:
		return "map(" + itoa(arity) + ")"
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
