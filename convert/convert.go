// Package convert implements cross-version conversion of metadata
// trees.
//
// Only the legacy chain V8 through V13 offers lossless upgrades: each
// step is a strict structural superset of the previous one, with
// documented defaults for the fields a step introduces. Registry-backed
// versions are not supersets of the legacy trees (their type references
// have no derivable value), so no upgrade into or between V14+ exists.
// Downgrades never exist: information would be dropped silently.
package convert

import (
	"github.com/wippyai/chain-metadata/errors"
	"github.com/wippyai/chain-metadata/metadata"
	v10 "github.com/wippyai/chain-metadata/metadata/v10"
	v11 "github.com/wippyai/chain-metadata/metadata/v11"
	v12 "github.com/wippyai/chain-metadata/metadata/v12"
	v13 "github.com/wippyai/chain-metadata/metadata/v13"
	v8 "github.com/wippyai/chain-metadata/metadata/v8"
	v9 "github.com/wippyai/chain-metadata/metadata/v9"
)

// Upgrade converts m to the target version by composing single-step
// upgrades. The source is never mutated. Requesting a lower version
// fails with an unsupported-downgrade error; requesting a
// registry-backed target fails because no lossless path exists.
func Upgrade(m *metadata.Metadata, target uint8) (*metadata.Metadata, error) {
	if target < m.Version {
		return nil, errors.UnsupportedDowngrade(m.Version, target)
	}
	if m.Version >= metadata.V14 || target > metadata.V13 {
		if target == m.Version {
			return m, nil
		}
		return nil, errors.New(errors.PhaseConvert, errors.KindInvalidData).
			Detail("no lossless upgrade from version %d to %d", m.Version, target).
			Build()
	}
	out := m
	for out.Version < target {
		var err error
		if out, err = upgradeOnce(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func upgradeOnce(m *metadata.Metadata) (*metadata.Metadata, error) {
	switch m.Version {
	case metadata.V8:
		return &metadata.Metadata{Version: metadata.V9, V9: V8ToV9(m.V8)}, nil
	case metadata.V9:
		return &metadata.Metadata{Version: metadata.V10, V10: V9ToV10(m.V9)}, nil
	case metadata.V10:
		return &metadata.Metadata{Version: metadata.V11, V11: V10ToV11(m.V10)}, nil
	case metadata.V11:
		return &metadata.Metadata{Version: metadata.V12, V12: V11ToV12(m.V11)}, nil
	case metadata.V12:
		return &metadata.Metadata{Version: metadata.V13, V13: V12ToV13(m.V12)}, nil
	default:
		return nil, errors.New(errors.PhaseConvert, errors.KindInvalidData).
			Detail("no upgrade step from version %d", m.Version).
			Build()
	}
}

// V8ToV9 upgrades a V8 tree. The shapes are identical; only the
// version discriminant changes.
func V8ToV9(in *v8.Metadata) *v9.Metadata {
	out := &v9.Metadata{Modules: make([]v9.Module, len(in.Modules))}
	for i := range in.Modules {
		src := &in.Modules[i]
		dst := &out.Modules[i]
		dst.Name = src.Name
		if src.Storage != nil {
			dst.Storage = &v9.Storage{
				Prefix:  src.Storage.Prefix,
				Entries: make([]v9.Entry, len(src.Storage.Entries)),
			}
			for j := range src.Storage.Entries {
				e := &src.Storage.Entries[j]
				dst.Storage.Entries[j] = v9.Entry{
					Name:       e.Name,
					Visibility: v9.Visibility(e.Visibility),
					Modifier:   v9.Modifier(e.Modifier),
					Type:       v8EntryType(&e.Type),
					Default:    e.Default,
					Docs:       e.Docs,
				}
			}
		}
		if src.Calls != nil {
			calls := make([]v9.Function, len(*src.Calls))
			for j, fn := range *src.Calls {
				args := make([]v9.Arg, len(fn.Args))
				for k, a := range fn.Args {
					args[k] = v9.Arg{Name: a.Name, Type: a.Type}
				}
				calls[j] = v9.Function{Name: fn.Name, Args: args, Docs: fn.Docs}
			}
			dst.Calls = &calls
		}
		if src.Events != nil {
			events := make([]v9.Event, len(*src.Events))
			for j, ev := range *src.Events {
				events[j] = v9.Event{Name: ev.Name, Args: ev.Args, Docs: ev.Docs}
			}
			dst.Events = &events
		}
		dst.Constants = make([]v9.Constant, len(src.Constants))
		for j, c := range src.Constants {
			dst.Constants[j] = v9.Constant{Name: c.Name, Type: c.Type, Value: c.Value, Docs: c.Docs}
		}
		dst.Errors = make([]v9.Error, len(src.Errors))
		for j, e := range src.Errors {
			dst.Errors[j] = v9.Error{Name: e.Name, Docs: e.Docs}
		}
	}
	return out
}

func v8EntryType(t *v8.EntryType) v9.EntryType {
	switch {
	case t.Plain != nil:
		return v9.EntryType{Plain: &v9.Plain{Value: t.Plain.Value}}
	case t.Map != nil:
		keys := make([]v9.KeyHasher, len(t.Map.Keys))
		for i, k := range t.Map.Keys {
			keys[i] = v9.KeyHasher{Hasher: v9.Hasher(k.Hasher), Key: k.Key}
		}
		return v9.EntryType{Map: &v9.Map{Keys: keys, Value: t.Map.Value, Linked: t.Map.Linked}}
	}
	return v9.EntryType{}
}

// V9ToV10 upgrades a V9 tree. V10 renumbers the hashers to make room
// for Blake2_128Concat, so every hasher is remapped.
func V9ToV10(in *v9.Metadata) *v10.Metadata {
	out := &v10.Metadata{Modules: make([]v10.Module, len(in.Modules))}
	for i := range in.Modules {
		src := &in.Modules[i]
		dst := &out.Modules[i]
		dst.Name = src.Name
		if src.Storage != nil {
			dst.Storage = &v10.Storage{
				Prefix:  src.Storage.Prefix,
				Entries: make([]v10.Entry, len(src.Storage.Entries)),
			}
			for j := range src.Storage.Entries {
				e := &src.Storage.Entries[j]
				dst.Storage.Entries[j] = v10.Entry{
					Name:       e.Name,
					Visibility: v10.Visibility(e.Visibility),
					Modifier:   v10.Modifier(e.Modifier),
					Type:       v9EntryType(&e.Type),
					Default:    e.Default,
					Docs:       e.Docs,
				}
			}
		}
		if src.Calls != nil {
			calls := make([]v10.Function, len(*src.Calls))
			for j, fn := range *src.Calls {
				args := make([]v10.Arg, len(fn.Args))
				for k, a := range fn.Args {
					args[k] = v10.Arg{Name: a.Name, Type: a.Type}
				}
				calls[j] = v10.Function{Name: fn.Name, Args: args, Docs: fn.Docs}
			}
			dst.Calls = &calls
		}
		if src.Events != nil {
			events := make([]v10.Event, len(*src.Events))
			for j, ev := range *src.Events {
				events[j] = v10.Event{Name: ev.Name, Args: ev.Args, Docs: ev.Docs}
			}
			dst.Events = &events
		}
		dst.Constants = make([]v10.Constant, len(src.Constants))
		for j, c := range src.Constants {
			dst.Constants[j] = v10.Constant{Name: c.Name, Type: c.Type, Value: c.Value, Docs: c.Docs}
		}
		dst.Errors = make([]v10.Error, len(src.Errors))
		for j, e := range src.Errors {
			dst.Errors[j] = v10.Error{Name: e.Name, Docs: e.Docs}
		}
	}
	return out
}

func v9EntryType(t *v9.EntryType) v10.EntryType {
	switch {
	case t.Plain != nil:
		return v10.EntryType{Plain: &v10.Plain{Value: t.Plain.Value}}
	case t.Map != nil:
		keys := make([]v10.KeyHasher, len(t.Map.Keys))
		for i, k := range t.Map.Keys {
			keys[i] = v10.KeyHasher{Hasher: v9HasherToV10(k.Hasher), Key: k.Key}
		}
		return v10.EntryType{Map: &v10.Map{Keys: keys, Value: t.Map.Value, Linked: t.Map.Linked}}
	}
	return v10.EntryType{}
}

func v9HasherToV10(h v9.Hasher) v10.Hasher {
	switch h {
	case v9.Blake2_128:
		return v10.Blake2_128
	case v9.Blake2_256:
		return v10.Blake2_256
	case v9.Twox128:
		return v10.Twox128
	case v9.Twox256:
		return v10.Twox256
	default:
		return v10.Twox64Concat
	}
}

// V10ToV11 upgrades a V10 tree. V11 adds the extrinsic descriptor; an
// upgraded tree gets the documented default of extrinsic version zero
// with no signed extensions, meaning "unspecified".
func V10ToV11(in *v10.Metadata) *v11.Metadata {
	out := &v11.Metadata{Modules: make([]v11.Module, len(in.Modules))}
	for i := range in.Modules {
		src := &in.Modules[i]
		dst := &out.Modules[i]
		dst.Name = src.Name
		if src.Storage != nil {
			dst.Storage = &v11.Storage{
				Prefix:  src.Storage.Prefix,
				Entries: make([]v11.Entry, len(src.Storage.Entries)),
			}
			for j := range src.Storage.Entries {
				e := &src.Storage.Entries[j]
				dst.Storage.Entries[j] = v11.Entry{
					Name:       e.Name,
					Visibility: v11.Visibility(e.Visibility),
					Modifier:   v11.Modifier(e.Modifier),
					Type:       v10EntryType(&e.Type),
					Default:    e.Default,
					Docs:       e.Docs,
				}
			}
		}
		if src.Calls != nil {
			calls := make([]v11.Function, len(*src.Calls))
			for j, fn := range *src.Calls {
				args := make([]v11.Arg, len(fn.Args))
				for k, a := range fn.Args {
					args[k] = v11.Arg{Name: a.Name, Type: a.Type}
				}
				calls[j] = v11.Function{Name: fn.Name, Args: args, Docs: fn.Docs}
			}
			dst.Calls = &calls
		}
		if src.Events != nil {
			events := make([]v11.Event, len(*src.Events))
			for j, ev := range *src.Events {
				events[j] = v11.Event{Name: ev.Name, Args: ev.Args, Docs: ev.Docs}
			}
			dst.Events = &events
		}
		dst.Constants = make([]v11.Constant, len(src.Constants))
		for j, c := range src.Constants {
			dst.Constants[j] = v11.Constant{Name: c.Name, Type: c.Type, Value: c.Value, Docs: c.Docs}
		}
		dst.Errors = make([]v11.Error, len(src.Errors))
		for j, e := range src.Errors {
			dst.Errors[j] = v11.Error{Name: e.Name, Docs: e.Docs}
		}
	}
	return out
}

func v10EntryType(t *v10.EntryType) v11.EntryType {
	switch {
	case t.Plain != nil:
		return v11.EntryType{Plain: &v11.Plain{Value: t.Plain.Value}}
	case t.Map != nil:
		keys := make([]v11.KeyHasher, len(t.Map.Keys))
		for i, k := range t.Map.Keys {
			keys[i] = v11.KeyHasher{Hasher: v11.Hasher(k.Hasher), Key: k.Key}
		}
		return v11.EntryType{Map: &v11.Map{Keys: keys, Value: t.Map.Value, Linked: t.Map.Linked}}
	}
	return v11.EntryType{}
}

// V11ToV12 upgrades a V11 tree. V12 adds the explicit module index;
// the documented default is the module's position in the list, which
// is exactly what V11 consumers had to assume.
func V11ToV12(in *v11.Metadata) *v12.Metadata {
	out := &v12.Metadata{
		Modules: make([]v12.Module, len(in.Modules)),
		Extrinsic: v12.Extrinsic{
			Version:          in.Extrinsic.Version,
			SignedExtensions: in.Extrinsic.SignedExtensions,
		},
	}
	for i := range in.Modules {
		src := &in.Modules[i]
		dst := &out.Modules[i]
		dst.Name = src.Name
		dst.Index = uint8(i)
		if src.Storage != nil {
			dst.Storage = &v12.Storage{
				Prefix:  src.Storage.Prefix,
				Entries: make([]v12.Entry, len(src.Storage.Entries)),
			}
			for j := range src.Storage.Entries {
				e := &src.Storage.Entries[j]
				dst.Storage.Entries[j] = v12.Entry{
					Name:       e.Name,
					Visibility: v12.Visibility(e.Visibility),
					Modifier:   v12.Modifier(e.Modifier),
					Type:       v11EntryType(&e.Type),
					Default:    e.Default,
					Docs:       e.Docs,
				}
			}
		}
		if src.Calls != nil {
			calls := make([]v12.Function, len(*src.Calls))
			for j, fn := range *src.Calls {
				args := make([]v12.Arg, len(fn.Args))
				for k, a := range fn.Args {
					args[k] = v12.Arg{Name: a.Name, Type: a.Type}
				}
				calls[j] = v12.Function{Name: fn.Name, Args: args, Docs: fn.Docs}
			}
			dst.Calls = &calls
		}
		if src.Events != nil {
			events := make([]v12.Event, len(*src.Events))
			for j, ev := range *src.Events {
				events[j] = v12.Event{Name: ev.Name, Args: ev.Args, Docs: ev.Docs}
			}
			dst.Events = &events
		}
		dst.Constants = make([]v12.Constant, len(src.Constants))
		for j, c := range src.Constants {
			dst.Constants[j] = v12.Constant{Name: c.Name, Type: c.Type, Value: c.Value, Docs: c.Docs}
		}
		dst.Errors = make([]v12.Error, len(src.Errors))
		for j, e := range src.Errors {
			dst.Errors[j] = v12.Error{Name: e.Name, Docs: e.Docs}
		}
	}
	return out
}

func v11EntryType(t *v11.EntryType) v12.EntryType {
	switch {
	case t.Plain != nil:
		return v12.EntryType{Plain: &v12.Plain{Value: t.Plain.Value}}
	case t.Map != nil:
		keys := make([]v12.KeyHasher, len(t.Map.Keys))
		for i, k := range t.Map.Keys {
			keys[i] = v12.KeyHasher{Hasher: v12.Hasher(k.Hasher), Key: k.Key}
		}
		return v12.EntryType{Map: &v12.Map{Keys: keys, Value: t.Map.Value, Linked: t.Map.Linked}}
	}
	return v12.EntryType{}
}

// V12ToV13 upgrades a V12 tree. V13 only adds the NMap storage shape,
// which no upgraded entry uses, so the copy is field-for-field.
func V12ToV13(in *v12.Metadata) *v13.Metadata {
	out := &v13.Metadata{
		Modules: make([]v13.Module, len(in.Modules)),
		Extrinsic: v13.Extrinsic{
			Version:          in.Extrinsic.Version,
			SignedExtensions: in.Extrinsic.SignedExtensions,
		},
	}
	for i := range in.Modules {
		src := &in.Modules[i]
		dst := &out.Modules[i]
		dst.Name = src.Name
		dst.Index = src.Index
		if src.Storage != nil {
			dst.Storage = &v13.Storage{
				Prefix:  src.Storage.Prefix,
				Entries: make([]v13.Entry, len(src.Storage.Entries)),
			}
			for j := range src.Storage.Entries {
				e := &src.Storage.Entries[j]
				dst.Storage.Entries[j] = v13.Entry{
					Name:       e.Name,
					Visibility: v13.Visibility(e.Visibility),
					Modifier:   v13.Modifier(e.Modifier),
					Type:       v12EntryType(&e.Type),
					Default:    e.Default,
					Docs:       e.Docs,
				}
			}
		}
		if src.Calls != nil {
			calls := make([]v13.Function, len(*src.Calls))
			for j, fn := range *src.Calls {
				args := make([]v13.Arg, len(fn.Args))
				for k, a := range fn.Args {
					args[k] = v13.Arg{Name: a.Name, Type: a.Type}
				}
				calls[j] = v13.Function{Name: fn.Name, Args: args, Docs: fn.Docs}
			}
			dst.Calls = &calls
		}
		if src.Events != nil {
			events := make([]v13.Event, len(*src.Events))
			for j, ev := range *src.Events {
				events[j] = v13.Event{Name: ev.Name, Args: ev.Args, Docs: ev.Docs}
			}
			dst.Events = &events
		}
		dst.Constants = make([]v13.Constant, len(src.Constants))
		for j, c := range src.Constants {
			dst.Constants[j] = v13.Constant{Name: c.Name, Type: c.Type, Value: c.Value, Docs: c.Docs}
		}
		dst.Errors = make([]v13.Error, len(src.Errors))
		for j, e := range src.Errors {
			dst.Errors[j] = v13.Error{Name: e.Name, Docs: e.Docs}
		}
	}
	return out
}

func v12EntryType(t *v12.EntryType) v13.EntryType {
	switch {
	case t.Plain != nil:
		return v13.EntryType{Plain: &v13.Plain{Value: t.Plain.Value}}
	case t.Map != nil:
		keys := make([]v13.KeyHasher, len(t.Map.Keys))
		for i, k := range t.Map.Keys {
			keys[i] = v13.KeyHasher{Hasher: v13.Hasher(k.Hasher), Key: k.Key}
		}
		return v13.EntryType{Map: &v13.Map{Keys: keys, Value: t.Map.Value, Linked: t.Map.Linked}}
	}
	return v13.EntryType{}
}
