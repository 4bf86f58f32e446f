package registry

import (
	"fmt"
	"strings"

	"github.com/wippyai/chain-metadata/errors"
)

// Entry pairs a descriptor with its interned ID, in wire order.
type Entry struct {
	Type Type
	ID   ID
}

// Registry is a flat, append-only table of type descriptors. It is
// immutable after construction and safe for concurrent readers.
type Registry struct {
	entries []Entry
	byID    map[ID]int
}

// NewRegistry creates a registry from explicit entries. Duplicate IDs
// are rejected.
func NewRegistry(entries []Entry) (*Registry, error) {
	byID := make(map[ID]int, len(entries))
	for i, e := range entries {
		if _, dup := byID[e.ID]; dup {
			return nil, errors.InvalidData(errors.PhaseRegistry, nil,
				fmt.Sprintf("duplicate type id %d", e.ID))
		}
		byID[e.ID] = i
	}
	return &Registry{entries: entries, byID: byID}, nil
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns all entries in wire order. The returned slice must
// not be modified.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Resolve looks up a descriptor by ID. A missing ID is a dangling
// reference: the closed-world invariant was violated by the producer,
// so the error is diagnostic, never recoverable.
func (r *Registry) Resolve(id ID) (*Type, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, errors.DanglingType(errors.PhaseRegistry, nil, uint32(id))
	}
	return &r.entries[i].Type, nil
}

// Has reports whether id is present.
func (r *Registry) Has(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// Check returns a dangling-type error at path unless id resolves.
// Schema trees use it to verify their own references against the
// registry they ship with.
func (r *Registry) Check(id ID, path ...string) error {
	if _, ok := r.byID[id]; !ok {
		return errors.DanglingType(errors.PhaseValidate, path, uint32(id))
	}
	return nil
}

// Validate verifies the closed-world invariant: every ID referenced by
// any descriptor (fields, variants, element types, generic parameter
// bindings) resolves within this registry. Cycles are fine; validation
// walks references one level deep per entry, it never expands them.
func (r *Registry) Validate() error {
	var refs []ID
	for i := range r.entries {
		e := &r.entries[i]
		refs = refs[:0]
		refs = e.Type.Def.refs(refs)
		for _, p := range e.Type.Params {
			if p.Type != nil {
				refs = append(refs, *p.Type)
			}
		}
		for _, id := range refs {
			if _, ok := r.byID[id]; !ok {
				return errors.DanglingType(errors.PhaseValidate,
					[]string{displayPath(&e.Type), fmt.Sprintf("type %d", e.ID)},
					uint32(id))
			}
		}
	}
	return nil
}

// DisplayName renders the descriptor's path for humans, falling back
// to the primitive name or a kind label for anonymous types.
func DisplayName(t *Type) string {
	if name := displayPath(t); name != "" {
		return name
	}
	switch t.Def.Kind {
	case DefPrimitive:
		return t.Def.Primitive.String()
	case DefSequence:
		return "sequence"
	case DefArray:
		return "array"
	case DefTuple:
		return "tuple"
	case DefCompact:
		return "compact"
	case DefBitSequence:
		return "bit-sequence"
	default:
		return "anonymous"
	}
}

func displayPath(t *Type) string {
	return strings.Join(t.Path, "::")
}

// Builder interns descriptors and assigns fresh sequential IDs.
// It never deduplicates: every Register call produces a new ID.
type Builder struct {
	entries []Entry
	next    ID
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Register interns t and returns its ID. IDs are assigned in
// registration order starting at zero.
func (b *Builder) Register(t Type) ID {
	id := b.next
	b.next++
	b.entries = append(b.entries, Entry{ID: id, Type: t})
	return id
}

// Len returns the number of registered types so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Finish produces the immutable registry. The builder must not be
// used afterwards.
func (b *Builder) Finish() *Registry {
	byID := make(map[ID]int, len(b.entries))
	for i, e := range b.entries {
		byID[e.ID] = i
	}
	return &Registry{entries: b.entries, byID: byID}
}
