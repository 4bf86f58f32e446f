// Package registry implements the portable type registry used by
// modern metadata versions (V14 and later).
//
// The registry is a flat arena of structural type descriptors addressed
// by an integer ID. Descriptors reference each other only through IDs,
// never through direct pointers, so cyclic type graphs (a recursive
// enum referencing itself through a generic parameter) are represented
// without ownership cycles. Resolution is a non-recursive table lookup.
//
// Build a registry with Builder, which interns descriptors and hands
// out fresh sequential IDs. Interning does not deduplicate structurally
// identical descriptors: two identical types registered twice get two
// IDs, because identical types used in different contexts may evolve
// independently in future metadata. Producers reuse IDs themselves when
// compactness matters.
//
//	b := registry.NewBuilder()
//	u128 := b.Register(registry.Type{
//		Def: registry.PrimitiveDef(registry.PrimU128),
//	})
//	reg := b.Finish()
//
// A decoded registry must satisfy the closed-world invariant: every ID
// referenced anywhere inside it resolves. Validate checks this; Resolve
// reports a dangling reference as an error rather than panicking.
package registry
