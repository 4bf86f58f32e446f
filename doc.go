// Package chainmetadata provides a Go implementation of the
// self-describing runtime metadata format used by Substrate-style
// chains.
//
// Runtime metadata is a versioned, SCALE-encoded description of a
// runtime's pallets, storage entries, calls, events, constants and
// errors. This library decodes and re-encodes every supported version
// of the format, versions 8 through 16, and upgrades legacy payloads
// along the lossless conversion chain.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	chain-metadata/
//	├── scale/           SCALE binary reader and writer primitives
//	├── registry/        Flat type registry backing versions 14-16
//	├── metadata/        Envelope decoding, magic and version dispatch
//	│   ├── v8..v13/     Legacy trees with inline type strings
//	│   └── v14..v16/    Modern trees with registry-backed type IDs
//	├── convert/         Lossless legacy upgrade chain (v8 -> v13)
//	├── errors/          Structured error types for debugging
//	└── cmd/metactl/     CLI for inspecting and converting payloads
//
// # Quick Start
//
// Decode a payload and walk its pallets:
//
//	m, err := metadata.Decode(payload)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	switch {
//	case m.V14 != nil:
//	    for _, p := range m.V14.Pallets {
//	        fmt.Println(p.Name)
//	    }
//	case m.V13 != nil:
//	    for _, mod := range m.V13.Modules {
//	        fmt.Println(mod.Name)
//	    }
//	}
//
// Upgrade a legacy payload to the newest legacy version:
//
//	out, err := convert.Upgrade(m, metadata.V13)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	encoded, err := out.Encode()
//
// # Format Guarantees
//
// Decoding is all-or-nothing: a payload either produces a complete,
// validated tree or a structured error naming the phase and kind of
// failure. Trailing bytes, truncated input, non-canonical compact
// integers and dangling type references are all rejected. Encoding a
// decoded tree reproduces the input bit-for-bit.
package chainmetadata
