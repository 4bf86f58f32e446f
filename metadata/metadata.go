// Package metadata implements the versioned envelope around the
// per-version schema trees.
//
// The wire form is a fixed four-byte magic marker, one version
// discriminant byte and the version's own payload. Decoding verifies
// the magic first, then dispatches on the discriminant; payloads of
// unsupported versions are never parsed.
package metadata

import (
	"go.uber.org/zap"

	"github.com/wippyai/chain-metadata/errors"
	v10 "github.com/wippyai/chain-metadata/metadata/v10"
	v11 "github.com/wippyai/chain-metadata/metadata/v11"
	v12 "github.com/wippyai/chain-metadata/metadata/v12"
	v13 "github.com/wippyai/chain-metadata/metadata/v13"
	v14 "github.com/wippyai/chain-metadata/metadata/v14"
	v15 "github.com/wippyai/chain-metadata/metadata/v15"
	v16 "github.com/wippyai/chain-metadata/metadata/v16"
	v8 "github.com/wippyai/chain-metadata/metadata/v8"
	v9 "github.com/wippyai/chain-metadata/metadata/v9"
	"github.com/wippyai/chain-metadata/scale"
)

// Magic is the little-endian u32 reading of the ASCII marker "meta"
// that opens every encoded payload.
const Magic uint32 = 0x6174656d

// Supported version discriminants.
const (
	V8  uint8 = 8
	V9  uint8 = 9
	V10 uint8 = 10
	V11 uint8 = 11
	V12 uint8 = 12
	V13 uint8 = 13
	V14 uint8 = 14
	V15 uint8 = 15
	V16 uint8 = 16
)

// Metadata is one decoded payload: the version discriminant plus
// exactly one populated version tree.
type Metadata struct {
	Version uint8

	V8  *v8.Metadata
	V9  *v9.Metadata
	V10 *v10.Metadata
	V11 *v11.Metadata
	V12 *v12.Metadata
	V13 *v13.Metadata
	V14 *v14.Metadata
	V15 *v15.Metadata
	V16 *v16.Metadata
}

// VersionOf reads just the envelope header and reports the version
// discriminant without touching the payload.
func VersionOf(data []byte) (uint8, error) {
	r := scale.NewReader(data)
	if err := checkMagic(r); err != nil {
		return 0, err
	}
	version, err := r.ReadU8()
	if err != nil {
		return 0, errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "truncated header")
	}
	return version, nil
}

func checkMagic(r *scale.Reader) error {
	magic, err := r.ReadU32LE()
	if err != nil {
		return errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "truncated header")
	}
	if magic != Magic {
		return errors.BadMagic(magic, Magic)
	}
	return nil
}

// Decode parses an encoded payload into its version tree. It is
// all-or-nothing: registry-backed versions are validated against the
// closed-world invariant before anything is returned, and trailing
// bytes after the payload are an error.
func Decode(data []byte) (*Metadata, error) {
	r := scale.NewReader(data)
	if err := checkMagic(r); err != nil {
		return nil, err
	}
	version, err := r.ReadU8()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "truncated header")
	}
	Logger().Debug("decoding metadata",
		zap.Uint8("version", version),
		zap.Int("payload_bytes", r.Remaining()))

	m := &Metadata{Version: version}
	switch version {
	case V8:
		m.V8, err = v8.Decode(r)
	case V9:
		m.V9, err = v9.Decode(r)
	case V10:
		m.V10, err = v10.Decode(r)
	case V11:
		m.V11, err = v11.Decode(r)
	case V12:
		m.V12, err = v12.Decode(r)
	case V13:
		m.V13, err = v13.Decode(r)
	case V14:
		m.V14, err = v14.Decode(r)
	case V15:
		m.V15, err = v15.Decode(r)
	case V16:
		m.V16, err = v16.Decode(r)
	default:
		return nil, errors.UnsupportedVersion(version)
	}
	if err != nil {
		return nil, errors.Malformed(version, err)
	}
	if r.Remaining() != 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformed).
			Detail("%d trailing bytes after version %d payload", r.Remaining(), version).
			Build()
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate runs the populated tree's invariant checks. Legacy trees
// have no registry to verify, so only registry-backed versions do
// real work.
func (m *Metadata) Validate() error {
	switch {
	case m.V14 != nil:
		return m.V14.Validate()
	case m.V15 != nil:
		return m.V15.Validate()
	case m.V16 != nil:
		return m.V16.Validate()
	}
	return nil
}

// Encode writes the envelope and the populated version tree.
func (m *Metadata) Encode() ([]byte, error) {
	w := scale.NewWriter()
	w.WriteU32LE(Magic)
	w.WriteU8(m.Version)

	var err error
	switch m.Version {
	case V8:
		err = encodeTree(w, m.V8 == nil, func() error { return m.V8.Encode(w) })
	case V9:
		err = encodeTree(w, m.V9 == nil, func() error { return m.V9.Encode(w) })
	case V10:
		err = encodeTree(w, m.V10 == nil, func() error { return m.V10.Encode(w) })
	case V11:
		err = encodeTree(w, m.V11 == nil, func() error { return m.V11.Encode(w) })
	case V12:
		err = encodeTree(w, m.V12 == nil, func() error { return m.V12.Encode(w) })
	case V13:
		err = encodeTree(w, m.V13 == nil, func() error { return m.V13.Encode(w) })
	case V14:
		err = encodeTree(w, m.V14 == nil, func() error { return m.V14.Encode(w) })
	case V15:
		err = encodeTree(w, m.V15 == nil, func() error { return m.V15.Encode(w) })
	case V16:
		err = encodeTree(w, m.V16 == nil, func() error { return m.V16.Encode(w) })
	default:
		return nil, errors.UnsupportedVersion(m.Version)
	}
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func encodeTree(w *scale.Writer, missing bool, encode func() error) error {
	if missing {
		return errors.InvalidData(errors.PhaseEncode, nil, "version tree not populated")
	}
	if err := encode(); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "encoding version tree")
	}
	return nil
}

// Opaque is an encoded metadata payload carried inside another SCALE
// value as a length-prefixed byte vector, the shape runtimes hand back
// from their metadata entry points.
type Opaque []byte

// EncodeOpaque wraps an encoded payload in a byte-vector prefix.
func EncodeOpaque(data []byte) []byte {
	w := scale.NewWriter()
	w.WriteByteSlice(data)
	return w.Bytes()
}

// DecodeOpaque strips the byte-vector prefix and returns the inner
// encoded payload, still undecoded.
func DecodeOpaque(data []byte) (Opaque, error) {
	r := scale.NewReader(data)
	inner, err := r.ReadByteSlice()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindMalformed, err, "opaque wrapper")
	}
	if r.Remaining() != 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindMalformed).
			Detail("%d trailing bytes after opaque payload", r.Remaining()).
			Build()
	}
	return Opaque(inner), nil
}
