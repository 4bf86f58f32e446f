package errors_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/chain-metadata/errors"
)

func TestErrorFormat(t *testing.T) {
	err := errors.New(errors.PhaseDecode, errors.KindMalformed).
		Path("pallets", "Balances").
		Detail("truncated storage entry").
		Build()

	msg := err.Error()
	for _, want := range []string{"[decode]", "malformed", "pallets.Balances", "truncated storage entry"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestErrorIsMatchesPhaseAndKind(t *testing.T) {
	err := errors.UnsupportedVersion(17)
	target := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnsupportedVersion}
	if !stderrors.Is(err, target) {
		t.Error("expected Is match on phase+kind")
	}

	other := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindBadMagic}
	if stderrors.Is(err, other) {
		t.Error("unexpected Is match across kinds")
	}
}

func TestUnwrapChain(t *testing.T) {
	cause := stderrors.New("boom")
	err := errors.Malformed(14, cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected cause in chain")
	}
}

func TestDistinguishableKinds(t *testing.T) {
	// UnsupportedVersion must never be mistaken for a structural failure.
	unsupported := errors.UnsupportedVersion(99)
	malformed := errors.Malformed(14, stderrors.New("short"))

	var e *errors.Error
	if !stderrors.As(unsupported, &e) || e.Kind != errors.KindUnsupportedVersion {
		t.Error("unsupported version lost its kind")
	}
	if !stderrors.As(malformed, &e) || e.Kind != errors.KindMalformed {
		t.Error("malformed payload lost its kind")
	}
}
