package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // bytes to schema tree
	PhaseEncode   Phase = "encode"   // schema tree to bytes
	PhaseRegistry Phase = "registry" // type registry construction and resolution
	PhaseConvert  Phase = "convert"  // cross-version conversion
	PhaseValidate Phase = "validate" // invariant checks
)

// Kind categorizes the error
type Kind string

const (
	KindBadMagic             Kind = "bad_magic"
	KindUnsupportedVersion   Kind = "unsupported_version"
	KindMalformed            Kind = "malformed"
	KindDanglingType         Kind = "dangling_type"
	KindUnsupportedDowngrade Kind = "unsupported_downgrade"
	KindInvalidData          Kind = "invalid_data"
	KindOverflow             Kind = "overflow"
	KindNotFound             Kind = "not_found"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// BadMagic creates an error for input that is not this format at all.
func BadMagic(got uint32, want uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindBadMagic,
		Detail: fmt.Sprintf("magic 0x%08x, want 0x%08x", got, want),
	}
}

// UnsupportedVersion creates an error for a version discriminant with
// no compiled-in decoder. Callers can react by upgrading the decoder.
func UnsupportedVersion(version uint8) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnsupportedVersion,
		Detail: fmt.Sprintf("metadata version %d", version),
	}
}

// Malformed creates an error for a structurally invalid payload.
func Malformed(version uint8, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindMalformed,
		Detail: fmt.Sprintf("metadata v%d payload", version),
		Cause:  cause,
	}
}

// DanglingType creates an error for a type reference absent from its
// registry.
func DanglingType(phase Phase, path []string, id uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDanglingType,
		Path:   path,
		Detail: fmt.Sprintf("type %d not present in registry", id),
	}
}

// UnsupportedDowngrade creates an error for a conversion toward an
// older version.
func UnsupportedDowngrade(from, to uint8) *Error {
	return &Error{
		Phase:  PhaseConvert,
		Kind:   KindUnsupportedDowngrade,
		Detail: fmt.Sprintf("cannot convert v%d to older v%d", from, to),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
