package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // text/JSON to bytes
	PhaseDecode   Phase = "decode"   // bytes to JSON value
	PhaseResolve  Phase = "resolve"  // type registry lookup
	PhaseValidate Phase = "validate" // metadata and registry validation
	PhaseLoad     Phase = "load"     // metadata file loading
	PhaseParse    Phase = "parse"    // metadata JSON parsing
)

// Kind categorizes the error
type Kind string

const (
	KindSchema        Kind = "schema"
	KindValueFormat   Kind = "value_format"
	KindArityMismatch Kind = "arity_mismatch"
	KindUnsupported   Kind = "unsupported"
	KindFieldMissing  Kind = "field_missing"
	KindNotFound      Kind = "not_found"
	KindInvalidData   Kind = "invalid_data"
	KindInvalidUTF8   Kind = "invalid_utf8"
	KindOverflow      Kind = "overflow"
	KindInvalidInput  Kind = "invalid_input"
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value    any
	Cause    error
	TypeID   *uint32
	Phase    Phase
	Kind     Kind
	TypeName string
	Detail   string
	Path     []string
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
		b.WriteString(joinPath(e.Path))
	}

	hasType := e.TypeName != "" || e.TypeID != nil
	if hasType {
		b.WriteString(": type ")
		if e.TypeName != "" {
			b.WriteString(e.TypeName)
		}
		if e.TypeID != nil {
			if e.TypeName != "" {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "#%d", *e.TypeID)
		}
	}

	if e.Detail != "" {
		if hasType {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// joinPath renders index segments ("[2]") without a leading dot.
func joinPath(path []string) string {
	var b strings.Builder
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any *Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
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

// Path sets the value path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// TypeName sets the display name of the schema type
func (b *Builder) TypeName(t string) *Builder {
	b.err.TypeName = t
	return b
}

// TypeID sets the registry id of the schema type
func (b *Builder) TypeID(id uint32) *Builder {
	b.err.TypeID = &id
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// Schema creates a schema error: the type graph does not describe what the codec needs.
func Schema(phase Phase, path []string, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSchema,
		Path:   path,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// TypeNotFound creates a schema error for a type id absent from the registry
func TypeNotFound(phase Phase, path []string, id uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSchema,
		Path:   path,
		TypeID: &id,
		Detail: fmt.Sprintf("type %d not found in registry", id),
	}
}

// ValueFormat creates a value format error for text that does not parse as typeName
func ValueFormat(phase Phase, path []string, typeName string, value any, cause error) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindValueFormat,
		Path:     path,
		TypeName: typeName,
		Value:    value,
		Detail:   fmt.Sprintf("cannot parse %q", fmt.Sprint(value)),
		Cause:    cause,
	}
}

// ArityMismatch creates an arity error for argument count, array length or tuple length
func ArityMismatch(phase Phase, path []string, what string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArityMismatch,
		Path:   path,
		Value:  got,
		Detail: fmt.Sprintf("%s mismatch: expected %d, got %d", what, want, got),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Value:  fieldName,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// Unsupported creates an unsupported type error
func Unsupported(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		Detail: what,
	}
}

// Truncated creates an invalid data error for input that ends early
func Truncated(phase Phase, path []string, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Value:  have,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOverflow,
		Path:     path,
		TypeName: targetType,
		Detail:   fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:    value,
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

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
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

// Load creates a metadata loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// MissingType represents a single dangling type reference
type MissingType struct {
	Referrer string // e.g. "#4 AccountId"
	ID       uint32
}

// MissingTypesError is returned when a registry references type ids it does not define
type MissingTypesError struct {
	Types []MissingType
}

// NewMissingTypesError creates an error from (referrer, missing id) pairs
func NewMissingTypesError(missing []MissingType) *MissingTypesError {
	return &MissingTypesError{Types: missing}
}

func (e *MissingTypesError) Error() string {
	if len(e.Types) == 0 {
		return "[validate] schema: no missing types specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d dangling type reference(s):\n", len(e.Types))

	// Group by referrer for cleaner output
	byRef := make(map[string][]uint32)
	var refOrder []string
	for _, m := range e.Types {
		if _, exists := byRef[m.Referrer]; !exists {
			refOrder = append(refOrder, m.Referrer)
		}
		byRef[m.Referrer] = append(byRef[m.Referrer], m.ID)
	}

	for _, ref := range refOrder {
		ids := byRef[ref]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		b.WriteString("\n  ")
		b.WriteString(ref)
		b.WriteString(":\n")
		for _, id := range ids {
			fmt.Fprintf(&b, "    - #%d\n", id)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type.
// MissingTypesError is also a schema error.
func (e *MissingTypesError) Is(target error) bool {
	switch t := target.(type) {
	case *MissingTypesError:
		return true
	case *Error:
		return t.Kind == KindSchema && (t.Phase == "" || t.Phase == PhaseValidate)
	}
	return false
}
