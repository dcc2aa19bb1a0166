package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhasePack     Phase = "pack"     // managed value to native slot
	PhaseUnpack   Phase = "unpack"   // native slot to managed value
	PhaseInvoke   Phase = "invoke"   // native call dispatch
	PhaseReclaim  Phase = "reclaim"  // transient buffer reclamation
	PhaseRegistry Phase = "registry" // native handler registration/lookup
	PhaseSched    Phase = "sched"    // tick-keyed scheduling
)

// Kind categorizes the error
type Kind string

const (
	KindCapacity     Kind = "capacity"
	KindTypeMismatch Kind = "type_mismatch"
	KindInvalidData  Kind = "invalid_data"
	KindInvalidUTF8  Kind = "invalid_utf8"
	KindAllocation   Kind = "allocation"
	KindOverflow     Kind = "overflow"
	KindNative       Kind = "native"
	KindInvariant    Kind = "invariant"
	KindNotFound     Kind = "not_found"
	KindNilPointer   Kind = "nil_pointer"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Slot   string
	Detail string
	Path   []string
}

// Error implements the error interface. The message leads with phase and
// kind, then narrows: argument path, type context, detail, cause.
func (e *Error) Error() string {
	msg := "[" + string(e.Phase) + "] " + string(e.Kind)

	if len(e.Path) > 0 {
		msg += " at " + strings.Join(e.Path, ".")
	}

	types := e.typeContext()
	if types != "" {
		msg += ": " + types
	}

	if e.Detail != "" {
		if types != "" {
			msg += " - " + e.Detail
		} else {
			msg += ": " + e.Detail
		}
	}

	if e.Cause != nil {
		msg += " (caused by: " + e.Cause.Error() + ")"
	}
	return msg
}

func (e *Error) typeContext() string {
	switch {
	case e.GoType != "" && e.Slot != "":
		return "Go type " + e.GoType + ", slot type " + e.Slot
	case e.GoType != "":
		return "Go type " + e.GoType
	case e.Slot != "":
		return "slot type " + e.Slot
	}
	return ""
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

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Slot sets the slot type name
func (b *Builder) Slot(t string) *Builder {
	b.err.Slot = t
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

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, slotType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Slot:   slotType,
	}
}

// Capacity creates an argument capacity error
func Capacity(phase Phase, used, max int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCapacity,
		Detail: fmt.Sprintf("argument buffer full: %d of %d slots used", used, max),
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

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// Native creates a native call failure carrying the native-supplied message
func Native(message string) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindNative,
		Detail: message,
	}
}

// Invariant creates a fatal internal-invariant violation error
func Invariant(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvariant,
		Detail: detail,
	}
}

// NotFound creates a lookup failure error
func NotFound(phase Phase, what string, key any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s not found: %v", what, key),
		Value:  key,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Slot:   targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
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

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
