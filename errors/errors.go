package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConfig  Phase = "config"  // cache or list construction and reconfiguration
	PhaseMeasure Phase = "measure" // size getter evaluation and position caching
	PhaseSearch  Phase = "search"  // offset to index lookups
	PhaseSlot    Phase = "slot"    // slot table mutation and validation
	PhaseResolve Phase = "resolve" // section tree resolution
	PhaseRender  Phase = "render"  // render plan construction
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfRange     Kind = "out_of_range"
	KindInvalidSize    Kind = "invalid_size"
	KindInvalidOffset  Kind = "invalid_offset"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidSection Kind = "invalid_section"
	KindOverlap        Kind = "overlap"
	KindNotFound       Kind = "not_found"
)

// Sentinels for errors.Is. They carry no phase and match any phase.
var (
	ErrOutOfRange     = &Error{Kind: KindOutOfRange}
	ErrInvalidSize    = &Error{Kind: KindInvalidSize}
	ErrInvalidOffset  = &Error{Kind: KindInvalidOffset}
	ErrInvalidInput   = &Error{Kind: KindInvalidInput}
	ErrInvalidSection = &Error{Kind: KindInvalidSection}
	ErrOverlap        = &Error{Kind: KindOverlap}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
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

// Is reports whether target matches this error.
// Kinds must be equal; phases are compared only when the target has one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Phase == "" || e.Phase == t.Phase
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

// Path sets the path into the section tree
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
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

// OutOfRange creates an error for an index outside [0, count)
func OutOfRange(phase Phase, index, count int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Detail: fmt.Sprintf("requested index %d is outside of range 0..%d", index, count),
		Value:  index,
	}
}

// InvalidSize creates an error for a size getter result that is not a usable extent
func InvalidSize(index int, size float64) *Error {
	return &Error{
		Phase:  PhaseMeasure,
		Kind:   KindInvalidSize,
		Detail: fmt.Sprintf("invalid size returned for index %d of value %v", index, size),
		Value:  size,
	}
}

// MissingSizeGetter creates an error for a cache that has no size getter
func MissingSizeGetter(index int) *Error {
	return &Error{
		Phase:  PhaseMeasure,
		Kind:   KindInvalidSize,
		Detail: fmt.Sprintf("no size getter to measure index %d", index),
		Value:  index,
	}
}

// InvalidOffset creates an error for a scroll offset that cannot be searched
func InvalidOffset(offset float64) *Error {
	return &Error{
		Phase:  PhaseSearch,
		Kind:   KindInvalidOffset,
		Detail: fmt.Sprintf("invalid offset %v specified", offset),
		Value:  offset,
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

// InvalidSection creates an error for a malformed section tree
func InvalidSection(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindInvalidSection,
		Path:   path,
		Detail: detail,
	}
}

// Overlap creates an error for slots that are out of order or overlap
func Overlap(prev, next int, prevEnd, nextStart int) *Error {
	return &Error{
		Phase:  PhaseSlot,
		Kind:   KindOverlap,
		Path:   []string{fmt.Sprintf("slot[%d]", next)},
		Detail: fmt.Sprintf("starts at %d before slot[%d] ends at %d", nextStart, prev, prevEnd),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what string, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("no %s for index %d", what, index),
		Value:  index,
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
