package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseImport    Phase = "import"    // module resolution and execution
	PhaseResolve   Phase = "resolve"   // class lookup in module namespace
	PhaseConstruct Phase = "construct" // script object instantiation
	PhaseInvoke    Phase = "invoke"    // hook/method invocation
	PhaseRuntime   Phase = "runtime"   // engine lifecycle operations
	PhaseConfig    Phase = "config"    // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindImportFailure       Kind = "import_failure"
	KindClassNotFound       Kind = "class_not_found"
	KindConstructionFailure Kind = "construction_failure"
	KindInvocationFailure   Kind = "invocation_failure"
	KindStaleReference      Kind = "stale_reference"
	KindInvalidInput        Kind = "invalid_input"
	KindNotFound            Kind = "not_found"
	KindDuplicateSlot       Kind = "duplicate_slot"
	KindDeadEntity          Kind = "dead_entity"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Module string
	Class  string
	Hook   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Module != "" || e.Class != "" {
		b.WriteString(" at ")
		b.WriteString(e.Module)
		if e.Class != "" {
			b.WriteByte('.')
			b.WriteString(e.Class)
		}
	}

	if e.Hook != "" {
		b.WriteString(" hook ")
		b.WriteString(e.Hook)
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

// Module sets the script module name
func (b *Builder) Module(name string) *Builder {
	b.err.Module = name
	return b
}

// Class sets the script class name
func (b *Builder) Class(name string) *Builder {
	b.err.Class = name
	return b
}

// Hook sets the hook method name
func (b *Builder) Hook(name string) *Builder {
	b.err.Hook = name
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

// ImportFailure creates an error for a module that could not be resolved or executed
func ImportFailure(module string, cause error) *Error {
	return &Error{
		Phase:  PhaseImport,
		Kind:   KindImportFailure,
		Module: module,
		Detail: "import module",
		Cause:  cause,
	}
}

// ClassNotFound creates an error for a class absent from a module's exports
func ClassNotFound(module, class string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindClassNotFound,
		Module: module,
		Class:  class,
		Detail: fmt.Sprintf("class %q not exported by module", class),
	}
}

// Construction creates an error for a constructor that raised or rejected its arguments
func Construction(module, class string, cause error) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindConstructionFailure,
		Module: module,
		Class:  class,
		Detail: "instantiate class",
		Cause:  cause,
	}
}

// Invocation creates an error for a hook call that raised during execution
func Invocation(hook string, cause error) *Error {
	return &Error{
		Phase: PhaseInvoke,
		Kind:  KindInvocationFailure,
		Hook:  hook,
		Cause: cause,
	}
}

// StaleReference creates an error for any call into script state after shutdown
func StaleReference(op string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindStaleReference,
		Detail: fmt.Sprintf("%s after engine shutdown", op),
	}
}

// DuplicateSlot creates an error for a second script assignment to one entity
func DuplicateSlot(entity string) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindDuplicateSlot,
		Detail: fmt.Sprintf("entity %s already holds a script slot", entity),
	}
}

// DeadEntity creates an error for script assignment to a destroyed entity
func DeadEntity(entity string) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindDeadEntity,
		Detail: fmt.Sprintf("entity %s is not alive", entity),
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
