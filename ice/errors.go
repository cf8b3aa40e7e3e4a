package ice

import (
	"fmt"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"
)

// Kinds of resolution failure. A *ResolutionError matches exactly one of them
// under errors.Is.
var (
	ErrUnresolvableType        = errors.New("unresolvable type")
	ErrNoPublicConstructor     = errors.New("no public constructor")
	ErrMissingRequiredArgument = errors.New("missing required argument")
	ErrCyclicDependency        = errors.New("cycle in object (dependency) graph")
	ErrConstructorFailed       = errors.New("constructor failed")
	ErrFactoryFailed           = errors.New("factory failed")
)

// ResolutionError describes why the container could not produce a value.
// It carries the type that failed, the chain of types being resolved when it
// failed and, for panics raised by user code, the Go stack.
type ResolutionError struct {
	kind    error
	detail  string
	cause   error
	typ     reflect.Type
	chain   stack
	goStack string
}

// Kind returns the sentinel error describing the failure.
func (e *ResolutionError) Kind() error { return e.kind }

// Type returns the type whose resolution failed.
func (e *ResolutionError) Type() reflect.Type { return e.typ }

// Chain returns the types being resolved when the failure happened, outermost first.
func (e *ResolutionError) Chain() []reflect.Type {
	out := make([]reflect.Type, 0, len(e.chain))
	for _, f := range e.chain.collapse() {
		out = append(out, f.key)
	}
	return out
}

// GoStack returns the Go stack captured for a panic in user code, or "".
func (e *ResolutionError) GoStack() string { return e.goStack }

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("ice: ")
	b.WriteString(e.kind.Error())
	b.WriteString(": ")
	b.WriteString(e.detail)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	if len(e.chain) > 0 {
		b.WriteString(" (resolving ")
		b.WriteString(e.chain.String())
		b.WriteString(")")
	}
	return b.String()
}

// String includes the Go stack, if any.
func (e *ResolutionError) String() string {
	if e.goStack == "" {
		return e.Error()
	}
	return fmt.Sprintf("%s\n%s", e.Error(), e.goStack)
}

// Is matches the failure kind.
func (e *ResolutionError) Is(target error) bool { return target == e.kind }

// Unwrap returns the error raised by user code, if any.
func (e *ResolutionError) Unwrap() error { return e.cause }

// Cause supports github.com/pkg/errors.Cause.
func (e *ResolutionError) Cause() error { return e.cause }

func throw(kind error, t reflect.Type, format string, a ...interface{}) {
	panic(&ResolutionError{kind: kind, typ: t, detail: fmt.Sprintf(format, a...)})
}

func throwCause(kind error, t reflect.Type, cause error, format string, a ...interface{}) {
	panic(&ResolutionError{kind: kind, typ: t, cause: cause, detail: fmt.Sprintf(format, a...)})
}

// guard runs user code. A *ResolutionError raised inside (e.g. by a nested
// MustResolve) passes through; any other panic becomes a failure of the given kind.
func guard(kind error, t reflect.Type, what string, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if re, ok := r.(*ResolutionError); ok {
			panic(re)
		}
		panic(&ResolutionError{
			kind:    kind,
			typ:     t,
			detail:  what + " panicked",
			cause:   asError(r),
			goStack: string(debug.Stack()),
		})
	}()
	fn()
}

func asError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

func getFunctionName(fn reflect.Value) string {
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		return f.Name()
	}
	return fn.Type().String()
}
