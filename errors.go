package fifth

import (
	"errors"
	"fmt"
)

var (
	// ErrReturnStackUnderflow reports an exit outside any running
	// invocation; within the interpreter loop an empty return stack simply
	// ends the outermost invocation.
	ErrReturnStackUnderflow = errors.New("return stack underflow")

	// ErrReturnStackOverflow reports that a nested call exceeded the
	// configured return stack capacity.
	ErrReturnStackOverflow = errors.New("return stack overflow")
)

// StackUnderflowError reports a data stack operation that needed more
// values than were present. The stack is left as it was.
type StackUnderflowError struct {
	Op   string
	Need int
	Have int
}

func (e StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow: %v needs %v values, have %v", e.Op, e.Need, e.Have)
}

// UndefinedWordError reports a name absent from the dictionary.
type UndefinedWordError string

func (name UndefinedWordError) Error() string {
	return fmt.Sprintf("undefined word %q", string(name))
}

// InvalidWordNameError reports an attempt to define a word under a name
// that is not a non-empty space-free string.
type InvalidWordNameError struct {
	Name Value
}

func (e InvalidWordNameError) Error() string {
	return fmt.Sprintf("invalid word name %v", formatValue(e.Name))
}

// ArityError reports a native callable whose argument convention cannot be
// mapped onto fixed stack arity (e.g. a variadic function).
type ArityError struct {
	Name  string
	Arity int
}

func (e ArityError) Error() string {
	if e.Arity < 0 {
		return fmt.Sprintf("word %q: arity cannot be derived", e.Name)
	}
	return fmt.Sprintf("word %q: unsatisfiable arity %v", e.Name, e.Arity)
}

// progError reports an instruction pointer that left compiled code space.
type progError int

func (addr progError) Error() string {
	return fmt.Sprintf("instruction pointer out of code space @%v", int(addr))
}

// vmHaltError wraps the cause of an abnormal halt so that Run can tell it
// apart from ordinary token-level failures.
type vmHaltError struct{ error }

func (err vmHaltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err vmHaltError) Unwrap() error { return err.error }
