package fifth

import (
	"io"

	"github.com/fifth-lang/fifth/internal/flushio"
)

// VM is one concatenative machine: its dictionary, code space, data and
// return stacks, and the compiling flag are process-wide state shared by
// every word it runs. A VM is single-threaded; embedders wanting
// parallelism run one VM per goroutine.
type VM struct {
	dict dictionary
	code codeSpace

	d stack // data stack
	r []int // return stack: saved instruction pointers

	ip        int // instruction pointer, -1 while idle
	compiling bool

	lastLit int         // address of the open literal cell, -1 otherwise
	pending *definition // open colon definition
	created *Word       // latest create, awaiting does attachment

	doesMark *Word // kernel marker compiled by does

	retLimit int

	in  io.Reader
	out flushio.WriteFlusher

	logfn func(mess string, args ...interface{})
}

// Stack returns a snapshot of the data stack, bottom first.
func (vm *VM) Stack() []Value {
	out := make([]Value, len(vm.d))
	copy(out, vm.d)
	return out
}

// Close flushes any output still buffered. The machine owns no other
// resources; input and output writers belong to whoever supplied them.
func (vm *VM) Close() error {
	return vm.flush()
}

func (vm *VM) writeString(s string) error {
	if _, err := io.WriteString(vm.out, s); err != nil {
		return err
	}
	return nil
}

func (vm *VM) writeRune(r rune) error {
	_, err := vm.out.Write([]byte(string(r)))
	return err
}

func (vm *VM) flush() error {
	if vm.out == nil {
		return nil
	}
	return vm.out.Flush()
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.logfn != nil {
		vm.logfn(mess, args...)
	}
}

func (vm *VM) withLogPrefix(prefix string) func() {
	logfn := vm.logfn
	vm.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		vm.logfn = logfn
	}
}
