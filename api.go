package fifth

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/fifth-lang/fifth/internal/panicerr"
)

// New builds a machine with the kernel dictionary installed.
func New(opts ...VMOption) *VM {
	var vm VM
	vm.ip = -1
	vm.lastLit = -1
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	vm.installKernel()
	return &vm
}

// Run scans and executes the configured input until EOF. Panics out of
// host callables are recovered here; a clean EOF is not an error.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		return vm.evalFrom(ctx, vm.in)
	})
	return vm.finish(err)
}

// EvalString scans and executes one source string.
func (vm *VM) EvalString(ctx context.Context, src string) error {
	err := panicerr.Recover("VM", func() error {
		return vm.evalFrom(ctx, strings.NewReader(src))
	})
	return vm.finish(err)
}

// Feed hands pre-resolved tokens straight to the compiler/interpreter
// dispatch, bypassing the textual scanner.
func (vm *VM) Feed(ctx context.Context, toks ...Token) error {
	for _, tok := range toks {
		if err := vm.feed(ctx, tok); err != nil {
			vm.abortDefinition()
			vm.flush()
			return err
		}
	}
	return vm.flush()
}

func (vm *VM) evalFrom(ctx context.Context, r io.Reader) error {
	sc := newScanner(r)
	for {
		tok, err := sc.next()
		if err != nil {
			if ferr := vm.flush(); ferr != nil && err == io.EOF {
				return ferr
			}
			return err
		}
		if err := vm.feed(ctx, tok); err != nil {
			vm.abortDefinition()
			vm.flush()
			return vmHaltError{err}
		}
	}
}

func WithInput(r io.Reader) VMOption { return withInput(r) }

func WithOutput(w io.Writer) VMOption { return withOutput(w) }

func WithTee(w io.Writer) VMOption { return withTee(w) }

func WithReturnLimit(limit int) VMOption { return withRetLimit(limit) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

func (vm *VM) finish(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var vmErr vmHaltError
	if errors.As(err, &vmErr) {
		err = vmErr.error
	}
	return err
}
