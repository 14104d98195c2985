package fifth

import (
	"bytes"
	"io"

	"github.com/fifth-lang/fifth/internal/flushio"
)

// VMOption configures a machine under construction.
type VMOption interface{ apply(vm *VM) }

// VMOptions combines options into one, skipping nils.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		if many, ok := opt.(vmOptions); ok {
			all = append(all, many...)
		} else if opt != nil {
			all = append(all, opt)
		}
	}
	return all
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

var defaultOptions = VMOptions(
	withInput(bytes.NewReader(nil)),
	withOutput(io.Discard),
)

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type retLimitOption int

func withInput(r io.Reader) inputOption { return inputOption{r} }

func withOutput(w io.Writer) outputOption { return outputOption{w} }

func withTee(w io.Writer) teeOption { return teeOption{w} }

func withRetLimit(limit int) retLimitOption { return retLimitOption(limit) }

func (i inputOption) apply(vm *VM) {
	vm.in = i.Reader
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Multi(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (lim retLimitOption) apply(vm *VM) {
	vm.retLimit = int(lim)
}
