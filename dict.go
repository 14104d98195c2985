package fifth

import (
	"fmt"
	"reflect"
	"strings"
)

// nativeFunc is the executable form every native word reduces to.
type nativeFunc func(vm *VM) error

// Word is a dictionary entry. Exactly one behavior applies: a native
// function, a colon-defined start address, or a created data cell with an
// optional shared behavior address.
type Word struct {
	name      string
	prev      *Word // next older entry in the dictionary chain
	immediate bool

	fn    nativeFunc
	arity int

	addr int // colon-defined start address, -1 otherwise

	data *Var // created word's private data cell
	does int  // shared behavior address, -1 until attached
}

// Name returns the word's dictionary name.
func (w *Word) Name() string { return w.name }

// Immediate reports whether the word executes during compilation.
func (w *Word) Immediate() bool { return w.immediate }

func (w *Word) kindString() string {
	switch {
	case w.fn != nil:
		return "native"
	case w.data != nil:
		return "created"
	case w.addr >= 0:
		return "colon"
	}
	return "empty"
}

// dictionary maps names to words. Entries chain from newest to oldest;
// defining a name again shadows the old entry in the index while the old
// Word object, and any compiled cell bound to it, keeps working.
type dictionary struct {
	last  *Word
	index map[string]*Word
}

func (d *dictionary) define(w *Word) {
	if d.index == nil {
		d.index = make(map[string]*Word)
	}
	w.prev = d.last
	d.last = w
	d.index[w.name] = w
}

func (d *dictionary) lookup(name string) *Word {
	return d.index[name]
}

// WordOption customizes a word at registration time.
type WordOption interface{ applyWord(w *Word) }

type wordOptionFunc func(w *Word)

func (f wordOptionFunc) applyWord(w *Word) { f(w) }

// Immediate marks a registered word to execute during compilation instead
// of being compiled.
var Immediate WordOption = wordOptionFunc(func(w *Word) { w.immediate = true })

// Register defines a native word. The callable's arity is derived once
// from its signature: each invocation pops that many values (oldest first)
// and pushes the single result if the callable declares one. A callable
// may also declare a trailing error result; returning a non-nil error
// halts the current invocation. Non-function values register as zero-arity
// constants that push themselves.
func (vm *VM) Register(name string, callable interface{}, opts ...WordOption) error {
	if err := checkWordName(name); err != nil {
		return err
	}
	fn, arity, err := wrapCallable(name, callable)
	if err != nil {
		return err
	}
	w := &Word{name: name, fn: fn, arity: arity, addr: -1, does: -1}
	for _, opt := range opts {
		opt.applyWord(w)
	}
	vm.dict.define(w)
	vm.logf("register %v/%v", name, arity)
	return nil
}

// RegisterAll registers every entry of a name→callable mapping;
// non-callable values become constants.
func (vm *VM) RegisterAll(words map[string]interface{}) error {
	for name, callable := range words {
		if err := vm.Register(name, callable); err != nil {
			return err
		}
	}
	return nil
}

// Lookup exposes dictionary entries to diagnostic tooling.
func (vm *VM) Lookup(name string) *Word {
	return vm.dict.lookup(name)
}

func checkWordName(name Value) error {
	s, ok := name.(string)
	if !ok || s == "" || strings.ContainsAny(s, " \t\r\n") {
		return InvalidWordNameError{Name: name}
	}
	return nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// wrapCallable turns an arbitrary host callable into a nativeFunc plus its
// derived arity.
func wrapCallable(name string, callable interface{}) (nativeFunc, int, error) {
	fv := reflect.ValueOf(callable)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return func(vm *VM) error {
			vm.d.push(callable)
			return nil
		}, 0, nil
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, 0, ArityError{Name: name, Arity: -1}
	}
	arity := ft.NumIn()

	valOut, errOut := -1, -1
	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) == errType {
			errOut = 0
		} else {
			valOut = 0
		}
	case 2:
		if ft.Out(1) != errType {
			return nil, 0, fmt.Errorf("word %q: second result must be error, have %v", name, ft.Out(1))
		}
		valOut, errOut = 0, 1
	default:
		return nil, 0, fmt.Errorf("word %q: too many results (%v)", name, ft.NumOut())
	}

	fn := func(vm *VM) error {
		args, err := vm.d.pop(name, arity)
		if err != nil {
			return err
		}
		in := make([]reflect.Value, arity)
		for i, arg := range args {
			av, err := nativeArg(name, i, ft.In(i), arg)
			if err != nil {
				return err
			}
			in[i] = av
		}
		out := fv.Call(in)
		if errOut >= 0 {
			if e, _ := out[errOut].Interface().(error); e != nil {
				return e
			}
		}
		if valOut >= 0 {
			vm.d.push(out[valOut].Interface())
		}
		return nil
	}
	return fn, arity, nil
}

func nativeArg(name string, i int, want reflect.Type, arg Value) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}
	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(want) {
		return av, nil
	}
	if isNumericKind(av.Kind()) && isNumericKind(want.Kind()) {
		return av.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("word %q: argument %v: have %T, want %v", name, i, arg, want)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
