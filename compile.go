package fifth

import (
	"context"
	"errors"
)

// Token is one unit from the token source: either a literal value or a
// reference to a dictionary name. How tokens are produced (the textual
// scanner here, an embedding program, generated code) is the caller's
// business.
type Token struct {
	word   string
	lit    Value
	isWord bool
}

// Ref makes a word-reference token.
func Ref(name string) Token { return Token{word: name, isWord: true} }

// Lit makes a literal token.
func Lit(v Value) Token { return Token{lit: v} }

func (tok Token) String() string {
	if tok.isWord {
		return tok.word
	}
	return formatValue(tok.lit)
}

// definition tracks an open colon definition between ":" and ";".
type definition struct {
	name  string
	start int
}

// feed consumes one token under the dual compile/interpret rule: literals
// compile to a literal cell or push directly; word references compile to a
// call unless the machine is interpreting or the word is immediate, in
// which case they execute now.
func (vm *VM) feed(ctx context.Context, tok Token) error {
	if !tok.isWord {
		if vm.compiling {
			vm.logf("compile literal %v", formatValue(tok.lit))
			vm.compileLiteral(tok.lit)
			return nil
		}
		vm.logf("push literal %v", formatValue(tok.lit))
		vm.d.push(tok.lit)
		return nil
	}

	w := vm.dict.lookup(tok.word)
	if w == nil {
		return UndefinedWordError(tok.word)
	}
	if vm.compiling && !w.immediate {
		vm.logf("compile %v @%v", w.name, vm.code.here())
		vm.compileWord(w)
		return nil
	}
	vm.logf("invoke %v", w.name)
	return vm.invoke(ctx, w)
}

// compileCell appends a cell and invalidates literal batching.
func (vm *VM) compileCell(c cell) int {
	vm.lastLit = -1
	return vm.code.compile(c)
}

// compileLiteral appends a literal-push cell, folding runs of consecutive
// literals into one cell.
func (vm *VM) compileLiteral(v Value) {
	if vm.lastLit >= 0 && vm.lastLit == vm.code.here()-1 {
		vm.code.cells[vm.lastLit].lits = append(vm.code.cells[vm.lastLit].lits, v)
		return
	}
	vm.lastLit = vm.code.compile(literalCell(v))
}

func (vm *VM) compileWord(w *Word) {
	if w.fn != nil {
		vm.compileCell(nativeCell(w))
		return
	}
	vm.compileCell(callCell(w))
}

// wordDefine begins a colon definition. The new word's name comes off the
// data stack, so the token source only ever supplies literals and word
// references.
func wordDefine(vm *VM) error {
	if vm.compiling {
		return errors.New(": nested definition")
	}
	name, err := vm.d.pop1(":")
	if err != nil {
		return err
	}
	if err := checkWordName(name); err != nil {
		return err
	}
	vm.pending = &definition{name: name.(string), start: vm.code.here()}
	vm.compiling = true
	vm.lastLit = -1
	vm.logf("define %v -> @%v", vm.pending.name, vm.pending.start)
	return nil
}

// wordEndDefine (immediate) seals the open definition: it compiles the
// exit cell and publishes the word.
func wordEndDefine(vm *VM) error {
	if vm.pending == nil {
		return errors.New("; without :")
	}
	vm.compileCell(exitCell())
	w := &Word{name: vm.pending.name, addr: vm.pending.start, does: -1}
	vm.dict.define(w)
	vm.logf("defined %v @%v", w.name, w.addr)
	vm.pending = nil
	vm.compiling = false
	return nil
}

// abortDefinition discards an open definition so the token stream after an
// error starts interpreting from a clean slate. Cells already compiled for
// the abandoned body stay in code space, unreferenced; code space is
// append-only.
func (vm *VM) abortDefinition() {
	if vm.pending != nil {
		vm.logf("abort %v @%v", vm.pending.name, vm.pending.start)
	}
	vm.pending = nil
	vm.compiling = false
	vm.lastLit = -1
}

// wordImmediate marks the most recently defined word immediate.
func wordImmediate(vm *VM) error {
	if vm.dict.last == nil {
		return errors.New("immediate: empty dictionary")
	}
	vm.dict.last.immediate = true
	vm.logf("immediate %v", vm.dict.last.name)
	return nil
}

func (vm *VM) kernelWord(name string, arity int, immediate bool, fn nativeFunc) *Word {
	w := &Word{name: name, fn: fn, arity: arity, immediate: immediate, addr: -1, does: -1}
	vm.dict.define(w)
	return w
}
