package fifth

import "errors"

// The create/does protocol builds families of data-carrying words from one
// factory definition. A factory's body calls create to mint a new word
// owning a fresh data cell; the factory-body cells after does become the
// behavior every minted word shares. Invoking a minted word pushes its own
// cell, then runs the shared behavior.

// wordCreate pops a name, then an initial value, and defines a word bound
// to a fresh private data cell. The entry is held as pending so a later
// does marker in the same factory run can attach the shared behavior.
func wordCreate(vm *VM) error {
	name, err := vm.d.pop1("create")
	if err != nil {
		return err
	}
	if err := checkWordName(name); err != nil {
		return err
	}
	initial, err := vm.d.pop1("create")
	if err != nil {
		return err
	}
	w := &Word{name: name.(string), addr: -1, does: -1, data: NewVar(initial)}
	vm.dict.define(w)
	vm.created = w
	vm.logf("create %v %v", w.name, w.data)
	return nil
}

// wordDoes (immediate) compiles the runtime attachment marker into the
// factory body under construction.
func wordDoes(vm *VM) error {
	if !vm.compiling {
		return errors.New("does: only allowed inside a definition")
	}
	vm.compileCell(nativeCell(vm.doesMark))
	return nil
}

// wordDoesRun executes the marker at factory run time: the cells after the
// marker are the shared behavior, so attach their start address to the
// pending created word and leave the factory body.
func wordDoesRun(vm *VM) error {
	if vm.created == nil {
		return errors.New("does: no pending create")
	}
	vm.created.does = vm.ip
	vm.logf("does %v @%v", vm.created.name, vm.created.does)
	vm.created = nil
	return vm.exitStep()
}
