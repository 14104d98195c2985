package fifth

import (
	"context"
	"errors"
	"fmt"
)

// invoke runs a word to completion as the outermost invocation. Per the
// exit convention, the outermost frame pushes nothing on the return stack;
// the terminal exit finds it empty and halts the loop.
func (vm *VM) invoke(ctx context.Context, w *Word) error {
	switch {
	case w.fn != nil:
		return w.fn(vm)
	case w.data != nil:
		vm.d.push(w.data)
		if w.does < 0 {
			return nil
		}
		return vm.runFrom(ctx, w.does)
	case w.addr >= 0:
		return vm.runFrom(ctx, w.addr)
	}
	return fmt.Errorf("word %q has no behavior", w.name)
}

// runFrom drives the threaded inner loop from a start address until the
// terminal exit clears the instruction pointer. Nesting happens only
// through the explicit return stack, never through the host call stack, so
// call depth is bounded by the return stack capacity alone.
func (vm *VM) runFrom(ctx context.Context, addr int) error {
	if vm.ip >= 0 {
		return errors.New("re-entrant execution")
	}
	vm.ip = addr
	depth := len(vm.r)
	if vm.logfn != nil {
		defer vm.withLogPrefix("\t")()
	}
	for vm.ip >= 0 {
		if err := ctx.Err(); err != nil {
			return vm.abortRun(depth, err)
		}
		if err := vm.step(); err != nil {
			return vm.abortRun(depth, err)
		}
	}
	return nil
}

// abortRun unwinds a failed invocation: the instruction pointer goes idle
// and any frames the invocation pushed are discarded, so the next
// invocation's terminal exit cannot resume the aborted body.
func (vm *VM) abortRun(depth int, err error) error {
	vm.ip = -1
	vm.r = vm.r[:depth]
	return err
}

// step reads the cell under the instruction pointer, advances the pointer,
// then acts on the cell.
func (vm *VM) step() error {
	at := vm.ip
	c, ok := vm.code.at(at)
	if !ok {
		return progError(at)
	}
	vm.ip++
	if vm.logfn != nil {
		vm.logf("exec @%v %v -- r:%v s:%v", at, c, vm.r, []Value(vm.d))
	}
	switch c.kind {
	case cellNative:
		return c.word.fn(vm)
	case cellLiteral:
		vm.d.push(c.lits...)
		return nil
	case cellCall:
		return vm.enter(c.word)
	case cellExit:
		return vm.exitStep()
	}
	return fmt.Errorf("invalid cell @%v", at)
}

// enter dispatches a call cell on its target word's behavior. A created
// word pushes its private data cell first, then runs the shared behavior
// if one has been attached.
func (vm *VM) enter(w *Word) error {
	switch {
	case w.fn != nil:
		return w.fn(vm)
	case w.data != nil:
		vm.d.push(w.data)
		if w.does < 0 {
			return nil
		}
		return vm.call(w.does)
	case w.addr >= 0:
		return vm.call(w.addr)
	}
	return fmt.Errorf("word %q has no behavior", w.name)
}

// call saves the instruction pointer on the return stack and jumps.
func (vm *VM) call(addr int) error {
	if lim := vm.retLimit; lim > 0 && len(vm.r) >= lim {
		return ErrReturnStackOverflow
	}
	vm.r = append(vm.r, vm.ip)
	vm.ip = addr
	return nil
}

// exitStep pops the return stack into the instruction pointer; with an
// empty return stack it ends the outermost invocation.
func (vm *VM) exitStep() error {
	if len(vm.r) == 0 {
		if vm.ip < 0 {
			return ErrReturnStackUnderflow
		}
		vm.logf("exit halt")
		vm.ip = -1
		return nil
	}
	i := len(vm.r) - 1
	vm.ip, vm.r = vm.r[i], vm.r[:i]
	vm.logf("exit prog <- %v <- ret[%v]", vm.ip, i)
	return nil
}
