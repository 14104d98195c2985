package fifth

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// installKernel populates a fresh machine's dictionary: the raw stack and
// defining words first, then the arithmetic vocabulary through the same
// Register bridge host code uses, then a few colon-defined words fed
// through the compiler itself.
func (vm *VM) installKernel() {
	vm.kernelWord(":", 1, false, wordDefine)
	vm.kernelWord(";", 0, true, wordEndDefine)
	vm.kernelWord("immediate", 0, false, wordImmediate)
	vm.kernelWord("create", 2, false, wordCreate)
	vm.doesMark = vm.kernelWord("(does)", 0, false, wordDoesRun)
	vm.kernelWord("does", 0, true, wordDoes)

	vm.kernelWord("swap", 2, false, func(vm *VM) error { return vm.d.swap() })
	vm.kernelWord("drop", 1, false, func(vm *VM) error { return vm.d.drop() })
	vm.kernelWord("dup", 1, false, func(vm *VM) error { return vm.d.dup() })
	vm.kernelWord("over", 2, false, func(vm *VM) error {
		v, err := vm.d.pick(1)
		if err != nil {
			return err
		}
		vm.d.push(v)
		return nil
	})
	vm.kernelWord("depth", 0, false, func(vm *VM) error {
		vm.d.push(vm.d.depth())
		return nil
	})
	vm.kernelWord("gather", 1, false, func(vm *VM) error {
		v, err := vm.d.pop1("gather")
		if err != nil {
			return err
		}
		n, err := valueInt("gather", v)
		if err != nil {
			return err
		}
		return vm.d.gather(n)
	})
	vm.kernelWord("spread", 1, false, func(vm *VM) error { return vm.d.spread() })
	vm.kernelWord("pick", 1, false, func(vm *VM) error {
		idx, err := vm.popIndex("pick")
		if err != nil {
			return err
		}
		v, err := vm.d.pick(idx)
		if err != nil {
			return err
		}
		vm.d.push(v)
		return nil
	})
	vm.kernelWord("pluck", 1, false, func(vm *VM) error {
		idx, err := vm.popIndex("pluck")
		if err != nil {
			return err
		}
		v, err := vm.d.pluck(idx)
		if err != nil {
			return err
		}
		vm.d.push(v)
		return nil
	})

	vm.kernelWord("load", 1, false, wordLoad)
	vm.kernelWord("store", 2, false, wordStore)

	vm.kernelWord("print", 1, false, func(vm *VM) error {
		v, err := vm.d.pop1("print")
		if err != nil {
			return err
		}
		if err := vm.writeString(displayValue(v) + "\n"); err != nil {
			return err
		}
		return vm.flush()
	})
	vm.kernelWord("echo", 1, false, func(vm *VM) error {
		v, err := vm.d.pop1("echo")
		if err != nil {
			return err
		}
		r, err := valueRune("echo", v)
		if err != nil {
			return err
		}
		return vm.writeRune(r)
	})
	vm.kernelWord("cr", 0, false, func(vm *VM) error {
		if err := vm.writeRune('\n'); err != nil {
			return err
		}
		return vm.flush()
	})

	if err := vm.RegisterAll(kernelCallables); err != nil {
		panic(fmt.Sprintf("fifth: kernel registration: %v", err))
	}
	for _, toks := range kernelDefs {
		if err := vm.Feed(context.Background(), toks...); err != nil {
			panic(fmt.Sprintf("fifth: kernel bootstrap: %v", err))
		}
	}
}

// popIndex pops a stack index argument for pick/pluck.
func (vm *VM) popIndex(op string) (int, error) {
	v, err := vm.d.pop1(op)
	if err != nil {
		return 0, err
	}
	return valueInt(op, v)
}

// wordLoad pops a data cell and pushes its current value.
func wordLoad(vm *VM) error {
	v, err := vm.d.pop1("load")
	if err != nil {
		return err
	}
	va, ok := v.(*Var)
	if !ok {
		return fmt.Errorf("load: not a variable: %v", formatValue(v))
	}
	vm.d.push(va.Load())
	return nil
}

// wordStore pops a data cell, then a value, and stores the value into the
// cell.
func wordStore(vm *VM) error {
	v, err := vm.d.pop1("store")
	if err != nil {
		return err
	}
	va, ok := v.(*Var)
	if !ok {
		return fmt.Errorf("store: not a variable: %v", formatValue(v))
	}
	val, err := vm.d.pop1("store")
	if err != nil {
		return err
	}
	va.Store(val)
	return nil
}

var errDivideByZero = errors.New("divide by zero")

// kernelCallables go through the public reflection bridge, both to keep
// them honest and to exercise the bridge from the first word up.
var kernelCallables = map[string]interface{}{
	"+": func(a, b Value) (Value, error) {
		if as, ok := a.(string); ok {
			if bs, ok := b.(string); ok {
				return as + bs, nil
			}
		}
		return numericOp("+", a, b,
			func(a, b int) (int, error) { return a + b, nil },
			func(a, b float64) float64 { return a + b })
	},
	"-": func(a, b Value) (Value, error) {
		return numericOp("-", a, b,
			func(a, b int) (int, error) { return a - b, nil },
			func(a, b float64) float64 { return a - b })
	},
	"*": func(a, b Value) (Value, error) {
		return numericOp("*", a, b,
			func(a, b int) (int, error) { return a * b, nil },
			func(a, b float64) float64 { return a * b })
	},
	"/": func(a, b Value) (Value, error) {
		return numericOp("/", a, b,
			func(a, b int) (int, error) {
				if b == 0 {
					return 0, errDivideByZero
				}
				return a / b, nil
			},
			func(a, b float64) float64 { return a / b })
	},
	"mod": func(a, b Value) (Value, error) {
		return numericOp("mod", a, b,
			func(a, b int) (int, error) {
				if b == 0 {
					return 0, errDivideByZero
				}
				return a % b, nil
			},
			func(a, b float64) float64 { return math.Mod(a, b) })
	},
	"neg": func(a Value) (Value, error) {
		return numericOp("neg", a, -1,
			func(a, b int) (int, error) { return a * b, nil },
			func(a, b float64) float64 { return a * b })
	},
	"=": func(a, b Value) Value { return equalValues(a, b) },
	"<": func(a, b Value) (Value, error) {
		c, err := compareValues("<", a, b)
		return c < 0, err
	},
	">": func(a, b Value) (Value, error) {
		c, err := compareValues(">", a, b)
		return c > 0, err
	},
}

// kernelDefs are colon definitions fed through the compiler at startup.
// variable and constant are built on create/does, so the protocol is
// exercised before any user code runs.
var kernelDefs = [][]Token{
	// usage: "name" variable
	{Lit("variable"), Ref(":"), Lit(nil), Ref("swap"), Ref("create"), Ref(";")},
	// usage: value "name" constant
	{Lit("constant"), Ref(":"), Ref("create"), Ref("does"), Ref("load"), Ref(";")},
}
