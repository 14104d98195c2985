package fifth

import (
	"fmt"
	"io"
	"strings"
)

// vmDumper renders dictionary and code space for a human. It only reads;
// dumping never changes machine semantics.
type vmDumper struct {
	vm  *VM
	out io.Writer
}

// Dump writes a readable listing of the machine's state: data stack,
// return stack, and every dictionary entry newest first with its compiled
// body where it has one.
func (vm *VM) Dump(w io.Writer) {
	vmDumper{vm: vm, out: w}.dump()
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.formatStack())
	fmt.Fprintf(dump.out, "  ret: %v\n", dump.vm.r)
	if dump.vm.compiling {
		fmt.Fprintf(dump.out, "  compiling: %v @%v\n", dump.vm.pending.name, dump.vm.pending.start)
	}
	fmt.Fprintf(dump.out, "# Dictionary (%v cells compiled)\n", dump.vm.code.here())
	for w := dump.vm.dict.last; w != nil; w = w.prev {
		dump.dumpWord(w)
	}
}

func (dump vmDumper) formatStack() string {
	parts := make([]string, len(dump.vm.d))
	for i, v := range dump.vm.d {
		parts[i] = formatValue(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (dump vmDumper) dumpWord(w *Word) {
	shadowed := ""
	if dump.vm.dict.lookup(w.name) != w {
		shadowed = " (shadowed)"
	}
	immediate := ""
	if w.immediate {
		immediate = " immediate"
	}
	switch {
	case w.fn != nil:
		fmt.Fprintf(dump.out, "  %v native/%v%v%v\n", w.name, w.arity, immediate, shadowed)
	case w.data != nil:
		if w.does >= 0 {
			fmt.Fprintf(dump.out, "  %v %v does@%v%v\n", w.name, w.data, w.does, shadowed)
		} else {
			fmt.Fprintf(dump.out, "  %v %v%v\n", w.name, w.data, shadowed)
		}
	case w.addr >= 0:
		fmt.Fprintf(dump.out, "  : %v @%v %v%v%v\n",
			w.name, w.addr, dump.formatBody(w.addr), immediate, shadowed)
	}
}

// formatBody lists a compiled body's cells from its start address through
// its exit cell.
func (dump vmDumper) formatBody(addr int) string {
	var sb strings.Builder
	for {
		c, ok := dump.vm.code.at(addr)
		if !ok {
			fmt.Fprintf(&sb, "?@%v", addr)
			return sb.String()
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
		if c.kind == cellExit {
			return sb.String()
		}
		addr++
	}
}
