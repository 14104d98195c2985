package fifth

import (
	"fmt"
	"strings"
)

// A cell is one executable unit of compiled code. Cells are appended to
// code space during compilation and never moved or removed, so an address
// handed out once stays valid for the life of the machine.
type cellKind uint8

const (
	// cellNative invokes a word's native behavior in place.
	cellNative cellKind = iota
	// cellLiteral pushes its values verbatim.
	cellLiteral
	// cellCall enters another word's body through the return stack.
	cellCall
	// cellExit pops the return stack into the instruction pointer, or ends
	// the outermost invocation when the return stack is empty.
	cellExit
)

type cell struct {
	kind cellKind
	word *Word   // target for cellNative and cellCall
	lits []Value // payload for cellLiteral
}

func nativeCell(w *Word) cell      { return cell{kind: cellNative, word: w} }
func callCell(w *Word) cell        { return cell{kind: cellCall, word: w} }
func literalCell(vs ...Value) cell { return cell{kind: cellLiteral, lits: vs} }
func exitCell() cell               { return cell{kind: cellExit} }

func (c cell) String() string {
	switch c.kind {
	case cellNative:
		return c.word.name
	case cellLiteral:
		parts := make([]string, len(c.lits))
		for i, v := range c.lits {
			parts[i] = formatValue(v)
		}
		return "push(" + strings.Join(parts, " ") + ")"
	case cellCall:
		return "call " + c.word.name
	case cellExit:
		return "exit"
	}
	return fmt.Sprintf("cell?%d", c.kind)
}

// codeSpace is the append-only sequence of compiled cells.
type codeSpace struct {
	cells []cell
}

// here is the address the next compiled cell will occupy.
func (cs *codeSpace) here() int { return len(cs.cells) }

// compile appends one cell and returns its address.
func (cs *codeSpace) compile(c cell) int {
	addr := len(cs.cells)
	cs.cells = append(cs.cells, c)
	return addr
}

func (cs *codeSpace) at(addr int) (cell, bool) {
	if addr < 0 || addr >= len(cs.cells) {
		return cell{}, false
	}
	return cs.cells[addr], true
}
