package fifth

import "fmt"

// stack is the working value stack. It grows and shrinks only from its
// tail, and every operation that reads N values checks depth first so a
// failed operation leaves the stack untouched.
type stack []Value

func (s *stack) depth() int { return len(*s) }

func (s *stack) push(vs ...Value) {
	*s = append(*s, vs...)
}

func (s *stack) need(op string, n int) error {
	if len(*s) < n {
		return StackUnderflowError{Op: op, Need: n, Have: len(*s)}
	}
	return nil
}

// pop removes and returns the top n values, oldest first.
func (s *stack) pop(op string, n int) ([]Value, error) {
	if err := s.need(op, n); err != nil {
		return nil, err
	}
	i := len(*s) - n
	vs := make([]Value, n)
	copy(vs, (*s)[i:])
	*s = (*s)[:i]
	return vs, nil
}

func (s *stack) pop1(op string) (Value, error) {
	if err := s.need(op, 1); err != nil {
		return nil, err
	}
	i := len(*s) - 1
	v := (*s)[i]
	(*s)[i] = nil
	*s = (*s)[:i]
	return v, nil
}

// swap exchanges the top two values.
func (s *stack) swap() error {
	if err := s.need("swap", 2); err != nil {
		return err
	}
	i := len(*s) - 1
	(*s)[i], (*s)[i-1] = (*s)[i-1], (*s)[i]
	return nil
}

// drop discards the top value.
func (s *stack) drop() error {
	_, err := s.pop1("drop")
	return err
}

// dup copies the top value.
func (s *stack) dup() error {
	if err := s.need("dup", 1); err != nil {
		return err
	}
	s.push((*s)[len(*s)-1])
	return nil
}

// gather removes the top n values and pushes them back as one composite,
// preserving their order.
func (s *stack) gather(n int) error {
	if n < 0 {
		return StackUnderflowError{Op: "gather", Need: 0, Have: n}
	}
	vs, err := s.pop("gather", n)
	if err != nil {
		return err
	}
	s.push(vs)
	return nil
}

// spread pops one composite value and pushes its elements in order.
func (s *stack) spread() error {
	v, err := s.pop1("spread")
	if err != nil {
		return err
	}
	arr, ok := v.([]Value)
	if !ok {
		s.push(v)
		return fmt.Errorf("spread: not a composite value: %v", formatValue(v))
	}
	s.push(arr...)
	return nil
}

// pick returns, without removing, the value at depth idx from the top
// (0 = top).
func (s *stack) pick(idx int) (Value, error) {
	if idx < 0 {
		return nil, StackUnderflowError{Op: "pick", Need: 1, Have: 0}
	}
	if err := s.need("pick", idx+1); err != nil {
		return nil, err
	}
	return (*s)[len(*s)-1-idx], nil
}

// pluck removes and returns the value at depth idx from the top, closing
// the gap.
func (s *stack) pluck(idx int) (Value, error) {
	if idx < 0 {
		return nil, StackUnderflowError{Op: "pluck", Need: 1, Have: 0}
	}
	if err := s.need("pluck", idx+1); err != nil {
		return nil, err
	}
	i := len(*s) - 1 - idx
	v := (*s)[i]
	copy((*s)[i:], (*s)[i+1:])
	(*s)[len(*s)-1] = nil
	*s = (*s)[:len(*s)-1]
	return v, nil
}
