package fifth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_stack_pop_order(t *testing.T) {
	s := stack{1, 2, 3, 4}
	vs, err := s.pop("test", 3)
	require.NoError(t, err)
	assert.Equal(t, []Value{2, 3, 4}, vs, "pop returns oldest first")
	assert.Equal(t, stack{1}, s)
}

func Test_stack_underflow_leaves_stack_unchanged(t *testing.T) {
	s := stack{1, 2}

	_, err := s.pop("test", 3)
	assert.Equal(t, StackUnderflowError{Op: "test", Need: 3, Have: 2}, err)
	assert.Equal(t, stack{1, 2}, s)

	one := stack{1}
	assert.Error(t, one.swap())
	assert.Equal(t, stack{1}, one)

	var empty stack
	_, err = empty.pop1("test")
	assert.Equal(t, StackUnderflowError{Op: "test", Need: 1, Have: 0}, err)
	assert.Error(t, empty.drop())
	assert.Error(t, empty.dup())
}

func Test_stack_swap_involution(t *testing.T) {
	s := stack{1, 2, 3}
	require.NoError(t, s.swap())
	assert.Equal(t, stack{1, 3, 2}, s)
	require.NoError(t, s.swap())
	assert.Equal(t, stack{1, 2, 3}, s, "swap twice restores the stack")
}

func Test_stack_gather_spread_inverse(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		s := stack{"keep", 1, 2, 3, 4, 5}
		orig := append(stack(nil), s...)
		require.NoError(t, s.gather(n))
		assert.Equal(t, len(orig)-n+1, len(s), "gather replaces %v values with one", n)
		require.NoError(t, s.spread())
		assert.Equal(t, orig, s, "gather(%v) then spread restores the stack", n)
	}
}

func Test_stack_gather_preserves_order(t *testing.T) {
	s := stack{1, 2, 3}
	require.NoError(t, s.gather(2))
	assert.Equal(t, stack{1, []Value{2, 3}}, s)
}

func Test_stack_spread_rejects_plain_values(t *testing.T) {
	s := stack{42}
	assert.Error(t, s.spread())
	assert.Equal(t, stack{42}, s, "failed spread must not lose the value")
}

func Test_stack_pick_pluck_consistency(t *testing.T) {
	base := stack{10, 20, 30, 40, 50}
	for idx := 0; idx < len(base); idx++ {
		s := append(stack(nil), base...)
		picked, err := s.pick(idx)
		require.NoError(t, err)
		assert.Equal(t, base, s, "pick must not modify the stack")

		plucked, err := s.pluck(idx)
		require.NoError(t, err)
		assert.Equal(t, picked, plucked, "pick(%v) and pluck(%v) see the same value", idx, idx)
		assert.Len(t, s, len(base)-1)

		// everything above idx shifts down by one
		want := append(stack(nil), base[:len(base)-1-idx]...)
		want = append(want, base[len(base)-idx:]...)
		assert.Equal(t, want, s, "pluck(%v) closes the gap", idx)
	}

	s := stack{1}
	_, err := s.pick(1)
	assert.Equal(t, StackUnderflowError{Op: "pick", Need: 2, Have: 1}, err)
	_, err = s.pluck(3)
	assert.Equal(t, StackUnderflowError{Op: "pluck", Need: 4, Have: 1}, err)
}
