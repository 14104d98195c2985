package fifth

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Machines share nothing, so independent instances may run concurrently
// without coordination.
func Test_VM_parallel_instances(t *testing.T) {
	const n = 8

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			var out strings.Builder
			vm := New(WithOutput(&out))
			defer vm.Close()

			ctx := context.Background()
			if err := vm.EvalString(ctx, `: square dup * ;`); err != nil {
				return err
			}
			if err := vm.EvalString(ctx, fmt.Sprintf("%v square print", i)); err != nil {
				return err
			}

			if want := fmt.Sprintf("%v\n", i*i); out.String() != want {
				return fmt.Errorf("vm %v: got output %q, want %q", i, out.String(), want)
			}
			if st := vm.Stack(); len(st) != 0 {
				return fmt.Errorf("vm %v: leftover stack %v", i, st)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func Test_VM_parallel_definitions_isolated(t *testing.T) {
	// the same name bound differently per machine must never cross over
	var g errgroup.Group
	results := make([]Value, 4)
	for i := range results {
		i := i
		g.Go(func() error {
			vm := New()
			ctx := context.Background()
			if err := vm.EvalString(ctx, fmt.Sprintf(": mine %v ;", i*100)); err != nil {
				return err
			}
			if err := vm.EvalString(ctx, "mine"); err != nil {
				return err
			}
			st := vm.Stack()
			if len(st) != 1 {
				return fmt.Errorf("vm %v: stack %v", i, st)
			}
			results[i] = st[0]
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, []Value{0, 100, 200, 300}, results)
}
