package fifth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_compile_interpret_duality(t *testing.T) {
	vmTestCases{
		vmTest("interpreted words run now").
			source(`1 2 swap`).
			expectStack(2, 1),

		vmTest("compiled words run later").
			source(`: flip swap ;`, `1 2`, `flip`).
			expectStack(2, 1),

		vmTest("defining leaves the stack alone").
			source(`1 : noop ; 2`).
			expectStack(1, 2),

		vmTest("immediate words run during compilation").
			source(`: mark 42 ; immediate`, `: marked mark ;`).
			expectStack(42),

		vmTest("immediate side effect is not in the body").
			source(`: mark 42 ; immediate`, `: marked mark ;`, `drop marked`).
			expectStack(),

		vmTest("undefined word fails compilation").
			source(`: broken nosuch ;`).
			expectError(UndefinedWordError("nosuch")),

		vmTest("end-define without open definition").
			source(`;`).
			expectErrorLike("; without :"),

		vmTest("does outside a definition").
			source(`does`).
			expectErrorLike("only allowed inside a definition"),
	}.run(t)
}

func Test_compile_literal_batching(t *testing.T) {
	vm := New()
	require.NoError(t, vm.EvalString(context.Background(), `: nums 1 2 3 dup 4 5 ;`))

	w := vm.Lookup("nums")
	require.NotNil(t, w)

	var kinds []cellKind
	var lits [][]Value
	for addr := w.addr; ; addr++ {
		c, ok := vm.code.at(addr)
		require.True(t, ok, "body must end in an exit cell")
		kinds = append(kinds, c.kind)
		if c.kind == cellLiteral {
			lits = append(lits, c.lits)
		}
		if c.kind == cellExit {
			break
		}
	}

	assert.Equal(t, []cellKind{cellLiteral, cellNative, cellLiteral, cellExit}, kinds,
		"runs of literals fold into single cells")
	assert.Equal(t, [][]Value{{1, 2, 3}, {4, 5}}, lits)
}

func Test_compile_batching_not_across_evals(t *testing.T) {
	// the batch pointer resets per definition, so a fresh definition never
	// extends a prior one's literal cell
	vm := New()
	ctx := context.Background()
	require.NoError(t, vm.EvalString(ctx, `: a 1 ;`))
	require.NoError(t, vm.EvalString(ctx, `: b 2 ;`))
	require.NoError(t, vm.EvalString(ctx, `a b`))
	assert.Equal(t, []Value{1, 2}, vm.Stack())
}

func Test_failed_definition_aborts_compilation(t *testing.T) {
	t.Run("source", func(t *testing.T) {
		vm := New()
		ctx := context.Background()

		err := vm.EvalString(ctx, `: broken nosuch ;`)
		var undef UndefinedWordError
		require.ErrorAs(t, err, &undef)
		assert.False(t, vm.compiling, "an error closes the open definition")
		assert.Nil(t, vm.pending)

		// back to interpreting: literals land on the stack, not in the
		// abandoned body
		require.NoError(t, vm.EvalString(ctx, `1 2`))
		assert.Equal(t, []Value{1, 2}, vm.Stack())
		assert.Nil(t, vm.Lookup("broken"), "the failed word is never published")
	})

	t.Run("tokens", func(t *testing.T) {
		vm := New()
		ctx := context.Background()

		err := vm.Feed(ctx, Lit("broken"), Ref(":"), Ref("nosuch"))
		require.Error(t, err)
		assert.False(t, vm.compiling)

		require.NoError(t, vm.Feed(ctx, Lit(3), Lit(4), Ref("+")))
		assert.Equal(t, []Value{7}, vm.Stack())
	})
}

func Test_wordDefine_rejects_nesting(t *testing.T) {
	vm := New()
	vm.compiling = true
	vm.d.push("inner")
	assert.EqualError(t, wordDefine(vm), ": nested definition")
}

func Test_define_rejects_bad_names(t *testing.T) {
	vmTestCases{
		vmTest("numeric name").
			feed(Lit(42), Ref(":")).
			expectError(InvalidWordNameError{Name: 42}),

		vmTest("empty name").
			feed(Lit(""), Ref(":")).
			expectError(InvalidWordNameError{Name: ""}),
	}.run(t)
}

func Test_Feed_tokens_directly(t *testing.T) {
	// an embedding program can drive the compiler without the scanner
	vmTestCases{
		vmTest("push and run").
			feed(Lit(2), Lit(3), Ref("+")).
			expectStack(5),

		vmTest("define via tokens").
			feed(
				Lit("twice"), Ref(":"), Lit(2), Ref("*"), Ref(";"),
				Lit(21), Ref("twice"),
			).
			expectStack(42),

		vmTest("any value can be a literal token").
			feed(Lit([]Value{1, 2}), Ref("spread")).
			expectStack(1, 2),
	}.run(t)
}
