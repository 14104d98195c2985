package fifth

import "testing"

func Test_kernel_arithmetic(t *testing.T) {
	vmTestCases{
		vmTest("add").source(`3 4 +`).expectStack(7),
		vmTest("add floats").source(`1.5 2.25 +`).expectStack(3.75),
		vmTest("add mixed promotes").source(`1 0.5 +`).expectStack(1.5),
		vmTest("concat strings").source(`"foo" "bar" +`).expectStack("foobar"),
		vmTest("sub").source(`10 3 -`).expectStack(7),
		vmTest("mul").source(`6 7 *`).expectStack(42),
		vmTest("div truncates ints").source(`7 2 /`).expectStack(3),
		vmTest("div floats").source(`7.0 2 /`).expectStack(3.5),
		vmTest("div by zero").source(`1 0 /`).expectErrorLike("divide by zero"),
		vmTest("mod").source(`7 3 mod`).expectStack(1),
		vmTest("mod by zero").source(`7 0 mod`).expectErrorLike("divide by zero"),
		vmTest("neg").source(`5 neg`).expectStack(-5),
		vmTest("add non-numeric").source(`"s" 1 +`).expectErrorLike("not numeric"),
	}.run(t)
}

func Test_kernel_comparison(t *testing.T) {
	vmTestCases{
		vmTest("eq").source(`3 3 =`).expectStack(true),
		vmTest("eq mixed types").source(`3 "3" =`).expectStack(false),
		vmTest("eq composites").source(`1 2 2 gather  1 2 2 gather  =`).expectStack(true),
		vmTest("lt").source(`2 3 <`).expectStack(true),
		vmTest("lt strings").source(`"apple" "banana" <`).expectStack(true),
		vmTest("gt").source(`2 3 >`).expectStack(false),
		vmTest("gt mixed promotes").source(`2.5 2 >`).expectStack(true),
	}.run(t)
}

func Test_kernel_stack_words(t *testing.T) {
	vmTestCases{
		vmTest("swap").source(`1 2 swap`).expectStack(2, 1),
		vmTest("drop").source(`1 2 drop`).expectStack(1),
		vmTest("dup").source(`1 2 dup`).expectStack(1, 2, 2),
		vmTest("over").source(`1 2 over`).expectStack(1, 2, 1),
		vmTest("depth").source(`1 2 depth`).expectStack(1, 2, 2),
		vmTest("depth empty").source(`depth`).expectStack(0),
		vmTest("gather").source(`1 2 3 2 gather`).expectStack(1, []Value{2, 3}),
		vmTest("gather spread round trip").source(`1 2 3 2 gather spread`).expectStack(1, 2, 3),
		vmTest("pick").source(`10 20 30 1 pick`).expectStack(10, 20, 30, 20),
		vmTest("pluck").source(`10 20 30 1 pluck`).expectStack(10, 30, 20),
		vmTest("pick out of range").
			source(`1 2 pick`).
			expectError(StackUnderflowError{Op: "pick", Need: 3, Have: 1}),
	}.run(t)
}

func Test_kernel_output(t *testing.T) {
	vmTestCases{
		vmTest("print value and newline").source(`42 print`).expectOutput("42\n"),
		vmTest("print string unquoted").source(`"hi" print`).expectOutput("hi\n"),
		vmTest("print composite").source(`1 "a" 2 gather print`).expectOutput(`[1 "a"]` + "\n"),
		vmTest("echo rune").source(`65 echo 66 echo cr`).expectOutput("AB\n"),
		vmTest("echo string head").source(`"x" echo cr`).expectOutput("x\n"),
		vmTest("echo non-character").source(`1 2 gather echo`).expectErrorLike("not a character"),
	}.run(t)
}
