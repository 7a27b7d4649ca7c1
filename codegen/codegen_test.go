package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenlang/lumenc/hir"
	"github.com/lumenlang/lumenc/parser"
)

func mustBuild(t *testing.T, src string) string {
	t.Helper()

	node, err := parser.Parse(src)
	require.NoErrorf(t, err, "Parse(%q)", src)

	body, err := hir.Build(node)
	require.NoErrorf(t, err, "hir.Build(%q)", src)

	out, err := Build(body)
	require.NoErrorf(t, err, "codegen.Build(%q)", src)

	return out
}

func TestZeroConstant(t *testing.T) {
	out := mustBuild(t, "fn f() -> i32 { 0 }")

	for _, want := range []string{
		"%retval = alloca i32, align 4",
		"store i32 0, i32* %retval",
		"= load i32, i32* %retval",
		"ret i32 %",
	} {
		require.Containsf(t, out, want, "output missing %q\ngot:\n%s", want, out)
	}
}

func TestAddition(t *testing.T) {
	out := mustBuild(t, "fn f() -> i32 { 1 + 2 }")

	require.Contains(t, out, "add i32")
	require.Contains(t, out, "store i32", "final store into %retval")
}

func TestPrecedenceMulBeforeAdd(t *testing.T) {
	out := mustBuild(t, "fn f() -> i32 { 1 + 2 * 3 }")

	// Literal operands are materialised as `add i32 <lit>, 0` ahead of
	// either operator; the combining add is the one over two registers.
	mulIdx := strings.Index(out, "= mul ")
	addIdx := strings.Index(out, "= add i32 %")

	require.NotEqual(t, -1, mulIdx)
	require.NotEqual(t, -1, addIdx)
	require.Lessf(t, mulIdx, addIdx, "expected mul before add in output:\n%s", out)
}

func TestNegation(t *testing.T) {
	out := mustBuild(t, "fn f() -> i32 { -5 }")

	require.Contains(t, out, "= sub i32 0,", "negation as sub 0, x")
}

func TestIfExpressionBranches(t *testing.T) {
	out := mustBuild(t, "fn f() -> i32 { if 1 == 1 { 10 } else { 20 } }")

	require.Contains(t, out, "icmp eq")
	require.Contains(t, out, "br i1 ")
	require.GreaterOrEqualf(t, strings.Count(out, "bb"), 3, "want at least then/else/end labels\ngot:\n%s", out)
}

func TestShift(t *testing.T) {
	out := mustBuild(t, "fn f() -> i32 { 1 << 2 }")

	require.Contains(t, out, "= shl i32")
}

func TestNoRegisterAssignedTwice(t *testing.T) {
	out := mustBuild(t, "fn f() -> i32 { if 1 < 2 { 1 + 2 } else { 3 * 4 } }")

	seen := make(map[string]int)

	for _, line := range strings.Split(out, "\n") {
		idx := strings.Index(line, " = ")
		if idx == -1 {
			continue
		}

		lhs := strings.TrimSpace(line[:idx])
		if !strings.HasPrefix(lhs, "%") {
			continue
		}

		seen[lhs]++
	}

	for reg, count := range seen {
		require.LessOrEqualf(t, count, 1, "register %s assigned %d times (SSA violation)", reg, count)
	}
}
