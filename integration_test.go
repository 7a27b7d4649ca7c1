package lumenc

import (
	"strings"
	"testing"

	"github.com/lumenlang/lumenc/codegen"
	"github.com/lumenlang/lumenc/hir"
	"github.com/lumenlang/lumenc/internal/hirviz"
	"github.com/lumenlang/lumenc/parser"
)

// compile runs the full tokens→AST→HIR→LIR pipeline, the same sequence
// cmd/lumenc's run() drives.
func compile(t *testing.T, src string) string {
	t.Helper()

	node, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parser.Parse(%q): %v", src, err)
	}

	body, err := hir.Build(node)
	if err != nil {
		t.Fatalf("hir.Build: %v", err)
	}

	lir, err := codegen.Build(body)
	if err != nil {
		t.Fatalf("codegen.Build: %v", err)
	}

	return lir
}

func TestEndToEndIfExpression(t *testing.T) {
	lir := compile(t, `fn f() -> i32 { if 1 == 1 { 10 } else { 20 } }`)

	for _, want := range []string{
		"define i32 @f()",
		"alloca i32, align 4",
		"icmp eq",
		"br i1 %",
		"br label %bb",
		"ret i32",
	} {
		if !strings.Contains(lir, want) {
			t.Fatalf("LIR missing %q:\n%s", want, lir)
		}
	}
}

func TestEndToEndPrecedence(t *testing.T) {
	lir := compile(t, `fn f() -> i32 { 1 + 2 * 3 }`)

	// Literal operands are materialised as `add i32 <lit>, 0` ahead of
	// either operator; the combining add is the one over two registers.
	mulIdx := strings.Index(lir, "mul")
	addIdx := strings.Index(lir, "add i32 %")

	if mulIdx == -1 || addIdx == -1 || mulIdx > addIdx {
		t.Fatalf("expected mul to be computed before add:\n%s", lir)
	}
}

func TestEndToEndHIRGraphRendersAlongsideLIR(t *testing.T) {
	node, err := parser.Parse(`fn f() -> i32 { if 1 == 1 { 10 } else { 20 } }`)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}

	body, err := hir.Build(node)
	if err != nil {
		t.Fatalf("hir.Build: %v", err)
	}

	if _, err := codegen.Build(body); err != nil {
		t.Fatalf("codegen.Build: %v", err)
	}

	dot := hirviz.Render(body)
	if !strings.HasPrefix(dot, "digraph {") {
		t.Fatalf("hirviz.Render did not produce a digraph:\n%s", dot)
	}
}

func TestEndToEndRejectsChainedComparison(t *testing.T) {
	if _, err := parser.Parse(`fn f() -> i32 { 1 == 2 == 3 }`); err == nil {
		t.Fatal("expected a parse error for an unparenthesised chained comparison")
	}
}
