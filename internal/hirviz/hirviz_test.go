package hirviz

import (
	"strings"
	"testing"

	"github.com/lumenlang/lumenc/hir"
	"github.com/lumenlang/lumenc/parser"
)

func TestRenderIncludesSwitchAndReturnLabels(t *testing.T) {
	node, err := parser.Parse("fn f() -> i32 { if 1 == 1 { 10 } else { 20 } }")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	body, err := hir.Build(node)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	dot := Render(body)

	if !strings.HasPrefix(dot, "digraph {") {
		t.Fatalf("output does not start with digraph {:\n%s", dot)
	}

	if !strings.Contains(dot, "switch(") {
		t.Errorf("output missing switch label\ngot:\n%s", dot)
	}

	if !strings.Contains(dot, "return") {
		t.Errorf("output missing return label\ngot:\n%s", dot)
	}

	if !strings.Contains(dot, "->") {
		t.Errorf("output missing edges\ngot:\n%s", dot)
	}
}
