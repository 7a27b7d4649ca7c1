// Package hirviz renders a lowered hir.Body as Graphviz DOT text, purely
// for human inspection. It reads a finished Body and never feeds back
// into lex/parse/lower/codegen.
package hirviz

import (
	"fmt"
	"strings"

	"github.com/lumenlang/lumenc/hir"
)

// Render returns a standalone `digraph { ... }` document: one node per
// basic block, one edge per Goto or SwitchInt successor. Switch edges are
// labelled with their branch value; a Return shows as a `return` line in
// its block's node label, since it has no outgoing edge.
func Render(body *hir.Body) string {
	var out strings.Builder

	out.WriteString("digraph {\n")
	out.WriteString("    rankdir=TB\n")
	out.WriteString("    node [shape=box style=filled fontsize=8 fontname=Verdana fillcolor=\"#efefef\"]\n")
	out.WriteString("    edge [fontsize=8 fontname=Verdana]\n\n")

	for i, bb := range body.BasicBlocks {
		fmt.Fprintf(&out, "    bb%d [label=\"%s\"]\n", i, nodeLabel(i, bb))
	}

	out.WriteString("\n")

	for i, bb := range body.BasicBlocks {
		writeEdges(&out, i, bb.Terminator)
	}

	out.WriteString("}\n")

	return out.String()
}

func nodeLabel(i int, bb hir.BasicBlockData) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("bb%d", i))

	for _, stmt := range bb.Statements {
		lines = append(lines, fmt.Sprintf("%s = %s", placeString(stmt.Place), rvalueString(stmt.Rvalue)))
	}

	switch t := bb.Terminator.(type) {
	case hir.ReturnTerminator:
		lines = append(lines, "return")
	case hir.SwitchIntTerminator:
		lines = append(lines, fmt.Sprintf("switch(%s)", operandString(t.Value)))
	}

	return strings.Join(lines, "\\n")
}

func writeEdges(out *strings.Builder, i int, term hir.Terminator) {
	switch t := term.(type) {
	case hir.GotoTerminator:
		fmt.Fprintf(out, "    bb%d -> bb%d\n", i, t.Target)

	case hir.SwitchIntTerminator:
		for idx, target := range t.Targets.Blocks {
			label := ""
			if idx < len(t.Targets.Values) {
				label = fmt.Sprintf("%d", t.Targets.Values[idx])
			}

			fmt.Fprintf(out, "    bb%d -> bb%d [label=\"%s\"]\n", i, target, label)
		}
	}
}

func placeString(p hir.Place) string {
	return fmt.Sprintf("%%%d", p.Local)
}

func operandString(op hir.Operand) string {
	switch o := op.(type) {
	case hir.CopyOperand:
		return "copy " + placeString(o.Place)
	case hir.MoveOperand:
		return "move " + placeString(o.Place)
	case hir.ConstantOperand:
		return fmt.Sprintf("const#%d", o.Const)
	default:
		return "?"
	}
}

var binOpSymbols = map[hir.BinOp]string{
	hir.Add: "+", hir.Sub: "-", hir.Mul: "*", hir.Div: "/", hir.Rem: "%",
	hir.BitXor: "^", hir.BitAnd: "&", hir.BitOr: "|",
	hir.ShiftLeft: "<<", hir.ShiftRight: ">>",
	hir.Eq: "==", hir.Ne: "!=", hir.Lt: "<", hir.Gt: ">", hir.Le: "<=", hir.Ge: ">=",
}

var unOpSymbols = map[hir.UnOp]string{
	hir.Neg: "-",
	hir.Not: "!",
}

func rvalueString(rv hir.Rvalue) string {
	switch v := rv.(type) {
	case hir.UseRvalue:
		return operandString(v.Operand)
	case hir.BinaryOpRvalue:
		return fmt.Sprintf("%s %s %s", operandString(v.Left), binOpSymbols[v.Op], operandString(v.Right))
	case hir.UnaryOpRvalue:
		return unOpSymbols[v.Op] + operandString(v.Operand)
	default:
		return "?"
	}
}
