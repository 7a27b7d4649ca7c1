// Package codegen lowers an hir.Body to its textual LIR representation: a
// single LLVM-style function definition with explicit allocas for user
// locals and monotonically numbered SSA registers for temporaries.
package codegen

import (
	"fmt"
	"strings"

	"github.com/lumenlang/lumenc/hir"
	"github.com/lumenlang/lumenc/types"
)

const indent = "    "

// Build lowers body to its LIR text. The output is a single `define ...`
// block; no module header or target triple is emitted.
func Build(body *hir.Body) (string, error) {
	g := &generator{
		body:     body,
		placeMap: make(map[hir.Place]string),
	}

	return g.buildFn()
}

type generator struct {
	body *hir.Body
	code strings.Builder

	regID int

	// placeMap tracks, for each Place, the register or pointer name that
	// currently holds its value.
	placeMap map[hir.Place]string
}

func (g *generator) buildFn() (string, error) {
	fmt.Fprintf(&g.code, "define %s @%s() {\n", g.returnDecl().Ty.String(), g.body.Name)

	if err := g.buildFnCode(); err != nil {
		return "", err
	}

	g.code.WriteString("}\n")

	return g.code.String(), nil
}

// buildFnCode emits the start: prelude, then BFS-walks the CFG from block
// 0, writing each reachable block exactly once.
func (g *generator) buildFnCode() error {
	g.code.WriteString("start:\n")

	for i, decl := range g.body.LocalDecls {
		user, ok := decl.Info.(hir.UserLocal)
		if !ok {
			continue
		}

		reg := "%" + user.Name
		fmt.Fprintf(&g.code, "%s%s = alloca %s, align %d\n", indent, reg, decl.Ty.String(), decl.Ty.Size())
		g.placeMap[hir.Place{Local: i}] = reg
	}

	fmt.Fprintf(&g.code, "%sbr label %%bb0\n", indent)

	visited := make(map[hir.BasicBlock]bool)
	queue := []hir.BasicBlock{0}

	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]

		if visited[block] {
			continue
		}

		visited[block] = true

		fmt.Fprintf(&g.code, "bb%d:\n", block)

		if err := g.buildBasicBlock(block); err != nil {
			return err
		}

		term := g.body.BasicBlocks[block].Terminator
		if term == nil {
			return fmt.Errorf("codegen error: bb%d has no terminator", block)
		}

		queue = append(queue, term.Successors()...)
	}

	return nil
}

func (g *generator) buildBasicBlock(block hir.BasicBlock) error {
	data := g.body.BasicBlocks[block]

	for _, stmt := range data.Statements {
		if err := g.buildAssign(stmt.Place, stmt.Rvalue); err != nil {
			return err
		}
	}

	return g.buildTerminator(data.Terminator)
}

func (g *generator) buildTerminator(term hir.Terminator) error {
	switch t := term.(type) {
	case hir.ReturnTerminator:
		retTy := g.returnDecl().Ty.String()
		reg := g.uniqueReg()

		fmt.Fprintf(&g.code, "%s%s = load %s, %s* %s\n", indent, reg, retTy, retTy, g.placeMap[hir.Place{Local: 0}])
		fmt.Fprintf(&g.code, "%sret %s %s\n", indent, retTy, reg)

	case hir.SwitchIntTerminator:
		// Only the canonical boolean two-way form is emitted; a general
		// n-way switch never reaches codegen in this revision.
		if len(t.Targets.Blocks) != 2 {
			return fmt.Errorf("codegen error: switch with %d targets", len(t.Targets.Blocks))
		}

		labelTrue := t.Targets.Blocks[0]
		labelFalse := t.Targets.Blocks[1]
		reg := g.operandRegister(t.Value)
		ty := g.body.OperandType(t.Value).String()

		fmt.Fprintf(&g.code, "%sbr %s %s, label %%bb%d, label %%bb%d\n", indent, ty, reg, labelTrue, labelFalse)

	case hir.GotoTerminator:
		fmt.Fprintf(&g.code, "%sbr label %%bb%d\n", indent, t.Target)

	default:
		return fmt.Errorf("codegen error: unsupported terminator %T", term)
	}

	return nil
}

// buildAssign lowers one Assign(place, rvalue) statement. A user-local
// destination (ptr=true) is written through the local's alloca pointer:
// a constant is stored directly, any other value is first computed into
// a fresh register and then stored; a temp destination (ptr=false)
// writes its value straight into a freshly numbered register.
func (g *generator) buildAssign(place hir.Place, rv hir.Rvalue) error {
	decl := g.body.LocalDecls[place.Local]
	ty := decl.Ty.String()

	var reg string

	ptr := false

	if user, ok := decl.Info.(hir.UserLocal); ok {
		reg = "%" + user.Name
		ptr = true
	} else {
		reg = g.uniqueReg()
	}

	switch v := rv.(type) {
	case hir.UseRvalue:
		g.buildUse(v.Operand, reg, ty, ptr)

	case hir.BinaryOpRvalue:
		if ptr {
			reg1 := g.uniqueReg()
			g.buildBinary(v.Op, v.Left, v.Right, reg1)
			g.store(reg1, ty, place)
		} else {
			g.buildBinary(v.Op, v.Left, v.Right, reg)
		}

	case hir.UnaryOpRvalue:
		if ptr {
			reg1 := g.uniqueReg()
			g.load(reg1, ty, place)
			g.placeMap[place] = reg1

			reg2 := g.uniqueReg()
			g.buildUnary(v.Op, v.Operand, reg2, ty)
			g.store(reg2, ty, place)
		} else {
			g.buildUnary(v.Op, v.Operand, reg, ty)
		}

	default:
		return fmt.Errorf("codegen error: unsupported rvalue %T", rv)
	}

	g.placeMap[place] = reg

	return nil
}

func (g *generator) buildUse(operand hir.Operand, reg, ty string, ptr bool) {
	switch o := operand.(type) {
	case hir.ConstantOperand:
		c := g.body.Consts[o.Const]

		if ptr {
			fmt.Fprintf(&g.code, "%sstore %s %s, %s* %s\n", indent, ty, c.Value, ty, reg)
		} else {
			fmt.Fprintf(&g.code, "%s%s = add %s %s, 0\n", indent, reg, ty, c.Value)
		}

	case hir.CopyOperand:
		if ptr {
			reg1 := g.uniqueReg()
			g.load(reg1, ty, o.Place)
			fmt.Fprintf(&g.code, "%sstore %s %s, %s* %s\n", indent, ty, reg1, ty, reg)
		} else {
			g.load(reg, ty, o.Place)
		}

	case hir.MoveOperand:
		// Move is a reserved operand; a move out of a slot reads it the
		// same way a copy does.
		if ptr {
			reg1 := g.uniqueReg()
			g.load(reg1, ty, o.Place)
			fmt.Fprintf(&g.code, "%sstore %s %s, %s* %s\n", indent, ty, reg1, ty, reg)
		} else {
			g.load(reg, ty, o.Place)
		}
	}
}

var binOpMnemonics = map[hir.BinOp]string{
	hir.Add:        "add",
	hir.Sub:        "sub",
	hir.Mul:        "mul",
	hir.Div:        "sdiv",
	hir.Rem:        "srem",
	hir.ShiftLeft:  "shl",
	hir.ShiftRight: "lshr",
	hir.BitAnd:     "and",
	hir.BitOr:      "or",
	hir.BitXor:     "xor",
	hir.Eq:         "icmp eq",
	hir.Ne:         "icmp ne",
	hir.Lt:         "icmp slt",
	hir.Gt:         "icmp sgt",
	hir.Le:         "icmp sle",
	hir.Ge:         "icmp sge",
}

// buildBinary emits `<reg> = <llop> <ty> <regA>, <regB>`. The emitted type
// is the wider of the two operands by byte size, ties favoring the left.
func (g *generator) buildBinary(op hir.BinOp, left, right hir.Operand, reg string) {
	regA := g.operandRegister(left)
	regB := g.operandRegister(right)
	ty := types.Wider(g.body.OperandType(left), g.body.OperandType(right)).String()

	fmt.Fprintf(&g.code, "%s%s = %s %s %s, %s\n", indent, reg, binOpMnemonics[op], ty, regA, regB)
}

func (g *generator) buildUnary(op hir.UnOp, operand hir.Operand, reg, ty string) {
	regA := g.operandRegister(operand)

	switch op {
	case hir.Neg:
		fmt.Fprintf(&g.code, "%s%s = sub %s 0, %s\n", indent, reg, ty, regA)
	case hir.Not:
		fmt.Fprintf(&g.code, "%s%s = xor %s %s, -1\n", indent, reg, ty, regA)
	}
}

func (g *generator) load(reg, ty string, place hir.Place) {
	fmt.Fprintf(&g.code, "%s%s = load %s, %s* %s\n", indent, reg, ty, ty, g.placeMap[place])
}

func (g *generator) store(reg, ty string, place hir.Place) {
	decl := g.body.LocalDecls[place.Local]

	if user, ok := decl.Info.(hir.UserLocal); ok {
		fmt.Fprintf(&g.code, "%sstore %s %s, %s* %%%s\n", indent, ty, reg, ty, user.Name)
		return
	}

	fmt.Fprintf(&g.code, "%sstore %s %s, %s* %s\n", indent, ty, reg, ty, g.placeMap[place])
}

// operandRegister resolves an operand to its textual form: constants
// embed their verbatim literal, places resolve to the most recent
// register in placeMap.
func (g *generator) operandRegister(operand hir.Operand) string {
	switch o := operand.(type) {
	case hir.CopyOperand:
		return g.placeMap[o.Place]
	case hir.MoveOperand:
		return g.placeMap[o.Place]
	case hir.ConstantOperand:
		return g.body.Consts[o.Const].Value
	default:
		return ""
	}
}

func (g *generator) uniqueReg() string {
	reg := fmt.Sprintf("%%%d", g.regID)
	g.regID++

	return reg
}

func (g *generator) returnDecl() hir.LocalDecl {
	return g.body.LocalDecls[0]
}
