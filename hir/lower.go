package hir

import (
	"fmt"

	"github.com/lumenlang/lumenc/ast"
	"github.com/lumenlang/lumenc/types"
)

// Build lowers one parsed function item to a Body.
func Build(node *ast.Node) (*Body, error) {
	fn, ok := node.Fn()
	if !ok {
		return nil, fmt.Errorf("lowering error: top-level item is not a function")
	}

	if fn.Body == nil {
		return nil, fmt.Errorf("lowering error: missing function body")
	}

	b := &builder{
		body: &Body{
			Name:     node.Name,
			ArgCount: len(fn.Sig.Params),
		},
	}

	b.body.LocalDecls = append(b.body.LocalDecls, LocalDecl{
		Ty:   fn.Sig.Return,
		Info: UserLocal{Name: "retval"},
	})

	for _, param := range fn.Sig.Params {
		b.body.LocalDecls = append(b.body.LocalDecls, LocalDecl{
			Ty:   param.Ty,
			Info: UserLocal{Name: param.Name},
		})
	}

	entry := b.newBlock()

	landing, err := b.buildBlock(fn.Body, entry, Place{Local: 0}, fn.Sig.Return)
	if err != nil {
		return nil, err
	}

	b.body.BasicBlocks[landing].Terminator = ReturnTerminator{}

	return b.body, nil
}

// builder accumulates a Body while walking the AST.
type builder struct {
	body *Body
}

func (b *builder) newBlock() BasicBlock {
	b.body.BasicBlocks = append(b.body.BasicBlocks, BasicBlockData{})
	return BasicBlock(len(b.body.BasicBlocks) - 1)
}

func (b *builder) newTemp(ty types.Type) Place {
	b.body.LocalDecls = append(b.body.LocalDecls, LocalDecl{Ty: ty, Info: TempLocal{}})
	return Place{Local: len(b.body.LocalDecls) - 1}
}

func (b *builder) addConst(ty types.Type, value string) int {
	b.body.Consts = append(b.body.Consts, Const{Ty: ty, Value: value})
	return len(b.body.Consts) - 1
}

func (b *builder) assign(block BasicBlock, place Place, rv Rvalue) {
	bb := &b.body.BasicBlocks[block]
	bb.Statements = append(bb.Statements, Statement{Place: place, Rvalue: rv})
}

// buildBlock lowers each statement of block in order within cur. A tail
// ExprStmt's value becomes the assignment to target; Semi and Let are
// reserved constructs and are lowering errors in this revision.
func (b *builder) buildBlock(block *ast.Block, cur BasicBlock, target Place, targetType types.Type) (BasicBlock, error) {
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *ast.ExprStmt:
			var err error

			cur, err = b.buildExpr(s.Expr, cur, target, targetType)
			if err != nil {
				return 0, err
			}
		case *ast.SemiStmt:
			return 0, fmt.Errorf("lowering error: use of an unlowered construct: Semi")
		case *ast.LetStmt:
			return 0, fmt.Errorf("lowering error: use of an unlowered construct: Let")
		case *ast.ItemStmt:
			return 0, fmt.Errorf("lowering error: use of an unlowered construct: Item")
		default:
			return 0, fmt.Errorf("lowering error: unsupported statement")
		}
	}

	return cur, nil
}

var binOpTable = map[ast.BinaryOp]BinOp{
	ast.OpAdd:    Add,
	ast.OpSub:    Sub,
	ast.OpMul:    Mul,
	ast.OpDiv:    Div,
	ast.OpRem:    Rem,
	ast.OpBitAnd: BitAnd,
	ast.OpBitOr:  BitOr,
	ast.OpBitXor: BitXor,
	ast.OpShl:    ShiftLeft,
	ast.OpShr:    ShiftRight,
	ast.OpEq:     Eq,
	ast.OpNe:     Ne,
	ast.OpLt:     Lt,
	ast.OpGt:     Gt,
	ast.OpLe:     Le,
	ast.OpGe:     Ge,
}

// buildExpr lowers e so that its value ends up in target, and returns the
// block where control lands once e has finished evaluating.
func (b *builder) buildExpr(e ast.Expr, cur BasicBlock, target Place, targetType types.Type) (BasicBlock, error) {
	switch expr := e.(type) {
	case *ast.LiteralExpr:
		idx := b.addConst(targetType, expr.Literal.Value)
		b.assign(cur, target, UseRvalue{Operand: ConstantOperand{Const: idx}})

		return cur, nil

	case *ast.BinaryExpr:
		if expr.Op == ast.OpLogAnd || expr.Op == ast.OpLogOr {
			return b.buildLogical(expr, cur, target, targetType)
		}

		op, ok := binOpTable[expr.Op]
		if !ok {
			return 0, fmt.Errorf("lowering error: unsupported operator %s", expr.Op)
		}

		lplace := b.newTemp(targetType)
		rplace := b.newTemp(targetType)

		var err error

		cur, err = b.buildExpr(expr.Left, cur, lplace, targetType)
		if err != nil {
			return 0, err
		}

		cur, err = b.buildExpr(expr.Right, cur, rplace, targetType)
		if err != nil {
			return 0, err
		}

		b.assign(cur, target, BinaryOpRvalue{
			Op:    op,
			Left:  CopyOperand{Place: lplace},
			Right: CopyOperand{Place: rplace},
		})

		return cur, nil

	case *ast.UnaryExpr:
		var op UnOp

		switch expr.Op {
		case ast.OpNeg:
			op = Neg
		case ast.OpNot:
			op = Not
		default:
			return 0, fmt.Errorf("lowering error: unsupported unary operator %s", expr.Op)
		}

		cur, err := b.buildExpr(expr.Expr, cur, target, targetType)
		if err != nil {
			return 0, err
		}

		b.assign(cur, target, UnaryOpRvalue{Op: op, Operand: CopyOperand{Place: target}})

		return cur, nil

	case *ast.BlockExpr:
		return b.buildBlock(expr.Block, cur, target, targetType)

	case *ast.IfExpr:
		return b.buildIf(expr, cur, target, targetType)

	case *ast.PathExpr:
		return 0, fmt.Errorf("lowering error: use of an unlowered construct: Path")

	default:
		return 0, fmt.Errorf("lowering error: unsupported expression")
	}
}

// buildIf lowers an if-expression: the condition materialises into a
// fresh i1 temp, a SwitchInt splits on it, and both arms rejoin at a
// fresh merge block that becomes the new current block.
func (b *builder) buildIf(expr *ast.IfExpr, cur BasicBlock, target Place, targetType types.Type) (BasicBlock, error) {
	condPlace := b.newTemp(types.I1Type)

	cur, err := b.buildExpr(expr.Cond, cur, condPlace, types.I1Type)
	if err != nil {
		return 0, err
	}

	thenBB := b.newBlock()
	endBB := b.newBlock()

	falseTarget := endBB

	var elseBB BasicBlock

	hasElse := expr.Else != nil
	if hasElse {
		elseBB = b.newBlock()
		falseTarget = elseBB
	}

	b.body.BasicBlocks[cur].Terminator = SwitchIntTerminator{
		Value: CopyOperand{Place: condPlace},
		Targets: SwitchTargets{
			Values: []int64{0, 1},
			Blocks: []BasicBlock{thenBB, falseTarget},
		},
	}

	thenLanding, err := b.buildBlock(expr.Then, thenBB, target, targetType)
	if err != nil {
		return 0, err
	}

	b.body.BasicBlocks[thenLanding].Terminator = GotoTerminator{Target: endBB}

	if hasElse {
		elseLanding, err := b.buildExpr(expr.Else, elseBB, target, targetType)
		if err != nil {
			return 0, err
		}

		b.body.BasicBlocks[elseLanding].Terminator = GotoTerminator{Target: endBB}
	}

	return endBB, nil
}

// buildLogical desugars short-circuit && and || via the same branching
// shape as If-lowering, since neither has a direct HIR BinOp: `a && b` is
// `if a { b } else { false }`, `a || b` is `if a { true } else { b }`.
func (b *builder) buildLogical(expr *ast.BinaryExpr, cur BasicBlock, target Place, targetType types.Type) (BasicBlock, error) {
	condPlace := b.newTemp(types.I1Type)

	cur, err := b.buildExpr(expr.Left, cur, condPlace, types.I1Type)
	if err != nil {
		return 0, err
	}

	thenBB := b.newBlock()
	elseBB := b.newBlock()
	endBB := b.newBlock()

	b.body.BasicBlocks[cur].Terminator = SwitchIntTerminator{
		Value: CopyOperand{Place: condPlace},
		Targets: SwitchTargets{
			Values: []int64{0, 1},
			Blocks: []BasicBlock{thenBB, elseBB},
		},
	}

	if expr.Op == ast.OpLogAnd {
		thenLanding, err := b.buildExpr(expr.Right, thenBB, target, targetType)
		if err != nil {
			return 0, err
		}

		b.body.BasicBlocks[thenLanding].Terminator = GotoTerminator{Target: endBB}

		idx := b.addConst(targetType, "0")
		b.assign(elseBB, target, UseRvalue{Operand: ConstantOperand{Const: idx}})
		b.body.BasicBlocks[elseBB].Terminator = GotoTerminator{Target: endBB}

		return endBB, nil
	}

	idx := b.addConst(targetType, "1")
	b.assign(thenBB, target, UseRvalue{Operand: ConstantOperand{Const: idx}})
	b.body.BasicBlocks[thenBB].Terminator = GotoTerminator{Target: endBB}

	elseLanding, err := b.buildExpr(expr.Right, elseBB, target, targetType)
	if err != nil {
		return 0, err
	}

	b.body.BasicBlocks[elseLanding].Terminator = GotoTerminator{Target: endBB}

	return endBB, nil
}
