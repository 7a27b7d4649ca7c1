// Package hir is the high-level intermediate representation: a control
// flow graph of three-address statements over typed locals, the output
// of lowering and the input to codegen.
package hir

import "github.com/lumenlang/lumenc/types"

type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Rem
	BitXor
	BitAnd
	BitOr
	ShiftLeft
	ShiftRight
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
)

var binOpNames = map[BinOp]string{
	Add: "Add", Sub: "Sub", Mul: "Mul", Div: "Div", Rem: "Rem",
	BitXor: "BitXor", BitAnd: "BitAnd", BitOr: "BitOr",
	ShiftLeft: "ShiftLeft", ShiftRight: "ShiftRight",
	Eq: "Eq", Ne: "Ne", Lt: "Lt", Gt: "Gt", Le: "Le", Ge: "Ge",
}

func (op BinOp) String() string { return binOpNames[op] }

type UnOp int

const (
	Neg UnOp = iota
	Not
)

func (op UnOp) String() string {
	if op == Neg {
		return "Neg"
	}

	return "Not"
}

// Place is a symbolic addressable location. The only variant today
// indexes into Body.LocalDecls; a future revision may add globals.
type Place struct {
	Local int
}

// Rvalue is the right-hand side of an Assign statement.
type Rvalue interface {
	rvalueNode()
}

type UseRvalue struct {
	Operand Operand
}

type BinaryOpRvalue struct {
	Op    BinOp
	Left  Operand
	Right Operand
}

type UnaryOpRvalue struct {
	Op      UnOp
	Operand Operand
}

func (UseRvalue) rvalueNode()       {}
func (BinaryOpRvalue) rvalueNode()  {}
func (UnaryOpRvalue) rvalueNode()   {}

// Const is a shared literal constant; Body.Consts holds the owning
// slice and ConstantOperand.Const references an index into it so several
// operands can point at the same value.
type Const struct {
	Ty    types.Type
	Value string
}

// Operand is a value source.
type Operand interface {
	operandNode()
}

type CopyOperand struct {
	Place Place
}

// MoveOperand is reserved: the current lowering never produces one.
type MoveOperand struct {
	Place Place
}

type ConstantOperand struct {
	Const int // index into Body.Consts
}

func (CopyOperand) operandNode()     {}
func (MoveOperand) operandNode()     {}
func (ConstantOperand) operandNode() {}

// Statement is one instruction within a basic block.
type Statement struct {
	Place  Place
	Rvalue Rvalue
}

// SwitchTargets is the value/block table of a SwitchInt terminator.
type SwitchTargets struct {
	Values []int64
	Blocks []BasicBlock
}

// Terminator is the final control-flow instruction of a basic block.
type Terminator interface {
	terminatorNode()
	Successors() []BasicBlock
}

type GotoTerminator struct {
	Target BasicBlock
}

func (t GotoTerminator) Successors() []BasicBlock { return []BasicBlock{t.Target} }

// CallTerminator is reserved: no lowering in this revision produces one.
type CallTerminator struct {
	Func        Operand
	Args        []Operand
	Destination Place
	Target      BasicBlock
}

func (t CallTerminator) Successors() []BasicBlock { return []BasicBlock{t.Target} }

type ReturnTerminator struct{}

func (ReturnTerminator) Successors() []BasicBlock { return nil }

type SwitchIntTerminator struct {
	Value   Operand
	Targets SwitchTargets
}

func (t SwitchIntTerminator) Successors() []BasicBlock { return t.Targets.Blocks }

func (GotoTerminator) terminatorNode()      {}
func (CallTerminator) terminatorNode()      {}
func (ReturnTerminator) terminatorNode()    {}
func (SwitchIntTerminator) terminatorNode() {}

// BasicBlock is a dense index into Body.BasicBlocks.
type BasicBlock int

// LocalInfo distinguishes source-named locals from compiler temporaries;
// only the former receive stack slots and stable names in codegen.
type LocalInfo interface {
	localInfoNode()
}

type UserLocal struct {
	Name string
}

type TempLocal struct{}

func (UserLocal) localInfoNode() {}
func (TempLocal) localInfoNode() {}

// LocalDecl describes one entry of Body.LocalDecls.
type LocalDecl struct {
	Mutable bool
	Ty      types.Type
	Info    LocalInfo
}

func (d LocalDecl) Size() int { return d.Ty.Size() }

// BasicBlockData is one node of the CFG.
type BasicBlockData struct {
	Statements []Statement
	Terminator Terminator
}

// Body is the complete lowered representation of one function.
type Body struct {
	Name        string
	BasicBlocks []BasicBlockData
	LocalDecls  []LocalDecl
	Consts      []Const
	ArgCount    int
}

// OperandType resolves the declared type backing an operand: the local's
// type for Copy/Move, the constant's type for Constant.
func (b *Body) OperandType(op Operand) types.Type {
	switch o := op.(type) {
	case CopyOperand:
		return b.LocalDecls[o.Place.Local].Ty
	case MoveOperand:
		return b.LocalDecls[o.Place.Local].Ty
	case ConstantOperand:
		return b.Consts[o.Const].Ty
	default:
		return types.VoidType
	}
}
