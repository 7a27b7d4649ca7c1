package hir

import (
	"testing"

	"github.com/lumenlang/lumenc/types"
)

func TestBinOpString(t *testing.T) {
	cases := map[BinOp]string{
		Add: "Add", Sub: "Sub", Mul: "Mul", Div: "Div", Rem: "Rem",
		ShiftLeft: "ShiftLeft", ShiftRight: "ShiftRight",
		Eq: "Eq", Ne: "Ne", Lt: "Lt", Gt: "Gt", Le: "Le", Ge: "Ge",
	}

	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("BinOp(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestUnOpString(t *testing.T) {
	if Neg.String() != "Neg" {
		t.Errorf("Neg.String() = %q, want Neg", Neg.String())
	}

	if Not.String() != "Not" {
		t.Errorf("Not.String() = %q, want Not", Not.String())
	}
}

func TestSwitchIntSuccessors(t *testing.T) {
	term := SwitchIntTerminator{
		Value: CopyOperand{Place{Local: 1}},
		Targets: SwitchTargets{
			Values: []int64{0, 1},
			Blocks: []BasicBlock{2, 3},
		},
	}

	succ := term.Successors()
	if len(succ) != 2 || succ[0] != 2 || succ[1] != 3 {
		t.Fatalf("Successors() = %v, want [2 3]", succ)
	}
}

func TestGotoSuccessors(t *testing.T) {
	if got := (GotoTerminator{Target: 5}).Successors(); len(got) != 1 || got[0] != 5 {
		t.Fatalf("Successors() = %v, want [5]", got)
	}
}

func TestReturnHasNoSuccessors(t *testing.T) {
	if got := (ReturnTerminator{}).Successors(); got != nil {
		t.Fatalf("Successors() = %v, want nil", got)
	}
}

func TestOperandType(t *testing.T) {
	body := &Body{
		LocalDecls: []LocalDecl{
			{Ty: types.New(types.I32), Info: UserLocal{Name: "retval"}},
		},
		Consts: []Const{
			{Ty: types.New(types.I64), Value: "7"},
		},
	}

	if got := body.OperandType(CopyOperand{Place{Local: 0}}); got.Kind != types.I32 {
		t.Fatalf("OperandType(Copy) = %v, want i32", got)
	}

	if got := body.OperandType(ConstantOperand{Const: 0}); got.Kind != types.I64 {
		t.Fatalf("OperandType(Constant) = %v, want i64", got)
	}
}

func TestLocalDeclSize(t *testing.T) {
	decl := LocalDecl{Ty: types.New(types.I64)}
	if decl.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", decl.Size())
	}
}
