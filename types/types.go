// Package types models Lumen's type system: closed and primitive-only.
package types

import "fmt"

// Kind enumerates the primitive types. The set is closed: there is no
// struct, slice, or reference kind, and this package never adds one.
type Kind int

const (
	Void Kind = iota
	I1
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
)

var names = map[Kind]string{
	Void: "void",
	I1:   "i1",
	I8:   "i8",
	I16:  "i16",
	I32:  "i32",
	I64:  "i64",
	U8:   "u8",
	U16:  "u16",
	U32:  "u32",
	U64:  "u64",
	F32:  "f32",
	F64:  "f64",
}

// sizes holds byte sizes; i1 is one byte for alignment purposes even
// though it logically holds a single bit.
var sizes = map[Kind]int{
	Void: 0,
	I1:   1,
	I8:   1,
	I16:  2,
	I32:  4,
	I64:  8,
	U8:   1,
	U16:  2,
	U32:  4,
	U64:  8,
	F32:  4,
	F64:  8,
}

// surfaceNames is the set of spellings the parser accepts in source-level
// type position. i1 is excluded: it only ever arises internally, as the
// type of a lowered condition.
var surfaceNames = map[string]Kind{
	"i8":   I8,
	"i16":  I16,
	"i32":  I32,
	"i64":  I64,
	"u8":   U8,
	"u16":  U16,
	"u32":  U32,
	"u64":  U64,
	"f32":  F32,
	"f64":  F64,
	"void": Void,
}

// Type is a primitive type value. The zero Type is Void.
type Type struct {
	Kind Kind
}

func New(k Kind) Type { return Type{Kind: k} }

func (t Type) String() string {
	if name, ok := names[t.Kind]; ok {
		return name
	}

	return fmt.Sprintf("<unknown type %d>", int(t.Kind))
}

// Size returns the byte size used for alloca/align emission.
func (t Type) Size() int {
	return sizes[t.Kind]
}

func (t Type) IsFloat() bool {
	return t.Kind == F32 || t.Kind == F64
}

// Lookup resolves a source-level type identifier against the closed
// surface set. i1 is deliberately not resolvable here.
func Lookup(name string) (Type, bool) {
	k, ok := surfaceNames[name]
	if !ok {
		return Type{}, false
	}

	return Type{Kind: k}, true
}

// Wider returns the operand type for a binary operation between a and b:
// the wider of the two by byte size, ties favoring the left (a) operand.
func Wider(a, b Type) Type {
	if b.Size() > a.Size() {
		return b
	}

	return a
}

var (
	I32Type  = Type{Kind: I32}
	I1Type   = Type{Kind: I1}
	VoidType = Type{Kind: Void}
)
