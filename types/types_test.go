package types

import "testing"

func TestSizes(t *testing.T) {
	cases := []struct {
		kind Kind
		size int
		name string
	}{
		{Void, 0, "void"},
		{I1, 1, "i1"},
		{I8, 1, "i8"},
		{I16, 2, "i16"},
		{I32, 4, "i32"},
		{I64, 8, "i64"},
		{U8, 1, "u8"},
		{U32, 4, "u32"},
		{F32, 4, "f32"},
		{F64, 8, "f64"},
	}

	for _, c := range cases {
		ty := New(c.kind)
		if ty.Size() != c.size {
			t.Errorf("%s: size() = %d, want %d", c.name, ty.Size(), c.size)
		}

		if ty.String() != c.name {
			t.Errorf("%s: String() = %q, want %q", c.name, ty.String(), c.name)
		}
	}
}

func TestLookupExcludesI1(t *testing.T) {
	if _, ok := Lookup("i1"); ok {
		t.Fatal("Lookup(\"i1\") should not resolve; i1 is not a surface type")
	}

	ty, ok := Lookup("i32")
	if !ok || ty.Kind != I32 {
		t.Fatalf("Lookup(\"i32\") = %v, %v", ty, ok)
	}

	if _, ok := Lookup("bool"); ok {
		t.Fatal("Lookup(\"bool\") should not resolve; bool is not in the closed set")
	}
}

func TestWiderTiesFavorLeft(t *testing.T) {
	i32 := New(I32)
	i64 := New(I64)

	if got := Wider(i32, i64); got.Kind != I64 {
		t.Errorf("Wider(i32, i64) = %s, want i64", got)
	}

	if got := Wider(i64, i32); got.Kind != I64 {
		t.Errorf("Wider(i64, i32) = %s, want i64", got)
	}

	if got := Wider(i32, i32); got.Kind != I32 {
		t.Errorf("Wider(i32, i32) = %s, want i32 (tie favors left)", got)
	}
}
