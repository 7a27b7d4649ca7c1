package langserver

import "testing"

func TestParseValidSourceHasNoDiagnostics(t *testing.T) {
	doc := &Document{Content: "fn f() -> i32 { 0 }"}
	doc.Parse()

	if len(doc.Diagnostics) != 0 {
		t.Fatalf("Diagnostics = %v, want none", doc.Diagnostics)
	}
}

func TestParseSyntaxErrorProducesDiagnostic(t *testing.T) {
	doc := &Document{Content: "fn f() -> i32 { "}
	doc.Parse()

	if len(doc.Diagnostics) == 0 {
		t.Fatal("Diagnostics = none, want at least one")
	}
}

func TestUpdateReparsesOnNewContent(t *testing.T) {
	doc := &Document{Content: "fn f() -> i32 { "}
	doc.Parse()

	if len(doc.Diagnostics) == 0 {
		t.Fatal("expected initial diagnostics")
	}

	doc.Update("fn f() -> i32 { 1 + 2 }", 2)

	if len(doc.Diagnostics) != 0 {
		t.Fatalf("Diagnostics after fix = %v, want none", doc.Diagnostics)
	}

	if doc.Version != 2 {
		t.Fatalf("Version = %d, want 2", doc.Version)
	}
}
