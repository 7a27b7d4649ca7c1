// Package langserver exposes a minimal textDocument/didOpen and
// textDocument/didChange diagnostics loop over the lex/parse/lower
// pipeline. It calls into parser and hir, never the reverse, and it
// never performs codegen: diagnostics only need a well-formed HIR, not
// emitted LIR.
package langserver

import (
	"github.com/lumenlang/lumenc/hir"
	"github.com/lumenlang/lumenc/parser"
)

// Document represents one open source file.
type Document struct {
	URI     string
	Version int
	Content string

	Diagnostics []string
}

// Parse re-runs parse→lower over the document's current content and
// refreshes Diagnostics. A parse failure short-circuits lowering, since
// hir.Build requires a tree that parse did not produce.
func (d *Document) Parse() {
	d.Diagnostics = nil

	node, err := parser.Parse(d.Content)
	if err != nil {
		d.Diagnostics = []string{err.Error()}
		return
	}

	if _, err := hir.Build(node); err != nil {
		d.Diagnostics = []string{err.Error()}
	}
}

// Update replaces the document's content and version, then re-parses.
func (d *Document) Update(content string, version int) {
	d.Content = content
	d.Version = version
	d.Parse()
}
