// Command lumenc-lsp is a minimal stdio LSP server: it republishes
// parser/lowering diagnostics on textDocument/didOpen and didChange.
package main

import (
	"context"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/lumenlang/lumenc/internal/langserver"
)

// stdinStdout wraps stdin and stdout into a single ReadWriteCloser, the
// transport jsonrpc2 expects.
type stdinStdout struct {
	io.Reader
	io.Writer
}

func (stdinStdout) Close() error { return nil }

func main() {
	logFile, err := os.OpenFile("/tmp/lumenc-lsp.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	var logger *zap.Logger
	if err == nil {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{logFile.Name()}
		logger, _ = cfg.Build()
		defer logFile.Close() //nolint:errcheck
	} else {
		logger = zap.NewNop()
	}
	defer logger.Sync() //nolint:errcheck

	sugar := logger.Sugar()

	rwc := stdinStdout{Reader: os.Stdin, Writer: os.Stdout}
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))

	srv := langserver.New(sugar)
	srv.DiagnosticCallback = func(uri string, diagnostics []protocol.Diagnostic) {
		if err := conn.Notify(context.Background(), "textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		}); err != nil {
			sugar.Errorw("failed to publish diagnostics", "error", err)
		}
	}

	handler := protocol.ServerHandler(srv, nil)

	ctx := context.Background()
	conn.Go(ctx, handler)

	<-conn.Done()

	if err := conn.Err(); err != nil {
		sugar.Errorw("connection error", "error", err)
		os.Exit(1)
	}
}
