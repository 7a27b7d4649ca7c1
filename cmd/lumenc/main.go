package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lumenlang/lumenc/codegen"
	"github.com/lumenlang/lumenc/hir"
	"github.com/lumenlang/lumenc/internal/config"
	"github.com/lumenlang/lumenc/internal/hirviz"
	"github.com/lumenlang/lumenc/parser"
)

func main() {
	input := flag.String("i", "", "input source file (mandatory)")
	output := flag.String("o", "", "output LIR file (defaults to bin/output.ll, or the config's [build].output)")
	configPath := flag.String("config", "lumen.toml", "path to a lumen.toml project file")
	emitDot := flag.String("emit-hir-dot", "", "also write a Graphviz rendering of the lowered HIR to this path")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	sugar := logger.Sugar()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: lumenc -i <input.lum> [-o <output.ll>] [-config <lumen.toml>] [-emit-hir-dot <path>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		sugar.Errorw("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	outputPath := *output
	if outputPath == "" {
		outputPath = cfg.Build.Output
	}

	if err := run(*input, outputPath, *emitDot, sugar); err != nil {
		sugar.Errorw("compile failed", "input", *input, "error", err)
		os.Exit(1)
	}

	sugar.Infow("compiled", "input", *input, "output", outputPath)
}

func run(inputPath, outputPath, dotPath string, log *zap.SugaredLogger) error {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	node, err := parser.Parse(string(source))
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	body, err := hir.Build(node)
	if err != nil {
		return fmt.Errorf("lowering error: %w", err)
	}

	lir, err := codegen.Build(body)
	if err != nil {
		return fmt.Errorf("codegen error: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(lir), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if dotPath != "" {
		if err := os.WriteFile(dotPath, []byte(hirviz.Render(body)), 0o644); err != nil {
			return fmt.Errorf("writing HIR graph: %w", err)
		}

		log.Infow("wrote HIR graph", "path", dotPath)
	}

	return nil
}
