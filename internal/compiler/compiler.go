// Package compiler drives the reflection pipeline: it enumerates the
// declaration files of a run, feeds each through lexer, parser and
// encoder, and shares one symbol table across files so cross-file
// references resolve.
package compiler

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vitodtagliente/vdtreflex/internal/compiler/encoder"
	"github.com/vitodtagliente/vdtreflex/internal/compiler/lexer"
	"github.com/vitodtagliente/vdtreflex/internal/compiler/model"
	"github.com/vitodtagliente/vdtreflex/internal/compiler/parser"
)

// generatedSuffixes mark outputs of a previous run; scanning a
// directory never feeds them back into the pipeline.
var generatedSuffixes = []string{"_generated.h", "_generated.cpp"}

// Compiler runs the pipeline over a set of inputs.
type Compiler struct {
	outputDir string
	logger    *slog.Logger
	dryRun    bool
	symbols   model.SymbolTable
}

// New creates a compiler writing into outputDir. With dryRun set, the
// whole pipeline runs but no output file is written.
func New(outputDir string, logger *slog.Logger, dryRun bool) *Compiler {
	return &Compiler{
		outputDir: outputDir,
		logger:    logger,
		dryRun:    dryRun,
		symbols:   make(model.SymbolTable),
	}
}

// Run compiles every declaration file reachable from the inputs, in
// lexicographic path order so runs are reproducible. Files are
// processed independently: a failure is reported and the remaining
// files still compile; the aggregate error is non-nil if any failed.
func (c *Compiler) Run(inputs []string) error {
	files, err := c.collectInputs(inputs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no declaration files found")
	}

	if !c.dryRun {
		if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", c.outputDir, err)
		}
	}

	failures := 0
	for _, file := range files {
		if err := c.compileFile(file); err != nil {
			c.logger.Error("Compilation failed", "file", file, "error", err)
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(files))
	}
	return nil
}

// compileFile runs lexer, parser and encoder over one declaration file.
func (c *Compiler) compileFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	tokens, err := lexer.New(name, string(content)).Tokenize()
	if err != nil {
		return err
	}

	collection, symbolList, err := parser.New(name, tokens, c.symbols).Parse()
	if err != nil {
		return err
	}
	c.logger.Debug("Parsed declaration file",
		"file", name,
		"classes", len(collection.Classes),
		"enums", len(collection.Enums))

	return encoder.New(c.logger, c.dryRun).Encode(symbolList, collection, c.symbols, c.outputDir, name)
}

// collectInputs expands the command line inputs into the sorted list of
// declaration files: files are taken as given, directories are scanned
// recursively for .h files, previously generated outputs excluded.
func (c *Compiler) collectInputs(inputs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if !info.IsDir() {
			add(input)
			continue
		}
		err = filepath.WalkDir(input, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			if isDeclarationFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", input, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isDeclarationFile(path string) bool {
	if !strings.HasSuffix(path, ".h") {
		return false
	}
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(path, suffix) {
			return false
		}
	}
	return true
}
