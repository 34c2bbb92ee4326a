// Package encoder turns the symbol model of a translation unit into the
// generated companion sources: a declarations buffer and a definitions
// buffer providing reflection metadata and serialisation for every
// declared type.
//
// Buffers are assembled fully in memory and written to disk only when
// their content differs from the existing file, so repeated runs over
// unchanged inputs leave timestamps untouched.
package encoder

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vitodtagliente/vdtreflex/internal/compiler/model"
)

// ErrorKind classifies encoding failures.
type ErrorKind int

const (
	ErrUnresolvedParent ErrorKind = iota
	ErrMissingSymbol
	ErrIO
)

// Error is an encoding failure.
type Error struct {
	Kind ErrorKind
	Name string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnresolvedParent:
		return fmt.Sprintf("cannot resolve the parent class %s", e.Name)
	case ErrMissingSymbol:
		return fmt.Sprintf("cannot find the symbol %s", e.Name)
	case ErrIO:
		return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
	default:
		return "encode error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Encoder generates companion sources for parsed translation units.
type Encoder struct {
	logger *slog.Logger
	dryRun bool
}

// New creates an encoder. With dryRun set, buffers are still assembled
// and compared but never written.
func New(logger *slog.Logger, dryRun bool) *Encoder {
	return &Encoder{logger: logger, dryRun: dryRun}
}

// Encode emits the generated header/source pair for one translation
// unit into outputDir. filename is the base name of the input file and
// names both the outputs and the generated include directive.
func (e *Encoder) Encode(symbolList model.SymbolList, collection *model.TypeCollection, symbols model.SymbolTable, outputDir, filename string) error {
	f := &fileEncoder{symbols: symbols, collection: collection}

	f.header.PushLine("// Copyright (c) Vito Domenico Tagliente")
	f.header.PushLine("// automatically generated by the compiler, do not modify")
	f.header.PushLine("#pragma once")
	f.header.PushLine("")
	f.header.PushLine("#include <vdtreflect/runtime.h>")
	f.header.PushLine("")

	f.source.PushLine("// Copyright (c) Vito Domenico Tagliente")
	f.source.PushLine("// automatically generated by the compiler, do not modify")
	f.source.PushLine("#include \"", filename, "\"")
	f.source.PushLine("")

	var enums []*model.TypeEnum
	var classes []*model.TypeClass
	for _, name := range symbolList {
		kind, ok := symbols.Lookup(name)
		if !ok {
			return &Error{Kind: ErrMissingSymbol, Name: name}
		}
		switch kind {
		case model.SymbolEnum:
			enum, ok := collection.FindEnum(name)
			if !ok {
				return &model.InternalError{Message: "enum " + name + " is listed but not collected"}
			}
			enums = append(enums, enum)
		case model.SymbolClass:
			class, ok := collection.FindClass(name)
			if !ok {
				return &model.InternalError{Message: "class " + name + " is listed but not collected"}
			}
			classes = append(classes, class)
		}
	}

	for _, enum := range enums {
		f.encodeEnum(enum)
	}
	for _, class := range classes {
		if err := f.encodeClass(class); err != nil {
			return err
		}
	}

	base := strings.TrimSuffix(filename, ".h")
	if err := e.write(filepath.Join(outputDir, base+"_generated.h"), f.header.String()); err != nil {
		return err
	}
	return e.write(filepath.Join(outputDir, base+"_generated.cpp"), f.source.String())
}

// write compares the assembled content with the file on disk and only
// rewrites it on mismatch, keeping timestamps stable for no-op runs.
func (e *Encoder) write(path, content string) error {
	if previous, err := os.ReadFile(path); err == nil && string(previous) == content {
		return nil
	}
	if e.dryRun {
		e.logger.Info("Write suppressed", "file", path, "reason", "dry run")
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &Error{Kind: ErrIO, Path: path, Err: err}
	}
	e.logger.Info("Generated", "file", path)
	return nil
}

// fileEncoder holds the per-unit state shared by the emission routines.
type fileEncoder struct {
	symbols    model.SymbolTable
	collection *model.TypeCollection
	header     Buffer
	source     Buffer
}

// ancestors returns the parent chain of class, sentinel excluded,
// ordered root-most ancestor first. A parent declared in another unit
// is known to the symbol table but carries no expandable properties;
// the walk stops there. An unknown parent fails.
func (f *fileEncoder) ancestors(class *model.TypeClass) ([]*model.TypeClass, error) {
	var chain []*model.TypeClass
	visited := map[string]bool{class.Name: true}
	parent := class.Parent
	for parent != "" && parent != model.RootParent {
		if visited[parent] {
			return nil, &model.InternalError{Message: "parent chain of " + class.Name + " does not terminate"}
		}
		visited[parent] = true

		parentClass, ok := f.collection.FindClass(parent)
		if !ok {
			if kind, known := f.symbols.Lookup(parent); known && kind == model.SymbolClass {
				break
			}
			return nil, &Error{Kind: ErrUnresolvedParent, Name: parent}
		}
		chain = append(chain, parentClass)
		parent = parentClass.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// isStructType reports whether the declared type names a struct of this
// unit. Structs expose their reflection through the static Type<T>
// surface; classes go through their IType members.
func (f *fileEncoder) isStructType(declared string) bool {
	class, ok := f.collection.FindClass(bareType(declared))
	return ok && class.IsStruct
}

func escapeMetaValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}
