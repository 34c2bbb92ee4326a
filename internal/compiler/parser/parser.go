// Package parser turns a token stream into the symbol model of one
// translation unit.
//
// The parser recognises the ENUM, CLASS, STRUCT and PROPERTY marker
// annotations and the declarations they introduce; everything else in
// the file is scoped by brace tracking and skipped. It is not a general
// parser of the host declaration language.
package parser

import (
	"fmt"
	"strings"

	"github.com/vitodtagliente/vdtreflex/internal/compiler/lexer"
	"github.com/vitodtagliente/vdtreflex/internal/compiler/model"
)

// Marker annotations recognised at declaration scope.
const (
	annotationEnum     = "ENUM"
	annotationClass    = "CLASS"
	annotationStruct   = "STRUCT"
	annotationProperty = "PROPERTY"
)

// ErrorKind classifies parsing failures.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrRedeclaration
	ErrOrphan
	ErrMeta
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrRedeclaration:
		return "redeclaration"
	case ErrOrphan:
		return "property outside of a class body"
	case ErrMeta:
		return "malformed meta block"
	default:
		return "parse error"
	}
}

// Error is a parsing failure with its source position.
type Error struct {
	File   string
	Line   int
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Kind)
}

// Parser consumes the token stream of one file and populates the
// process-wide symbol table.
type Parser struct {
	file    string
	tokens  []lexer.Token
	pos     int
	symbols model.SymbolTable
}

// New creates a parser for the given file tokens. The symbol table is
// shared across files and mutated as declarations are recognised.
func New(file string, tokens []lexer.Token, symbols model.SymbolTable) *Parser {
	return &Parser{file: file, tokens: tokens, symbols: symbols}
}

// Parse scans the whole unit and returns its type collection and the
// declared names in source order.
func (p *Parser) Parse() (*model.TypeCollection, model.SymbolList, error) {
	collection := model.NewTypeCollection()
	var symbolList model.SymbolList

	for !p.atEOF() {
		tok := p.current()
		switch {
		case tok.IsIdent(annotationEnum):
			p.advance()
			enum, err := p.parseEnum()
			if err != nil {
				return nil, nil, err
			}
			if !p.symbols.Add(enum.Name, model.SymbolEnum) {
				return nil, nil, p.errorAt(tok.Line, ErrRedeclaration, enum.Name)
			}
			collection.Enums[enum.Name] = enum
			symbolList = append(symbolList, enum.Name)
		case tok.IsIdent(annotationClass) || tok.IsIdent(annotationStruct):
			p.advance()
			class, err := p.parseClass()
			if err != nil {
				return nil, nil, err
			}
			if !p.symbols.Add(class.Name, model.SymbolClass) {
				return nil, nil, p.errorAt(tok.Line, ErrRedeclaration, class.Name)
			}
			collection.Classes[class.Name] = class
			symbolList = append(symbolList, class.Name)
		case tok.IsIdent(annotationProperty):
			return nil, nil, p.errorAt(tok.Line, ErrOrphan, "")
		default:
			p.advance()
		}
	}
	return collection, symbolList, nil
}

// parseEnum recognises, after the ENUM marker:
//
//	[ (meta) ] [enum [class|struct]] Name { A, B, C[,] } [;]
//
// The meta block is accepted for symmetry with classes but enums carry
// no attributes; a malformed block still fails.
func (p *Parser) parseEnum() (*model.TypeEnum, error) {
	if _, err := p.parseOptionalMeta(); err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.current().IsIdent("enum") {
		p.advance()
		p.skipSpace()
		if p.current().IsIdent("class") || p.current().IsIdent("struct") {
			p.advance()
		}
	}

	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	enum := &model.TypeEnum{Name: name}

	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		tok := p.current()
		if tok.Is("}") {
			p.advance()
			break
		}
		if tok.Type != lexer.TokenIdentifier {
			return nil, p.errorAt(tok.Line, ErrSyntax, "expected enum option name")
		}
		for _, option := range enum.Options {
			if option == tok.Value {
				return nil, p.errorAt(tok.Line, ErrSyntax, "duplicated enum option "+tok.Value)
			}
		}
		enum.Options = append(enum.Options, tok.Value)
		p.advance()

		p.skipSpace()
		if p.current().Is(",") {
			p.advance()
			continue
		}
		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}
		break
	}

	p.skipSpace()
	if p.current().Is(";") {
		p.advance()
	}
	return enum, nil
}

// parseClass recognises, after the CLASS or STRUCT marker:
//
//	[ (meta) ] class|struct Name [: [visibility] Parent] { body } [;]
//
// The class/struct keyword discriminates the struct flag; the default
// parent is the sentinel root.
func (p *Parser) parseClass() (*model.TypeClass, error) {
	meta, err := p.parseOptionalMeta()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	tok := p.current()
	if !tok.IsIdent("class") && !tok.IsIdent("struct") {
		return nil, p.errorAt(tok.Line, ErrSyntax, "expected class or struct keyword")
	}
	isStruct := tok.IsIdent("struct")
	p.advance()

	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	class := &model.TypeClass{
		Name:     name,
		IsStruct: isStruct,
		Parent:   model.RootParent,
		Meta:     meta,
	}

	p.skipSpace()
	if p.current().Is(":") {
		p.advance()
		p.skipSpace()
		switch {
		case p.current().IsIdent("public"), p.current().IsIdent("protected"), p.current().IsIdent("private"):
			p.advance()
		}
		parent, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		class.Parent = parent
	}

	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	if err := p.parseClassBody(class); err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.current().Is(";") {
		p.advance()
	}
	return class, nil
}

// parseClassBody scans the brace-delimited body. Only PROPERTY markers
// at the top nesting level are recognised; nested scopes are skipped.
func (p *Parser) parseClassBody(class *model.TypeClass) error {
	openLine := 0
	if p.pos > 0 {
		openLine = p.tokens[p.pos-1].Line
	}
	depth := 1
	for {
		if p.atEOF() {
			return p.errorAt(openLine, ErrSyntax, "missing closing brace for "+class.Name)
		}
		tok := p.current()
		switch {
		case tok.Is("{"):
			depth++
			p.advance()
		case tok.Is("}"):
			depth--
			p.advance()
			if depth == 0 {
				return nil
			}
		case depth == 1 && tok.IsIdent(annotationProperty):
			p.advance()
			property, err := p.parseProperty()
			if err != nil {
				return err
			}
			if _, exists := class.FindProperty(property.Name); exists {
				return p.errorAt(tok.Line, ErrSyntax, "duplicated property "+property.Name)
			}
			class.Properties = append(class.Properties, property)
		default:
			p.advance()
		}
	}
}

// parseProperty recognises, after the PROPERTY marker:
//
//	[ (meta) ] declared-type name ;
//
// The declared type is captured verbatim, template arguments, trailing
// decorators and internal spacing included.
func (p *Parser) parseProperty() (model.Property, error) {
	meta, err := p.parseOptionalMeta()
	if err != nil {
		return model.Property{}, err
	}

	p.skipSpace()
	startLine := p.current().Line
	var parts []lexer.Token
	for {
		if p.atEOF() {
			return model.Property{}, p.errorAt(startLine, ErrSyntax, "missing ; after property declaration")
		}
		tok := p.current()
		if tok.Is(";") {
			p.advance()
			break
		}
		if tok.Is("{") || tok.Is("}") {
			return model.Property{}, p.errorAt(tok.Line, ErrSyntax, "missing ; after property declaration")
		}
		parts = append(parts, tok)
		p.advance()
	}

	for len(parts) > 0 && isSpace(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 || parts[len(parts)-1].Type != lexer.TokenIdentifier {
		return model.Property{}, p.errorAt(startLine, ErrSyntax, "expected a declared type and a property name")
	}

	name := parts[len(parts)-1].Value
	var builder strings.Builder
	for _, part := range parts[:len(parts)-1] {
		if part.Type == lexer.TokenNewline {
			builder.WriteString(" ")
			continue
		}
		builder.WriteString(part.Value)
	}
	declared := strings.TrimSpace(builder.String())
	if declared == "" {
		return model.Property{}, p.errorAt(startLine, ErrSyntax, "expected a declared type and a property name")
	}

	return model.Property{Name: name, Type: declared, Meta: meta}, nil
}

// parseOptionalMeta recognises an optional parenthesised meta block:
//
//	( key = value, key2 = "quoted value" )
//
// Values are single identifier, number or string tokens; anything else
// fails with the meta error kind.
func (p *Parser) parseOptionalMeta() (model.MetaMap, error) {
	var meta model.MetaMap
	p.skipSpace()
	if !p.current().Is("(") {
		return meta, nil
	}
	p.advance()

	for {
		p.skipSpace()
		tok := p.current()
		if tok.Is(")") {
			p.advance()
			return meta, nil
		}
		if tok.Type != lexer.TokenIdentifier {
			return meta, p.errorAt(tok.Line, ErrMeta, "expected attribute key")
		}
		key := tok.Value
		p.advance()

		p.skipSpace()
		if !p.current().Is("=") {
			return meta, p.errorAt(p.current().Line, ErrMeta, "expected = after attribute "+key)
		}
		p.advance()

		p.skipSpace()
		value := p.current()
		switch value.Type {
		case lexer.TokenIdentifier, lexer.TokenNumber:
			if !meta.Set(key, value.Value) {
				return meta, p.errorAt(value.Line, ErrMeta, "duplicated attribute "+key)
			}
		case lexer.TokenString:
			if !meta.Set(key, unquote(value.Value)) {
				return meta, p.errorAt(value.Line, ErrMeta, "duplicated attribute "+key)
			}
		default:
			return meta, p.errorAt(value.Line, ErrMeta, "expected attribute value for "+key)
		}
		p.advance()

		p.skipSpace()
		switch {
		case p.current().Is(","):
			p.advance()
		case p.current().Is(")"):
		default:
			return meta, p.errorAt(p.current().Line, ErrMeta, "expected , or ) in meta block")
		}
	}
}

// parseQualifiedName reads an identifier optionally qualified by ::
// segments, e.g. math::vec2.
func (p *Parser) parseQualifiedName() (string, error) {
	p.skipSpace()
	tok := p.current()
	if tok.Type != lexer.TokenIdentifier {
		return "", p.errorAt(tok.Line, ErrSyntax, "expected a name")
	}
	name := tok.Value
	p.advance()
	for p.current().Is(":") && p.peekNext().Is(":") {
		p.advance()
		p.advance()
		segment := p.current()
		if segment.Type != lexer.TokenIdentifier {
			return "", p.errorAt(segment.Line, ErrSyntax, "expected a name after ::")
		}
		name += "::" + segment.Value
		p.advance()
	}
	return name, nil
}

func (p *Parser) current() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return lexer.Token{Type: lexer.TokenEOF}
}

func (p *Parser) peekNext() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return lexer.Token{Type: lexer.TokenEOF}
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) atEOF() bool {
	return p.current().Type == lexer.TokenEOF
}

func (p *Parser) skipSpace() {
	for {
		tok := p.current()
		if tok.Type == lexer.TokenWhitespace || tok.Type == lexer.TokenNewline {
			p.advance()
			continue
		}
		return
	}
}

func (p *Parser) expectPunct(value string) error {
	p.skipSpace()
	tok := p.current()
	if !tok.Is(value) {
		return p.errorAt(tok.Line, ErrSyntax, "expected "+value)
	}
	p.advance()
	return nil
}

func (p *Parser) errorAt(line int, kind ErrorKind, detail string) *Error {
	return &Error{File: p.file, Line: line, Kind: kind, Detail: detail}
}

func isSpace(tok lexer.Token) bool {
	return tok.Type == lexer.TokenWhitespace || tok.Type == lexer.TokenNewline
}

func unquote(value string) string {
	value = strings.TrimPrefix(value, `"`)
	value = strings.TrimSuffix(value, `"`)
	return strings.ReplaceAll(value, `\"`, `"`)
}
