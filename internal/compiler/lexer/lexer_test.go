package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := New("test.h", input).Tokenize()
	require.NoError(t, err)
	return tokens
}

// meaningful strips whitespace and newline tokens for tests that only
// care about the significant token sequence.
func meaningful(tokens []Token) []Token {
	var out []Token
	for _, tok := range tokens {
		if tok.Type == TokenWhitespace || tok.Type == TokenNewline || tok.Type == TokenEOF {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func TestTokenizeDeclaration(t *testing.T) {
	tokens := meaningful(tokenize(t, "class Foo : public IType\n{\n};\n"))

	values := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		values = append(values, tok.Value)
	}
	assert.Equal(t, []string{"class", "Foo", ":", "public", "IType", "{", "}", ";"}, values)
}

func TestTokenizeTemplateType(t *testing.T) {
	tokens := meaningful(tokenize(t, "std::map<std::string, int> m;"))

	var punct []string
	for _, tok := range tokens {
		if tok.Type == TokenPunctuation {
			punct = append(punct, tok.Value)
		}
	}
	assert.Equal(t, []string{":", ":", "<", ":", ":", ",", ">", ";"}, punct)
}

func TestTokenizePreservesWhitespace(t *testing.T) {
	tokens := tokenize(t, "int  a;")

	require.Len(t, tokens, 5)
	assert.Equal(t, TokenIdentifier, tokens[0].Type)
	assert.Equal(t, TokenWhitespace, tokens[1].Type)
	assert.Equal(t, "  ", tokens[1].Value)
	assert.Equal(t, TokenIdentifier, tokens[2].Type)
	assert.Equal(t, TokenPunctuation, tokens[3].Type)
	assert.Equal(t, TokenEOF, tokens[4].Type)
}

func TestTokenizeLineNumbers(t *testing.T) {
	tokens := tokenize(t, "a\nb\n\nc")

	byName := map[string]int{}
	for _, tok := range tokens {
		if tok.Type == TokenIdentifier {
			byName[tok.Value] = tok.Line
		}
	}
	assert.Equal(t, 1, byName["a"])
	assert.Equal(t, 2, byName["b"])
	assert.Equal(t, 4, byName["c"])

	last := 0
	for _, tok := range tokens {
		require.GreaterOrEqual(t, tok.Line, last, "line numbers must be monotonic")
		last = tok.Line
	}
}

func TestTokenizeComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"line comment", "int a; // trailing\nint b;", []string{"int", "a", ";", "int", "b", ";"}},
		{"block comment", "int /* ignored */ a;", []string{"int", "a", ";"}},
		{"multiline block", "int a;/* one\ntwo */int b;", []string{"int", "a", ";", "int", "b", ";"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var values []string
			for _, tok := range meaningful(tokenize(t, tt.input)) {
				values = append(values, tok.Value)
			}
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestTokenizeMultilineCommentAdvancesLines(t *testing.T) {
	tokens := tokenize(t, "/* a\nb\nc */ int x;")
	for _, tok := range tokens {
		if tok.IsIdent("x") {
			assert.Equal(t, 3, tok.Line)
			return
		}
	}
	t.Fatal("identifier x not found")
}

func TestTokenizeStrings(t *testing.T) {
	tokens := meaningful(tokenize(t, `name = "hello \"world\""`))

	require.Len(t, tokens, 3)
	assert.Equal(t, TokenString, tokens[2].Type)
	assert.Equal(t, `"hello \"world\""`, tokens[2].Value)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		line  int
	}{
		{"unterminated string", "a = \"oops\nint b;", ErrUnterminatedString, 1},
		{"unterminated string at eof", `a = "oops`, ErrUnterminatedString, 1},
		{"unterminated comment", "int a;\n/* never closed", ErrUnterminatedComment, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("test.h", tt.input).Tokenize()
			require.Error(t, err)
			var lexErr *Error
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.kind, lexErr.Kind)
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, "test.h", lexErr.File)
		})
	}
}
