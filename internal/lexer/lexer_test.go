package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-lang/sproutc/internal/lexer"
	"github.com/sprout-lang/sproutc/internal/symtab"
	"github.com/sprout-lang/sproutc/internal/token"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	tab := symtab.New()
	kw := symtab.NewKeywordTrie()
	l := lexer.New(strings.NewReader(src), tab, kw, nil)
	return l.Tokenize()
}

func kinds(toks []lexer.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Entry.Kind
	}
	return out
}

func TestIDShape(t *testing.T) {
	toks := tokenize(t, "b2")
	require.Len(t, toks, 2)
	assert.Equal(t, token.ID, toks[0].Entry.Kind)
	assert.Equal(t, "b2", toks[0].Entry.Lexeme)
	assert.Equal(t, token.END_OF_INPUT, toks[1].Entry.Kind)
}

func TestMainKeyword(t *testing.T) {
	toks := tokenize(t, "_main")
	require.Len(t, toks, 2)
	assert.Equal(t, token.MAIN, toks[0].Entry.Kind)
	assert.Equal(t, "_main", toks[0].Entry.Lexeme)
}

func TestRNUMWithExponent(t *testing.T) {
	toks := tokenize(t, "3.14E-05")
	require.Len(t, toks, 2)
	assert.Equal(t, token.RNUM, toks[0].Entry.Kind)
	assert.Equal(t, "3.14E-05", toks[0].Entry.Lexeme)
	assert.InDelta(t, 3.14e-5, toks[0].Entry.Numeric, 1e-9)
}

func TestTrailingDotRetracted(t *testing.T) {
	toks := tokenize(t, "3.")
	require.Len(t, toks, 3)
	assert.Equal(t, token.NUM, toks[0].Entry.Kind)
	assert.Equal(t, "3", toks[0].Entry.Lexeme)
	assert.Equal(t, token.DOT, toks[1].Entry.Kind)
	assert.Equal(t, token.END_OF_INPUT, toks[2].Entry.Kind)
}

func TestAssignopFullMatch(t *testing.T) {
	toks := tokenize(t, "<--- x")
	require.Len(t, toks, 3)
	assert.Equal(t, token.ASSIGNOP, toks[0].Entry.Kind)
	assert.Equal(t, "<---", toks[0].Entry.Lexeme)
	assert.Equal(t, token.FIELDID, toks[1].Entry.Kind)
}

func TestAssignopPartialMatchIsError(t *testing.T) {
	toks := tokenize(t, "<-- x")
	require.Len(t, toks, 3)
	assert.Equal(t, token.LEXICAL_ERROR, toks[0].Entry.Kind)
	assert.Equal(t, "<--", toks[0].Entry.Lexeme)
}

func TestCommentAdvancesLine(t *testing.T) {
	toks := tokenize(t, "%hello\nb2")
	require.Len(t, toks, 3)
	assert.Equal(t, token.COMMENT, toks[0].Entry.Kind)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, token.ID, toks[1].Entry.Kind)
	assert.Equal(t, 2, toks[1].Line)
}

func TestEmptyInputIsSingleEndOfInput(t *testing.T) {
	toks := tokenize(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.END_OF_INPUT, toks[0].Entry.Kind)
}

func TestIDLengthExactlyTwentyIsOrdinary(t *testing.T) {
	// b-run then digits 2-7, total length exactly 20.
	lexeme := strings.Repeat("b", 10) + strings.Repeat("2", 10)
	toks := tokenize(t, lexeme)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ID, toks[0].Entry.Kind)
	assert.Equal(t, lexeme, toks[0].Entry.Lexeme)
}

func TestIDLengthOverTwentyIsLengthExceeded(t *testing.T) {
	lexeme := strings.Repeat("b", 11) + strings.Repeat("2", 10)
	toks := tokenize(t, lexeme)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ID_LENGTH_EXCEEDED, toks[0].Entry.Kind)
	assert.True(t, strings.HasSuffix(toks[0].Entry.Lexeme, "..."))
}

func TestFieldIDKeywordLookup(t *testing.T) {
	toks := tokenize(t, "while")
	require.Len(t, toks, 2)
	assert.Equal(t, token.WHILE, toks[0].Entry.Kind)
}

func TestFieldIDFallsBackFromBDPrefix(t *testing.T) {
	// "bx" starts in b..d but the continuation is not digit 2..7, so the
	// whole thing becomes a FIELDID.
	toks := tokenize(t, "bx")
	require.Len(t, toks, 2)
	assert.Equal(t, token.FIELDID, toks[0].Entry.Kind)
	assert.Equal(t, "bx", toks[0].Entry.Lexeme)
}

func TestRUID(t *testing.T) {
	toks := tokenize(t, "#record")
	require.Len(t, toks, 2)
	assert.Equal(t, token.RUID, toks[0].Entry.Kind)
	assert.Equal(t, "#record", toks[0].Entry.Lexeme)
}

func TestUnrecognizedCharacter(t *testing.T) {
	toks := tokenize(t, "$")
	require.Len(t, toks, 2)
	assert.Equal(t, token.LEXICAL_ERROR, toks[0].Entry.Kind)
}

func TestLexemeInterning(t *testing.T) {
	toks := tokenize(t, "while while")
	require.Len(t, toks, 3)
	assert.Same(t, toks[0].Entry, toks[1].Entry)
}
