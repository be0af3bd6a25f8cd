package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-lang/sproutc/internal/grammar"
	"github.com/sprout-lang/sproutc/internal/lexer"
	"github.com/sprout-lang/sproutc/internal/ll1"
	"github.com/sprout-lang/sproutc/internal/parser"
	"github.com/sprout-lang/sproutc/internal/symtab"
	"github.com/sprout-lang/sproutc/internal/token"
)

// buildParser loads grammarSrc, tokenizes src, and returns a ready Parser.
func buildParser(t *testing.T, grammarSrc, src string) *parser.Parser {
	t.Helper()
	g, err := grammar.Load(strings.NewReader(grammarSrc))
	require.NoError(t, err)

	first := ll1.ComputeFirstSets(g)
	follow := ll1.ComputeFollowSets(g, first)
	table := ll1.BuildParseTable(g, first, follow, nil)

	tab := symtab.New()
	kw := symtab.NewKeywordTrie()
	lx := lexer.New(strings.NewReader(src), tab, kw, nil)
	toks := lx.Tokenize()

	return parser.New(g, table, follow, toks, nil)
}

func TestParseAcceptsWellFormedInput(t *testing.T) {
	grammarSrc := "<S> FIELDID <T>\n<T> PLUS FIELDID <T>\n<T>\n"
	p := buildParser(t, grammarSrc, "total+count+total")

	tree, diags := p.Parse()
	require.NotNil(t, tree)
	assert.Empty(t, diags)

	leaves := tree.Leaves()
	require.NotEmpty(t, leaves)
	assert.Equal(t, token.FIELDID, leaves[0].Symbol.Terminal)
}

func TestParseReportsTokenMismatch(t *testing.T) {
	grammarSrc := "<S> FIELDID PLUS FIELDID\n"
	p := buildParser(t, grammarSrc, "total total")

	tree, diags := p.Parse()
	require.NotNil(t, tree)
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "does not match the expected token")
}

func TestParseRecoversFromExtraToken(t *testing.T) {
	grammarSrc := "<S> FIELDID\n"
	p := buildParser(t, grammarSrc, "total +")

	_, diags := p.Parse()
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[len(diags)-1].Message, "Stack top is")
}
