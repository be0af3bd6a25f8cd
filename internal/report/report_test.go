package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-lang/sproutc/internal/grammar"
	"github.com/sprout-lang/sproutc/internal/lexer"
	"github.com/sprout-lang/sproutc/internal/ll1"
	"github.com/sprout-lang/sproutc/internal/parser"
	"github.com/sprout-lang/sproutc/internal/report"
	"github.com/sprout-lang/sproutc/internal/symtab"
	"github.com/sprout-lang/sproutc/internal/token"
)

func TestWriteTokenTableListsEveryToken(t *testing.T) {
	tab := symtab.New()
	kw := symtab.NewKeywordTrie()
	lx := lexer.New(strings.NewReader("total"), tab, kw, nil)
	toks := lx.Tokenize()

	var buf bytes.Buffer
	report.WriteTokenTable(&buf, toks)

	out := buf.String()
	assert.Contains(t, out, "Line No.")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "TK_DOLLAR")
}

func TestLexicalDiagnosticsOnlyCoversErrorTokens(t *testing.T) {
	tab := symtab.New()
	kw := symtab.NewKeywordTrie()
	lx := lexer.New(strings.NewReader("^"), tab, kw, nil)
	toks := lx.Tokenize()

	diags := report.LexicalDiagnostics(toks)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0], "Unrecognized pattern")
}

func TestStripCommentsTruncatesAtPercent(t *testing.T) {
	var buf bytes.Buffer
	err := report.StripComments(&buf, strings.NewReader("b22 % a comment\nc33\n"))
	require.NoError(t, err)
	assert.Equal(t, "b22 \nc33\n", buf.String())
}

func TestWriteParseTreeIncludesHeaderAndNodes(t *testing.T) {
	g, err := grammar.Load(strings.NewReader("<S> FIELDID\n"))
	require.NoError(t, err)
	first := ll1.ComputeFirstSets(g)
	follow := ll1.ComputeFollowSets(g, first)
	table := ll1.BuildParseTable(g, first, follow, nil)

	tab := symtab.New()
	kw := symtab.NewKeywordTrie()
	lx := lexer.New(strings.NewReader("total"), tab, kw, nil)
	toks := lx.Tokenize()

	p := parser.New(g, table, follow, toks, nil)
	tree, diags := p.Parse()
	require.NotNil(t, tree)
	require.Empty(t, diags)

	var buf bytes.Buffer
	report.WriteParseTree(&buf, tree)
	out := buf.String()
	assert.Contains(t, out, "lexeme")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, token.FIELDID.String())
}
