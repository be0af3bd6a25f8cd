package compiler_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-lang/sproutc/internal/compiler"
)

func writeGrammar(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "grammar.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestNewLoadsGrammarAndBuildsTable(t *testing.T) {
	path := writeGrammar(t, t.TempDir(), "<S> FIELDID\n")
	c, err := compiler.New(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "<S>", c.Grammar.Start)
	assert.NotNil(t, c.Table)
}

func TestLexAndParseRunsEndToEnd(t *testing.T) {
	path := writeGrammar(t, t.TempDir(), "<S> FIELDID\n")
	c, err := compiler.New(path, nil)
	require.NoError(t, err)

	run := c.LexAndParse(strings.NewReader("total"))
	require.NotNil(t, run.Tree)
	assert.Empty(t, run.Diags)
	assert.Equal(t, 2, run.Symbols.Len()) // the FIELDID lexeme plus the interned END_OF_INPUT marker
}

func TestNewRejectsMissingGrammarFile(t *testing.T) {
	_, err := compiler.New(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}
