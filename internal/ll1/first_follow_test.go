package ll1_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-lang/sproutc/internal/grammar"
	"github.com/sprout-lang/sproutc/internal/ll1"
	"github.com/sprout-lang/sproutc/internal/token"
)

// A tiny grammar: <S> -> ID <T> ; <T> -> PLUS ID <T> | EPS
func loadTestGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	src := "<S> ID <T>\n<T> PLUS ID <T>\n<T>\n"
	g, err := grammar.Load(strings.NewReader(src))
	require.NoError(t, err)
	return g
}

func TestFirstSetsBasic(t *testing.T) {
	g := loadTestGrammar(t)
	first := ll1.ComputeFirstSets(g)

	assert.True(t, first.Get("<S>").Has(token.ID))
	assert.False(t, first.IsNullable("<S>"))

	tFirst := first.Get("<T>")
	assert.True(t, tFirst.Has(token.PLUS))
	assert.True(t, tFirst.Has(token.EPS))
	assert.True(t, first.IsNullable("<T>"))
}

func TestFollowSetsBasic(t *testing.T) {
	g := loadTestGrammar(t)
	first := ll1.ComputeFirstSets(g)
	follow := ll1.ComputeFollowSets(g, first)

	assert.True(t, follow.Get("<S>").Has(token.END_OF_INPUT))
	assert.True(t, follow.Get("<T>").Has(token.END_OF_INPUT))
}

func TestBuildParseTableNoConflictsForLL1Grammar(t *testing.T) {
	g := loadTestGrammar(t)
	first := ll1.ComputeFirstSets(g)
	follow := ll1.ComputeFollowSets(g, first)
	table := ll1.BuildParseTable(g, first, follow, nil)

	p := table.Get("<S>", token.ID)
	require.NotNil(t, p)
	assert.Equal(t, "<S>", p.LHS)

	pEps := table.Get("<T>", token.END_OF_INPUT)
	require.NotNil(t, pEps)
	assert.True(t, pEps.IsEpsilon())
}
