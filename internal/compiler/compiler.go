// Package compiler wires the front-end components into a single
// explicitly-constructed context: the global mutable process-wide
// tables the original source relies on (keyword table, symbol table,
// grammar, FIRST/FOLLOW, parse table) become fields here instead,
// passed around through constructor arguments rather than init-once
// globals.
package compiler

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/sprout-lang/sproutc/internal/grammar"
	"github.com/sprout-lang/sproutc/internal/lexer"
	"github.com/sprout-lang/sproutc/internal/ll1"
	"github.com/sprout-lang/sproutc/internal/parser"
	"github.com/sprout-lang/sproutc/internal/parsetree"
	"github.com/sprout-lang/sproutc/internal/symtab"
)

// Compiler holds every artifact computed once from a grammar file and
// shared, read-only, across every subsequent lexer/parser run.
type Compiler struct {
	Logger   *zap.Logger
	Keywords *symtab.KeywordTrie
	Grammar  *grammar.Grammar
	First    *ll1.FirstSets
	Follow   *ll1.FollowSets
	Table    *ll1.ParseTable
}

// New loads the grammar file at grammarPath and precomputes FIRST,
// FOLLOW, and the LL(1) parse table. logger may be nil, in which case
// parse-table conflicts are silently resolved (last production wins)
// without a diagnostic.
func New(grammarPath string, logger *zap.Logger) (*Compiler, error) {
	f, err := os.Open(grammarPath)
	if err != nil {
		return nil, fmt.Errorf("compiler: opening grammar file: %w", err)
	}
	defer f.Close()

	g, err := grammar.Load(f)
	if err != nil {
		return nil, fmt.Errorf("compiler: loading grammar: %w", err)
	}

	first := ll1.ComputeFirstSets(g)
	follow := ll1.ComputeFollowSets(g, first)
	table := ll1.BuildParseTable(g, first, follow, logger)

	return &Compiler{
		Logger:   logger,
		Keywords: symtab.NewKeywordTrie(),
		Grammar:  g,
		First:    first,
		Follow:   follow,
		Table:    table,
	}, nil
}

// Run holds the per-invocation state of a single source file's lexing
// and parsing: its own symbol table (symbols never leak across runs)
// and the resulting token stream and parse tree.
type Run struct {
	Symbols *symtab.Table
	Tokens  []lexer.Token
	Tree    *parsetree.Node
	Diags   []parser.Diagnostic
}

// Lex tokenizes src into a fresh Run, ready for Parse or for direct
// token-table reporting.
func (c *Compiler) Lex(src io.Reader) *Run {
	tab := symtab.New()
	lx := lexer.New(src, tab, c.Keywords, c.Logger)
	return &Run{Symbols: tab, Tokens: lx.Tokenize()}
}

// Parse runs the LL(1) driver over r's already-lexed token stream,
// populating Tree and Diags.
func (c *Compiler) Parse(r *Run) {
	p := parser.New(c.Grammar, c.Table, c.Follow, r.Tokens, c.Logger)
	r.Tree, r.Diags = p.Parse()
}

// LexAndParse is the common case: tokenize src and immediately parse
// the resulting stream.
func (c *Compiler) LexAndParse(src io.Reader) *Run {
	r := c.Lex(src)
	c.Parse(r)
	return r
}
