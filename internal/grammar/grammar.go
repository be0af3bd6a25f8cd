// Package grammar holds the grammar data model — symbols, productions, and
// the ordered grammar they form — plus the loader that reads them from an
// external text file.
package grammar

import "github.com/sprout-lang/sproutc/internal/token"

// Symbol is a tagged variant: either a non-terminal name or a terminal
// token kind. Exactly one of the two is meaningful, selected by IsTerminal.
type Symbol struct {
	IsTerminal  bool
	Terminal    token.Kind
	NonTerminal string
}

// Term constructs a terminal symbol.
func Term(k token.Kind) Symbol {
	return Symbol{IsTerminal: true, Terminal: k}
}

// NonTerm constructs a non-terminal symbol, named including its angle
// brackets (e.g. "<Stmt>") so it round-trips with the grammar file text.
func NonTerm(name string) Symbol {
	return Symbol{NonTerminal: name}
}

// String renders the symbol: the bracketed name for a non-terminal, or the
// TK_-prefixed terminal name (token.Kind.String) for a terminal.
func (s Symbol) String() string {
	if s.IsTerminal {
		return s.Terminal.String()
	}
	return s.NonTerminal
}

// Production is one grammar rule: a left-hand non-terminal and an ordered
// right-hand side. An empty RHS is represented as a single EPS terminal,
// never an empty slice.
type Production struct {
	LHS string
	RHS []Symbol
}

// IsEpsilon reports whether this production's RHS is the sole EPS terminal.
func (p Production) IsEpsilon() bool {
	return len(p.RHS) == 1 && p.RHS[0].IsTerminal && p.RHS[0].Terminal == token.EPS
}

// Grammar is the ordered array of productions loaded from a grammar file,
// plus the start symbol (the LHS of the first production).
type Grammar struct {
	Start       string
	Productions []Production
}

// NonTerminals returns the distinct non-terminals that appear as some
// production's LHS, in first-appearance order.
func (g Grammar) NonTerminals() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range g.Productions {
		if !seen[p.LHS] {
			seen[p.LHS] = true
			out = append(out, p.LHS)
		}
	}
	return out
}

// ProductionsFor returns the productions, in grammar order, whose LHS is nt.
func (g Grammar) ProductionsFor(nt string) []Production {
	var out []Production
	for _, p := range g.Productions {
		if p.LHS == nt {
			out = append(out, p)
		}
	}
	return out
}
