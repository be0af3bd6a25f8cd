package ll1

import (
	"github.com/sprout-lang/sproutc/internal/grammar"
	"github.com/sprout-lang/sproutc/internal/token"
)

// FirstSets holds the FIRST set of every non-terminal in a grammar,
// computed by fixed-point iteration and stored as dense bitsets.
type FirstSets struct {
	sets map[string]*TerminalSet
}

// Get returns the FIRST set for a non-terminal, or an empty set if it is
// not (yet) known — callers never need a nil check.
func (fs *FirstSets) Get(nt string) *TerminalSet {
	if s, ok := fs.sets[nt]; ok {
		return s
	}
	return &TerminalSet{}
}

// IsNullable reports whether EPS is in nt's FIRST set.
func (fs *FirstSets) IsNullable(nt string) bool {
	return fs.Get(nt).Has(token.EPS)
}

// ComputeFirstSets runs the standard fixed-point algorithm: iterate over
// every production, union in the FIRST of its RHS, until no set grows.
func ComputeFirstSets(g *grammar.Grammar) *FirstSets {
	fs := &FirstSets{sets: make(map[string]*TerminalSet)}
	for _, nt := range g.NonTerminals() {
		fs.sets[nt] = &TerminalSet{}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			rhsFirst := fs.firstOfSequence(p.RHS)
			if fs.sets[p.LHS].AddAll(rhsFirst) {
				changed = true
			}
		}
	}
	return fs
}

// firstOfSequence computes FIRST(X1 X2 ... Xn): the union of FIRST(Xi)
// (minus EPS) for the longest nullable prefix, plus EPS itself only if
// every Xi is nullable (or the sequence is empty).
func (fs *FirstSets) firstOfSequence(seq []grammar.Symbol) *TerminalSet {
	result := &TerminalSet{}
	allNullable := true
	for _, sym := range seq {
		var symFirst *TerminalSet
		var nullable bool
		if sym.IsTerminal {
			symFirst = &TerminalSet{}
			symFirst.Add(sym.Terminal)
			nullable = sym.Terminal == token.EPS
		} else {
			symFirst = fs.Get(sym.NonTerminal)
			nullable = fs.IsNullable(sym.NonTerminal)
		}
		result.AddAllExcept(symFirst, token.EPS)
		if !nullable {
			allNullable = false
			break
		}
	}
	if allNullable {
		result.Add(token.EPS)
	}
	return result
}

// FirstOfSequence exposes firstOfSequence for the table builder.
func (fs *FirstSets) FirstOfSequence(seq []grammar.Symbol) *TerminalSet {
	return fs.firstOfSequence(seq)
}
