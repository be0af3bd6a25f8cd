package ll1

import (
	"github.com/sprout-lang/sproutc/internal/grammar"
	"github.com/sprout-lang/sproutc/internal/token"
)

// FollowSets holds the FOLLOW set of every non-terminal in a grammar.
type FollowSets struct {
	sets map[string]*TerminalSet
}

// Get returns the FOLLOW set for a non-terminal, or an empty set.
func (fs *FollowSets) Get(nt string) *TerminalSet {
	if s, ok := fs.sets[nt]; ok {
		return s
	}
	return &TerminalSet{}
}

// ComputeFollowSets runs the standard fixed-point algorithm given
// precomputed FIRST sets. FOLLOW(start) always contains END_OF_INPUT.
func ComputeFollowSets(g *grammar.Grammar, first *FirstSets) *FollowSets {
	fs := &FollowSets{sets: make(map[string]*TerminalSet)}
	for _, nt := range g.NonTerminals() {
		fs.sets[nt] = &TerminalSet{}
	}
	fs.sets[g.Start].Add(token.END_OF_INPUT)

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			for i, sym := range p.RHS {
				if sym.IsTerminal {
					continue
				}
				rest := p.RHS[i+1:]
				restFirst := first.firstOfSequence(rest)
				if fs.sets[sym.NonTerminal].AddAllExcept(restFirst, token.EPS) {
					changed = true
				}
				if len(rest) == 0 || restFirst.Has(token.EPS) {
					if fs.sets[sym.NonTerminal].AddAll(fs.sets[p.LHS]) {
						changed = true
					}
				}
			}
		}
	}
	return fs
}
