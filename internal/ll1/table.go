package ll1

import (
	"go.uber.org/zap"

	"github.com/sprout-lang/sproutc/internal/grammar"
	"github.com/sprout-lang/sproutc/internal/token"
)

type tableKey struct {
	nonTerminal string
	terminal    token.Kind
}

// ParseTable is the LL(1) table M[non-terminal][terminal] -> production.
// A cell is either undefined (driver falls into panic-mode recovery) or
// holds exactly one production.
type ParseTable struct {
	table map[tableKey]*grammar.Production
}

// Get returns the production for (nt, t), or nil if the cell is undefined.
func (t *ParseTable) Get(nt string, term token.Kind) *grammar.Production {
	return t.table[tableKey{nt, term}]
}

// BuildParseTable populates the table from the grammar's productions and
// their precomputed FIRST/FOLLOW sets. Per the grammar's conflict policy,
// a cell collision does not abort construction: the later production wins
// and a diagnostic is logged, since the grammar is expected to already be
// LL(1) and a collision signals a grammar bug rather than a load failure.
func BuildParseTable(g *grammar.Grammar, first *FirstSets, follow *FollowSets, logger *zap.Logger) *ParseTable {
	pt := &ParseTable{table: make(map[tableKey]*grammar.Production)}

	for i := range g.Productions {
		p := &g.Productions[i]
		firstAlpha := first.FirstOfSequence(p.RHS)
		for _, t := range firstAlpha.Kinds() {
			if t == token.EPS {
				continue
			}
			pt.addEntry(p.LHS, t, p, logger)
		}
		if firstAlpha.Has(token.EPS) {
			for _, t := range follow.Get(p.LHS).Kinds() {
				pt.addEntry(p.LHS, t, p, logger)
			}
		}
	}
	return pt
}

func (pt *ParseTable) addEntry(nt string, term token.Kind, p *grammar.Production, logger *zap.Logger) {
	key := tableKey{nt, term}
	if existing, ok := pt.table[key]; ok && existing != p {
		if logger != nil {
			logger.Warn("LL(1) conflict: overwriting table cell",
				zap.String("nonTerminal", nt),
				zap.String("terminal", term.String()),
				zap.Strings("existingRHS", symbolStrings(existing.RHS)),
				zap.Strings("newRHS", symbolStrings(p.RHS)),
			)
		}
	}
	pt.table[key] = p
}

func symbolStrings(syms []grammar.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.String()
	}
	return out
}
