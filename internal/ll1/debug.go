package ll1

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kylelemons/godebug/pretty"

	"github.com/sprout-lang/sproutc/internal/grammar"
)

// PrintGrammar writes every production in grammar order, one per line, as
// "LHS -> RHS" with TK_-prefixed terminal names.
func PrintGrammar(g *grammar.Grammar, out io.Writer) {
	fmt.Fprintln(out, "GRAMMAR:")
	for _, p := range g.Productions {
		fmt.Fprintf(out, "  %s -> %s\n", p.LHS, strings.Join(symbolStrings(p.RHS), " "))
	}
}

// PrintFirstSets writes FIRST(A) for every non-terminal in g, sorted for
// stable output, using a pretty-printed diff-friendly dump of the set
// membership the way the FOLLOW dump below does.
func PrintFirstSets(g *grammar.Grammar, fs *FirstSets, out io.Writer) {
	fmt.Fprintln(out, "FIRST SETS:")
	for _, nt := range sortedNonTerminals(g) {
		set := fs.Get(nt)
		fmt.Fprintf(out, "  FIRST(%s) = %s\n", nt, pretty.Sprint(kindNames(set)))
	}
}

// PrintFollowSets writes FOLLOW(A) for every non-terminal in g.
func PrintFollowSets(g *grammar.Grammar, fs *FollowSets, out io.Writer) {
	fmt.Fprintln(out, "FOLLOW SETS:")
	for _, nt := range sortedNonTerminals(g) {
		set := fs.Get(nt)
		fmt.Fprintf(out, "  FOLLOW(%s) = %s\n", nt, pretty.Sprint(kindNames(set)))
	}
}

// PrintParseTable writes the table as one line per defined cell, since the
// terminal alphabet is large enough that a dense grid is mostly empty.
func PrintParseTable(g *grammar.Grammar, pt *ParseTable, out io.Writer) {
	fmt.Fprintln(out, "LL(1) PARSE TABLE:")
	type row struct {
		nt, term string
		rhs      []grammar.Symbol
	}
	var rows []row
	for key, p := range pt.table {
		rows = append(rows, row{key.nonTerminal, key.terminal.String(), p.RHS})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].nt != rows[j].nt {
			return rows[i].nt < rows[j].nt
		}
		return rows[i].term < rows[j].term
	})
	for _, r := range rows {
		fmt.Fprintf(out, "  M[%s, %s] = %s -> %s\n", r.nt, r.term, r.nt, strings.Join(symbolStrings(r.rhs), " "))
	}
}

func sortedNonTerminals(g *grammar.Grammar) []string {
	nts := append([]string(nil), g.NonTerminals()...)
	sort.Strings(nts)
	return nts
}

func kindNames(set *TerminalSet) []string {
	var out []string
	for _, k := range set.Kinds() {
		out = append(out, k.String())
	}
	sort.Strings(out)
	return out
}
