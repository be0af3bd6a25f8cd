package grammar

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/sprout-lang/sproutc/internal/token"
)

// grammarLexer tokenizes the grammar-file text itself (not the source
// language): non-terminal names in angle brackets, bare terminal names,
// and significant newlines that delimit one production per line.
var grammarLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "NonTerminal", Pattern: `<[A-Za-z_][A-Za-z0-9_]*>`},
	{Name: "Terminal", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
})

type astFile struct {
	Lines []*astLine `parser:"(@@ | Newline)*"`
}

type astLine struct {
	LHS string   `parser:"@NonTerminal"`
	RHS []string `parser:"@(NonTerminal | Terminal)* Newline?"`
}

var grammarParser = participle.MustBuild[astFile](
	participle.Lexer(grammarLexer),
	participle.Elide("Whitespace"),
)

// Load reads a grammar file from r: one production per non-blank line,
// `LHS RHS1 RHS2 ...`. `<Name>` tokens are non-terminals; bare identifiers
// are terminals, resolved by their bare (TK_-less) name against the token
// enumeration via token.ByName. An unknown terminal name is a fatal load error rather than
// a silently admitted NOT_FOUND production.
func Load(r io.Reader) (*Grammar, error) {
	ast, err := grammarParser.Parse("grammar", r)
	if err != nil {
		return nil, fmt.Errorf("parsing grammar file: %w", err)
	}

	g := &Grammar{}
	for i, line := range ast.Lines {
		rhs := make([]Symbol, 0, len(line.RHS))
		for _, sym := range line.RHS {
			s, err := resolveSymbol(sym)
			if err != nil {
				return nil, fmt.Errorf("production %d (%s): %w", i+1, line.LHS, err)
			}
			rhs = append(rhs, s)
		}
		if len(rhs) == 0 {
			rhs = []Symbol{Term(token.EPS)}
		}
		if i == 0 {
			g.Start = line.LHS
		}
		g.Productions = append(g.Productions, Production{LHS: line.LHS, RHS: rhs})
	}
	if len(g.Productions) == 0 {
		return nil, fmt.Errorf("grammar file contains no productions")
	}
	return g, nil
}

func resolveSymbol(raw string) (Symbol, error) {
	if len(raw) > 0 && raw[0] == '<' {
		return NonTerm(raw), nil
	}
	kind := token.ByName(raw)
	if kind == token.NOT_FOUND {
		return Symbol{}, fmt.Errorf("unknown terminal %q", raw)
	}
	return Term(kind), nil
}
