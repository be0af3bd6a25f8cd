// Package parser implements the table-driven LL(1) parser: it walks the
// parse table built by internal/ll1 over a lexer.Token stream, filtering
// COMMENT tokens up front and recovering from both lexical and syntactic
// errors via panic mode, so a single run surfaces every error it finds
// instead of stopping at the first one.
package parser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sprout-lang/sproutc/internal/grammar"
	"github.com/sprout-lang/sproutc/internal/lexer"
	"github.com/sprout-lang/sproutc/internal/ll1"
	"github.com/sprout-lang/sproutc/internal/parsetree"
	"github.com/sprout-lang/sproutc/internal/symtab"
	"github.com/sprout-lang/sproutc/internal/token"
)

// Diagnostic is one recovered error: a source line and a fully formatted
// message, ready to print as-is.
type Diagnostic struct {
	Line    int
	Message string
}

// Parser drives the LL(1) table over a token stream.
type Parser struct {
	table   *ll1.ParseTable
	follow  *ll1.FollowSets
	grammar *grammar.Grammar
	tokens  []lexer.Token
	pos     int
	diags   []Diagnostic
	logger  *zap.Logger
}

// New creates a Parser over tokens, a stream already terminated by a
// single END_OF_INPUT token. COMMENT tokens carry no grammar meaning and
// are dropped here rather than threaded through the table-driven loop.
// logger receives Debug events for panic-mode recovery; a nil logger is
// treated as a no-op sink.
func New(g *grammar.Grammar, table *ll1.ParseTable, follow *ll1.FollowSets, tokens []lexer.Token, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Entry.Kind == token.COMMENT {
			continue
		}
		filtered = append(filtered, t)
	}
	if len(filtered) == 0 {
		filtered = append(filtered, lexer.Token{Entry: &symtab.Entry{Lexeme: "", Kind: token.END_OF_INPUT}, Line: 1})
	}
	return &Parser{table: table, follow: follow, grammar: g, tokens: filtered, logger: logger}
}

// epsilonEntry backs every synthetic EPS leaf the driver attaches when a
// non-terminal is expanded by an empty production.
var epsilonEntry = &symtab.Entry{Lexeme: "EPSILON", Kind: token.EPS}

type stackFrame struct {
	sym      grammar.Symbol
	isEOF    bool
	isMarker bool
	node     *parsetree.Node
	count    int
}

// Parse runs the table-driven algorithm to completion, returning the
// built parse tree (nil if construction failed outright) and every
// diagnostic recovered along the way, in the order encountered.
func (p *Parser) Parse() (*parsetree.Node, []Diagnostic) {
	stack := []stackFrame{
		{isEOF: true},
		{sym: grammar.NonTerm(p.grammar.Start)},
	}
	var nodeStack []*parsetree.Node

	for len(stack) > 0 {
		p.skipErrorTokens()

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		lookahead := p.currentKind()

		switch {
		case top.isMarker:
			children := make([]*parsetree.Node, top.count)
			for i := top.count - 1; i >= 0; i-- {
				children[i] = nodeStack[len(nodeStack)-1]
				nodeStack = nodeStack[:len(nodeStack)-1]
			}
			top.node.Children = children
			nodeStack = append(nodeStack, top.node)

		case top.isEOF:
			if lookahead != token.END_OF_INPUT {
				tok := p.current()
				p.diags = append(p.diags, Diagnostic{
					Line:    tok.Line,
					Message: fmt.Sprintf("Line %d  Error: Invalid token %s encountered with value %q. Stack top is: %s", tok.Line, tok.Entry.Kind, tok.Entry.Lexeme, token.END_OF_INPUT.String()),
				})
			}

		case top.sym.IsTerminal:
			tok := p.current()
			if tok.Entry.Kind == top.sym.Terminal {
				nodeStack = append(nodeStack, &parsetree.Node{Symbol: top.sym, Entry: tok.Entry, Line: tok.Line})
				p.advance()
			} else {
				p.diags = append(p.diags, Diagnostic{
					Line: tok.Line,
					Message: fmt.Sprintf("Line %d  Error: The token %s for lexeme %q does not match the expected token %s",
						tok.Line, tok.Entry.Kind, tok.Entry.Lexeme, top.sym.Terminal),
				})
				nodeStack = append(nodeStack, &parsetree.Node{Symbol: top.sym, Line: tok.Line})
			}

		default:
			prod := p.table.Get(top.sym.NonTerminal, lookahead)
			if prod == nil {
				tok := p.current()
				p.diags = append(p.diags, Diagnostic{
					Line: tok.Line,
					Message: fmt.Sprintf("Line %d  Error: Invalid token %s encountered with value %q. Stack top is: %s",
						tok.Line, tok.Entry.Kind, tok.Entry.Lexeme, top.sym.NonTerminal),
				})
				// END_OF_INPUT is always treated as a synchronizing token: with
				// no more input to discard, the only way forward is to give up
				// on this non-terminal rather than loop forever retrying it.
				if lookahead == token.END_OF_INPUT || p.follow.Get(top.sym.NonTerminal).Has(lookahead) {
					p.logger.Debug("panic-mode recovery: synchronizing on FOLLOW set",
						zap.String("nonterminal", top.sym.NonTerminal),
						zap.String("lookahead", lookahead.String()),
						zap.Int("line", tok.Line))
					nodeStack = append(nodeStack, &parsetree.Node{Symbol: top.sym, Line: tok.Line})
					continue
				}
				p.logger.Debug("panic-mode recovery: discarding token",
					zap.String("nonterminal", top.sym.NonTerminal),
					zap.String("lookahead", lookahead.String()),
					zap.Int("line", tok.Line))
				p.advance()
				stack = append(stack, top)
				continue
			}

			node := &parsetree.Node{Symbol: top.sym, Line: p.current().Line}
			if prod.IsEpsilon() {
				node.Children = []*parsetree.Node{{Symbol: grammar.Term(token.EPS), Entry: epsilonEntry, Line: node.Line}}
				nodeStack = append(nodeStack, node)
				continue
			}

			stack = append(stack, stackFrame{isMarker: true, node: node, count: len(prod.RHS)})
			for i := len(prod.RHS) - 1; i >= 0; i-- {
				stack = append(stack, stackFrame{sym: prod.RHS[i]})
			}
		}
	}

	if len(nodeStack) != 1 {
		return nil, p.diags
	}
	return nodeStack[0], p.diags
}

// skipErrorTokens records and discards a run of lexical error-marker
// tokens at the current position without touching the parse stack: they
// are not part of any production and must never be matched against one.
func (p *Parser) skipErrorTokens() {
	for p.pos < len(p.tokens)-1 && p.tokens[p.pos].Entry.Kind.IsError() {
		tok := p.tokens[p.pos]
		p.diags = append(p.diags, Diagnostic{Line: tok.Line, Message: errorTokenMessage(tok)})
		p.pos++
	}
}

func errorTokenMessage(tok lexer.Token) string {
	switch tok.Entry.Kind {
	case token.ID_LENGTH_EXCEEDED:
		return fmt.Sprintf("Line %d  Error: Too long identifier: %q", tok.Line, tok.Entry.Lexeme)
	case token.FUN_LENGTH_EXCEEDED:
		return fmt.Sprintf("Line %d  Error: Too long function name: %q", tok.Line, tok.Entry.Lexeme)
	default:
		return fmt.Sprintf("Line %d  Error: Unrecognized pattern: %q", tok.Line, tok.Entry.Lexeme)
	}
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) currentKind() token.Kind {
	return p.current().Entry.Kind
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}
