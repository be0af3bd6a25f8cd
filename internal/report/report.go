// Package report formats the external-facing artifacts: the token
// table, the inorder parse-tree dump, and plain diagnostic lines, plus
// the comment-stripping and timing utilities original_source exposes
// as separate CLI modes.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sprout-lang/sproutc/internal/lexer"
	"github.com/sprout-lang/sproutc/internal/parser"
	"github.com/sprout-lang/sproutc/internal/parsetree"
	"github.com/sprout-lang/sproutc/internal/token"
)

// WriteTokenTable writes the fixed-width "Line No. / Token / Lexeme"
// header and a dashed rule, then one line per token.
func WriteTokenTable(w io.Writer, tokens []lexer.Token) {
	fmt.Fprintf(w, "%-10s %-20s %-20s\n", "Line No.", "Token", "Lexeme")
	fmt.Fprintln(w, strings.Repeat("-", 53))
	for _, t := range tokens {
		fmt.Fprintf(w, "%-10d %-20s %-20s\n", t.Line, t.Entry.Kind.String(), t.Entry.Lexeme)
	}
}

// LexicalDiagnostics extracts one formatted diagnostic line per
// error-marker token in tokens, in the exact shapes spec'd for the
// syntax-stage reporting of lexical errors, so a tokens-only run (no
// parse) can still surface them.
func LexicalDiagnostics(tokens []lexer.Token) []string {
	var out []string
	for _, t := range tokens {
		if !t.Entry.Kind.IsError() {
			continue
		}
		out = append(out, lexicalMessage(t))
	}
	return out
}

func lexicalMessage(t lexer.Token) string {
	switch t.Entry.Kind {
	case token.ID_LENGTH_EXCEEDED:
		return fmt.Sprintf("Line %d  Error: Too long identifier: %q", t.Line, t.Entry.Lexeme)
	case token.FUN_LENGTH_EXCEEDED:
		return fmt.Sprintf("Line %d  Error: Too long function name: %q", t.Line, t.Entry.Lexeme)
	default:
		return fmt.Sprintf("Line %d  Error: Unrecognized pattern: %q", t.Line, t.Entry.Lexeme)
	}
}

// WriteDiagnostics writes one parser diagnostic per line, in the order
// they were recorded.
func WriteDiagnostics(w io.Writer, diags []parser.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.Message)
	}
}

// parseTreeHeader mirrors original_source's fixed-width column header,
// right-justified per field exactly as its printf does.
const parseTreeHeader = "%32s %12s %16s %20s %30s %12s %30s\n\n"

// parseTreeRow is the same field layout without the header text.
const parseTreeRow = "%32s %12d %16s %20s %30s %12s %30s\n"

// WriteParseTree writes the two-line fixed header followed by one row
// per node (terminal and non-terminal alike, using "-----" placeholders
// for whichever fields don't apply), visited in the tree's inorder walk:
// first child, then the node itself, then the remaining children.
func WriteParseTree(w io.Writer, root *parsetree.Node) {
	fmt.Fprintf(w, parseTreeHeader,
		"lexeme", "lineNum", "tokenName", "valueIfNumber", "parentNodeSymbol", "isLeafNode", "nodeSymbol")
	writeInorder(w, root, nil)
}

// WriteParseError writes the single message the report file contains
// when syntax errors prevented a tree from being emitted at all.
func WriteParseError(w io.Writer) {
	fmt.Fprintln(w, "Errors were encountered during parsing; no parse tree was produced. See diagnostics.")
}

func writeInorder(w io.Writer, curr, parent *parsetree.Node) {
	if curr == nil {
		return
	}
	if len(curr.Children) > 0 {
		writeInorder(w, curr.Children[0], curr)
	}
	writeNodeRow(w, curr, parent)
	if len(curr.Children) > 1 {
		for _, c := range curr.Children[1:] {
			writeInorder(w, c, curr)
		}
	}
}

func writeNodeRow(w io.Writer, curr, parent *parsetree.Node) {
	lexeme, tokenName, nodeSymbol := "-----", "-----", "-----"
	valueField := "Not number"
	isLeaf := "NO"

	if curr.Symbol.IsTerminal {
		isLeaf = "YES"
		if curr.Entry != nil {
			lexeme = curr.Entry.Lexeme
			tokenName = curr.Entry.Kind.String()
			switch curr.Entry.Kind {
			case token.NUM:
				valueField = fmt.Sprintf("%d", int64(curr.Entry.Numeric))
			case token.RNUM:
				valueField = fmt.Sprintf("%.2f", curr.Entry.Numeric)
			}
		}
	} else {
		nodeSymbol = curr.Symbol.NonTerminal
	}

	parentSymbol := "ROOT"
	if parent != nil {
		parentSymbol = parent.Symbol.NonTerminal
	}

	fmt.Fprintf(w, parseTreeRow, lexeme, curr.Line, tokenName, valueField, parentSymbol, isLeaf, nodeSymbol)
}

// StripComments copies src to dst, replacing everything from the first
// '%' on each line through end-of-line with a single newline — a direct
// port of original_source's line-buffered comment stripping, which
// truncates rather than continuing the scan onto the next line.
func StripComments(dst io.Writer, src io.Reader) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '%'); idx >= 0 {
			line = line[:idx]
		}
		if _, err := fmt.Fprintln(dst, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Timing measures how long fn takes to run, reporting both a raw
// duration and its floating-point seconds, in place of the original's
// clock()-based CPU-time measurement: Go has no portable equivalent, so
// wall-clock time via time.Since is the idiomatic substitute.
type Timing struct {
	Elapsed time.Duration
	Seconds float64
}

// Time runs fn and returns how long it took.
func Time(fn func()) Timing {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	return Timing{Elapsed: elapsed, Seconds: elapsed.Seconds()}
}

// WriteTiming writes the timing report in the same two-measurement
// shape as original_source's console output.
func WriteTiming(w io.Writer, t Timing) {
	fmt.Fprintln(w, "Total time taken for lexical and syntactic analysis and parse-tree printing:")
	fmt.Fprintf(w, "Elapsed time: %s\n", t.Elapsed)
	fmt.Fprintf(w, "Elapsed time (in seconds): %f\n", t.Seconds)
}
