// Package lexer implements the hand-rolled DFA that turns a twin-buffered
// character stream into a token list. It preserves the source grammar's
// identifier-shape and numeric-literal quirks bit-exactly, including the
// retraction counts that disambiguate them.
package lexer

import (
	"io"

	"go.uber.org/zap"

	"github.com/sprout-lang/sproutc/internal/buffer"
	"github.com/sprout-lang/sproutc/internal/symtab"
	"github.com/sprout-lang/sproutc/internal/token"
)

// idLenLimit and funLenLimit bound ordinary ID and FUNID lexemes before
// they are reclassified as the corresponding *_LENGTH_EXCEEDED kind.
const (
	idLenLimit  = 20
	funLenLimit = 30
	ellipsis    = "..."
)

// Token is one element of the lexer's output stream: an interned entry
// paired with the source line its lexeme began on.
type Token struct {
	Entry *symtab.Entry
	Line  int
}

// Lexer drives the DFA over a TwinBuffer, interning every lexeme it
// recognizes into the shared symbol table.
type Lexer struct {
	buf      *buffer.TwinBuffer
	symtab   *symtab.Table
	keywords *symtab.KeywordTrie
	logger   *zap.Logger
	line     int
	done     bool
}

// New creates a Lexer reading from r. tab and kw are typically shared
// across a whole compiler run via the compiler context. logger receives
// Warn events for identifier truncation and unrecognized characters; a
// nil logger is treated as a no-op sink.
func New(r io.Reader, tab *symtab.Table, kw *symtab.KeywordTrie, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lexer{
		buf:      buffer.New(r),
		symtab:   tab,
		keywords: kw,
		logger:   logger,
		line:     1,
	}
}

// Tokenize runs the lexer to completion and returns the full token list,
// terminated by a single END_OF_INPUT token.
func (l *Lexer) Tokenize() []Token {
	var out []Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Entry.Kind == token.END_OF_INPUT {
			return out
		}
	}
}

const eof = 0

func isDigit(c byte) bool     { return c >= '0' && c <= '9' }
func isDigit27(c byte) bool   { return c >= '2' && c <= '7' }
func isBD(c byte) bool        { return c >= 'b' && c <= 'd' }
func isLowerAZ(c byte) bool   { return c >= 'a' && c <= 'z' }
func isFieldStart(c byte) bool {
	return c == 'a' || (c >= 'e' && c <= 'z')
}
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// NextToken returns exactly one token, always making forward progress.
func (l *Lexer) NextToken() Token {
	for {
		if l.done {
			return l.emit(token.END_OF_INPUT, "", 0, l.line)
		}

		beginLine := l.line
		begin := l.buf.Pos() + 1
		c := l.buf.Next()

		switch {
		case c == eof:
			l.done = true
			return l.emit(token.END_OF_INPUT, "", 0, l.line)
		case c == '\n':
			l.line++
			continue
		case c == ' ' || c == '\t' || c == '\r':
			continue
		case c == '%':
			return l.lexComment(begin, beginLine)
		case isDigit(c):
			return l.lexNumber(begin, beginLine)
		case c == '_':
			return l.lexFunID(begin, beginLine)
		case c == '#':
			return l.lexRUID(begin, beginLine)
		case isBD(c):
			return l.lexBDStart(begin, beginLine)
		case isFieldStart(c):
			return l.lexFieldID(begin, beginLine)
		case c == '<':
			return l.lexLT(begin, beginLine)
		case c == '>':
			return l.lexGT(begin, beginLine)
		case c == '=':
			return l.lexEQ(begin, beginLine)
		case c == '!':
			return l.lexBang(begin, beginLine)
		case c == '&':
			return l.lexAnd(begin, beginLine)
		case c == '@':
			return l.lexOr(begin, beginLine)
		case c == '[':
			return l.emit(token.SQL, "[", 0, beginLine)
		case c == ']':
			return l.emit(token.SQR, "]", 0, beginLine)
		case c == ',':
			return l.emit(token.COMMA, ",", 0, beginLine)
		case c == ';':
			return l.emit(token.SEM, ";", 0, beginLine)
		case c == ':':
			return l.emit(token.COLON, ":", 0, beginLine)
		case c == '.':
			return l.emit(token.DOT, ".", 0, beginLine)
		case c == '(':
			return l.emit(token.OP, "(", 0, beginLine)
		case c == ')':
			return l.emit(token.CL, ")", 0, beginLine)
		case c == '+':
			return l.emit(token.PLUS, "+", 0, beginLine)
		case c == '-':
			return l.emit(token.MINUS, "-", 0, beginLine)
		case c == '*':
			return l.emit(token.MUL, "*", 0, beginLine)
		case c == '/':
			return l.emit(token.DIV, "/", 0, beginLine)
		case c == '~':
			return l.emit(token.NOT, "~", 0, beginLine)
		default:
			l.logger.Warn("unrecognized character", zap.String("char", string(c)), zap.Int("line", beginLine))
			return l.emit(token.LEXICAL_ERROR, string(c), 0, beginLine)
		}
	}
}

// emit interns lexeme with the given kind and numeric value and returns a
// Token bound to the resulting entry.
func (l *Lexer) emit(kind token.Kind, lexeme string, numeric float64, line int) Token {
	e := l.symtab.Intern(lexeme, kind, numeric)
	return Token{Entry: e, Line: line}
}

// retract1 retracts one character, matching the original DFA's single
// decrement-and-possibly-re-arm sequence used after every failed lookahead.
func (l *Lexer) retract1() {
	l.buf.Retract(1)
}

// retract2 retracts two characters, used by the "digits . non-digit"
// numeric dead end where both the dot and its follower must be returned,
// and by a failed "<-" where both the '-' and its follower are returned.
func (l *Lexer) retract2() {
	l.buf.Retract(2)
}

func (l *Lexer) lexComment(begin, line int) Token {
	tok := l.emit(token.COMMENT, "%", 0, line)
	for {
		c := l.buf.Next()
		if c == '\n' || c == eof {
			if c == eof {
				l.done = true
			}
			break
		}
	}
	l.line++
	return tok
}

// lexNumber handles NUM and both RNUM shapes starting from the first
// digit already consumed at begin.
func (l *Lexer) lexNumber(begin, line int) Token {
	for isDigit(l.buf.Next()) {
	}
	l.retract1()
	c := l.buf.Next()
	if c != '.' {
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.NUM, lexeme, parseInt(lexeme), line)
	}

	// Saw the dot; need exactly two fractional digits.
	d1 := l.buf.Next()
	if !isDigit(d1) {
		// Dot after digits not followed by a digit: retract the dot and
		// this lookahead character, emit the integer part as NUM.
		l.retract2()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.NUM, lexeme, parseInt(lexeme), line)
	}
	d2 := l.buf.Next()
	if !isDigit(d2) {
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.LEXICAL_ERROR, lexeme, 0, line)
	}

	nxt := l.buf.Next()
	if nxt != 'E' {
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.RNUM, lexeme, parseRNUMDecimal(lexeme), line)
	}

	// Exponent: optional sign, then exactly two digits.
	e1 := l.buf.Next()
	signSeen := e1 == '+' || e1 == '-'
	if signSeen {
		e1 = l.buf.Next()
	}
	if !isDigit(e1) {
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.LEXICAL_ERROR, lexeme, 0, line)
	}
	e2 := l.buf.Next()
	if !isDigit(e2) {
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.LEXICAL_ERROR, lexeme, 0, line)
	}
	lexeme := string(l.buf.Extract(begin))
	return l.emit(token.RNUM, lexeme, parseRNUMExponent(lexeme), line)
}

func parseInt(lexeme string) float64 {
	var v float64
	for i := 0; i < len(lexeme); i++ {
		v = v*10 + float64(lexeme[i]-'0')
	}
	return v
}

// parseRNUMDecimal computes mantissa + 2 fixed fractional digits, matching
// the original lexer's two-term fixed-point arithmetic exactly.
func parseRNUMDecimal(lexeme string) float64 {
	dot := indexByte(lexeme, '.')
	v := parseInt(lexeme[:dot])
	v += float64(lexeme[dot+1]-'0')/10.0 + float64(lexeme[dot+2]-'0')/100.0
	return v
}

func parseRNUMExponent(lexeme string) float64 {
	dot := indexByte(lexeme, '.')
	v := parseInt(lexeme[:dot])
	v += float64(lexeme[dot+1]-'0')/10.0 + float64(lexeme[dot+2]-'0')/100.0
	i := dot + 4 // skip '.', frac1, frac2, 'E'
	exp := 0
	if isDigit(lexeme[i]) {
		exp = int(lexeme[i]-'0')*10 + int(lexeme[i+1]-'0')
	} else {
		exp = int(lexeme[i+1]-'0')*10 + int(lexeme[i+2]-'0')
		if lexeme[i] == '-' {
			exp = -exp
		}
	}
	for exp > 0 {
		v *= 10
		exp--
	}
	for exp < 0 {
		v /= 10
		exp++
	}
	return v
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// lexBDStart handles the ID/FIELDID ambiguity rooted at a first letter in
// b..d: scan the maximal b..d run, then decide whether it continues into
// an ID's digit-2..7 suffix or falls back to an ordinary FIELDID.
func (l *Lexer) lexBDStart(begin, line int) Token {
	var nc byte
	for {
		nc = l.buf.Next()
		if !isBD(nc) {
			break
		}
	}
	if isDigit27(nc) {
		for isDigit27(l.buf.Next()) {
		}
		l.retract1()
		return l.finishID(begin, line)
	}
	l.retract1()
	if isLowerAZ(nc) {
		return l.finishFieldID(begin, line)
	}
	return l.classifyFieldOrKeyword(begin, line)
}

func (l *Lexer) finishID(begin, line int) Token {
	if l.lexemeLen(begin) > idLenLimit {
		return l.finishOverlongID(begin, line)
	}
	lexeme := string(l.buf.Extract(begin))
	return l.emit(token.ID, lexeme, 0, line)
}

func (l *Lexer) finishOverlongID(begin, line int) Token {
	full := l.buf.Extract(begin)
	truncated := string(full[:idLenLimit]) + ellipsis
	l.logger.Warn("identifier exceeds length limit, truncating",
		zap.String("lexeme", truncated), zap.Int("limit", idLenLimit), zap.Int("line", line))
	tok := l.emit(token.ID_LENGTH_EXCEEDED, truncated, 0, line)
	// Consume the remainder of this same-class run before resuming at start.
	for {
		c := l.buf.Next()
		if !isBD(c) && !isDigit27(c) {
			l.retract1()
			break
		}
	}
	return tok
}

func (l *Lexer) lexFieldID(begin, line int) Token {
	for isLowerAZ(l.buf.Next()) {
	}
	l.retract1()
	return l.classifyFieldOrKeyword(begin, line)
}

func (l *Lexer) finishFieldID(begin, line int) Token {
	for isLowerAZ(l.buf.Next()) {
	}
	l.retract1()
	return l.classifyFieldOrKeyword(begin, line)
}

func (l *Lexer) classifyFieldOrKeyword(begin, line int) Token {
	lexeme := string(l.buf.Extract(begin))
	if kind, ok := l.keywords.Find(lexeme); ok {
		return l.emit(kind, lexeme, 0, line)
	}
	return l.emit(token.FIELDID, lexeme, 0, line)
}

// lexFunID handles the '_' chain: letters, optionally followed by digits,
// with the exact spelling "_main" reclassified as MAIN and a 30-char bound.
func (l *Lexer) lexFunID(begin, line int) Token {
	for {
		c := l.buf.Next()
		if isAlpha(c) {
			continue
		}
		if isDigit(c) {
			return l.finishFunIDDigits(begin, line)
		}
		l.retract1()
		return l.classifyFunIDOrMain(begin, line)
	}
}

func (l *Lexer) finishFunIDDigits(begin, line int) Token {
	for isDigit(l.buf.Next()) {
	}
	l.retract1()
	if l.lexemeLen(begin) > funLenLimit {
		return l.finishOverlongFunID(begin, line)
	}
	lexeme := string(l.buf.Extract(begin))
	return l.emit(token.FUNID, lexeme, 0, line)
}

func (l *Lexer) finishOverlongFunID(begin, line int) Token {
	full := l.buf.Extract(begin)
	truncated := string(full[:funLenLimit]) + ellipsis
	l.logger.Warn("function name exceeds length limit, truncating",
		zap.String("lexeme", truncated), zap.Int("limit", funLenLimit), zap.Int("line", line))
	tok := l.emit(token.FUN_LENGTH_EXCEEDED, truncated, 0, line)
	for {
		c := l.buf.Next()
		if !isAlpha(c) && !isDigit(c) {
			l.retract1()
			break
		}
	}
	return tok
}

func (l *Lexer) classifyFunIDOrMain(begin, line int) Token {
	if l.lexemeLen(begin) > funLenLimit {
		return l.finishOverlongFunID(begin, line)
	}
	lexeme := string(l.buf.Extract(begin))
	if lexeme == "_main" {
		return l.emit(token.MAIN, lexeme, 0, line)
	}
	return l.emit(token.FUNID, lexeme, 0, line)
}

func (l *Lexer) lexRUID(begin, line int) Token {
	for isLowerAZ(l.buf.Next()) {
	}
	l.retract1()
	lexeme := string(l.buf.Extract(begin))
	return l.emit(token.RUID, lexeme, 0, line)
}

// lexLT handles the '<' prefix family: '<' alone (LT), '<=' (LE), and the
// '<-', '<--', '<---' chain that ends in ASSIGNOP.
func (l *Lexer) lexLT(begin, line int) Token {
	c := l.buf.Next()
	if c == '=' {
		return l.emit(token.LE, "<=", 0, line)
	}
	if c != '-' {
		l.retract1()
		return l.emit(token.LT, "<", 0, line)
	}
	c = l.buf.Next()
	if c != '-' {
		// Failed "<-": retract both the '-' and this lookahead, emit LT.
		l.retract2()
		return l.emit(token.LT, "<", 0, line)
	}
	c = l.buf.Next()
	if c != '-' {
		// Failed "<--": retract the lookahead only, report the error.
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.LEXICAL_ERROR, lexeme, 0, line)
	}
	lexeme := string(l.buf.Extract(begin))
	return l.emit(token.ASSIGNOP, lexeme, 0, line)
}

func (l *Lexer) lexGT(begin, line int) Token {
	c := l.buf.Next()
	if c == '=' {
		return l.emit(token.GE, ">=", 0, line)
	}
	l.retract1()
	return l.emit(token.GT, ">", 0, line)
}

func (l *Lexer) lexEQ(begin, line int) Token {
	c := l.buf.Next()
	if c == '=' {
		return l.emit(token.EQ, "==", 0, line)
	}
	l.retract1()
	return l.emit(token.LEXICAL_ERROR, "=", 0, line)
}

func (l *Lexer) lexBang(begin, line int) Token {
	c := l.buf.Next()
	if c == '=' {
		return l.emit(token.NE, "!=", 0, line)
	}
	l.retract1()
	return l.emit(token.LEXICAL_ERROR, "!", 0, line)
}

func (l *Lexer) lexAnd(begin, line int) Token {
	if l.buf.Next() != '&' {
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.LEXICAL_ERROR, lexeme, 0, line)
	}
	if l.buf.Next() != '&' {
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.LEXICAL_ERROR, lexeme, 0, line)
	}
	return l.emit(token.AND, "&&&", 0, line)
}

func (l *Lexer) lexOr(begin, line int) Token {
	if l.buf.Next() != '@' {
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.LEXICAL_ERROR, lexeme, 0, line)
	}
	if l.buf.Next() != '@' {
		l.retract1()
		lexeme := string(l.buf.Extract(begin))
		return l.emit(token.LEXICAL_ERROR, lexeme, 0, line)
	}
	return l.emit(token.OR, "@@@", 0, line)
}

// lexemeLen reports the length of the run from begin to the current
// forward position, without extracting it.
func (l *Lexer) lexemeLen(begin int) int {
	return len(l.buf.Extract(begin))
}
