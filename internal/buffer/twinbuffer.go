// Package buffer implements the twin-buffer character stream that feeds the
// lexer: two fixed-size halves refilled alternately from the underlying
// reader, giving the lexer bounded memory with forward scanning and a
// one- or two-character retraction.
package buffer

import "io"

// BUF is the size of each half of the twin buffer.
const BUF = 256

// eof is the sentinel byte that marks the end of input, written in place
// of the next character whenever a half is refilled short.
const eof = 0

// TwinBuffer streams bytes from r into two BUF-sized halves, wrapping the
// forward pointer around a 2*BUF-byte array. A half is refilled each time
// the pointer crosses into it, except that the retract flag suppresses a
// second reload of the half the DFA just backed out of, so a
// retract-then-advance never re-reads the file and loses data.
type TwinBuffer struct {
	data    [2 * BUF]byte
	r       io.Reader
	fwd     int // index of the last character returned by Next, -1 before the first call
	retract bool
	atEOF   bool
}

// New creates a TwinBuffer over r and eagerly loads the first half so that
// the first call to Next has data ready.
func New(r io.Reader) *TwinBuffer {
	b := &TwinBuffer{r: r, fwd: -1}
	b.fill(0)
	return b
}

// fill reads BUF bytes from the reader into data[at:at+BUF], padding with
// the eof sentinel on a short read.
func (b *TwinBuffer) fill(at int) {
	if b.atEOF {
		b.data[at] = eof
		return
	}
	n, err := io.ReadFull(b.r, b.data[at:at+BUF])
	if n < BUF {
		b.data[at+n] = eof
	}
	if err != nil {
		b.atEOF = true
	}
}

// Next advances the forward pointer and returns the character there. When
// the pointer is about to cross from the last position of one half into
// the other, the half being entered is refilled first, unless the retract
// flag is armed, in which case the reload is skipped and the flag is
// cleared instead.
func (b *TwinBuffer) Next() byte {
	if b.fwd == BUF-1 || b.fwd == 2*BUF-1 {
		if !b.retract {
			b.fill((b.fwd + 1) % (2 * BUF))
		}
		b.retract = false
	}
	b.fwd = (b.fwd + 1) % (2 * BUF)
	return b.data[b.fwd]
}

// Pos returns the current forward-pointer position, suitable as the begin
// argument to a later Extract call.
func (b *TwinBuffer) Pos() int {
	return b.fwd
}

// Retract steps the forward pointer back by k (1 or 2) characters, with
// wraparound, and arms the retract flag if any step lands on a half
// boundary, so re-advancing across that boundary does not trigger a
// spurious reload. The flag stays armed until the boundary is crossed.
func (b *TwinBuffer) Retract(k int) {
	for i := 0; i < k; i++ {
		b.fwd--
		if b.fwd < 0 {
			b.fwd += 2 * BUF
		}
		if b.fwd == BUF-1 || b.fwd == 2*BUF-1 {
			b.retract = true
		}
	}
}

// Extract copies the region [begin, forward] (inclusive) into a new byte
// slice, handling wraparound. The result is bounded to BUF-1 bytes; longer
// spans are truncated to the first BUF-1 bytes since no lexeme the lexer
// recognizes is meant to exceed that length.
func (b *TwinBuffer) Extract(begin int) []byte {
	var n int
	if b.fwd >= begin {
		n = b.fwd - begin + 1
	} else {
		n = b.fwd + 2*BUF - begin + 1
	}
	if n > BUF-1 {
		n = BUF - 1
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = b.data[(begin+i)%(2*BUF)]
	}
	return out
}
