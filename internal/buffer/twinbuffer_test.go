package buffer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-lang/sproutc/internal/buffer"
)

func TestNextReturnsBytesInOrder(t *testing.T) {
	b := buffer.New(strings.NewReader("abc"))
	assert.Equal(t, byte('a'), b.Next())
	assert.Equal(t, byte('b'), b.Next())
	assert.Equal(t, byte('c'), b.Next())
}

func TestExtractReturnsWholeLexeme(t *testing.T) {
	b := buffer.New(strings.NewReader("hello world"))
	begin := b.Pos() + 1
	for i := 0; i < 5; i++ {
		b.Next()
	}
	assert.Equal(t, "hello", string(b.Extract(begin)))
}

func TestRetractThenNextReplaysSameByte(t *testing.T) {
	b := buffer.New(strings.NewReader("ab"))
	b.Next() // 'a'
	b.Next() // 'b'
	b.Retract(1)
	assert.Equal(t, byte('b'), b.Next(), "retracting one character must replay it on the next Next")
}

func TestLexemeCrossingHalfBoundary(t *testing.T) {
	// Build input so the lexeme straddles the BUF-1/BUF boundary.
	src := strings.Repeat("x", buffer.BUF-2) + "LEXEME" + strings.Repeat("y", buffer.BUF)
	b := buffer.New(strings.NewReader(src))
	for i := 0; i < buffer.BUF-2; i++ {
		b.Next()
	}
	begin := b.Pos() + 1
	for i := 0; i < len("LEXEME"); i++ {
		b.Next()
	}
	require.Equal(t, "LEXEME", string(b.Extract(begin)))
}

func TestRetractAtZeroWraps(t *testing.T) {
	b := buffer.New(strings.NewReader("a"))
	b.Next() // fwd now 0
	b.Retract(1)
	assert.Equal(t, byte('a'), b.Next())
}

func TestRetractAtHalfBoundarySuppressesReload(t *testing.T) {
	src := strings.Repeat("x", buffer.BUF) + strings.Repeat("y", buffer.BUF)
	b := buffer.New(strings.NewReader(src))
	for i := 0; i < buffer.BUF+1; i++ {
		b.Next()
	}
	// fwd is now BUF, the first byte of the second half; retracting lands on
	// BUF-1, and re-advancing must not trigger a spurious reload that
	// clobbers the already-loaded second half.
	b.Retract(1)
	got := b.Next()
	assert.Equal(t, byte('y'), got)
}
