// Package symtab implements the keyword trie and the interned symbol table
// that back the lexer: every distinct lexeme gets exactly one Entry, so two
// tokens with equal lexeme strings always carry the same Entry reference.
package symtab

import "github.com/sprout-lang/sproutc/internal/token"

// BUF bounds the stored lexeme length, mirroring the fixed-size lexeme
// buffer of the original twin-buffer lexer.
const BUF = 256

// Entry is an interned (lexeme, token kind, numeric value) record. The
// numeric value is meaningful only for NUM/RNUM entries.
type Entry struct {
	Lexeme  string
	Kind    token.Kind
	Numeric float64
}

// Table is an intern pool of Entry records keyed by lexeme text. Intern
// always looks a lexeme up before creating a new entry, so pointer equality
// of two entries implies lexeme equality and vice versa.
type Table struct {
	byLexeme map[string]*Entry
	order    []*Entry
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{byLexeme: make(map[string]*Entry)}
}

// Lookup returns the existing entry for lexeme, or nil if none exists yet.
func (t *Table) Lookup(lexeme string) *Entry {
	return t.byLexeme[lexeme]
}

// Intern returns the entry for lexeme, creating and recording a new one
// with the given kind and numeric value if this is the first occurrence.
// If an entry already exists its kind and numeric value are left untouched:
// the first sighting of a lexeme determines its classification.
func (t *Table) Intern(lexeme string, kind token.Kind, numeric float64) *Entry {
	if e := t.byLexeme[lexeme]; e != nil {
		return e
	}
	if len(lexeme) >= BUF {
		lexeme = lexeme[:BUF-1]
	}
	e := &Entry{Lexeme: lexeme, Kind: kind, Numeric: numeric}
	t.byLexeme[lexeme] = e
	t.order = append(t.order, e)
	return e
}

// Entries returns all interned entries in insertion order.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, len(t.order))
	copy(out, t.order)
	return out
}

// Len reports the number of distinct lexemes interned so far.
func (t *Table) Len() int {
	return len(t.order)
}
