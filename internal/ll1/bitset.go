package ll1

import "github.com/sprout-lang/sproutc/internal/token"

// numKinds bounds the dense bitset: every token.Kind up to and including
// NOT_FOUND fits in a single index, so a bitset over the enumeration's
// domain never needs to grow.
const numKinds = int(token.NOT_FOUND) + 1

// TerminalSet is a dense bitset over the terminal enumeration, used for
// FIRST and FOLLOW sets, backed by a fixed bool array so membership is an
// O(1) index and union an O(n) scan instead of Go map lookups.
type TerminalSet struct {
	bits [numKinds]bool
}

// Add puts k in the set and reports whether the set grew.
func (s *TerminalSet) Add(k token.Kind) bool {
	if s.bits[k] {
		return false
	}
	s.bits[k] = true
	return true
}

// Has reports whether k is in the set.
func (s *TerminalSet) Has(k token.Kind) bool {
	return s.bits[k]
}

// AddAll unions other into s and reports whether s grew.
func (s *TerminalSet) AddAll(other *TerminalSet) bool {
	grew := false
	for k := 0; k < numKinds; k++ {
		if other.bits[k] && !s.bits[k] {
			s.bits[k] = true
			grew = true
		}
	}
	return grew
}

// AddAllExcept unions other into s, skipping except, and reports growth.
func (s *TerminalSet) AddAllExcept(other *TerminalSet, except token.Kind) bool {
	grew := false
	for k := 0; k < numKinds; k++ {
		if token.Kind(k) == except {
			continue
		}
		if other.bits[k] && !s.bits[k] {
			s.bits[k] = true
			grew = true
		}
	}
	return grew
}

// Kinds returns the set's members in enumeration order.
func (s *TerminalSet) Kinds() []token.Kind {
	var out []token.Kind
	for k := 0; k < numKinds; k++ {
		if s.bits[k] {
			out = append(out, token.Kind(k))
		}
	}
	return out
}
