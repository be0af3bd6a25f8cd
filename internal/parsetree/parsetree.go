// Package parsetree defines the single, uniform parse-tree node shape
// the LL(1) driver builds: a grammar symbol, an optional matched
// symbol-table entry (terminals only), the source line, and an ordered
// slice of children the node owns exclusively.
package parsetree

import (
	"github.com/sprout-lang/sproutc/internal/grammar"
	"github.com/sprout-lang/sproutc/internal/symtab"
)

// Node is a single parse-tree node. Non-terminal nodes have a nil Entry;
// terminal (leaf) nodes carry the entry the parser matched against them.
type Node struct {
	Symbol   grammar.Symbol
	Entry    *symtab.Entry
	Line     int
	Children []*Node
}

// IsLeaf reports whether this node has no children. Terminal nodes are
// always leaves; a non-terminal with no children is reported as one too.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaves returns the tree's leaves in left-to-right (inorder-equivalent
// for a tree with no internal values) order: the parse tree's children
// are already strict document order, so a pre-order walk collecting
// leaves reproduces the token sequence.
func (n *Node) Leaves() []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Walk visits every node in the tree in pre-order (this node before its
// children, children left to right).
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}
