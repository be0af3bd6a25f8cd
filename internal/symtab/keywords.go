package symtab

import "github.com/sprout-lang/sproutc/internal/token"

// trieNode is a single node of the keyword trie, branching on lowercase
// ASCII letters only.
type trieNode struct {
	children [26]*trieNode
	isEnd    bool
	kind     token.Kind
}

// KeywordTrie maps reserved lowercase spellings to their token kind. It is
// populated once when the lexer starts and never mutated afterward.
type KeywordTrie struct {
	root *trieNode
}

// NewKeywordTrie builds a trie preloaded with the fixed keyword table.
func NewKeywordTrie() *KeywordTrie {
	t := &KeywordTrie{root: &trieNode{}}
	for word, kind := range token.Keywords() {
		t.add(word, kind)
	}
	return t
}

func (t *KeywordTrie) add(word string, kind token.Kind) {
	curr := t.root
	for i := 0; i < len(word); i++ {
		idx := word[i] - 'a'
		if idx > 25 {
			// Not a lowercase letter; the fixed keyword table never hits
			// this, but guard rather than index out of range.
			return
		}
		if curr.children[idx] == nil {
			curr.children[idx] = &trieNode{}
		}
		curr = curr.children[idx]
	}
	curr.isEnd = true
	curr.kind = kind
}

// Find reports the token kind of word if it is a reserved keyword, along
// with true; otherwise it returns token.NOT_FOUND, false.
func (t *KeywordTrie) Find(word string) (token.Kind, bool) {
	curr := t.root
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			return token.NOT_FOUND, false
		}
		curr = curr.children[c-'a']
		if curr == nil {
			return token.NOT_FOUND, false
		}
	}
	if curr.isEnd {
		return curr.kind, true
	}
	return token.NOT_FOUND, false
}
