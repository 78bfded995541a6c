package suggest

import "github.com/bastiangx/sentserve/internal/utils"

// alphabetSize is the terminator plus 'a'..'z'.
const alphabetSize = 27

// terminator is the symbol index marking the end of an inserted sentence.
const terminator = 0

// node is a single trie position. Only nodes reached through the terminator
// symbol carry a sentence and a frequency.
type node struct {
	links     [alphabetSize]*node
	sentence  string
	stored    bool
	frequency int
}

func (n *node) hasChildren() bool {
	for _, child := range n.links {
		if child != nil {
			return true
		}
	}
	return false
}

// symbolIndex maps 'a'..'z' to 1..26.
func symbolIndex(c byte) int {
	return int(c-'a') + 1
}

// Stats counts what went into a Trie while it was built.
type Stats struct {
	Sentences    int
	Distinct     int
	Nodes        int
	MaxFrequency int
}

// Trie is a 27-ary prefix tree over lowercase sentences. It is built once and
// is safe for concurrent reads afterwards; Insert must not run alongside
// queries.
type Trie struct {
	root  *node
	stats Stats
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return &Trie{
		root:  &node{},
		stats: Stats{Nodes: 1},
	}
}

// Build inserts every sentence in order and returns the finished trie.
func Build(sentences []string) *Trie {
	t := NewTrie()
	for _, s := range sentences {
		t.Insert(s)
	}
	return t
}

// ValidSentence reports whether s only uses the letters 'a'..'z'.
// Sentences that fail this check must not reach Insert or Autocomplete.
func ValidSentence(s string) bool {
	return utils.IsLowerAlpha(s)
}

// Insert adds one occurrence of sentence. The sentence must satisfy
// ValidSentence; the empty sentence is stored under the root's terminator.
func (t *Trie) Insert(sentence string) {
	current := t.root
	for i := 0; i < len(sentence); i++ {
		current = t.child(current, symbolIndex(sentence[i]))
	}
	end := t.child(current, terminator)
	if !end.stored {
		end.sentence = sentence
		end.stored = true
		t.stats.Distinct++
	}
	end.frequency++

	t.stats.Sentences++
	if end.frequency > t.stats.MaxFrequency {
		t.stats.MaxFrequency = end.frequency
	}
}

// child follows the link at idx, creating the node if absent.
func (t *Trie) child(n *node, idx int) *node {
	if n.links[idx] == nil {
		n.links[idx] = &node{}
		t.stats.Nodes++
	}
	return n.links[idx]
}

// walk descends along prompt without creating nodes.
func (t *Trie) walk(prompt string) *node {
	current := t.root
	for i := 0; i < len(prompt); i++ {
		if prompt[i] < 'a' || prompt[i] > 'z' {
			return nil
		}
		current = current.links[symbolIndex(prompt[i])]
		if current == nil {
			return nil
		}
	}
	return current
}

// Autocomplete returns the most frequent stored sentence that starts with
// prompt. Among equally frequent sentences the lexicographically smallest
// wins. The boolean is false when no sentence has prompt as a prefix.
func (t *Trie) Autocomplete(prompt string) (string, bool) {
	sentence, _, ok := t.Lookup(prompt)
	return sentence, ok
}

// Lookup is Autocomplete that also reports the winning sentence's frequency.
func (t *Trie) Lookup(prompt string) (string, int, bool) {
	current := t.walk(prompt)
	if current == nil || !current.hasChildren() {
		return "", 0, false
	}
	best, ok := bestCompletion(current)
	if !ok {
		return "", 0, false
	}
	return best.sentence, best.frequency, true
}

// Frequency returns how many times sentence was inserted.
func (t *Trie) Frequency(sentence string) int {
	current := t.walk(sentence)
	if current == nil || current.links[terminator] == nil {
		return 0
	}
	return current.links[terminator].frequency
}

// Stats returns the counters collected during insertion.
func (t *Trie) Stats() Stats {
	return t.stats
}

type candidate struct {
	sentence  string
	frequency int
}

// bestCompletion runs a pre-order walk of the subtree at n, terminator first
// and then letters in ascending order. A candidate only replaces the running
// best on a strictly greater frequency, so ties keep the first one visited.
// An explicit stack keeps deep shared prefixes off the goroutine stack.
func bestCompletion(n *node) (candidate, bool) {
	var (
		best  candidate
		found bool
	)
	stack := []*node{n}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.stored {
			if !found || current.frequency > best.frequency {
				best = candidate{sentence: current.sentence, frequency: current.frequency}
				found = true
			}
			continue
		}

		// pushed high to low so the lowest symbol pops first
		for i := alphabetSize - 1; i >= 0; i-- {
			if current.links[i] != nil {
				stack = append(stack, current.links[i])
			}
		}
	}
	return best, found
}
