package suggest

import (
	"github.com/charmbracelet/log"
)

// DefaultHotPrompts bounds the prompt memo of a Completer.
const DefaultHotPrompts = 4096

type Suggestion struct {
	Sentence  string
	Frequency int
}

// Completer answers prompts from a trie built once at construction time.
type Completer struct {
	trie     *Trie
	hotCache *HotCache
	skipped  int
}

// NewCompleter builds the trie from sentences. Sentences outside the a..z
// alphabet are skipped with a warning rather than inserted.
func NewCompleter(sentences []string) *Completer {
	return NewCompleterWithCache(sentences, DefaultHotPrompts)
}

// NewCompleterWithCache is NewCompleter with a custom memo size; 0 disables it.
func NewCompleterWithCache(sentences []string, maxHotPrompts int) *Completer {
	c := &Completer{
		trie:     NewTrie(),
		hotCache: NewHotCache(maxHotPrompts),
	}
	for _, s := range sentences {
		if !ValidSentence(s) {
			log.Warnf("Skipping sentence outside a-z alphabet: %q", s)
			c.skipped++
			continue
		}
		c.trie.Insert(s)
	}
	stats := c.trie.Stats()
	log.Debugf("Built trie: sentences=[%d], distinct=[%d], nodes=[%d]", stats.Sentences, stats.Distinct, stats.Nodes)
	return c
}

func (c *Completer) Complete(prompt string) (Suggestion, bool) {
	if !ValidSentence(prompt) {
		log.Debugf("Prompt outside a-z alphabet: %q", prompt)
		return Suggestion{}, false
	}
	if s, found, cached := c.hotCache.Get(prompt); cached {
		return s, found
	}

	sentence, freq, found := c.trie.Lookup(prompt)
	s := Suggestion{Sentence: sentence, Frequency: freq}
	c.hotCache.Put(prompt, s, found)
	return s, found
}

func (c *Completer) Frequency(sentence string) int {
	if !ValidSentence(sentence) {
		return 0
	}
	return c.trie.Frequency(sentence)
}

// Trie exposes the underlying index.
func (c *Completer) Trie() *Trie {
	return c.trie
}

func (c *Completer) Stats() map[string]int {
	ts := c.trie.Stats()
	stats := map[string]int{
		"totalSentences":    ts.Sentences,
		"distinctSentences": ts.Distinct,
		"nodes":             ts.Nodes,
		"maxFrequency":      ts.MaxFrequency,
		"skipped":           c.skipped,
	}
	for k, v := range c.hotCache.Stats() {
		stats[k] = v
	}
	return stats
}
