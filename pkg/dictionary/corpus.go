package dictionary

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Corpus is the ordered sentence sequence handed to the trie builder, plus a
// patricia index of distinct sentences and their counts for reporting.
type Corpus struct {
	Sentences []string

	index   *patricia.Trie
	empty   int // the patricia index does not take empty keys
	skipped int
}

// Summary describes a loaded corpus.
type Summary struct {
	Total    int
	Distinct int
	MaxCount int
	Skipped  int
}

func NewCorpus() *Corpus {
	return &Corpus{index: patricia.NewTrie()}
}

// Add appends n occurrences of sentence.
func (c *Corpus) Add(sentence string, n int) {
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		c.Sentences = append(c.Sentences, sentence)
	}
	if sentence == "" {
		c.empty += n
		return
	}
	key := patricia.Prefix(sentence)
	if item := c.index.Get(key); item != nil {
		c.index.Set(key, item.(int)+n)
		return
	}
	c.index.Insert(key, n)
}

// Count returns how many times sentence occurs in the corpus.
func (c *Corpus) Count(sentence string) int {
	if sentence == "" {
		return c.empty
	}
	if item := c.index.Get(patricia.Prefix(sentence)); item != nil {
		return item.(int)
	}
	return 0
}

func (c *Corpus) Summary() Summary {
	s := Summary{Total: len(c.Sentences), Skipped: c.skipped}
	if c.empty > 0 {
		s.Distinct++
		s.MaxCount = c.empty
	}
	c.index.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		s.Distinct++
		s.MaxCount = max(s.MaxCount, item.(int))
		return nil
	})
	return s
}

// SentenceCount is a distinct sentence with its number of occurrences.
type SentenceCount struct {
	Sentence string
	Count    int
}

// Top returns the n most repeated sentences, ties broken lexicographically.
// n <= 0 returns all of them.
func (c *Corpus) Top(n int) []SentenceCount {
	var all []SentenceCount
	if c.empty > 0 {
		all = append(all, SentenceCount{Sentence: "", Count: c.empty})
	}
	c.index.Visit(func(p patricia.Prefix, item patricia.Item) error {
		all = append(all, SentenceCount{Sentence: string(p), Count: item.(int)})
		return nil
	})

	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Sentence < all[j].Sentence
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Entries groups the corpus into chunk entries in first-seen order, splitting
// counts that overflow a uint16.
func (c *Corpus) Entries() []ChunkEntry {
	seen := make(map[string]bool, len(c.Sentences))
	var entries []ChunkEntry
	for _, s := range c.Sentences {
		if seen[s] {
			continue
		}
		seen[s] = true
		for remaining := c.Count(s); remaining > 0; remaining -= 0xFFFF {
			entries = append(entries, ChunkEntry{Sentence: s, Count: uint16(min(remaining, 0xFFFF))})
		}
	}
	return entries
}
