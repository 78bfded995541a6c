package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

type cacheEntry struct {
	suggestion Suggestion
	found      bool
}

// HotCache memoizes answers for recently asked prompts. Entries never go
// stale because the trie behind it is immutable once built.
type HotCache struct {
	entries     map[string]cacheEntry
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	maxPrompts  int
	mu          sync.RWMutex
}

func NewHotCache(maxPrompts int) *HotCache {
	return &HotCache{
		entries:    make(map[string]cacheEntry, maxPrompts),
		accessTime: make(map[string]int64, maxPrompts),
		maxPrompts: maxPrompts,
	}
}

// Get returns the cached answer for prompt. The third value reports whether
// prompt was cached at all.
func (hc *HotCache) Get(prompt string) (Suggestion, bool, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	entry, exists := hc.entries[prompt]
	if !exists {
		return Suggestion{}, false, false
	}
	hc.hits++
	hc.markAccessed(prompt)
	return entry.suggestion, entry.found, true
}

// Put stores an answer, evicting the least recently used prompt when full.
func (hc *HotCache) Put(prompt string, s Suggestion, found bool) {
	if hc.maxPrompts <= 0 {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if _, exists := hc.entries[prompt]; !exists && len(hc.entries) >= hc.maxPrompts {
		hc.evictLRU()
	}
	hc.entries[prompt] = cacheEntry{suggestion: s, found: found}
	hc.markAccessed(prompt)
}

func (hc *HotCache) Stats() map[string]int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	return map[string]int{
		"hotCachePrompts": len(hc.entries),
		"maxHotPrompts":   hc.maxPrompts,
		"hotCacheHits":    int(hc.hits),
	}
}

func (hc *HotCache) markAccessed(prompt string) {
	hc.accessCount++
	hc.accessTime[prompt] = hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldestPrompt string
	var oldestTime int64 = math.MaxInt64
	evicted := false

	for prompt, accessTime := range hc.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestPrompt = prompt
			evicted = true
		}
	}

	if evicted {
		delete(hc.entries, oldestPrompt)
		delete(hc.accessTime, oldestPrompt)
		log.Debugf("Evicted prompt '%s' from hot cache", oldestPrompt)
	}
}
