package suggest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/tchap/go-patricia/v2/patricia"
)

func TestAutocomplete(t *testing.T) {
	testCases := []struct {
		corpus      []string
		prompt      string
		want        string
		found       bool
		description string
	}{
		{[]string{"ab", "abc", "abc", "abd"}, "ab", "abc", true, "Higher frequency beats shorter and sibling"},
		{[]string{"ab", "abc", "abc", "abd"}, "abc", "abc", true, "Prompt is itself the best sentence"},
		{[]string{"ab", "abc", "abc", "abd"}, "abd", "abd", true, "Single completion"},
		{[]string{"ab", "abc", "abc", "abd"}, "x", "", false, "Unknown first letter"},
		{[]string{"ab", "abc", "abc", "abd"}, "abcd", "", false, "Prompt longer than any sentence"},
		{[]string{"cat", "car"}, "ca", "car", true, "Tie goes to the lower letter"},
		{[]string{"car", "cat"}, "ca", "car", true, "Tie ignores insertion order"},
		{[]string{"cat", "cats"}, "cat", "cat", true, "Terminator visited before letters on tie"},
		{[]string{"cats", "cat"}, "ca", "cat", true, "Shorter sentence wins tie at same prefix"},
		{[]string{"abz", "b", "b"}, "", "b", true, "Empty prompt picks global best"},
		{[]string{"zz", "aa"}, "", "aa", true, "Empty prompt tie is lexicographic"},
		{[]string{"hello", "help", "help", "hello", "hello"}, "hel", "hello", true, "Repeated insertions accumulate"},
		{[]string{}, "", "", false, "Empty corpus with empty prompt"},
		{[]string{}, "a", "", false, "Empty corpus"},
		{[]string{""}, "", "", true, "Empty sentence is a completion of the empty prompt"},
		{[]string{"", "", "a"}, "", "", true, "Empty sentence can win on frequency"},
		{[]string{"abc"}, "ab", "abc", true, "Completion through single path"},
		{[]string{"abc"}, "Ab", "", false, "Uppercase never matches"},
		{[]string{"abc"}, "a b", "", false, "Space never matches"},
	}

	for _, tc := range testCases {
		trie := Build(tc.corpus)
		got, found := trie.Autocomplete(tc.prompt)
		if found != tc.found || got != tc.want {
			t.Errorf("%s: Autocomplete(%q) over %v = (%q, %v), want (%q, %v)",
				tc.description, tc.prompt, tc.corpus, got, found, tc.want, tc.found)
		}
	}
}

func TestAutocompleteIdempotent(t *testing.T) {
	corpus := []string{"the", "then", "there", "there", "theme", "than"}
	first := Build(corpus)
	second := Build(corpus)

	for _, prompt := range []string{"", "t", "th", "the", "ther", "x"} {
		a, okA := first.Autocomplete(prompt)
		for i := 0; i < 3; i++ {
			b, okB := first.Autocomplete(prompt)
			if a != b || okA != okB {
				t.Errorf("repeated Autocomplete(%q) changed: (%q, %v) then (%q, %v)", prompt, a, okA, b, okB)
			}
		}
		c, okC := second.Autocomplete(prompt)
		if a != c || okA != okC {
			t.Errorf("rebuilt trie disagrees on %q: (%q, %v) vs (%q, %v)", prompt, a, okA, c, okC)
		}
	}
}

func TestFrequencyAccumulation(t *testing.T) {
	trie := NewTrie()
	for k := 1; k <= 5; k++ {
		trie.Insert("meow")
		if got := trie.Frequency("meow"); got != k {
			t.Fatalf("after %d inserts Frequency = %d, want %d", k, got, k)
		}
	}

	if got := trie.Frequency("meo"); got != 0 {
		t.Errorf("prefix of a sentence should have frequency 0, got %d", got)
	}
	if got := trie.Frequency("meows"); got != 0 {
		t.Errorf("unknown sentence should have frequency 0, got %d", got)
	}

	// a competitor only wins once it overtakes
	for i := 0; i < 5; i++ {
		trie.Insert("meh")
	}
	if got, _ := trie.Autocomplete("me"); got != "meh" {
		t.Errorf("at equal frequency want lexicographic winner %q, got %q", "meh", got)
	}
	trie.Insert("meow")
	if got, _ := trie.Autocomplete("me"); got != "meow" {
		t.Errorf("want %q after it overtakes, got %q", "meow", got)
	}
}

func TestSentenceReturnsItself(t *testing.T) {
	sentences := []string{"a", "purr", "kitten", "zzz"}
	for _, s := range sentences {
		for n := 1; n <= 3; n++ {
			corpus := make([]string, n)
			for i := range corpus {
				corpus[i] = s
			}
			if got, ok := Build(corpus).Autocomplete(s); !ok || got != s {
				t.Errorf("Autocomplete(%q) with %d copies = (%q, %v)", s, n, got, ok)
			}
		}
	}
}

func TestStats(t *testing.T) {
	trie := Build([]string{"ab", "abc", "abc", "abd"})
	got := trie.Stats()
	// root, a, b, b$, c, c$, d, d$
	want := Stats{Sentences: 4, Distinct: 3, Nodes: 8, MaxFrequency: 2}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}

	empty := NewTrie().Stats()
	if empty != (Stats{Nodes: 1}) {
		t.Errorf("empty Stats() = %+v", empty)
	}
}

func TestStoredSentenceOnlyOnTerminator(t *testing.T) {
	trie := Build([]string{"dog", "do", "dog"})

	var check func(n *node, path string, viaTerminator bool)
	check = func(n *node, path string, viaTerminator bool) {
		if n.stored != viaTerminator {
			t.Errorf("node at %q stored=%v, reached via terminator=%v", path, n.stored, viaTerminator)
		}
		if n.stored {
			if n.sentence != path {
				t.Errorf("stored sentence %q does not match path %q", n.sentence, path)
			}
			if n.hasChildren() {
				t.Errorf("terminator node for %q has children", path)
			}
		} else if n.frequency != 0 {
			t.Errorf("intermediate node at %q has frequency %d", path, n.frequency)
		}
		for i, child := range n.links {
			if child == nil {
				continue
			}
			if i == terminator {
				check(child, path, true)
				continue
			}
			check(child, path+string(rune('a'+i-1)), false)
		}
	}
	check(trie.root, "", false)
}

func TestDeepSharedPrefix(t *testing.T) {
	long := strings.Repeat("a", 50000)
	trie := Build([]string{long, long + "b", long + "b"})

	got, ok := trie.Autocomplete(long[:1000])
	if !ok || got != long+"b" {
		t.Fatalf("deep Autocomplete returned ok=%v len=%d", ok, len(got))
	}
}

func TestValidSentence(t *testing.T) {
	testCases := []struct {
		input string
		valid bool
	}{
		{"", true},
		{"abc", true},
		{"thequickbrownfox", true},
		{"Abc", false},
		{"ab c", false},
		{"abc1", false},
		{"café", false},
		{"a-b", false},
	}
	for _, tc := range testCases {
		if got := ValidSentence(tc.input); got != tc.valid {
			t.Errorf("ValidSentence(%q) = %v, want %v", tc.input, got, tc.valid)
		}
	}
}

// oracleBest scans every stored sentence under prompt in a patricia trie and
// applies the same ranking rule the 27-ary trie is expected to follow.
func oracleBest(index *patricia.Trie, prompt string) (string, bool) {
	best, bestCount, found := "", 0, false
	index.VisitSubtree(patricia.Prefix(prompt), func(p patricia.Prefix, item patricia.Item) error {
		sentence, count := string(p), item.(int)
		if !found || count > bestCount || (count == bestCount && sentence < best) {
			best, bestCount, found = sentence, count, true
		}
		return nil
	})
	return best, found
}

func TestAutocompleteMatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	letters := "abcd"

	randomSentence := func(maxLen int) string {
		n := 1 + rng.Intn(maxLen)
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteByte(letters[rng.Intn(len(letters))])
		}
		return b.String()
	}

	for round := 0; round < 20; round++ {
		var corpus []string
		counts := make(map[string]int)
		for i := 0; i < 300; i++ {
			s := randomSentence(6)
			corpus = append(corpus, s)
			counts[s]++
		}

		index := patricia.NewTrie()
		for s, c := range counts {
			index.Insert(patricia.Prefix(s), c)
		}
		trie := Build(corpus)

		for i := 0; i < 200; i++ {
			prompt := randomSentence(4)
			want, wantOK := oracleBest(index, prompt)
			got, gotOK := trie.Autocomplete(prompt)
			if got != want || gotOK != wantOK {
				t.Fatalf("round %d: Autocomplete(%q) = (%q, %v), oracle (%q, %v)", round, prompt, got, gotOK, want, wantOK)
			}
			if gotOK && trie.Frequency(got) != counts[got] {
				t.Fatalf("Frequency(%q) = %d, want %d", got, trie.Frequency(got), counts[got])
			}
		}
	}
}
