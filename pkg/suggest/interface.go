// Package suggest is the core, holding the completion trie and the Completer that answers prompts from it.
package suggest

//go:generate mockgen -destination=mock_suggest/completer.go -package=mock_suggest github.com/bastiangx/sentserve/pkg/suggest ICompleter

// ICompleter defines the interface for sentence completion engines
type ICompleter interface {
	// Complete returns the most frequent sentence starting with prompt
	Complete(prompt string) (Suggestion, bool)

	// Frequency returns how many times sentence was added to the corpus
	Frequency(sentence string) int

	// Stats returns statistics about the loaded corpus
	Stats() map[string]int
}
