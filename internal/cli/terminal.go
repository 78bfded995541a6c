package cli

import (
	"sort"

	"github.com/bastiangx/sentserve/internal/utils"
	"github.com/bastiangx/sentserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	sentenceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	promptStyle   = lipgloss.NewStyle().Bold(true)
)

func printSuggestion(out *log.Logger, prompt string, s suggest.Suggestion) {
	out.Printf("%s -> %s (freq: %s)",
		promptStyle.Render(prompt),
		sentenceStyle.Render(s.Sentence),
		utils.FormatWithCommas(s.Frequency))
}

// printStats prints stats sorted by key so output is stable.
func printStats(out *log.Logger, stats map[string]int) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Printf("%-18s %s", k, utils.FormatWithCommas(stats[k]))
	}
}
