package cli

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bastiangx/sentserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func runREPL(t *testing.T, input string, noFilter bool) string {
	t.Helper()
	completer := suggest.NewCompleter([]string{"ab", "abc", "abc", "abd", "cat", "car"})

	var buf bytes.Buffer
	out := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewInputHandler(completer, strings.NewReader(input), out, 10, noFilter)
	require.NoError(t, h.Start())
	return buf.String()
}

func TestInputHandlerCompletes(t *testing.T) {
	out := runREPL(t, "ab\nCa\nx\n", false)

	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "car")
	assert.Contains(t, out, "No completion for prompt: 'x'")
}

func TestInputHandlerFilters(t *testing.T) {
	out := runREPL(t, "a1\nabcdefghijklmnop\n", false)

	assert.Contains(t, out, "filtered out")
	assert.Contains(t, out, "Prompt too long")
}

func TestInputHandlerNoFilter(t *testing.T) {
	// uppercase reaches the completer untouched and never matches
	out := runREPL(t, "Ca", true)
	assert.Contains(t, out, "No completion for prompt: 'Ca'")
}

func TestInputHandlerCommands(t *testing.T) {
	out := runREPL(t, ":freq abc\n:stats\n:bogus\n", false)

	assert.Contains(t, out, "abc (freq: 2)")
	assert.Contains(t, out, "distinctSentences")
	assert.Contains(t, out, "Unknown command: :bogus")
}

func TestInputHandlerTop(t *testing.T) {
	out := runREPL(t, ":top\n", false)
	assert.Contains(t, out, "abc (freq: 2)")
	assert.NotContains(t, out, "Unknown command")
}

func TestInputHandlerTopEmptyCorpus(t *testing.T) {
	var buf bytes.Buffer
	out := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewInputHandler(suggest.NewCompleter(nil), strings.NewReader(":top\n"), out, 10, false)
	require.NoError(t, h.Start())
	assert.Contains(t, buf.String(), "No sentences loaded")
}

func TestInputHandlerLongPromptKeepsUTF8(t *testing.T) {
	// each "é" is two bytes, so a byte cut at 37 lands inside one
	out := runREPL(t, strings.Repeat("é", 30)+"\n", true)
	assert.Contains(t, out, "Prompt too long")
	assert.True(t, utf8.ValidString(out))
}
