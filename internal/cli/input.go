// Package cli handles cmd line input and completions for DBG and testing various features
package cli

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/sentserve/internal/utils"
	"github.com/bastiangx/sentserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler reads prompts line by line and prints the best completion for
// each. Lines starting with ':' are commands (:freq SENTENCE, :top, :stats).
// :top asks for the empty prompt, the most frequent sentence overall.
type InputHandler struct {
	completer       suggest.ICompleter
	input           io.Reader
	out             *log.Logger
	maxPrefixLength int
	requestCount    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, input io.Reader, out *log.Logger, maxLength int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		input:           input,
		out:             out,
		maxPrefixLength: maxLength,
		noFilter:        noFilter,
	}
}

// Start begins the interface loop.
// It returns nil once the input is exhausted.
func (h *InputHandler) Start() error {
	h.out.Print("SentServe CLI [BETA]")
	h.out.Print("type a prompt and press Enter to see its completion (Ctrl+C to exit):")

	reader := bufio.NewReader(h.input)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			h.handleInput(line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	if strings.HasPrefix(line, ":") {
		h.handleCommand(line)
		return
	}

	if len(line) > h.maxPrefixLength {
		h.out.Errorf("Prompt too long: %s", utils.Truncate(line, 40))
		return
	}

	prompt := line
	if !h.noFilter {
		if !utils.IsValidInput(line) {
			h.out.Warnf("No completion for prompt: '%s' (filtered out)", line)
			return
		}
		prompt, _ = utils.NormalizeSentence(line)
	} else {
		log.Debug("Input filtering disabled - prompt passed through as typed")
	}

	start := time.Now()
	s, found := h.completer.Complete(prompt)
	log.Debugf("Took [ %v ] for prompt '%s'", time.Since(start), prompt)

	if !found {
		h.out.Warnf("No completion for prompt: '%s'", prompt)
		return
	}
	printSuggestion(h.out, prompt, s)
}

func (h *InputHandler) handleCommand(line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":freq":
		if len(fields) != 2 {
			h.out.Error("usage: :freq SENTENCE")
			return
		}
		sentence, _ := utils.NormalizeSentence(fields[1])
		h.out.Printf("%s (freq: %s)", sentence, utils.FormatWithCommas(h.completer.Frequency(sentence)))
	case ":top":
		s, found := h.completer.Complete("")
		if !found {
			h.out.Warn("No sentences loaded")
			return
		}
		printSuggestion(h.out, `""`, s)
	case ":stats":
		printStats(h.out, h.completer.Stats())
	default:
		h.out.Errorf("Unknown command: %s", fields[0])
	}
}
