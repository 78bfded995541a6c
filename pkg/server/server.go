package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/sentserve/internal/logger"
	"github.com/bastiangx/sentserve/pkg/config"
	"github.com/bastiangx/sentserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	actionComplete = "complete"
	actionFreq     = "freq"
	actionStats    = "stats"
	actionHealth   = "health"
)

// Server handles msgpack IPC for sentence completions
type Server struct {
	completer    suggest.ICompleter
	config       *config.Config
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a completion server reading requests from r and writing responses to w
func NewServer(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    bw,
		encoder:   msgpack.NewEncoder(bw),
		logger:    logger.New("server"),
	}
}

// Start serves until the input is exhausted
func (s *Server) Start() error {
	return s.Run(context.Background())
}

// Run serves requests until EOF, a read error, or ctx is done. Cancellation
// is observed between messages. A frame that is not valid msgpack gets a 400
// and ends the stream with an error.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Debug("Starting server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Debug("Context done, stopping", "requests", s.requestCount)
			return nil
		}

		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed", "requests", s.requestCount)
				return nil
			}
			// a broken frame cannot be skipped, so report it and stop
			s.logger.Errorf("Reading request: %v", err)
			if sendErr := s.sendError("", "malformed msgpack frame", 400); sendErr != nil {
				return fmt.Errorf("write response: %w", sendErr)
			}
			return fmt.Errorf("read request: %w", err)
		}
		s.requestCount++

		if err := s.handleRequest(raw); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

// handleRequest decodes a single message and dispatches it on its action.
// Only write failures are returned.
func (s *Server) handleRequest(raw msgpack.RawMessage) error {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Errorf("Unmarshaling request: %v", err)
		return s.sendError("", "invalid request", 400)
	}

	switch req.Action {
	case "", actionComplete:
		return s.handleComplete(req)
	case actionFreq:
		return s.send(FrequencyResponse{ID: req.ID, Frequency: s.completer.Frequency(req.Prompt)})
	case actionStats:
		return s.send(StatsResponse{ID: req.ID, Stats: s.completer.Stats()})
	case actionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleComplete(req Request) error {
	cfg := s.config.Server
	if len(req.Prompt) < cfg.MinPrefix {
		s.logger.Debug("Prompt too short", "id", req.ID, "len", len(req.Prompt))
		return s.sendError(req.ID, fmt.Sprintf("prompt must be at least %d characters", cfg.MinPrefix), 400)
	}
	if len(req.Prompt) > cfg.MaxPrefix {
		s.logger.Debug("Prompt too long", "id", req.ID, "len", len(req.Prompt))
		return s.sendError(req.ID, fmt.Sprintf("prompt exceeds maximum length of %d", cfg.MaxPrefix), 400)
	}

	start := time.Now()
	suggestion, found := s.completer.Complete(req.Prompt)
	elapsed := time.Since(start)

	s.logger.Debug("Completed", "id", req.ID, "prompt", req.Prompt, "found", found, "took", elapsed)
	return s.send(CompletionResponse{
		ID:        req.ID,
		Sentence:  suggestion.Sentence,
		Frequency: suggestion.Frequency,
		Found:     found,
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(CompletionError{ID: id, Error: message, Code: code})
}

// send encodes one response and flushes it so the client sees it immediately.
func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		return err
	}
	return s.writer.Flush()
}
