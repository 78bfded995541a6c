// Package dictionary reads sentence corpora from text and binary chunk files.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bastiangx/sentserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Loader reads corpus files into a Corpus, in file order.
type Loader struct {
	// MaxSentences caps how many sentences are read; 0 means no cap.
	MaxSentences int
	corpus       *Corpus
}

func NewLoader(maxSentences int) *Loader {
	return &Loader{
		MaxSentences: maxSentences,
		corpus:       NewCorpus(),
	}
}

// Corpus returns everything loaded so far.
func (l *Loader) Corpus() *Corpus {
	return l.corpus
}

func (l *Loader) full() bool {
	return l.MaxSentences > 0 && len(l.corpus.Sentences) >= l.MaxSentences
}

// LoadDir loads every *.txt and dict_*.bin file in dir, sorted by name.
func (l *Loader) LoadDir(dir string) error {
	var files []string
	for _, pattern := range []string{"*.txt", "dict_*.bin"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no corpus files found in %s", dir)
	}
	sort.Strings(files)

	log.Debugf("Found %d corpus files in %s", len(files), dir)
	for _, f := range files {
		if l.full() {
			log.Debugf("Sentence cap %d reached, skipping %s", l.MaxSentences, f)
			break
		}
		if err := l.LoadFile(f); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile loads a single corpus file, picking the reader from its format.
func (l *Loader) LoadFile(path string) error {
	format, err := DetectFileFormat(path)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	before := len(l.corpus.Sentences)
	switch format {
	case FormatText:
		err = l.ReadText(file)
	case FormatChunk:
		err = l.ReadChunk(file)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Debugf("Loaded %d sentences from %s", len(l.corpus.Sentences)-before, path)
	return nil
}

// ReadText reads one sentence per line. Blank lines are ignored and lines
// that do not normalize to a-z are counted as skipped.
func (l *Loader) ReadText(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if l.full() {
			return nil
		}
		raw := scanner.Text()
		sentence, ok := utils.NormalizeSentence(raw)
		if sentence == "" {
			continue
		}
		if !ok {
			log.Debugf("line %d: skipping %q", lineNo, utils.Truncate(raw, 40))
			l.corpus.skipped++
			continue
		}
		l.corpus.Add(sentence, 1)
	}
	return scanner.Err()
}

// ReadChunk reads the binary chunk format: an int32 entry count, then per
// entry a uint16 length, the sentence bytes and a uint16 repeat count.
func (l *Loader) ReadChunk(r io.Reader) error {
	reader := bufio.NewReader(r)

	var total int32
	if err := binary.Read(reader, binary.LittleEndian, &total); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}
	if total < 0 || total > maxChunkEntries {
		return fmt.Errorf("%w: %d", ErrTooManyEntries, total)
	}

	for i := 0; i < int(total); i++ {
		var length uint16
		if err := binary.Read(reader, binary.LittleEndian, &length); err != nil {
			return fmt.Errorf("entry %d: failed to read length: %w", i, err)
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(reader, buf); err != nil {
			return fmt.Errorf("entry %d: failed to read sentence: %w", i, err)
		}
		var count uint16
		if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
			return fmt.Errorf("entry %d: failed to read count: %w", i, err)
		}

		if l.full() {
			return nil
		}
		sentence := string(buf)
		if !utils.IsLowerAlpha(sentence) {
			log.Debugf("entry %d: skipping %q", i, utils.Truncate(sentence, 40))
			l.corpus.skipped++
			continue
		}
		n := int(count)
		if l.MaxSentences > 0 {
			n = min(n, l.MaxSentences-len(l.corpus.Sentences))
		}
		l.corpus.Add(sentence, n)
	}
	return nil
}

// ChunkEntry is one sentence and its repeat count in a chunk file.
type ChunkEntry struct {
	Sentence string
	Count    uint16
}

// WriteChunk writes entries in the binary chunk format.
func WriteChunk(w io.Writer, entries []ChunkEntry) error {
	if len(entries) > maxChunkEntries {
		return fmt.Errorf("%w: %d", ErrTooManyEntries, len(entries))
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if len(e.Sentence) > 0xFFFF {
			return fmt.Errorf("sentence of %d bytes does not fit a chunk entry", len(e.Sentence))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(e.Sentence))); err != nil {
			return err
		}
		if _, err := bw.WriteString(e.Sentence); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, e.Count); err != nil {
			return err
		}
	}
	return bw.Flush()
}
