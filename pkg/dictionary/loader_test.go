package dictionary

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestReadText(t *testing.T) {
	input := "meow\n  Purr  \n\nhiss\nmeow\ntwo words\ncat5\n"

	l := NewLoader(0)
	if err := l.ReadText(strings.NewReader(input)); err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}

	want := []string{"meow", "purr", "hiss", "meow"}
	if got := l.Corpus().Sentences; !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences = %v, want %v", got, want)
	}

	summary := l.Corpus().Summary()
	if summary != (Summary{Total: 4, Distinct: 3, MaxCount: 2, Skipped: 2}) {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestReadTextMaxSentences(t *testing.T) {
	l := NewLoader(2)
	if err := l.ReadText(strings.NewReader("a\nb\nc\nd\n")); err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if got := l.Corpus().Sentences; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Sentences = %v", got)
	}
}

func TestChunkRoundTrip(t *testing.T) {
	entries := []ChunkEntry{
		{Sentence: "abc", Count: 2},
		{Sentence: "ab", Count: 1},
		{Sentence: "", Count: 1},
		{Sentence: "Bad", Count: 4},
	}

	var buf bytes.Buffer
	if err := WriteChunk(&buf, entries); err != nil {
		t.Fatalf("WriteChunk failed: %v", err)
	}

	l := NewLoader(0)
	if err := l.ReadChunk(&buf); err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}

	want := []string{"abc", "abc", "ab", ""}
	if got := l.Corpus().Sentences; !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences = %q, want %q", got, want)
	}
	if got := l.Corpus().Count("abc"); got != 2 {
		t.Errorf("Count(abc) = %d, want 2", got)
	}
	if got := l.Corpus().Count(""); got != 1 {
		t.Errorf("Count(\"\") = %d, want 1", got)
	}
	if got := l.Corpus().Summary().Skipped; got != 1 {
		t.Errorf("Skipped = %d, want 1", got)
	}
}

func TestReadChunkMaxSentences(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChunk(&buf, []ChunkEntry{{"aa", 5}, {"bb", 5}}); err != nil {
		t.Fatalf("WriteChunk failed: %v", err)
	}

	l := NewLoader(3)
	if err := l.ReadChunk(&buf); err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if got := l.Corpus().Sentences; !reflect.DeepEqual(got, []string{"aa", "aa", "aa"}) {
		t.Errorf("Sentences = %v", got)
	}
}

func TestReadChunkTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteChunk(&buf, []ChunkEntry{{"hello", 1}}); err != nil {
		t.Fatalf("WriteChunk failed: %v", err)
	}
	data := buf.Bytes()[:buf.Len()-3]

	l := NewLoader(0)
	if err := l.ReadChunk(bytes.NewReader(data)); err == nil {
		t.Fatal("expected an error for a truncated chunk")
	}
}

func TestReadChunkBadHeader(t *testing.T) {
	data := []byte{0xff, 0xff, 0xff, 0xff} // -1 entries
	l := NewLoader(0)
	err := l.ReadChunk(bytes.NewReader(data))
	if !errors.Is(err, ErrTooManyEntries) {
		t.Fatalf("expected ErrTooManyEntries, got %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("ab\nabc\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteChunk(&buf, []ChunkEntry{{"abc", 1}, {"abd", 1}}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "dict_0001.bin"), buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	// ignored: neither pattern matches
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("zzz"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(0)
	if err := l.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	want := []string{"ab", "abc", "abc", "abd"}
	if got := l.Corpus().Sentences; !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences = %v, want %v", got, want)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if err := NewLoader(0).LoadDir(t.TempDir()); err == nil {
		t.Fatal("expected an error for a dir without corpus files")
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "corpus.txt")
	bin := filepath.Join(dir, "dict_0001.bin")
	short := filepath.Join(dir, "short.bin")
	other := filepath.Join(dir, "corpus.csv")

	var buf bytes.Buffer
	if err := WriteChunk(&buf, nil); err != nil {
		t.Fatal(err)
	}
	for path, data := range map[string][]byte{
		txt:   []byte("meow\n"),
		bin:   buf.Bytes(),
		short: {0x01},
		other: []byte("a,b"),
	} {
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
	}

	if f, err := DetectFileFormat(txt); err != nil || f != FormatText {
		t.Errorf("txt detected as %v (%v)", f, err)
	}
	if f, err := DetectFileFormat(bin); err != nil || f != FormatChunk {
		t.Errorf("bin detected as %v (%v)", f, err)
	}
	if _, err := DetectFileFormat(short); err == nil {
		t.Error("expected an error for a file shorter than the header")
	}
	if _, err := DetectFileFormat(other); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
