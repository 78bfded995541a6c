// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the sentence completion server and its CLI tools.

SentServe indexes a fixed corpus of lowercase sentences in a 27-ary trie and
answers one question: which sentence starting with a prompt was seen most
often? Ties go to the lexicographically smallest sentence. The trie is built
once at startup and only read afterwards.

# Usage

Start the msgpack IPC server over stdin/stdout:

	sentserve --data /path/to/corpus

Ask for completions directly:

	sentserve query --file cats.txt ca the ""

Browse interactively:

	sentserve repl --file cats.txt

Convert a text corpus into a binary chunk file:

	sentserve pack cats.txt dict_0001.bin

Summarize a corpus:

	sentserve stats --data corpus/ --top 20

# Corpus files

A data directory holds *.txt files (one sentence per line) and dict_NNNN.bin
chunk files. Sentences must be lowercase a-z only; text lines are trimmed and
lowercased, anything else is skipped and counted.

# Configuration

Runtime configuration is a TOML file, created with defaults when missing:

	[server]
	min_prefix = 0
	max_prefix = 256
	hot_prompts = 4096

	[dict]
	data_dir = "data/"
	max_sentences = 0

	[cli]
	default_max_len = 256
	default_no_filter = false

Flags override the file.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const (
	Version = "0.3.0-beta"
	AppName = "sentserve"
	gh      = "https://github.com/bastiangx/sentserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
// The server may be blocked reading stdin, so there is nothing to drain.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
