package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bastiangx/sentserve/internal/cli"
	"github.com/bastiangx/sentserve/internal/logger"
	"github.com/bastiangx/sentserve/internal/utils"
	"github.com/bastiangx/sentserve/pkg/config"
	"github.com/bastiangx/sentserve/pkg/dictionary"
	"github.com/bastiangx/sentserve/pkg/server"
	"github.com/bastiangx/sentserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type options struct {
	dataDir      string
	files        []string
	configPath   string
	debug        bool
	showVersion  bool
	maxSentences int
	noFilter     bool
	maxLen       int
	top          int

	cfg      *config.Config
	resolver *utils.PathResolver
}

// NewRootCmd builds the sentserve command tree. Running it without a
// subcommand starts the IPC server.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           AppName,
		Short:         "Serve most-frequent sentence completions from a prefix trie",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetupDefault(opts.debug)
			opts.loadConfig()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				printVersion(cmd.ErrOrStderr())
				return nil
			}
			return runServe(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dataDir, "data", "", "Directory containing corpus files (default from config)")
	flags.StringArrayVar(&opts.files, "file", nil, "Corpus file to load; repeatable, overrides --data")
	flags.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Toggle debug mode")
	flags.IntVar(&opts.maxSentences, "max-sentences", -1, "Maximum sentences to load, 0 for all (default from config)")
	root.Flags().BoolVar(&opts.showVersion, "version", false, "Show current version")

	root.AddCommand(
		newServeCmd(opts),
		newQueryCmd(opts),
		newReplCmd(opts),
		newPackCmd(opts),
		newStatsCmd(opts),
	)
	return root
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the msgpack IPC server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *options) error {
	completer, err := opts.buildCompleter()
	if err != nil {
		return err
	}
	log.Debug("spawning IPC")
	showStartupInfo(completer, opts.configDir())
	return server.NewServer(completer, opts.cfg, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
}

func newQueryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query PROMPT...",
		Short: "Print the best completion for each prompt, or \"no match\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts := make([]string, len(args))
			for i, arg := range args {
				prompt, ok := utils.NormalizeSentence(arg)
				if !ok {
					return fmt.Errorf("invalid prompt %q: only letters a-z are allowed", arg)
				}
				prompts[i] = prompt
			}

			completer, err := opts.buildCompleter()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, prompt := range prompts {
				if s, found := completer.Complete(prompt); found {
					fmt.Fprintln(out, s.Sentence)
				} else {
					fmt.Fprintln(out, "no match")
				}
			}
			return nil
		},
	}
}

func newReplCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive prompt for testing completions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			completer, err := opts.buildCompleter()
			if err != nil {
				return err
			}
			maxLen := opts.cfg.CLI.DefaultMaxLen
			if opts.maxLen > 0 {
				maxLen = opts.maxLen
			}
			noFilter := opts.noFilter || opts.cfg.CLI.DefaultNoFilter
			log.Debug("Input info:", "maxLen", maxLen, "noFilter", noFilter)

			out := logger.NewWithConfig(cmd.OutOrStdout(), "", log.InfoLevel, false, false, log.TextFormatter)
			return cli.NewInputHandler(completer, cmd.InOrStdin(), out, maxLen, noFilter).Start()
		},
	}
	cmd.Flags().IntVar(&opts.maxLen, "prmax", 0, "Maximum prompt length (default from config)")
	cmd.Flags().BoolVar(&opts.noFilter, "no-filter", false, "Disable input filtering (DBG only)")
	return cmd
}

func newPackCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pack INPUT.txt... OUTPUT.bin",
		Short: "Convert text corpora into a binary chunk file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, output := args[:len(args)-1], args[len(args)-1]

			loader := dictionary.NewLoader(opts.maxSentenceCap())
			for _, in := range inputs {
				if err := loader.LoadFile(in); err != nil {
					return err
				}
			}
			entries := loader.Corpus().Entries()

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := dictionary.WriteChunk(f, entries); err != nil {
				f.Close()
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			summary := loader.Corpus().Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "packed %s sentences (%s distinct, %s skipped) into %s\n",
				utils.FormatWithCommas(summary.Total),
				utils.FormatWithCommas(summary.Distinct),
				utils.FormatWithCommas(summary.Skipped),
				output)
			return nil
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the loaded corpus and its trie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := opts.loadCorpus()
			if err != nil {
				return err
			}
			trie := suggest.Build(corpus.Sentences)

			out := cmd.OutOrStdout()
			summary := corpus.Summary()
			ts := trie.Stats()
			fmt.Fprintf(out, "sentences:     %s\n", utils.FormatWithCommas(summary.Total))
			fmt.Fprintf(out, "distinct:      %s\n", utils.FormatWithCommas(summary.Distinct))
			fmt.Fprintf(out, "skipped:       %s\n", utils.FormatWithCommas(summary.Skipped))
			fmt.Fprintf(out, "max frequency: %s\n", utils.FormatWithCommas(summary.MaxCount))
			fmt.Fprintf(out, "trie nodes:    %s\n", utils.FormatWithCommas(ts.Nodes))
			fmt.Fprintf(out, "config dir:    %s\n", opts.configDir())

			for i, sc := range corpus.Top(opts.top) {
				fmt.Fprintf(out, "%3d. %-40s %s\n", i+1, utils.Truncate(sc.Sentence, 40), utils.FormatWithCommas(sc.Count))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.top, "top", 10, "Number of most repeated sentences to list")
	return cmd
}

// loadConfig resolves the config file. Failures fall back to builtin defaults.
func (o *options) loadConfig() {
	defaultPath := ""
	if resolver, err := utils.NewPathResolver(); err == nil {
		o.resolver = resolver
		if o.configPath == "" {
			defaultPath = resolver.GetConfigPath("config.toml")
		}
	} else {
		log.Warnf("Failed to initialize path resolver: %v", err)
	}

	cfg, used := config.LoadConfigWithPriority(o.configPath, defaultPath)
	o.cfg = cfg
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(used))
}

// configDir is where the default config file and the fallback data dir live.
func (o *options) configDir() string {
	if o.resolver == nil {
		return "(unresolved)"
	}
	return o.resolver.GetConfigDir()
}

func (o *options) maxSentenceCap() int {
	if o.maxSentences >= 0 {
		return o.maxSentences
	}
	return o.cfg.Dict.MaxSentences
}

// loadCorpus reads --file arguments, or every corpus file in the data dir.
// A data dir without corpus files yields an empty corpus.
func (o *options) loadCorpus() (*dictionary.Corpus, error) {
	loader := dictionary.NewLoader(o.maxSentenceCap())

	if len(o.files) > 0 {
		for _, f := range o.files {
			if err := loader.LoadFile(f); err != nil {
				return nil, err
			}
		}
		return loader.Corpus(), nil
	}

	dataDir := o.dataDir
	if dataDir == "" {
		dataDir = o.cfg.Dict.DataDir
	}
	if o.resolver != nil {
		dataDir = o.resolver.GetDataDir(dataDir)
	}
	log.Debugf("Using data dir at: %s", dataDir)

	if !utils.HasCorpusFiles(dataDir) {
		log.Warnf("No corpus files in %s, running with empty corpus...", dataDir)
		return loader.Corpus(), nil
	}
	if err := loader.LoadDir(dataDir); err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	return loader.Corpus(), nil
}

func (o *options) buildCompleter() (*suggest.Completer, error) {
	corpus, err := o.loadCorpus()
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			log.Errorf("Corpus file not readable: %s", pathErr.Path)
		}
		return nil, err
	}
	summary := corpus.Summary()
	log.Debugf("Init completer: sentences=[%d], distinct=[%d], skipped=[%d]", summary.Total, summary.Distinct, summary.Skipped)
	return suggest.NewCompleterWithCache(corpus.Sentences, o.cfg.Server.HotPrompts), nil
}
