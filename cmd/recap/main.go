package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agusx1211/recap/internal/config"
	"github.com/agusx1211/recap/internal/pattern"
	"github.com/agusx1211/recap/internal/upload"
)

var version = "2.0.0"

// pasteFromEnv is the value of a bare --paste: the token is read from the
// environment.
const pasteFromEnv = "$" + upload.TokenEnv

type options struct {
	cfg *config.Config

	configFile string
	profile    string
	logLevel   string
	clearDir   string
	yes        bool
	stripScope []string
	pasteKey   string

	now         func() time.Time
	copy        func(data string) error
	newUploader func(cfg *config.Config) upload.Uploader
}

func defaultOptions() *options {
	return &options{
		cfg:         config.Default(),
		profile:     defaultProfile,
		now:         time.Now,
		copy:        copyToClipboard,
		newUploader: defaultUploader,
	}
}

func defaultUploader(cfg *config.Config) upload.Uploader {
	if cfg.PastebinKey != "" {
		return &upload.Pastebin{DevKey: cfg.PastebinKey}
	}
	return &upload.Gist{Token: cfg.PasteKey}
}

func newRootCommand() *cobra.Command {
	return newCommand(defaultOptions())
}

func newCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recap [flags] [path...]",
		Short: "Recap condenses a source tree into a single text report",
		Long: `Recap walks the given paths (the current directory by default), filters
them with include/exclude regexes and gitignore-style globs, and writes one
report listing every matched file. Selected text files have their content
inlined, optionally stripped of a header and compacted.

The report goes to stdout, a file, the clipboard, or a private gist or
pastebin paste.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	cfg := o.cfg
	f := cmd.Flags()
	f.SortFlags = false

	f.StringArrayVarP(&cfg.Include, "include", "i", nil, "Include paths matching `REGEX` (repeatable)")
	f.StringArrayVarP(&cfg.Exclude, "exclude", "e", nil, "Exclude paths matching `REGEX` (repeatable)")
	f.StringArrayVar(&cfg.IncludeContent, "include-content", nil, "Inline content of files matching `REGEX` (repeatable)")
	f.StringArrayVar(&cfg.ExcludeContent, "exclude-content", nil, "Never inline content of files matching `REGEX` (repeatable, wins over includes)")
	f.StringSliceVar(&cfg.ContentSpecs, "content", nil, "Inline content by extension or file name, \"null\" for files without extension (comma separated, repeatable)")
	f.BoolVarP(&cfg.AllContent, "all-content", "a", false, "Inline every text file when no content selector is given")

	f.StringVarP(&cfg.GitignoreFile, "git", "g", pattern.DefaultGitignore, "Exclude paths listed in a gitignore-style `FILE`, searched upwards")
	f.Lookup("git").NoOptDefVal = pattern.DefaultGitignore
	f.StringVar(&cfg.IgnoreFile, "ignore-file", "", "Exclude paths with full gitignore semantics from `FILE`")

	f.StringVarP(&cfg.Strip, "strip", "s", "", "Drop file content up to the first match of `REGEX`")
	f.StringArrayVar(&o.stripScope, "strip-scope", nil, "`PATH STRIP` regex pair: strip STRIP only in files matching PATH (repeatable)")
	f.BoolVar(&cfg.Compact, "compact", false, "Remove comments and blank lines from known source formats")
	f.Int64Var(&cfg.MaxSize, "max-size", cfg.MaxSize, "Largest file, in `BYTES`, whose content is inlined")
	f.IntVar(&cfg.MaxPatterns, "max-patterns", cfg.MaxPatterns, "Maximum number of patterns per pattern set")

	f.StringVarP(&cfg.OutputFile, "output", "o", "", "Write the report to `FILE`")
	f.StringVarP(&cfg.OutputDir, "output-dir", "O", "", "Write the report to a timestamped file in `DIR`")
	f.BoolVarP(&cfg.Clipboard, "clipboard", "c", false, "Copy the report to the clipboard")
	f.BoolVar(&cfg.OSC52, "osc52", false, "Copy through an OSC 52 terminal escape sequence (works over SSH)")

	f.StringVarP(&o.pasteKey, "paste", "p", "", "Upload the report as a private gist using `KEY` or $"+upload.TokenEnv)
	f.Lookup("paste").NoOptDefVal = pasteFromEnv
	f.StringVar(&cfg.PastebinKey, "pastebin", "", "Upload the report to pastebin with developer `KEY`")

	f.BoolVarP(&cfg.Tree, "tree", "t", false, "Start the report with a directory tree of matched files")
	f.BoolVar(&cfg.Tokens, "tokens", false, "Print a token count summary to stderr")
	f.StringVar(&cfg.TokenModel, "token-model", cfg.TokenModel, "Tokenizer `MODEL` for --tokens")

	f.StringVar(&o.configFile, "config", "", "Read defaults from `FILE` instead of ./"+recapFileName+" or ~/"+recapFileName)
	f.StringVar(&o.profile, "profile", o.profile, "Profile to use from the "+recapFileName+" file")
	f.StringVar(&o.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (default $RECAP_LOG_LEVEL or warn)")

	f.StringVarP(&o.clearDir, "clear", "C", ".", "Delete recap output files in `DIR` after confirmation, then exit")
	f.Lookup("clear").NoOptDefVal = "."
	f.BoolVarP(&o.yes, "yes", "y", false, "Do not ask for confirmation with --clear")

	cmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "strip-until" {
			name = "strip"
		}
		return pflag.NormalizedName(name)
	})

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand()
	cmd.SetArgs(preprocessArgs(os.Args[1:]))
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
