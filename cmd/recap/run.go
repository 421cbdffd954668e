package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agusx1211/recap/internal/config"
	"github.com/agusx1211/recap/internal/logging"
	"github.com/agusx1211/recap/internal/output"
	"github.com/agusx1211/recap/internal/report"
	"github.com/agusx1211/recap/internal/traverse"
	"github.com/agusx1211/recap/internal/upload"
)

var (
	infoColor = color.New(color.FgCyan)
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
)

func (o *options) run(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	logger := logging.New(o.logLevel, stderr)

	if cmd.Flags().Changed("clear") {
		return clearOutputs(o.clearDir, o.yes, cmd.InOrStdin(), stderr)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := o.buildConfig(cmd, args, cwd, logger)
	if err != nil {
		return err
	}
	rules, err := cfg.Compile(cwd, logger)
	if err != nil {
		return err
	}
	target, err := output.Resolve(output.Options{
		File:      cfg.OutputFile,
		Dir:       cfg.OutputDir,
		Clipboard: cfg.Clipboard,
		Upload:    cfg.Uploads(),
	}, cwd, o.now())
	if err != nil {
		return err
	}
	rules.Exclusion.SelfPath = target.RelPath
	rules.Exclusion.SelfFullPath = target.Path
	logger.Debug().Stringer("mode", target.Mode).Str("path", target.Path).Msg("resolved output")

	engine := &traverse.Engine{Policy: rules.Exclusion, Cwd: cwd, Logger: logger}
	files, _ := engine.Walk(cfg.Paths)
	if len(files) == 0 {
		logger.Info().Strs("paths", cfg.Paths).Msg("no files matched")
		warnColor.Fprintln(stderr, "No files matched.")
		return nil
	}

	var buf bytes.Buffer
	w := &report.Writer{Content: rules.Content, Renderer: rules.Renderer, Tree: cfg.Tree}
	sections, err := w.Write(&buf, files)
	if err != nil {
		return err
	}
	if err := target.Emit(buf.Bytes(), stdout); err != nil {
		return err
	}
	if target.Mode == output.ModeFile {
		okColor.Fprintf(stderr, "Output written to: %s\n", target.Path)
	}

	if cfg.Clipboard || cfg.OSC52 {
		o.copyReport(cfg, buf.String(), stderr, logger)
	}

	if cfg.Tokens {
		summary, err := buildTokenReport(buf.String(), cfg.TokenModel, sections)
		if err != nil {
			logger.Warn().Err(err).Msg("token summary unavailable")
		} else {
			fmt.Fprint(stderr, summary)
		}
	}

	if cfg.Uploads() {
		return o.upload(cmd.Context(), cfg, target, buf.Bytes(), stdout, stderr, logger)
	}
	return nil
}

// buildConfig finishes the flag-bound Config: positional paths, the .recap
// file, strip scopes and the gist token.
func (o *options) buildConfig(cmd *cobra.Command, args []string, cwd string, logger zerolog.Logger) (*config.Config, error) {
	cfg := o.cfg
	if len(args) > 0 {
		cfg.Paths = args
	}
	cfg.Gitignore = cmd.Flags().Changed("git")
	cfg.StripScopes = pairStripScopes(o.stripScope)

	if err := applyRecapFile(cfg, o.configFile, cwd, o.profile, cmd.Flags().Changed("strip"), logger); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("paste") {
		cfg.Paste = true
		cfg.PasteKey = o.pasteKey
		if cfg.PasteKey == pasteFromEnv {
			cfg.PasteKey = os.Getenv(upload.TokenEnv)
		}
		if cfg.PasteKey == "" {
			return nil, &config.ValidationError{Errors: []error{
				fmt.Errorf("--paste needs a GitHub token: pass one as -pKEY or set %s", upload.TokenEnv),
			}}
		}
	}
	return cfg, nil
}

// copyReport puts the report on the clipboard. Failures are reported but
// do not fail the run since the report was already delivered or is still
// held in memory for an upload.
func (o *options) copyReport(cfg *config.Config, data string, stderr io.Writer, logger zerolog.Logger) {
	if cfg.OSC52 {
		if err := copyToOSC52(stderr, data); err != nil {
			logger.Warn().Err(err).Msg("clipboard copy failed")
			return
		}
		okColor.Fprintln(stderr, "Copied to clipboard (OSC 52).")
		return
	}
	if err := o.copy(data); err != nil {
		logger.Warn().Err(err).Msg("clipboard copy failed")
		return
	}
	okColor.Fprintln(stderr, "Copied to clipboard.")
}

func (o *options) upload(ctx context.Context, cfg *config.Config, target output.Target, data []byte, stdout, stderr io.Writer, logger zerolog.Logger) error {
	uploader := o.newUploader(cfg)
	infoColor.Fprintln(stderr, "Uploading report...")

	link, err := uploader.Upload(ctx, filepath.Base(target.Path), data)
	if err != nil {
		return fmt.Errorf("failed to upload report, output saved locally at %s: %w", target.Path, err)
	}
	fmt.Fprintln(stdout, link)

	if target.Temporary {
		if err := target.Remove(); err != nil {
			logger.Warn().Err(err).Msg("could not remove temporary report")
		}
	}
	return nil
}
