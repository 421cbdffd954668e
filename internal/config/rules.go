package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/agusx1211/recap/internal/content"
	"github.com/agusx1211/recap/internal/pattern"
)

// Rules are the compiled, read-only rule sets of a run.
type Rules struct {
	Exclusion *pattern.ExclusionPolicy
	Content   *pattern.ContentPolicy
	Renderer  *content.Renderer
	// Gitignore is the file the glob excludes were read from, if any.
	Gitignore *pattern.Gitignore
}

// Compile validates c and builds its rule sets. Pattern errors are gathered
// into a single *ValidationError. A missing gitignore file is only logged.
func (c *Config) Compile(cwd string, logger zerolog.Logger) (*Rules, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var errs []error
	compile := func(dialect pattern.Dialect, name string, patterns []string, limit int) *pattern.PatternSet {
		s, err := pattern.Compile(dialect, name, patterns, limit)
		if err != nil {
			errs = append(errs, err)
		}
		return s
	}

	// built-in globs do not count toward the user's pattern limit
	globs := append([]string(nil), pattern.DefaultGlobExcludes...)
	var gi *pattern.Gitignore
	if c.Gitignore {
		loaded, err := pattern.LoadGitignore(cwd, c.GitignoreFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Warn().Str("file", c.GitignoreFile).Msg("gitignore file not found, continuing without it")
		case err != nil:
			errs = append(errs, err)
		case c.MaxPatterns > 0 && len(loaded.Patterns) > c.MaxPatterns:
			errs = append(errs, &pattern.TooManyPatternsError{Set: "gitignore", Count: len(loaded.Patterns), Limit: c.MaxPatterns})
		default:
			gi = loaded
			globs = append(globs, loaded.Patterns...)
			for _, line := range loaded.Unsupported {
				logger.Warn().Str("file", loaded.Path).Str("pattern", line).Msg("negated gitignore patterns are not supported, ignoring")
			}
			logger.Debug().Str("file", loaded.Path).Int("patterns", len(loaded.Patterns)).Msg("loaded gitignore")
		}
	}

	rules := &Rules{
		Gitignore: gi,
		Exclusion: &pattern.ExclusionPolicy{
			GlobExclude: compile(pattern.Glob, "gitignore", globs, 0),
			Exclude:     compile(pattern.Regex, "exclude", c.Exclude, c.MaxPatterns),
			Include:     compile(pattern.Regex, "include", c.Include, c.MaxPatterns),
		},
		Content: &pattern.ContentPolicy{
			Exclude:    compile(pattern.Regex, "content-exclude", c.ExcludeContent, c.MaxPatterns),
			Include:    compile(pattern.Regex, "content-include", c.IncludeContent, c.MaxPatterns),
			Specifiers: compile(pattern.Literal, "content", c.ContentSpecs, c.MaxPatterns),
			ShowAll:    c.AllContent,
		},
		Renderer: &content.Renderer{
			MaxSize: c.MaxSize,
			Compact: c.Compact,
		},
	}

	if c.IgnoreFile != "" {
		matcher, err := ignore.CompileIgnoreFile(c.IgnoreFile)
		if err != nil {
			errs = append(errs, fmt.Errorf("could not load ignore file: %w", err))
		} else {
			rules.Exclusion.IgnoreFile = matcher
		}
	}

	if c.Strip != "" {
		re, err := content.CompileStrip(c.Strip)
		if err != nil {
			errs = append(errs, err)
		}
		rules.Renderer.Strip = re
	}
	if c.MaxPatterns > 0 && len(c.StripScopes) > c.MaxPatterns {
		errs = append(errs, &pattern.TooManyPatternsError{Set: "strip-scope", Count: len(c.StripScopes), Limit: c.MaxPatterns})
	}
	for _, s := range c.StripScopes {
		scope, err := regexp.Compile(s.Path)
		if err != nil {
			errs = append(errs, fmt.Errorf("could not compile strip-scope path regex %q: %w", s.Path, err))
			continue
		}
		strip, err := content.CompileStrip(s.Strip)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules.Renderer.Scoped = append(rules.Renderer.Scoped, content.ScopedStripRule{Path: scope, Strip: strip})
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return rules, nil
}
