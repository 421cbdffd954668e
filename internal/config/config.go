// Package config holds the settings of one recap run and compiles them into
// the rule sets used by traversal and rendering.
package config

import (
	"errors"
	"fmt"

	"github.com/agusx1211/recap/internal/content"
	"github.com/agusx1211/recap/internal/pattern"
)

// DefaultMaxPatterns is the default capacity of every pattern set.
const DefaultMaxPatterns = 256

// DefaultTokenModel is the tokenizer model used by the token summary.
const DefaultTokenModel = "gpt-4"

// StripScope is a strip regex applied only to files whose relative path
// matches Path.
type StripScope struct {
	Path  string `yaml:"path"`
	Strip string `yaml:"strip"`
}

// Config is everything a run needs, gathered from flags and the .recap file.
type Config struct {
	Paths []string

	Include        []string
	Exclude        []string
	IncludeContent []string
	ExcludeContent []string
	// ContentSpecs are literal extension or file name specifiers.
	ContentSpecs []string
	AllContent   bool

	// Gitignore enables glob excludes read from GitignoreFile, searched for
	// upwards from the working directory.
	Gitignore     bool
	GitignoreFile string
	// IgnoreFile is matched with full gitignore semantics.
	IgnoreFile string

	Strip       string
	StripScopes []StripScope
	Compact     bool
	MaxSize     int64
	MaxPatterns int

	OutputFile string
	OutputDir  string
	Clipboard  bool
	OSC52      bool

	Paste       bool
	PasteKey    string
	PastebinKey string

	Tree       bool
	Tokens     bool
	TokenModel string
}

// Default returns a Config with the default limits.
func Default() *Config {
	return &Config{
		Paths:         []string{"."},
		GitignoreFile: pattern.DefaultGitignore,
		MaxSize:       content.DefaultMaxSize,
		MaxPatterns:   DefaultMaxPatterns,
		TokenModel:    DefaultTokenModel,
	}
}

// Uploads reports whether the report is published remotely.
func (c *Config) Uploads() bool {
	return c.Paste || c.PastebinKey != ""
}

// ValidationError collects every problem found in a Config.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation error"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "validation errors:"
	for _, err := range e.Errors {
		msg += "\n  - " + err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	return e.Errors
}

// Validate checks option combinations that do not need compiling. It
// returns a *ValidationError or nil.
func (c *Config) Validate() error {
	var errs []error
	if c.OutputFile != "" && c.OutputDir != "" {
		errs = append(errs, errors.New("--output and --output-dir are mutually exclusive"))
	}
	if c.Paste && c.PastebinKey != "" {
		errs = append(errs, errors.New("--paste and --pastebin are mutually exclusive"))
	}
	if c.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("--max-size must not be negative, got %d", c.MaxSize))
	}
	if c.MaxPatterns < 0 {
		errs = append(errs, fmt.Errorf("--max-patterns must not be negative, got %d", c.MaxPatterns))
	}
	for i, s := range c.StripScopes {
		if s.Path == "" || s.Strip == "" {
			errs = append(errs, fmt.Errorf("strip scope %d needs both a path regex and a strip regex", i+1))
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
