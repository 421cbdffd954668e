package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agusx1211/recap/internal/pattern"
)

func TestValidate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	c.OutputFile = "a.txt"
	c.OutputDir = "out"
	c.Paste = true
	c.PastebinKey = "key"
	c.StripScopes = []StripScope{{Path: `\.go$`}}

	err := c.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 3)
	assert.Contains(t, err.Error(), "validation errors:\n  - --output and --output-dir are mutually exclusive")
	assert.Contains(t, err.Error(), "strip scope 1")
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "validation error", (&ValidationError{}).Error())
	assert.Equal(t, "boom", (&ValidationError{Errors: []error{errors.New("boom")}}).Error())
}

func TestCompile(t *testing.T) {
	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, ".gitignore"), []byte("dist/\n!dist/keep\n"), 0o644))

	c := Default()
	c.Include = []string{`\.go$`}
	c.ExcludeContent = []string{`_test\.go$`}
	c.ContentSpecs = []string{"go", "null"}
	c.Gitignore = true
	c.Strip = `^// Code generated.*$`
	c.StripScopes = []StripScope{{Path: `^cmd/`, Strip: `^package main$`}}
	c.Compact = true

	rules, err := c.Compile(cwd, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{".git/", "dist/"}, rules.Exclusion.GlobExclude.Patterns())
	assert.True(t, rules.Exclusion.Excluded("dist/app.go", false))
	assert.False(t, rules.Exclusion.Excluded("main.go", false))
	assert.True(t, rules.Exclusion.Excluded("README.md", false))
	assert.Equal(t, pattern.Literal, rules.Content.Specifiers.Dialect())
	assert.Equal(t, filepath.Join(cwd, ".gitignore"), rules.Gitignore.Path)
	assert.True(t, rules.Renderer.Compact)
	require.Len(t, rules.Renderer.Scoped, 1)
	assert.Equal(t, "func main() {}\n", rules.Renderer.Render("cmd/x/main.go", []byte("package main\nfunc main() {}\n")))
}

func TestCompileCollectsErrors(t *testing.T) {
	c := Default()
	c.Include = []string{`(`}
	c.ExcludeContent = []string{`[`}
	c.Strip = `*`
	c.StripScopes = []StripScope{{Path: `(`, Strip: `x`}}

	_, err := c.Compile(t.TempDir(), zerolog.Nop())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 4)
}

func TestCompilePatternLimit(t *testing.T) {
	c := Default()
	c.MaxPatterns = 1
	c.Exclude = []string{"a", "b"}

	_, err := c.Compile(t.TempDir(), zerolog.Nop())
	var tooMany *pattern.TooManyPatternsError
	require.True(t, errors.As(err, &tooMany))
	assert.Equal(t, "exclude", tooMany.Set)
}

func TestCompileGitignoreLimitExcludesBuiltins(t *testing.T) {
	dir := t.TempDir()
	writeIgnore := func(n int) {
		var lines []byte
		for i := 0; i < n; i++ {
			lines = append(lines, fmt.Sprintf("*.ext%d\n", i)...)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), lines, 0o644))
	}

	c := Default()
	c.Gitignore = true
	c.MaxPatterns = 4

	writeIgnore(4)
	rules, err := c.Compile(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, rules.Exclusion.GlobExclude.Patterns(), 5)

	writeIgnore(5)
	_, err = c.Compile(dir, zerolog.Nop())
	var tooMany *pattern.TooManyPatternsError
	require.True(t, errors.As(err, &tooMany))
	assert.Equal(t, "gitignore", tooMany.Set)
	assert.Equal(t, 5, tooMany.Count)
	assert.Equal(t, 4, tooMany.Limit)
}

func TestCompileMissingGitignoreIsNotFatal(t *testing.T) {
	c := Default()
	c.Gitignore = true
	c.GitignoreFile = filepath.Join(t.TempDir(), "absent")

	rules, err := c.Compile(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, rules.Gitignore)
	assert.Equal(t, []string{".git/"}, rules.Exclusion.GlobExclude.Patterns())
}

func TestCompileIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	ignoreFile := filepath.Join(dir, "rules.ignore")
	require.NoError(t, os.WriteFile(ignoreFile, []byte("*.tmp\n!keep.tmp\n"), 0o644))

	c := Default()
	c.IgnoreFile = ignoreFile
	rules, err := c.Compile(dir, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, rules.Exclusion.Excluded("a.tmp", false))
	assert.False(t, rules.Exclusion.Excluded("keep.tmp", false))

	c.IgnoreFile = filepath.Join(dir, "missing.ignore")
	_, err = c.Compile(dir, zerolog.Nop())
	assert.Error(t, err)
}

func TestUploads(t *testing.T) {
	c := Default()
	assert.False(t, c.Uploads())
	c.PastebinKey = "k"
	assert.True(t, c.Uploads())
}
