package pattern

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultGitignore is the file name searched for when -g is given without a
// file.
const DefaultGitignore = ".gitignore"

// DefaultGlobExcludes are always part of the glob exclude set.
var DefaultGlobExcludes = []string{".git/"}

// Gitignore is the result of loading a gitignore-style file.
type Gitignore struct {
	Path     string
	Patterns []string
	// Unsupported lists lines that were skipped because recap does not
	// implement their semantics (negations).
	Unsupported []string
}

// FindGitignore looks for name in cwd and then in each parent directory up
// to the filesystem root. An absolute name is used as is.
func FindGitignore(cwd, name string) (string, error) {
	if name == "" {
		name = DefaultGitignore
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	dir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%s not found in %s or any parent directory: %w", name, cwd, os.ErrNotExist)
}

// LoadGitignore finds and parses a gitignore-style file, see FindGitignore.
func LoadGitignore(cwd, name string) (*Gitignore, error) {
	path, err := FindGitignore(cwd, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	gi, err := ParseGitignore(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	gi.Path = path
	return gi, nil
}

// ParseGitignore turns every trimmed line that is neither blank nor a
// comment into a glob pattern.
func ParseGitignore(r io.Reader) (*Gitignore, error) {
	gi := &Gitignore{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "!") {
			gi.Unsupported = append(gi.Unsupported, line)
			continue
		}
		gi.Patterns = append(gi.Patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return gi, nil
}
