// Package pathutil canonicalises path strings so that every component of
// recap compares paths in the same slash-separated, relative form.
package pathutil

import (
	"path"
	"path/filepath"
	"strings"
)

// Normalize converts backslashes to slashes, resolves "." and ".." segments
// lexically, collapses repeated separators and drops a trailing separator.
// The empty path becomes ".". The filesystem is never consulted, so symlinks
// are not resolved.
func Normalize(p string) string {
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// IsAbs reports whether a normalised path is absolute on either unix or the
// host platform (drive-letter paths on windows).
func IsAbs(p string) bool {
	return strings.HasPrefix(p, "/") || filepath.IsAbs(filepath.FromSlash(p))
}

// Relativize expresses full relative to cwd.
//
// Relative input is returned normalised as is. Absolute input under cwd has
// the cwd prefix removed ("." for cwd itself). Absolute input outside cwd is
// returned as a normalised absolute path, so callers must accept absolute
// values in that case.
func Relativize(full, cwd string) string {
	n := Normalize(full)
	if !IsAbs(n) {
		return n
	}
	c := Normalize(cwd)
	if n == c {
		return "."
	}
	if c == "/" {
		return strings.TrimPrefix(n, "/")
	}
	if strings.HasPrefix(n, c+"/") {
		return n[len(c)+1:]
	}
	return n
}

// Join returns the relative path of a child entry named name inside the
// directory whose relative path is parent.
func Join(parent, name string) string {
	if parent == "." || parent == "" {
		return name
	}
	if strings.HasSuffix(parent, "/") {
		return parent + name
	}
	return parent + "/" + name
}

// Ancestors returns the proper ancestors of a relative path, nearest first.
// "a/b/c" yields "a/b" and "a".
func Ancestors(rel string) []string {
	var out []string
	for i := strings.LastIndexByte(rel, '/'); i > 0; i = strings.LastIndexByte(rel, '/') {
		rel = rel[:i]
		out = append(out, rel)
	}
	return out
}

// Ext returns the extension of the basename of p without the leading dot,
// or "" when there is none. Dotfiles such as ".bashrc" have no extension.
func Ext(p string) string {
	base := path.Base(p)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}
