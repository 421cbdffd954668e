package pattern

import (
	"path/filepath"

	"github.com/agusx1211/recap/internal/content"
	"github.com/agusx1211/recap/internal/pathutil"
)

// PathMatcher is satisfied by full gitignore implementations such as
// *ignore.GitIgnore from github.com/sabhiram/go-gitignore.
type PathMatcher interface {
	MatchesPath(path string) bool
}

// ExclusionPolicy decides whether a traversal candidate is skipped.
type ExclusionPolicy struct {
	// SelfPath is the relative path of the report being written. It is a
	// standing exclusion so the report never includes itself. Empty when the
	// report goes to stdout or the clipboard only.
	SelfPath string
	// SelfFullPath is the cleaned absolute path of the report. It catches
	// the report when a start path outside the working directory spells it
	// differently from SelfPath.
	SelfFullPath string
	// GlobExclude holds gitignore-derived patterns (always ".git/").
	GlobExclude *PatternSet
	// IgnoreFile is an optional full-semantics gitignore matcher.
	IgnoreFile PathMatcher
	Exclude    *PatternSet
	Include    *PatternSet
}

// Excluded reports whether rel should be skipped. Rules are checked in
// order and the first one that applies wins:
//
//  1. rel is the report itself;
//  2. a glob exclude matches;
//  3. the ignore file matches;
//  4. a regex exclude matches;
//  5. include regexes are configured and neither rel nor any ancestor
//     matches them. Directories stay open in that case because a descendant
//     may still match; files are skipped.
func (p *ExclusionPolicy) Excluded(rel string, isDir bool) bool {
	if p.SelfPath != "" && rel == p.SelfPath {
		return true
	}
	if p.GlobExclude.Matches(rel) {
		return true
	}
	if p.IgnoreFile != nil && rel != "." && p.IgnoreFile.MatchesPath(rel) {
		return true
	}
	if p.Exclude.Len() > 0 && p.Exclude.Matches(rel) {
		return true
	}
	if p.Include.Len() > 0 {
		if p.Include.Matches(rel) {
			return false
		}
		for _, a := range pathutil.Ancestors(rel) {
			if p.Include.Matches(a) {
				return false
			}
		}
		return !isDir
	}
	return false
}

// IsSelf reports whether the file at full is the report being written.
func (p *ExclusionPolicy) IsSelf(full string) bool {
	if p.SelfFullPath == "" || full == "" {
		return false
	}
	if abs, err := filepath.Abs(full); err == nil {
		full = abs
	}
	return filepath.Clean(full) == filepath.Clean(p.SelfFullPath)
}

// ContentPolicy decides whether a matched file has its content inlined.
type ContentPolicy struct {
	Exclude *PatternSet
	Include *PatternSet
	// Specifiers is the literal extension/filename dialect, an alternative
	// to Include.
	Specifiers *PatternSet
	// ShowAll inlines every text file when neither Include nor Specifiers
	// is configured.
	ShowAll bool
	// IsText defaults to content.IsText.
	IsText func(path string) bool
}

// ShouldShow reports whether the file at full, known as rel, should have its
// content inlined. Content excludes always win.
func (p *ContentPolicy) ShouldShow(rel, full string) bool {
	if p.Exclude.Matches(rel) {
		return false
	}
	selectors := p.Include.Len() + p.Specifiers.Len()
	if selectors == 0 {
		return p.ShowAll && p.isText(full)
	}
	if p.Include.Matches(rel) || p.Specifiers.Matches(rel) {
		return p.isText(full)
	}
	return false
}

func (p *ContentPolicy) isText(full string) bool {
	if p.IsText != nil {
		return p.IsText(full)
	}
	return content.IsText(full)
}
