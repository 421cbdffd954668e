// Package pattern implements the three path pattern dialects used by recap
// (regular expressions, gitignore-style globs and literal filename/extension
// specifiers) behind a single PatternSet type, plus the exclusion and content
// policies that combine them.
package pattern

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agusx1211/recap/internal/pathutil"
)

// Dialect selects how the patterns of a PatternSet are interpreted.
type Dialect int

const (
	// Regex patterns match when they match anywhere in the candidate.
	Regex Dialect = iota
	// Glob patterns follow gitignore-like path rules, see matchGlob.
	Glob
	// Literal specifiers name a basename, an extension, or "null" for
	// files without an extension.
	Literal
)

// NoExtension is the literal specifier that selects files without an
// extension.
const NoExtension = "null"

func (d Dialect) String() string {
	switch d {
	case Regex:
		return "regex"
	case Glob:
		return "glob"
	case Literal:
		return "literal"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// TooManyPatternsError is returned when a set exceeds its configured
// capacity.
type TooManyPatternsError struct {
	Set   string
	Count int
	Limit int
}

func (e *TooManyPatternsError) Error() string {
	return fmt.Sprintf("too many %s patterns: %d given, limit is %d", e.Set, e.Count, e.Limit)
}

// PatternSet is an ordered, immutable list of compiled patterns sharing one
// dialect. A nil *PatternSet is valid and empty.
type PatternSet struct {
	name     string
	dialect  Dialect
	patterns []string
	regexes  []*regexp.Regexp
}

// Compile builds a PatternSet. name is used in error messages ("include",
// "content-exclude", ...). A limit <= 0 disables the capacity check.
func Compile(dialect Dialect, name string, patterns []string, limit int) (*PatternSet, error) {
	if limit > 0 && len(patterns) > limit {
		return nil, &TooManyPatternsError{Set: name, Count: len(patterns), Limit: limit}
	}
	s := &PatternSet{
		name:     name,
		dialect:  dialect,
		patterns: append([]string(nil), patterns...),
	}
	switch dialect {
	case Regex:
		s.regexes = make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("could not compile %s regex %q: %w", name, p, err)
			}
			s.regexes = append(s.regexes, re)
		}
	case Glob:
		for _, p := range patterns {
			if !doublestar.ValidatePattern(strings.Trim(p, "/")) {
				return nil, fmt.Errorf("invalid %s glob %q", name, p)
			}
		}
	case Literal:
		for i, p := range patterns {
			s.patterns[i] = strings.TrimSpace(p)
		}
	default:
		return nil, fmt.Errorf("unknown pattern dialect %v", dialect)
	}
	return s, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// fixed built-in pattern lists.
func MustCompile(dialect Dialect, name string, patterns ...string) *PatternSet {
	s, err := Compile(dialect, name, patterns, 0)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of patterns in the set.
func (s *PatternSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Dialect returns the dialect of the set.
func (s *PatternSet) Dialect() Dialect {
	if s == nil {
		return Regex
	}
	return s.dialect
}

// Patterns returns a copy of the source patterns.
func (s *PatternSet) Patterns() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.patterns...)
}

// Matches reports whether any pattern of the set matches candidate, which is
// a normalised relative path.
func (s *PatternSet) Matches(candidate string) bool {
	if s.Len() == 0 {
		return false
	}
	switch s.dialect {
	case Regex:
		for _, re := range s.regexes {
			if re.MatchString(candidate) {
				return true
			}
		}
	case Glob:
		for _, p := range s.patterns {
			if matchGlob(p, candidate) {
				return true
			}
		}
	case Literal:
		for _, p := range s.patterns {
			if matchLiteral(p, candidate) {
				return true
			}
		}
	}
	return false
}

func matchLiteral(spec, candidate string) bool {
	if spec == "" {
		return false
	}
	base := path.Base(candidate)
	if base == spec {
		return true
	}
	ext := pathutil.Ext(candidate)
	if spec == NoExtension {
		return ext == ""
	}
	if ext == "" {
		return false
	}
	bare := strings.TrimPrefix(spec, ".")
	if strings.ContainsAny(bare, "./") {
		return false
	}
	return bare == ext
}
