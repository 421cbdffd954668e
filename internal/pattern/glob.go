package pattern

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/agusx1211/recap/internal/pathutil"
)

// matchGlob applies one gitignore-derived pattern to a relative path.
//
//   - the pattern is matched against the whole path; "*" never crosses "/"
//     and a segment starting with "." needs a pattern segment starting with ".".
//   - a trailing "/" scopes the pattern to a directory: the path itself or any
//     of its ancestors matching the body is a match.
//   - a pattern without "/" is also tried against every single segment, so it
//     matches at any depth.
//   - a leading "/" anchors the pattern to the start of the path and disables
//     the any-depth rule.
//
// Negation ("!pattern") is not supported.
func matchGlob(pattern, rel string) bool {
	anchored := strings.HasPrefix(pattern, "/")
	if anchored {
		pattern = strings.TrimLeft(pattern, "/")
	}
	if pattern == "" {
		return false
	}

	if strings.HasSuffix(pattern, "/") {
		body := strings.TrimRight(pattern, "/")
		if body == "" {
			return false
		}
		if rel == body || strings.HasPrefix(rel, body+"/") {
			return true
		}
		if pathMatch(body, rel) {
			return true
		}
		for _, a := range pathutil.Ancestors(rel) {
			if pathMatch(body, a) {
				return true
			}
		}
		if !anchored && !strings.Contains(body, "/") {
			return anySegment(body, rel)
		}
		return false
	}

	if pathMatch(pattern, rel) {
		return true
	}
	if !anchored && !strings.Contains(pattern, "/") {
		return anySegment(pattern, rel)
	}
	return false
}

func anySegment(pattern, rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if seg != "" && pathMatch(pattern, seg) {
			return true
		}
	}
	return false
}

func pathMatch(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	if err != nil || !ok {
		return false
	}
	return periodsMatch(pattern, name)
}

// periodsMatch enforces fnmatch's FNM_PERIOD rule per path segment. Patterns
// using "**" span a variable number of segments and are not checked.
func periodsMatch(pattern, name string) bool {
	if strings.Contains(pattern, "**") {
		return true
	}
	psegs := strings.Split(pattern, "/")
	nsegs := strings.Split(name, "/")
	if len(psegs) != len(nsegs) {
		return true
	}
	for i, seg := range nsegs {
		if strings.HasPrefix(seg, ".") && !strings.HasPrefix(psegs[i], ".") {
			return false
		}
	}
	return true
}
