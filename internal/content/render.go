package content

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// DefaultMaxSize is the largest file whose content is inlined.
const DefaultMaxSize int64 = 10 * 1024 * 1024

const readErrorLine = "[Error reading file content]"

// ScopedStripRule applies Strip instead of the global strip regex to files
// whose relative path matches Path.
type ScopedStripRule struct {
	Path  *regexp.Regexp
	Strip *regexp.Regexp
}

// CompileStrip compiles a strip expression. Strip expressions are multi-line:
// "^" and "$" match at line boundaries.
func CompileStrip(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?m)" + expr)
	if err != nil {
		return nil, fmt.Errorf("could not compile strip regex %q: %w", expr, err)
	}
	return re, nil
}

// Renderer turns file bytes into a report content block.
type Renderer struct {
	// MaxSize bounds inlined files; <= 0 means no limit.
	MaxSize int64
	Strip   *regexp.Regexp
	// Scoped rules are checked in order, first match wins.
	Scoped  []ScopedStripRule
	Compact bool
}

// RenderFile reads full and renders it under the header "rel:". Unreadable
// or oversized files produce a bracketed placeholder line instead of content.
func (r *Renderer) RenderFile(rel, full string) string {
	var b strings.Builder
	b.WriteString(rel)
	b.WriteString(":\n")

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		b.WriteString(readErrorLine + "\n")
		return b.String()
	}
	if r.MaxSize > 0 && info.Size() > r.MaxSize {
		fmt.Fprintf(&b, "[File content too large to process (>%s)]\n", formatLimit(r.MaxSize))
		return b.String()
	}
	data, err := os.ReadFile(full)
	if err != nil {
		b.WriteString(readErrorLine + "\n")
		return b.String()
	}
	b.WriteString(r.Render(rel, data))
	return b.String()
}

// Render applies the strip rule selected for rel, optional compaction and
// line normalisation to data. Every output line ends in "\n".
func (r *Renderer) Render(rel string, data []byte) string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if re := r.stripFor(rel); re != nil {
		text = StripUntil(re, text)
	}
	if r.Compact {
		text = Compact(rel, text)
	}
	return normalizeLines(text, r.Compact)
}

func (r *Renderer) stripFor(rel string) *regexp.Regexp {
	for _, rule := range r.Scoped {
		if rule.Path != nil && rule.Path.MatchString(rel) {
			return rule.Strip
		}
	}
	return r.Strip
}

// StripUntil drops everything up to and including the first match of re.
// When the match ends at the end of a line, that line break goes too. Text
// without a match is returned unchanged.
func StripUntil(re *regexp.Regexp, text string) string {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return text
	}
	rest := text[loc[1]:]
	switch {
	case strings.HasPrefix(rest, "\r\n"):
		rest = rest[2:]
	case strings.HasPrefix(rest, "\n"):
		rest = rest[1:]
	}
	return rest
}

// normalizeLines converts CRLF to LF, trims trailing whitespace and collapses
// runs of blank lines into one. With dropBlank every blank line is removed.
func normalizeLines(text string, dropBlank bool) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var b strings.Builder
	b.Grow(len(text) + 1)
	prevBlank := false
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" {
			if dropBlank || prevBlank {
				continue
			}
			prevBlank = true
			b.WriteByte('\n')
			continue
		}
		prevBlank = false
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func formatLimit(n int64) string {
	const mb = 1024 * 1024
	if n >= mb {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
