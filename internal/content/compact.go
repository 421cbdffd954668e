package content

import (
	"strings"
	"unicode/utf8"

	"github.com/agusx1211/recap/internal/pathutil"
)

// syntax describes the comment and literal rules of one language family.
type syntax struct {
	lineComment  string // "//" or "#", empty when the family has none
	blockComment bool   // /* ... */
	singleQuoted bool   // '...' is a string
	charLiterals bool   // '...' is a short char literal
	backtick     bool   // `...` may span lines
	rawBacktick  bool   // no escapes inside backticks
	tripleQuoted bool   // """...""" and '''...'''
	// hashAfterSpace restricts "#" comments to line starts or after
	// whitespace, as in shell and YAML.
	hashAfterSpace bool
}

var (
	cSyntax     = syntax{lineComment: "//", blockComment: true, charLiterals: true}
	goSyntax    = syntax{lineComment: "//", blockComment: true, charLiterals: true, backtick: true, rawBacktick: true}
	jsSyntax    = syntax{lineComment: "//", blockComment: true, singleQuoted: true, backtick: true}
	phpSyntax   = syntax{lineComment: "//", blockComment: true, singleQuoted: true}
	cssSyntax   = syntax{blockComment: true, singleQuoted: true}
	pySyntax    = syntax{lineComment: "#", singleQuoted: true, tripleQuoted: true}
	hashSyntax  = syntax{lineComment: "#", singleQuoted: true}
	shellSyntax = syntax{lineComment: "#", hashAfterSpace: true, singleQuoted: true}
)

var syntaxes = map[string]syntax{
	"c": cSyntax, "h": cSyntax, "cc": cSyntax, "cpp": cSyntax, "cxx": cSyntax,
	"hpp": cSyntax, "hh": cSyntax, "java": cSyntax, "rs": cSyntax, "cs": cSyntax,
	"kt": cSyntax, "swift": cSyntax, "scala": cSyntax,
	"go": goSyntax,
	"js": jsSyntax, "jsx": jsSyntax, "ts": jsSyntax, "tsx": jsSyntax, "mjs": jsSyntax, "cjs": jsSyntax,
	"php": phpSyntax,
	"css": cssSyntax, "scss": cssSyntax,
	"py": pySyntax,
	"rb": hashSyntax, "pl": hashSyntax, "r": hashSyntax,
	"sh": shellSyntax, "bash": shellSyntax, "zsh": shellSyntax,
	"yaml": shellSyntax, "yml": shellSyntax, "toml": shellSyntax,
}

// Compact removes comments from source text based on the extension of rel.
// JSON loses all whitespace outside strings. Unknown extensions are returned
// unchanged. Line breaks inside removed block comments are kept so that the
// caller can drop the resulting empty lines.
func Compact(rel, text string) string {
	ext := strings.ToLower(pathutil.Ext(rel))
	if ext == "json" {
		return compactJSON(text)
	}
	syn, ok := syntaxes[ext]
	if !ok {
		return text
	}

	// keep a shebang line
	if syn.lineComment == "#" && strings.HasPrefix(text, "#!") {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			return text
		}
		return text[:nl+1] + stripComments(text[nl+1:], syn)
	}
	return stripComments(text, syn)
}

func stripComments(src string, syn syntax) string {
	var b strings.Builder
	b.Grow(len(src))

	n := len(src)
	for i := 0; i < n; {
		c := src[i]
		switch {
		case syn.blockComment && strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				b.WriteString(strings.Repeat("\n", strings.Count(src[i:], "\n")))
				i = n
				continue
			}
			comment := src[i : i+2+end+2]
			b.WriteString(strings.Repeat("\n", strings.Count(comment, "\n")))
			i += len(comment)

		case syn.lineComment != "" && strings.HasPrefix(src[i:], syn.lineComment) &&
			(!syn.hashAfterSpace || i == 0 || isBlank(src[i-1])):
			nl := strings.IndexByte(src[i:], '\n')
			if nl < 0 {
				i = n
			} else {
				i += nl
			}

		case syn.tripleQuoted && (c == '"' || c == '\'') && strings.HasPrefix(src[i:], strings.Repeat(string(c), 3)):
			delim := src[i : i+3]
			end := strings.Index(src[i+3:], delim)
			if end < 0 {
				b.WriteString(src[i:])
				i = n
				continue
			}
			b.WriteString(src[i : i+3+end+3])
			i += 3 + end + 3

		case c == '"' || (c == '\'' && syn.singleQuoted):
			j := scanString(src, i, false, true)
			b.WriteString(src[i:j])
			i = j

		case c == '`' && syn.backtick:
			j := scanString(src, i, true, !syn.rawBacktick)
			b.WriteString(src[i:j])
			i = j

		case c == '\'' && syn.charLiterals:
			j := scanChar(src, i)
			b.WriteString(src[i:j])
			i = j

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// scanString returns the index just past the string literal opened at
// src[i]. Unterminated single-line strings end before the line break.
func scanString(src string, i int, multiline, escapes bool) int {
	q := src[i]
	n := len(src)
	for j := i + 1; j < n; j++ {
		switch ch := src[j]; {
		case escapes && ch == '\\':
			j++
		case ch == q:
			return j + 1
		case ch == '\n' && !multiline:
			return j
		}
	}
	return n
}

// scanChar returns the index just past a char literal such as 'a' or '\n'
// opened at src[i]. When src[i] does not open one, as with a Rust lifetime,
// only the quote itself is consumed.
func scanChar(src string, i int) int {
	n := len(src)
	if i+1 >= n {
		return n
	}
	if src[i+1] == '\\' {
		limit := i + 12
		if limit > n {
			limit = n
		}
		for j := i + 3; j < limit; j++ {
			switch src[j] {
			case '\'':
				return j + 1
			case '\n':
				return i + 1
			}
		}
		return i + 1
	}
	r, size := utf8.DecodeRuneInString(src[i+1:])
	if r != '\n' && r != '\'' && i+1+size < n && src[i+1+size] == '\'' {
		return i + 2 + size
	}
	return i + 1
}

func compactJSON(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	n := len(src)
	for i := 0; i < n; {
		c := src[i]
		switch {
		case c == '"':
			j := scanString(src, i, true, true)
			b.WriteString(src[i:j])
			i = j
		case isBlank(c) || c == '\n' || c == '\r':
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
