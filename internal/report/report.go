// Package report assembles the consolidated recap report from the matched
// files.
package report

import (
	"fmt"
	"io"

	"github.com/agusx1211/recap/internal/content"
	"github.com/agusx1211/recap/internal/pattern"
	"github.com/agusx1211/recap/internal/traverse"
)

// Separator is written between report entries.
const Separator = "---\n"

// TreeLabel labels the directory tree section.
const TreeLabel = "[tree]"

// Section is the byte range [Start, End) of the report occupied by one
// entry. Label is the entry's relative path or TreeLabel.
type Section struct {
	Label string
	Start int
	End   int
}

// Writer renders matched files. A nil Content policy shows no content.
type Writer struct {
	Content  *pattern.ContentPolicy
	Renderer *content.Renderer
	// Tree prepends a directory tree of the matched files.
	Tree bool
}

// Write renders files to w in order and returns the section of every entry.
// Files selected by the content policy become a "rel:" block followed by
// their rendered lines; everything else, symlinks included, is a bare path
// line. The only errors are write errors from w.
func (wr *Writer) Write(w io.Writer, files []traverse.MatchedFile) ([]Section, error) {
	cw := &countingWriter{w: w}
	sections := make([]Section, 0, len(files)+1)

	if wr.Tree && len(files) > 0 {
		start := cw.n
		cw.writeString(RenderTree(files))
		sections = append(sections, Section{Label: TreeLabel, Start: start, End: cw.n})
		cw.writeString(Separator)
	}

	for i, f := range files {
		if i > 0 {
			cw.writeString(Separator)
		}
		start := cw.n
		cw.writeString(wr.entry(f))
		sections = append(sections, Section{Label: f.RelPath, Start: start, End: cw.n})
		if cw.err != nil {
			break
		}
	}
	if cw.err != nil {
		return sections, fmt.Errorf("failed to write report: %w", cw.err)
	}
	return sections, nil
}

func (wr *Writer) entry(f traverse.MatchedFile) string {
	if f.Kind == traverse.Regular && wr.Content != nil && wr.Content.ShouldShow(f.RelPath, f.FullPath) {
		r := wr.Renderer
		if r == nil {
			r = &content.Renderer{MaxSize: content.DefaultMaxSize}
		}
		return r.RenderFile(f.RelPath, f.FullPath)
	}
	return f.RelPath + "\n"
}

// countingWriter keeps the first write error and counts bytes written.
type countingWriter struct {
	w   io.Writer
	n   int
	err error
}

func (c *countingWriter) writeString(s string) {
	if c.err != nil {
		return
	}
	n, err := io.WriteString(c.w, s)
	c.n += n
	c.err = err
}
