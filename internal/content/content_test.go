package content

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestIsText(t *testing.T) {
	dir := t.TempDir()

	assert.True(t, IsText(writeFile(t, dir, "a.txt", []byte("hello\n"))))
	assert.True(t, IsText(writeFile(t, dir, "empty", nil)))
	assert.False(t, IsText(writeFile(t, dir, "bin", []byte{'E', 'L', 'F', 0, 1})))
	assert.False(t, IsText(filepath.Join(dir, "missing")))

	late := make([]byte, 2048)
	for i := range late {
		late[i] = 'a'
	}
	late[1500] = 0
	assert.True(t, IsText(writeFile(t, dir, "late-nul", late)), "NUL past the first kilobyte is not inspected")

	late[1023] = 0
	assert.False(t, IsText(writeFile(t, dir, "edge-nul", late)))
}

func TestStripUntil(t *testing.T) {
	re, err := CompileStrip(`^HEADER$`)
	require.NoError(t, err)

	r := &Renderer{Strip: re}
	assert.Equal(t, "BODY\n", r.Render("f.txt", []byte("HEADER\nBODY")))
	assert.Equal(t, "BODY\n", r.Render("f.txt", []byte("HEADER\r\nBODY\r\n")))
	assert.Equal(t, "no header\nhere\n", r.Render("f.txt", []byte("no header\nhere")))

	mid, err := CompileStrip(`END`)
	require.NoError(t, err)
	assert.Equal(t, " tail\nnext\n", StripUntil(mid, "head END tail\nnext\n"))

	_, err = CompileStrip(`(`)
	assert.Error(t, err)
}

func TestScopedStrip(t *testing.T) {
	global := regexp.MustCompile(`(?m)^---$`)
	scoped := regexp.MustCompile(`(?m)^package .*$`)
	r := &Renderer{
		Strip: global,
		Scoped: []ScopedStripRule{
			{Path: regexp.MustCompile(`\.go$`), Strip: scoped},
		},
	}

	assert.Equal(t, "func main() {}\n", r.Render("cmd/main.go", []byte("package main\nfunc main() {}\n")))
	assert.Equal(t, "body\n", r.Render("notes.md", []byte("title\n---\nbody\n")))
	assert.Equal(t, "package main\n---\nx\n", r.Render("x.txt", []byte("---\npackage main\n---\nx\n")), "global strip applies to the first match only")
}

func TestRenderNormalizesLines(t *testing.T) {
	r := &Renderer{}

	assert.Equal(t, "a\n\nb\n", r.Render("f", []byte("a  \r\n\r\n\n\t\nb\t")))
	assert.Equal(t, "", r.Render("f", nil))
	assert.Equal(t, "\nx\n", r.Render("f", []byte("\n\n\nx\n")))
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	small := writeFile(t, dir, "small.txt", []byte("hi"))
	big := writeFile(t, dir, "big.txt", make([]byte, 64))

	r := &Renderer{MaxSize: 32}
	assert.Equal(t, "small.txt:\nhi\n", r.RenderFile("small.txt", small))
	assert.Equal(t, "big.txt:\n[File content too large to process (>32 bytes)]\n", r.RenderFile("big.txt", big))
	assert.Equal(t, "gone.txt:\n[Error reading file content]\n", r.RenderFile("gone.txt", filepath.Join(dir, "gone.txt")))
	assert.Equal(t, "sub:\n[Error reading file content]\n", r.RenderFile("sub", dir))

	mb := &Renderer{MaxSize: DefaultMaxSize}
	assert.Equal(t, "10MB", formatLimit(mb.MaxSize))
}

func TestRenderCompact(t *testing.T) {
	r := &Renderer{Compact: true}
	src := "int main() {\n  // greet\n\n  puts(\"// not a comment\"); /* trailing */\n  return 0;\n}\n"
	assert.Equal(t, "int main() {\n  puts(\"// not a comment\");\n  return 0;\n}\n", r.Render("main.c", []byte(src)))
}
