package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agusx1211/recap/internal/config"
)

const sampleRecapFile = `include:
  - '\.go$'
exclude:
  - vendor/
strip: '^// Copyright.*$'
profiles:
  default:
    content: [go]
  docs:
    include: ['\.md$']
    include_content: ['\.md$']
    compact: true
    strip_scope:
      - path: '^docs/'
        strip: '^---$'
`

func writeRecapFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, recapFileName)
	if err := os.WriteFile(path, []byte(sampleRecapFile), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRecapFileProfiles(t *testing.T) {
	dir := t.TempDir()
	rf, err := readRecapFile(writeRecapFile(t, dir))
	if err != nil {
		t.Fatalf("readRecapFile: %v", err)
	}

	docs, found := rf.resolve("docs")
	if !found {
		t.Fatalf("docs profile not found")
	}
	if want := []string{`\.go$`, `\.md$`}; !reflect.DeepEqual(docs.Include, want) {
		t.Fatalf("docs include = %q, want %q", docs.Include, want)
	}
	if !docs.Compact || len(docs.StripScope) != 1 || docs.StripScope[0].Path != "^docs/" {
		t.Fatalf("unexpected docs profile: %+v", docs)
	}

	fallback, found := rf.resolve("missing")
	if !found {
		t.Fatalf("expected fallback to default profile")
	}
	if !reflect.DeepEqual(fallback.Content, []string{"go"}) {
		t.Fatalf("fallback content = %q", fallback.Content)
	}
	if len(rf.Include) != 1 {
		t.Fatalf("resolve must not modify the top-level lists, got %q", rf.Include)
	}
}

func TestApplyRecapFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	writeRecapFile(t, dir)

	cfg := config.Default()
	cfg.Include = []string{"cli"}
	cfg.Strip = "flag"
	if err := applyRecapFile(cfg, "", dir, "docs", true, zerolog.Nop()); err != nil {
		t.Fatalf("applyRecapFile: %v", err)
	}
	if want := []string{`\.go$`, `\.md$`, "cli"}; !reflect.DeepEqual(cfg.Include, want) {
		t.Fatalf("include = %q, want %q", cfg.Include, want)
	}
	if cfg.Strip != "flag" {
		t.Fatalf("command line strip must win, got %q", cfg.Strip)
	}
	if !cfg.Compact {
		t.Fatalf("compact should come from the profile")
	}

	cfg = config.Default()
	if err := applyRecapFile(cfg, "", dir, "default", false, zerolog.Nop()); err != nil {
		t.Fatalf("applyRecapFile: %v", err)
	}
	if cfg.Strip != `^// Copyright.*$` {
		t.Fatalf("strip = %q", cfg.Strip)
	}
}

func TestApplyRecapFileMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := config.Default()
	if err := applyRecapFile(cfg, "", dir, defaultProfile, false, zerolog.Nop()); err != nil {
		t.Fatalf("a missing .recap file is not an error: %v", err)
	}
	if err := applyRecapFile(cfg, filepath.Join(dir, "nope.yml"), dir, defaultProfile, false, zerolog.Nop()); err == nil {
		t.Fatalf("an explicit missing config file is an error")
	}
}

func TestRecapFileUnknownProfileWithoutDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	if err := os.WriteFile(path, []byte("profiles:\n  a:\n    include: [x]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := applyRecapFile(config.Default(), path, dir, "b", false, zerolog.Nop())
	if err == nil {
		t.Fatalf("expected an error for an unknown profile")
	}
}
