package main

import (
	"strings"
	"testing"

	"github.com/agusx1211/recap/internal/report"
)

// wordEncoder counts whitespace separated words as tokens.
type wordEncoder struct{}

func (wordEncoder) Encode(text string, _ []string, _ []string) []int {
	return make([]int, len(strings.Fields(text)))
}

func TestCountTokens(t *testing.T) {
	printed := "a.go:\none two\n---\nsub/b.go:\nthree\n"
	sections := []report.Section{
		{Label: "a.go", Start: 0, End: 14},
		{Label: "sub/b.go", Start: 18, End: len(printed)},
		{Label: "bogus", Start: 10, End: 1000},
	}

	total, counts := countTokens(wordEncoder{}, printed, sections)
	if total != 6 {
		t.Fatalf("total = %d, want 6", total)
	}
	if counts["a.go"] != 3 || counts["sub/b.go"] != 2 {
		t.Fatalf("unexpected counts %v", counts)
	}
	if _, ok := counts["bogus"]; ok {
		t.Fatalf("out of range sections must be ignored")
	}
}

func TestFormatTokenReport(t *testing.T) {
	got := formatTokenReport("gpt-4", 110, map[string]int{
		report.TreeLabel: 10,
		"main.go":        20,
		"pkg/a/a.go":     50,
		"pkg/b.go":       30,
	})

	for _, want := range []string{
		"tokens: 110 (model gpt-4)\n",
		"tree: 10\t(9.1%)\n",
		"80\tpkg/\t(80.0%, 2 files)\n",
		"50\tpkg/a/\t(50.0%, 1 files)\n",
		"top files:\n50\tpkg/a/a.go\t(50.0%)\n30\tpkg/b.go\t(30.0%)\n20\tmain.go\t(20.0%)\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("report missing %q:\n%s", want, got)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(1, 0); got != "0.0%" {
		t.Fatalf("formatPercent(1, 0) = %q", got)
	}
	if got := formatPercent(1, 3); got != "33.3%" {
		t.Fatalf("formatPercent(1, 3) = %q", got)
	}
}
