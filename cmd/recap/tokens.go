package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/agusx1211/recap/internal/pathutil"
	"github.com/agusx1211/recap/internal/report"
)

const maxTokenReportLines = 20

type tokenItem struct {
	Label  string
	Tokens int
	Files  int
}

func sortTokenItems(items []tokenItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Tokens == items[j].Tokens {
			return items[i].Label < items[j].Label
		}
		return items[i].Tokens > items[j].Tokens
	})
}

func formatPercent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}

type tokenEncoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

// countTokens returns the token count of the whole report and of every
// report section, keyed by label.
func countTokens(enc tokenEncoder, printed string, sections []report.Section) (int, map[string]int) {
	total := len(enc.Encode(printed, nil, nil))
	counts := make(map[string]int, len(sections))
	for _, s := range sections {
		if s.Start < 0 || s.End > len(printed) || s.Start > s.End {
			continue
		}
		counts[s.Label] += len(enc.Encode(printed[s.Start:s.End], nil, nil))
	}
	return total, counts
}

// buildTokenReport summarises how the tokens of printed are spread over
// files and directories.
func buildTokenReport(printed, model string, sections []report.Section) (string, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return "", fmt.Errorf("failed to get tokenizer for model %q: %w", model, err)
	}
	total, counts := countTokens(tkm, printed, sections)
	return formatTokenReport(model, total, counts), nil
}

func formatTokenReport(model string, total int, counts map[string]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tokens: %d (model %s)\n", total, model)

	files := make([]tokenItem, 0, len(counts))
	dirTokens := make(map[string]int)
	dirFiles := make(map[string]int)
	pathTokens := 0
	for label, n := range counts {
		if label == report.TreeLabel {
			continue
		}
		pathTokens += n
		files = append(files, tokenItem{Label: label, Tokens: n, Files: 1})
		for _, dir := range pathutil.Ancestors(label) {
			dirTokens[dir] += n
			dirFiles[dir]++
		}
	}
	if n, ok := counts[report.TreeLabel]; ok {
		fmt.Fprintf(&b, "tree: %d\t(%s)\n", n, formatPercent(n, total))
	}

	dirs := make([]tokenItem, 0, len(dirTokens))
	for dir, n := range dirTokens {
		dirs = append(dirs, tokenItem{Label: dir + "/", Tokens: n, Files: dirFiles[dir]})
	}
	sortTokenItems(dirs)
	sortTokenItems(files)

	if len(dirs) > 0 {
		fmt.Fprintf(&b, "\ntop directories (subtree):\n")
		for i, d := range dirs {
			if i == maxTokenReportLines {
				b.WriteString("...\n")
				break
			}
			fmt.Fprintf(&b, "%d\t%s\t(%s, %d files)\n", d.Tokens, d.Label, formatPercent(d.Tokens, pathTokens), d.Files)
		}
	}

	fmt.Fprintf(&b, "\ntop files:\n")
	for i, f := range files {
		if i == maxTokenReportLines {
			b.WriteString("...\n")
			break
		}
		fmt.Fprintf(&b, "%d\t%s\t(%s)\n", f.Tokens, f.Label, formatPercent(f.Tokens, pathTokens))
	}
	return b.String()
}
