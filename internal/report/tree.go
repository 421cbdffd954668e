package report

import (
	"sort"
	"strings"

	"github.com/agusx1211/recap/internal/traverse"
)

type treeNode struct {
	name     string
	children map[string]*treeNode
}

func (n *treeNode) child(name string) *treeNode {
	if n.children == nil {
		n.children = make(map[string]*treeNode)
	}
	c, ok := n.children[name]
	if !ok {
		c = &treeNode{name: name}
		n.children[name] = c
	}
	return c
}

func (n *treeNode) sorted() []*treeNode {
	out := make([]*treeNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// RenderTree draws the directories leading to the matched files with box
// drawing characters, one entry per line.
func RenderTree(files []traverse.MatchedFile) string {
	root := &treeNode{}
	for _, f := range files {
		segs := strings.Split(f.RelPath, "/")
		if segs[0] == "" && len(segs) > 1 {
			// absolute path outside the working directory
			segs = append([]string{"/" + segs[1]}, segs[2:]...)
		}
		n := root
		for _, s := range segs {
			if s == "" {
				continue
			}
			n = n.child(s)
		}
	}

	var sb strings.Builder
	sb.WriteString(".\n")
	children := root.sorted()
	for i, c := range children {
		renderTree(&sb, c, "", i == len(children)-1)
	}
	return sb.String()
}

func renderTree(sb *strings.Builder, n *treeNode, prefix string, isLast bool) {
	marker := "├── "
	if isLast {
		marker = "└── "
	}
	sb.WriteString(prefix + marker + n.name + "\n")

	newPrefix := prefix + "│   "
	if isLast {
		newPrefix = prefix + "    "
	}
	children := n.sorted()
	for i, c := range children {
		renderTree(sb, c, newPrefix, i == len(children)-1)
	}
}
