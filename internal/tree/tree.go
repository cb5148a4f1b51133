// Package tree renders scored files as a hierarchical tree or a flat listing.
package tree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/skimcli/skim/internal/scorer"
	"github.com/skimcli/skim/internal/tokens"
)

var (
	scoreHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	scoreMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	scoreLowStyle  = lipgloss.NewStyle().Faint(true)
	dirStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// Options configures rendering.
type Options struct {
	Flat    bool
	Color   bool
	Tokens  bool
	Width   int // flat lines are truncated to this display width; 0 disables
	Root    string
	Counter *tokens.Counter
}

// Render writes the structure view for files.
func Render(w io.Writer, files []scorer.ScoredFile, opts Options) {
	if opts.Flat {
		renderFlat(w, files, opts)
		return
	}
	root := Build(files)
	printNode(w, root, "", true, opts)
}

// FilterDepth drops files nested deeper than maxDepth directories.
func FilterDepth(files []scorer.ScoredFile, maxDepth int) []scorer.ScoredFile {
	kept := files[:0]
	for _, f := range files {
		if strings.Count(f.Path, "/") <= maxDepth {
			kept = append(kept, f)
		}
	}
	return kept
}

// Node is one entry in the rendered tree. A node with children is a
// directory and carries no score of its own.
type Node struct {
	Name     string
	Path     string
	Score    int // 0 for directories
	Children map[string]*Node
}

// Build assembles the directory tree for the given files.
func Build(files []scorer.ScoredFile) *Node {
	root := &Node{Name: ".", Path: ".", Children: map[string]*Node{}}

	for _, file := range files {
		parts := strings.Split(file.Path, "/")
		current := root
		currentPath := ""
		for i, part := range parts {
			if currentPath != "" {
				currentPath += "/"
			}
			currentPath += part

			child, ok := current.Children[part]
			if !ok {
				child = &Node{Name: part, Path: currentPath, Children: map[string]*Node{}}
				current.Children[part] = child
			}
			current = child
			if i == len(parts)-1 {
				current.Score = file.Score
			}
		}
	}
	return root
}

// MaxScore returns the highest score in the subtree rooted at node.
func MaxScore(node *Node) int {
	max := node.Score
	for _, child := range node.Children {
		if s := MaxScore(child); s > max {
			max = s
		}
	}
	return max
}

func renderFlat(w io.Writer, files []scorer.ScoredFile, opts Options) {
	sorted := append([]scorer.ScoredFile(nil), files...)
	scorer.SortForDisplay(sorted)

	for _, file := range sorted {
		rest := " " + file.Path + tokenSuffix(file.Path, opts)
		if opts.Width > 2 {
			rest = runewidth.Truncate(rest, opts.Width-2, "…")
		}
		fmt.Fprintf(w, "%s%s\n", styleScore(file.Score, opts.Color), rest)
	}
}

func printNode(w io.Writer, node *Node, prefix string, isLast bool, opts Options) {
	if node.Name != "." {
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		var display string
		if len(node.Children) == 0 {
			display = fmt.Sprintf("%s %s%s", styleScore(node.Score, opts.Color), node.Name, tokenSuffix(node.Path, opts))
		} else if opts.Color {
			display = dirStyle.Render(node.Name)
		} else {
			display = node.Name + "/"
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, display)
	}

	children := make([]*Node, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool {
		si, sj := MaxScore(children[i]), MaxScore(children[j])
		if si != sj {
			return si > sj
		}
		return children[i].Name < children[j].Name
	})

	for i, child := range children {
		childPrefix := ""
		if node.Name != "." {
			bar := "│"
			if isLast {
				bar = " "
			}
			childPrefix = prefix + bar + "   "
		}
		printNode(w, child, childPrefix, i == len(children)-1, opts)
	}
}

func styleScore(score int, color bool) string {
	text := fmt.Sprintf("%2d", score)
	if !color {
		return text
	}
	switch {
	case score >= 8:
		return scoreHighStyle.Render(text)
	case score >= 5:
		return scoreMidStyle.Render(text)
	default:
		return scoreLowStyle.Render(text)
	}
}

func tokenSuffix(path string, opts Options) string {
	if !opts.Tokens || opts.Counter == nil {
		return ""
	}
	content, err := os.ReadFile(filepath.Join(opts.Root, filepath.FromSlash(path)))
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (%d tokens)", opts.Counter.Count("", string(content)))
}
