package tree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/skimcli/skim/internal/scorer"
)

func TestBuild(t *testing.T) {
	files := []scorer.ScoredFile{
		{Path: "src/main.rs", Score: 10},
		{Path: "src/lib.rs", Score: 9},
		{Path: "README.md", Score: 8},
	}

	root := Build(files)
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level entries, got %d", len(root.Children))
	}
	src, ok := root.Children["src"]
	if !ok {
		t.Fatalf("missing src node")
	}
	if len(src.Children) != 2 {
		t.Fatalf("expected 2 files under src, got %d", len(src.Children))
	}
	if src.Children["main.rs"].Score != 10 {
		t.Fatalf("leaf score not recorded")
	}
}

func TestMaxScore(t *testing.T) {
	root := Build([]scorer.ScoredFile{
		{Path: "src/main.rs", Score: 10},
		{Path: "src/util.rs", Score: 6},
		{Path: "docs/a.md", Score: 3},
	})
	if got := MaxScore(root); got != 10 {
		t.Fatalf("MaxScore = %d, want 10", got)
	}
	if got := MaxScore(root.Children["docs"]); got != 3 {
		t.Fatalf("MaxScore(docs) = %d, want 3", got)
	}
}

func TestFilterDepth(t *testing.T) {
	files := []scorer.ScoredFile{
		{Path: "a.rs", Score: 10},
		{Path: "dir/b.rs", Score: 10},
		{Path: "dir/subdir/c.rs", Score: 10},
	}
	kept := FilterDepth(files, 1)
	if len(kept) != 2 {
		t.Fatalf("expected 2 files, got %d", len(kept))
	}
	for _, f := range kept {
		if f.Path == "dir/subdir/c.rs" {
			t.Fatalf("deep file should have been dropped")
		}
	}
}

func TestRenderFlatOrderAndTruncation(t *testing.T) {
	files := []scorer.ScoredFile{
		{Path: "zeta.go", Score: 7},
		{Path: "alpha.go", Score: 7},
		{Path: "main.go", Score: 10},
	}

	var buf bytes.Buffer
	Render(&buf, files, Options{Flat: true})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "main.go") {
		t.Fatalf("highest score first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "alpha.go") || !strings.Contains(lines[2], "zeta.go") {
		t.Fatalf("ties must sort by path: %v", lines)
	}

	buf.Reset()
	Render(&buf, []scorer.ScoredFile{{Path: strings.Repeat("verylongsegment/", 8) + "f.go", Score: 7}}, Options{Flat: true, Width: 30})
	line := strings.TrimRight(buf.String(), "\n")
	if !strings.HasSuffix(line, "…") {
		t.Fatalf("expected truncated line, got %q", line)
	}
}

func TestRenderTreeConnectors(t *testing.T) {
	files := []scorer.ScoredFile{
		{Path: "src/main.rs", Score: 10},
		{Path: "README.md", Score: 8},
	}

	var buf bytes.Buffer
	Render(&buf, files, Options{})
	out := buf.String()

	if !strings.Contains(out, "src/") {
		t.Fatalf("directory marker missing:\n%s", out)
	}
	if !strings.Contains(out, "└── 10 main.rs") {
		t.Fatalf("leaf line missing:\n%s", out)
	}
	// src has max score 10, so it sorts before README.md.
	if strings.Index(out, "src/") > strings.Index(out, "README.md") {
		t.Fatalf("directories with higher max score come first:\n%s", out)
	}
}
