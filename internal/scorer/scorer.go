// Package scorer ranks repository paths by importance on a 1-10 scale.
//
// Scoring is a pure rule cascade over the relative path string: the first
// matching rule wins, and the fallback applies bounded modifiers for
// directory category, nesting depth, and extension. No I/O happens here.
package scorer

import (
	"sort"
	"strings"
)

// ScoredFile is the result of scoring a single path.
type ScoredFile struct {
	Path   string `json:"path"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

const (
	baseScore = 7
	minScore  = 1
	maxScore  = 10
)

// Exact basenames that are entry points regardless of location.
var entryPointNames = map[string]struct{}{
	"main.rs": {},
	"lib.rs":  {},
	"mod.rs":  {},
}

// Basename prefixes that mark entry points across ecosystems.
var entryPointPrefixes = []string{"main.", "index.", "app.", "server.", "cli."}

// Well-known project files with pre-assigned scores.
var projectFiles = map[string]int{
	"README":              10,
	"README.md":           10,
	"README.rst":          10,
	"README.txt":          10,
	"Cargo.toml":          8,
	"package.json":        8,
	"go.mod":              8,
	"pom.xml":             8,
	"build.gradle":        8,
	"build.gradle.kts":    8,
	"Dockerfile":          8,
	"docker-compose.yml":  8,
	"docker-compose.yaml": 8,
	"Makefile":            8,
	"CMakeLists.txt":      8,
	"tsconfig.json":       8,
	"setup.py":            8,
	"pyproject.toml":      8,
	"requirements.txt":    8,
	".gitignore":          6,
	".dockerignore":       6,
	".skimignore":         6,
	"CHANGELOG":           5,
	"CHANGELOG.md":        5,
	"HISTORY.md":          5,
	"LICENSE":             4,
	"LICENSE.md":          4,
	"COPYING":             4,
	"NOTICE":              4,
}

type dirCategory struct {
	modifier int
	reason   string
}

// Directory categories for the fallback rule. A path component belongs to at
// most one category; the first categorized ancestor decides the modifier.
var dirCategories = buildDirCategories()

func buildDirCategories() map[string]dirCategory {
	m := make(map[string]dirCategory)
	add := func(names []string, modifier int, reason string) {
		for _, name := range names {
			m[name] = dirCategory{modifier: modifier, reason: reason}
		}
	}
	add([]string{"src", "core", "lib", "app", "pkg", "internal", "cmd"}, +2, "core")
	add([]string{
		"api", "server", "client", "models", "services", "handlers",
		"controllers", "routes", "middleware", "database", "db", "auth",
		"components", "views", "utils",
	}, +1, "domain")
	add([]string{"test", "tests", "spec", "__tests__"}, -2, "test")
	add([]string{
		"vendor", "third_party", "fixtures", "mocks", "docs", "examples",
		"scripts", "tools", "dist", "build", "out", "target", "node_modules",
		"archived", "legacy", "debug", "research", "tmp", "temp", "backup",
		"artifacts", ".artifacts", "drizzle", "migrations",
	}, -3, "peripheral")
	return m
}

var schemaExtensions = map[string]struct{}{
	"proto":   {},
	"graphql": {},
	"gql":     {},
	"thrift":  {},
}

// Score maps a relative path to an importance score and a reason label.
// Deterministic; the result is always in [1,10].
func Score(path string) ScoredFile {
	components := strings.Split(path, "/")
	name := components[len(components)-1]
	depth := len(components) - 1

	if isEntryPoint(name) {
		return ScoredFile{Path: path, Score: 10, Reason: "entry point"}
	}

	if score, ok := projectFiles[name]; ok {
		return ScoredFile{Path: path, Score: score, Reason: "project file"}
	}

	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "config.") || strings.HasPrefix(lower, "settings.") {
		return ScoredFile{Path: path, Score: 9, Reason: "config"}
	}

	if ok, score := isGenerated(name); ok {
		return ScoredFile{Path: path, Score: score, Reason: "generated"}
	}

	if isTestName(name) {
		return ScoredFile{Path: path, Score: 5, Reason: "test"}
	}

	return fallbackScore(path, components, name, depth)
}

// ScoreAll scores every path in order.
func ScoreAll(paths []string) []ScoredFile {
	scored := make([]ScoredFile, 0, len(paths))
	for _, path := range paths {
		scored = append(scored, Score(path))
	}
	return scored
}

// SortForDisplay orders files by score descending, then path ascending.
func SortForDisplay(files []ScoredFile) {
	sort.Slice(files, func(i, j int) bool {
		if files[i].Score != files[j].Score {
			return files[i].Score > files[j].Score
		}
		return files[i].Path < files[j].Path
	})
}

func isEntryPoint(name string) bool {
	if _, ok := entryPointNames[name]; ok {
		return true
	}
	for _, prefix := range entryPointPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func isGenerated(name string) (bool, int) {
	if name == "__init__.py" {
		return true, 3
	}
	switch {
	case strings.HasSuffix(name, ".lock"),
		strings.Contains(name, "-lock."),
		strings.Contains(name, ".lock."),
		strings.HasSuffix(name, ".min.js"),
		strings.HasSuffix(name, ".min.css"),
		strings.HasSuffix(name, ".map"),
		strings.HasSuffix(name, ".d.ts"),
		strings.HasSuffix(name, ".pyc"),
		strings.HasSuffix(name, ".pyo"),
		strings.Contains(name, ".generated."),
		strings.HasSuffix(name, ".backup"),
		strings.HasSuffix(name, ".bak"),
		strings.HasSuffix(name, ".tmp"),
		strings.HasSuffix(name, ".sql"):
		return true, 2
	}
	return false, 0
}

func isTestName(name string) bool {
	return strings.HasPrefix(name, "test_") ||
		strings.Contains(name, "_test.") ||
		strings.Contains(name, ".test.") ||
		strings.Contains(name, ".spec.")
}

func fallbackScore(path string, components []string, name string, depth int) ScoredFile {
	score := baseScore
	reason := ""

	// One directory modifier at most: the first categorized ancestor wins.
	for _, component := range components[:len(components)-1] {
		if cat, ok := dirCategories[component]; ok {
			score = clamp(score + cat.modifier)
			reason = cat.reason
			break
		}
	}

	switch {
	case depth == 0:
		score = clamp(score + 1)
		if reason == "" {
			reason = "root"
		}
	case depth > 4:
		score = clamp(score - 2)
		if reason == "" {
			reason = "deep"
		}
	case depth > 2:
		score = clamp(score - 1)
	}

	ext := extension(name)
	if _, ok := schemaExtensions[ext]; ok {
		score = clamp(score + 1)
		reason = "schema"
	}
	if (ext == "md" || ext == "rst") && !isReadme(name) {
		score = clamp(score - 1)
		if reason == "" {
			reason = "docs"
		}
	}

	if reason == "" {
		reason = "base score"
	}
	return ScoredFile{Path: path, Score: score, Reason: reason}
}

func isReadme(name string) bool {
	score, ok := projectFiles[name]
	return ok && score == 10 && strings.HasPrefix(name, "README")
}

func extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

func clamp(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
