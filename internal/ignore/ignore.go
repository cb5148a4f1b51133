// Package ignore filters repository paths against gitignore-style glob
// patterns before scoring.
//
// Patterns come from two optional files: the global one under the user's XDG
// config directory and a local .skimignore at the repository root. Both are
// additive; there is no negation or precedence between them.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/skimcli/skim/internal/config"
)

// PatternSet holds compiled ignore patterns. Immutable after Load.
type PatternSet struct {
	patterns []string
}

// Load reads the global and local ignore files for root. Missing files
// contribute no patterns; malformed lines are dropped silently.
func Load(root string) (*PatternSet, error) {
	set := &PatternSet{}

	globalPath, err := config.GlobalIgnorePath()
	if err != nil {
		return nil, err
	}
	set.addFile(globalPath)
	set.addFile(filepath.Join(root, config.LocalIgnoreName))

	return set, nil
}

// IsIgnored reports whether any pattern matches the relative path.
func (s *PatternSet) IsIgnored(path string) bool {
	for _, pattern := range s.patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (s *PatternSet) Len() int {
	return len(s.patterns)
}

func (s *PatternSet) addFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, variant := range variants(line) {
			if doublestar.ValidatePattern(variant) {
				s.patterns = append(s.patterns, variant)
			}
		}
	}
}

// variants expands a pattern so it matches at any nesting depth, and expands
// trailing-slash directory patterns to their whole subtree.
func variants(line string) []string {
	out := []string{line}
	if !strings.HasPrefix(line, "**/") {
		out = append(out, "**/"+line)
	}
	if strings.HasSuffix(line, "/") {
		dir := strings.TrimSuffix(line, "/")
		out = append(out, dir+"/**")
		if !strings.HasPrefix(dir, "**/") {
			out = append(out, "**/"+dir+"/**")
		}
	}
	return out
}
