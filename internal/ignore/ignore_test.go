package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func writeIgnore(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestPatternMatching(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := t.TempDir()
	writeIgnore(t, filepath.Join(root, ".skimignore"), "*.lock\n*-lock.*\nnode_modules/\ndist/\n")

	set, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, path := range []string{
		"Cargo.lock",
		"sub/dir/Cargo.lock",
		"package-lock.json",
		"src/node_modules/foo/bar.js",
		"dist/bundle.js",
	} {
		if !set.IsIgnored(path) {
			t.Fatalf("expected %q to be ignored", path)
		}
	}
	for _, path := range []string{"src/main.rs", "README.md"} {
		if set.IsIgnored(path) {
			t.Fatalf("expected %q not to be ignored", path)
		}
	}
}

func TestLocalOnlyPatternApplies(t *testing.T) {
	// A pattern present only in the local file excludes paths even with no
	// global file at all.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := t.TempDir()
	writeIgnore(t, filepath.Join(root, ".skimignore"), "secret.txt\n")

	set, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !set.IsIgnored("secret.txt") {
		t.Fatalf("local pattern should apply")
	}
	if !set.IsIgnored("deep/nested/secret.txt") {
		t.Fatalf("local pattern should apply at any depth")
	}
	if set.IsIgnored("other.txt") {
		t.Fatalf("unlisted path must not be ignored")
	}
}

func TestGlobalAndLocalAreUnioned(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	root := t.TempDir()
	writeIgnore(t, filepath.Join(configHome, "skim", "ignore"), "*.log\n")
	writeIgnore(t, filepath.Join(root, ".skimignore"), "*.tmp\n")

	set, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !set.IsIgnored("debug.log") || !set.IsIgnored("cache.tmp") {
		t.Fatalf("both global and local patterns should apply")
	}
}

func TestCommentsAndBlanksSkipped(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := t.TempDir()
	writeIgnore(t, filepath.Join(root, ".skimignore"), "# comment\n\n  \n*.bak\n")

	set, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.IsIgnored("# comment") {
		t.Fatalf("comment line must not become a pattern")
	}
	if !set.IsIgnored("old.bak") {
		t.Fatalf("expected *.bak to apply")
	}
}

func TestMalformedLineSkipped(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := t.TempDir()
	writeIgnore(t, filepath.Join(root, ".skimignore"), "[invalid\n*.min.js\n")

	set, err := Load(root)
	if err != nil {
		t.Fatalf("Load should not fail on malformed lines: %v", err)
	}
	if !set.IsIgnored("bundle.min.js") {
		t.Fatalf("valid pattern after malformed line should still apply")
	}
}

func TestMissingFilesAreEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	set, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("expected empty set, got %d patterns", set.Len())
	}
	if set.IsIgnored("anything") {
		t.Fatalf("empty set must not ignore anything")
	}
}

func TestVariants(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"*.lock", []string{"*.lock", "**/*.lock"}},
		{"**/*.lock", []string{"**/*.lock"}},
		{"dist/", []string{"dist/", "**/dist/", "dist/**", "**/dist/**"}},
	}
	for _, tc := range cases {
		got := variants(tc.line)
		if len(got) != len(tc.want) {
			t.Fatalf("variants(%q) = %v, want %v", tc.line, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("variants(%q) = %v, want %v", tc.line, got, tc.want)
			}
		}
	}
}
