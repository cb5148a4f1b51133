// Package gitfiles shells out to git for file discovery. The rest of the tool
// treats it as an opaque lister: a repository root and a sequence of tracked
// relative paths.
package gitfiles

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotInstalled reports a missing git executable.
var ErrNotInstalled = errors.New("git is not installed")

// ErrNotARepo reports a path outside any git repository.
var ErrNotARepo = errors.New("not a git repository")

// RepoStatus holds path sets from `git status --porcelain`.
type RepoStatus struct {
	Dirty    map[string]struct{}
	Staged   map[string]struct{}
	Unstaged map[string]struct{}
}

// Matches reports whether path passes the enabled status filters. With no
// filter enabled everything passes.
func (s *RepoStatus) Matches(path string, dirty, staged, unstaged bool) bool {
	if !dirty && !staged && !unstaged {
		return true
	}
	if staged {
		if _, ok := s.Staged[path]; ok {
			return true
		}
	}
	if unstaged {
		if _, ok := s.Unstaged[path]; ok {
			return true
		}
	}
	if dirty {
		if _, ok := s.Dirty[path]; ok {
			return true
		}
	}
	return false
}

// RepoRoot resolves the top-level directory of the repository containing path.
func RepoRoot(path string) (string, error) {
	out, err := run(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// LsFiles lists tracked and untracked-but-not-ignored files, relative to root.
func LsFiles(root string) ([]string, error) {
	out, err := run(root, "ls-files", "--cached", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// Status parses `git status --porcelain` for root.
func Status(root string) (*RepoStatus, error) {
	out, err := run(root, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseStatus(out), nil
}

func parseStatus(out string) *RepoStatus {
	status := &RepoStatus{
		Dirty:    map[string]struct{}{},
		Staged:   map[string]struct{}{},
		Unstaged: map[string]struct{}{},
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		x := line[0]
		y := line[1]
		file := strings.TrimSpace(line[3:])

		staged := x != ' ' && x != '?'
		unstaged := y != ' ' && y != '?'
		untracked := x == '?' && y == '?'

		if staged {
			status.Staged[file] = struct{}{}
		}
		if unstaged {
			status.Unstaged[file] = struct{}{}
		}
		if staged || unstaged || untracked {
			status.Dirty[file] = struct{}{}
		}
	}
	return status
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", ErrNotInstalled
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := string(exitErr.Stderr)
			if strings.Contains(stderr, "not a git repository") {
				return "", ErrNotARepo
			}
			return "", fmt.Errorf("git %s failed: %s", args[0], strings.TrimSpace(stderr))
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return string(out), nil
}
