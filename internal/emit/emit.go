// Package emit selects, deduplicates, and reads the files worth showing.
//
// It ties the scorer, the ignore filter, and the session store together in a
// single synchronous pass: resolve candidates, gate out binary or oversized
// files, drop contents a session has already seen, and collect the rest with
// summary counters. Per-file failures become counters; only environment and
// session errors escalate.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skimcli/skim/internal/gitfiles"
	"github.com/skimcli/skim/internal/ignore"
	"github.com/skimcli/skim/internal/scorer"
	"github.com/skimcli/skim/internal/session"
	"github.com/skimcli/skim/internal/tokens"
)

// MaxFileSize is the per-file content cap. Larger files are skipped unread.
const MaxFileSize = 100 * 1024

// DefaultThreshold is the minimum score used when none is configured.
const DefaultThreshold = 5

// Extensions that are read-skipped without touching content.
var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".ico": {},
	".webp": {}, ".pdf": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {},
	".xz": {}, ".7z": {}, ".exe": {}, ".dll": {}, ".so": {}, ".dylib": {},
	".bin": {}, ".o": {}, ".a": {}, ".class": {}, ".jar": {}, ".war": {},
	".wasm": {}, ".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {}, ".otf": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".mkv": {}, ".flac": {},
	".ogg": {}, ".wav": {}, ".sqlite": {}, ".db": {},
}

// Options configures a single emission run.
type Options struct {
	Root      string
	Explicit  []string // explicit paths; empty means threshold mode
	Threshold int

	Prefix                  string // restrict threshold mode to this subtree
	Dirty, Staged, Unstaged bool
	Status                  *gitfiles.RepoStatus

	// List enumerates tracked files for a root. Defaults to gitfiles.LsFiles.
	List   func(root string) ([]string, error)
	Ignore *ignore.PatternSet

	// Session enables deduplication when non-nil. Marks are made in memory;
	// the caller persists once after rendering.
	Session *session.Session

	WithTokens bool
	Counter    *tokens.Counter
}

// File is one emitted file with its content and derived stats.
type File struct {
	Path    string
	Score   int
	Lines   int
	Tokens  int
	Hash    string
	Content string
}

// Result aggregates an emission run.
type Result struct {
	Project        string
	SessionID      string // empty when no session was active
	WithTokens     bool
	Files          []File
	SkippedBinary  int
	SkippedSession int
	TotalLines     int
}

// Run executes the emission state machine: resolve the candidate set, then
// read each file in sorted order applying the binary gate and session dedup.
func Run(opts Options) (*Result, error) {
	candidates, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Project:    filepath.Base(opts.Root),
		WithTokens: opts.WithTokens,
	}
	if opts.Session != nil {
		res.SessionID = opts.Session.ID
	}

	for _, candidate := range candidates {
		fullPath := filepath.Join(opts.Root, filepath.FromSlash(candidate.Path))

		if !readable(fullPath) {
			res.SkippedBinary++
			continue
		}

		content, err := os.ReadFile(fullPath)
		if err != nil {
			res.SkippedBinary++
			continue
		}

		hash := session.ComputeHash(content)
		if opts.Session != nil {
			if opts.Session.WasRead(candidate.Path, hash) {
				res.SkippedSession++
				continue
			}
			opts.Session.MarkRead(candidate.Path, hash)
		}

		file := File{
			Path:    candidate.Path,
			Score:   candidate.Score,
			Lines:   countLines(content),
			Hash:    hash,
			Content: string(content),
		}
		if opts.WithTokens && opts.Counter != nil {
			file.Tokens = opts.Counter.Count(hash, file.Content)
		}
		res.TotalLines += file.Lines
		res.Files = append(res.Files, file)
	}

	return res, nil
}

func resolve(opts Options) ([]scorer.ScoredFile, error) {
	if len(opts.Explicit) > 0 {
		scored := make([]scorer.ScoredFile, 0, len(opts.Explicit))
		for _, path := range opts.Explicit {
			scored = append(scored, scorer.ScoredFile{Path: path, Score: 10, Reason: "explicit"})
		}
		return scored, nil
	}

	list := opts.List
	if list == nil {
		list = gitfiles.LsFiles
	}
	paths, err := list(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to list repository files: %w", err)
	}

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	var scored []scorer.ScoredFile
	for _, path := range paths {
		if opts.Ignore != nil && opts.Ignore.IsIgnored(path) {
			continue
		}
		if opts.Prefix != "" && !strings.HasPrefix(path, opts.Prefix) {
			continue
		}
		if opts.Status != nil && !opts.Status.Matches(path, opts.Dirty, opts.Staged, opts.Unstaged) {
			continue
		}
		file := scorer.Score(path)
		if file.Score >= threshold {
			scored = append(scored, file)
		}
	}
	scorer.SortForDisplay(scored)
	return scored, nil
}

// readable applies the binary/size gate without reading content.
func readable(fullPath string) bool {
	ext := strings.ToLower(filepath.Ext(fullPath))
	if _, ok := binaryExtensions[ext]; ok {
		return false
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return false
	}
	if info.Size() == 0 || info.Size() > MaxFileSize {
		return false
	}
	return true
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := strings.Count(string(content), "\n")
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
