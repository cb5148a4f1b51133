package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/skimcli/skim/internal/emit"
)

// FileOutput is one file entry in a structured payload.
type FileOutput struct {
	Path    string `json:"path"`
	Score   int    `json:"score"`
	Tokens  *int   `json:"tokens,omitempty"`
	Lines   int    `json:"lines"`
	Content string `json:"content,omitempty"`
}

// CatPayload is the structured form of an emission run.
type CatPayload struct {
	Project        string       `json:"project"`
	Session        string       `json:"session,omitempty"`
	FilesShown     int          `json:"files_shown"`
	SkippedBinary  int          `json:"skipped_binary"`
	SkippedSession int          `json:"skipped_session"`
	TotalLines     int          `json:"total_lines"`
	Files          []FileOutput `json:"files"`
}

// TreePayload is the structured form of a structure listing.
type TreePayload struct {
	Project string       `json:"project"`
	Files   []FileOutput `json:"files"`
}

// CatPayloadFrom converts an emission result.
func CatPayloadFrom(res *emit.Result) CatPayload {
	payload := CatPayload{
		Project:        res.Project,
		Session:        res.SessionID,
		FilesShown:     len(res.Files),
		SkippedBinary:  res.SkippedBinary,
		SkippedSession: res.SkippedSession,
		TotalLines:     res.TotalLines,
		Files:          make([]FileOutput, 0, len(res.Files)),
	}
	for _, f := range res.Files {
		out := FileOutput{Path: f.Path, Score: f.Score, Lines: f.Lines, Content: f.Content}
		if res.WithTokens {
			tokens := f.Tokens
			out.Tokens = &tokens
		}
		payload.Files = append(payload.Files, out)
	}
	return payload
}

// WriteJSON pretty-prints any payload.
func WriteJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

const rule = "================================================================================"

// WriteCatText renders the emission result for terminals and plain piping:
// a comment-style summary block, then each file body between banner rules.
func WriteCatText(w io.Writer, res *emit.Result, noHeaders bool) {
	if !noHeaders {
		fmt.Fprintf(w, "# Project: %s\n", res.Project)
		if res.SessionID != "" {
			fmt.Fprintf(w, "# Session: %s\n", res.SessionID)
		}
		fmt.Fprintf(w, "# Files: %d shown\n", len(res.Files))
		if res.SkippedBinary > 0 {
			fmt.Fprintf(w, "# Skipped: %d binary/unreadable\n", res.SkippedBinary)
		}
		if res.SkippedSession > 0 {
			fmt.Fprintf(w, "# Skipped: %d unchanged (session)\n", res.SkippedSession)
		}
		if len(res.Files) > 0 {
			fmt.Fprintf(w, "# Total lines: %d\n", res.TotalLines)
		}
	}

	for _, f := range res.Files {
		fmt.Fprintf(w, "\n%s\n", rule)
		fmt.Fprintf(w, "FILE: %s\n", f.Path)
		fmt.Fprintf(w, "LINES: %d\n", f.Lines)
		if res.WithTokens {
			fmt.Fprintf(w, "TOKENS: %d\n", f.Tokens)
		}
		fmt.Fprintf(w, "HASH: %s\n", hashPrefix(f.Hash))
		fmt.Fprintf(w, "%s\n", rule)
		fmt.Fprint(w, f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			fmt.Fprintln(w)
		}
	}
}

func hashPrefix(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
