// Package session persists which file contents have already been emitted, so
// repeated runs only re-send what changed.
//
// Each session is a single human-readable JSON file named by its id, mapping
// relative paths to sha256 content hashes. Saves replace the whole file, so a
// concurrent reader sees either the previous or the new state, never a mix.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/skimcli/skim/internal/config"
)

// EnvVar communicates the active session id between invocations.
const EnvVar = "SKIM_SESSION"

// Session is a named hash cache. The zero value is not usable; obtain one
// through Load.
type Session struct {
	ID    string            `json:"id"`
	Files map[string]string `json:"files"`

	path string
}

// GenerateID returns a timestamp-derived session id. Collisions within the
// same second are possible and accepted.
func GenerateID() string {
	return "sess-" + strconv.FormatInt(time.Now().Unix(), 10)
}

// Load reads the persisted session for id, or starts an empty one when no
// file exists yet.
func Load(id string) (*Session, error) {
	dir, err := config.SessionsDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, id+".json")

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Session{ID: id, Files: map[string]string{}, path: path}, nil
		}
		return nil, fmt.Errorf("failed to read session %q: %w", id, err)
	}

	var sess Session
	if err := json.Unmarshal(content, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session %q: %w", id, err)
	}
	sess.ID = id
	if sess.Files == nil {
		sess.Files = map[string]string{}
	}
	sess.path = path
	return &sess, nil
}

// Save serializes the full hash map and atomically replaces the persisted
// copy.
func (s *Session) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}

	content, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), "session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// WasRead reports whether path was previously marked with an identical hash.
func (s *Session) WasRead(path, hash string) bool {
	return s.Files[path] == hash
}

// MarkRead records the content hash for path, overwriting any prior mark.
func (s *Session) MarkRead(path, hash string) {
	s.Files[path] = hash
}

// ComputeHash returns the lowercase hex sha256 fingerprint of content.
func ComputeHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// List returns all known session ids, sorted.
func List() ([]string, error) {
	dir, err := config.SessionsDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Clear deletes the persisted state for id. Clearing an unknown id is not an
// error.
func Clear(id string) error {
	dir, err := config.SessionsDir()
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(dir, id+".json")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session %q: %w", id, err)
	}
	return nil
}
