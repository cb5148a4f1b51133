package session

import (
	"strings"
	"testing"
)

func TestComputeHash(t *testing.T) {
	hash := ComputeHash([]byte("hello world"))
	if len(hash) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(hash))
	}
	if hash != strings.ToLower(hash) {
		t.Fatalf("hash must be lowercase hex")
	}
	if ComputeHash([]byte("hello world")) != hash {
		t.Fatalf("hash must be stable")
	}
	if ComputeHash([]byte("hello worlc")) == hash {
		t.Fatalf("single byte change must alter the hash")
	}
}

func TestWasRead(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	sess, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sess.MarkRead("file.rs", "abc123")
	if !sess.WasRead("file.rs", "abc123") {
		t.Fatalf("expected mark to be visible")
	}
	if sess.WasRead("file.rs", "different") {
		t.Fatalf("different hash must not count as read")
	}
	if sess.WasRead("other.rs", "abc123") {
		t.Fatalf("unmarked path must not count as read")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	sess, err := Load("sess-roundtrip")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sess.MarkRead("src/main.go", ComputeHash([]byte("package main")))
	sess.MarkRead("README.md", ComputeHash([]byte("# readme")))
	if err := sess.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load("sess-roundtrip")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !loaded.WasRead("src/main.go", ComputeHash([]byte("package main"))) {
		t.Fatalf("mark should survive save/load")
	}
	if loaded.WasRead("src/main.go", ComputeHash([]byte("package main\n"))) {
		t.Fatalf("changed content must not count as read")
	}
}

func TestMarkOverwrites(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	sess, err := Load("sess-overwrite")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sess.MarkRead("a.go", "old")
	sess.MarkRead("a.go", "new")
	if len(sess.Files) != 1 {
		t.Fatalf("a path appears at most once, got %d entries", len(sess.Files))
	}
	if !sess.WasRead("a.go", "new") || sess.WasRead("a.go", "old") {
		t.Fatalf("latest mark must win")
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	sess, err := Load("never-saved")
	if err != nil {
		t.Fatalf("Load of absent session must not fail: %v", err)
	}
	if len(sess.Files) != 0 {
		t.Fatalf("expected empty session")
	}
}

func TestListSorted(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	for _, id := range []string{"sess-2", "sess-1", "alpha"} {
		sess, err := Load(id)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if err := sess.Save(); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	ids, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alpha", "sess-1", "sess-2"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestListEmptyWhenNoDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	ids, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no sessions, got %v", ids)
	}
}

func TestClear(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	sess, err := Load("sess-clear")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sess.MarkRead("a.go", "h")
	if err := sess.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := Clear("sess-clear"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	reloaded, err := Load("sess-clear")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Files) != 0 {
		t.Fatalf("cleared session should be empty")
	}

	if err := Clear("does-not-exist"); err != nil {
		t.Fatalf("clearing unknown id must not fail: %v", err)
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if !strings.HasPrefix(id, "sess-") {
		t.Fatalf("expected sess- prefix, got %q", id)
	}
}
