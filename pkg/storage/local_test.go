package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorageReadMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}

	_, err = s.Read(context.Background(), "todo.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLocalStorageWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	ctx := context.Background()

	if err := s.Write(ctx, "todo.json", []byte("first")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Write(ctx, "todo.json", []byte("second")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := s.Read(ctx, "todo.json")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content mismatch: got %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the task file to remain, got %d entries", len(entries))
	}
}

func TestLocalStorageCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	s, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}

	if err := s.Write(context.Background(), "todo.json", []byte("[]")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "todo.json")); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestLocalStorageResolveStaysUnderBase(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}

	got := s.Resolve("../escape.json")
	want := filepath.Join(dir, "escape.json")
	if got != want {
		t.Errorf("Resolve mismatch: got %s, want %s", got, want)
	}
}

func TestLocalStorageWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("failed to write blocker: %v", err)
	}
	s, err := NewLocalStorage(blocker)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}

	if err := s.Write(context.Background(), "todo.json", []byte("[]")); err == nil {
		t.Error("expected error when base path is a file, got nil")
	}
}

func TestNormalizePrefix(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"/":          "",
		"tasktrack":  "tasktrack/",
		"tasktrack/": "tasktrack/",
		"/a/b/":      "a/b/",
	}
	for in, want := range cases {
		if got := normalizePrefix(in); got != want {
			t.Errorf("normalizePrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
