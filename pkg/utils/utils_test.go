package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewEntryID(t *testing.T) {
	a := NewEntryID()
	b := NewEntryID()

	if a == b {
		t.Errorf("expected distinct ids, got %s twice", a)
	}
	if !IsEntryID(a) || len(a) != 36 {
		t.Errorf("NewEntryID() = %q is not a canonical UUID", a)
	}
	if IsEntryID("not-a-uuid") {
		t.Error("IsEntryID accepted garbage")
	}
}

func TestLabelFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"catalog/Song Name.wav", "Song Name"},
		{"tone.pcm", "tone"},
		{"/abs/dir/archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := LabelFromPath(tt.path); got != tt.expected {
			t.Errorf("LabelFromPath(%q) = %q, expected %q", tt.path, got, tt.expected)
		}
	}
}

func TestReplaceExt(t *testing.T) {
	if got := ReplaceExt("out/clip.wav", ".png"); got != "out/clip.png" {
		t.Errorf("ReplaceExt = %q", got)
	}
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "file.png")
	if err := EnsureParentDir(target); err != nil {
		t.Fatalf("EnsureParentDir failed: %v", err)
	}
	info, err := os.Stat(filepath.Dir(target))
	if err != nil || !info.IsDir() {
		t.Errorf("parent directory not created: %v", err)
	}

	if err := EnsureParentDir("file.png"); err != nil {
		t.Errorf("bare file name: %v", err)
	}
}
