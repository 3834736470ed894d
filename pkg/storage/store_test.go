package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveBuildsDeterministicFilename(t *testing.T) {
	dir := t.TempDir()

	store := NewImageStore(dir)
	store.now = func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}

	data := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 1, 2, 3}

	path, err := store.Save("grok", "a serene mountain landscape at sunset", data)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	want := "20240102_030405_grok_a_serene_mountain_landscape_at_sunset.png"
	if got := filepath.Base(path); got != want {
		t.Errorf("filename = %q, want %q", got, want)
	}

	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if !bytes.Equal(saved, data) {
		t.Errorf("saved bytes differ from input")
	}
}

func TestSafePrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"strips punctuation", "sun & rain!!", "sun__rain"},
		{"keeps hyphens and underscores", "neo-noir_city", "neo-noir_city"},
		{"trims surrounding whitespace", "  a cat  ", "a_cat"},
		{"truncates to 50 characters", "0123456789012345678901234567890123456789012345678901234567890123456789", "01234567890123456789012345678901234567890123456789"},
		{"empty prompt", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := safePrompt(tt.prompt); got != tt.want {
				t.Errorf("safePrompt(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestSaveCreatesFolderIdempotently(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")

	store := NewImageStore(dir)

	if _, err := store.Save("openai", "first", []byte("one")); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if _, err := store.Save("openai", "second", []byte("two")); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
}

func TestSaveLeavesNoTempFileBehind(t *testing.T) {
	dir := t.TempDir()

	store := NewImageStore(dir)
	if _, err := store.Save("together", "tidy", []byte("data")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file in %s, got %d", dir, len(entries))
	}
}
