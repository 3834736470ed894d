package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

const maxPromptLength = 50

// ImageStore writes image bytes into a flat output folder under a
// timestamped, prompt-derived filename. Writes go through a temp file and
// a rename, so the returned path never points at a partial file.
type ImageStore struct {
	dir string
	now func() time.Time
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{
		dir: dir,
		now: time.Now,
	}
}

func (s *ImageStore) Save(provider, prompt string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.png", s.now().Format("20060102_150405"), provider, safePrompt(prompt))
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, ".imagine-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing image file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("renaming image file: %w", err)
	}

	return path, nil
}

// safePrompt reduces a prompt to a filename-friendly fragment: the first
// 50 characters, keeping only letters, digits, spaces, hyphens and
// underscores, trimmed, with interior spaces turned into underscores.
func safePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > maxPromptLength {
		runes = runes[:maxPromptLength]
	}

	var b strings.Builder
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}

	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}
