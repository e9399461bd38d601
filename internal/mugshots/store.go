package mugshots

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"rosterpost/internal/textutil"
)

// Store persists decoded booking photos under a single directory with
// deterministic filenames.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string { return s.dir }

// Save decodes an inline data-URL image and writes it to disk. The filename
// combines a slug of the inmate name with a short content hash, so identical
// re-extractions overwrite the same file while same-named inmates with
// different photos stay distinct. Names that sanitize to nothing fall back to
// a random slug.
func (s *Store) Save(name, sourceRef string) (string, error) {
	encoded := sourceRef
	header := ""
	if comma := strings.IndexByte(sourceRef, ','); comma >= 0 {
		header = sourceRef[:comma]
		encoded = sourceRef[comma+1:]
	}
	if header != "" && !strings.HasPrefix(header, "data:image") {
		return "", fmt.Errorf("source is not inline image data")
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", fmt.Errorf("decode image data: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create mugshot directory: %w", err)
	}

	sum := sha256.Sum256(data)
	path := filepath.Join(s.dir, fmt.Sprintf("mugshot_%s_%s.%s",
		slugFor(name), hex.EncodeToString(sum[:4]), extensionFor(header)))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write mugshot: %w", err)
	}
	return path, nil
}

// Delete removes a saved mugshot. A missing file is not an error; pruning and
// cleanup are best-effort.
func (s *Store) Delete(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove mugshot %q: %w", path, err)
	}
	return nil
}

// SweepAll removes every file in the store directory and reports how many
// were deleted. A missing directory counts as empty.
func (s *Store) SweepAll() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read mugshot directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove %q: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

func slugFor(name string) string {
	if slug := textutil.NameSlug(name); slug != "" {
		return slug
	}
	return "unknown_" + uuid.NewString()[:8]
}

func extensionFor(header string) string {
	switch {
	case strings.Contains(header, "png"):
		return "png"
	default:
		return "jpg"
	}
}
