package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultImage is served in place of missing uploads.
const DefaultImage = "default-pic.png"

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, field, filename string, r io.Reader) (string, error) {
	body, _, err := sniff(r)
	if err != nil {
		return "", err
	}
	name := objectName(field, filename)
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// Resolve maps an upload name to a file on disk, falling back to the default
// image when the upload is missing. ok is false when neither exists.
func (s *LocalStore) Resolve(name string) (path string, ok bool) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		name = DefaultImage
	}
	for _, n := range []string{name, DefaultImage} {
		p := filepath.Join(s.dir, n)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}
	return "", false
}
