package publish

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vango-dev/hiccup/internal/errors"
)

// ContentTypeHTML is the content type of rendered pages.
const ContentTypeHTML = "text/html; charset=utf-8"

// Store persists rendered pages under slash-separated keys.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// DirStore writes pages as files below a root directory.
type DirStore struct {
	root string
}

// NewDirStore creates a DirStore, creating root if needed.
func NewDirStore(root string) (*DirStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &DirStore{root: root}, nil
}

// Root returns the output directory.
func (s *DirStore) Root() string {
	return s.root
}

// Put writes body to root/key. Keys that would escape the root are
// rejected.
func (s *DirStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel := filepath.FromSlash(key)
	if !filepath.IsLocal(rel) {
		return errors.New("E080").WithDetailf("key %q escapes the output directory", key)
	}

	path := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Write to a temp file first so readers never see a partial page.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".hiccup-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
