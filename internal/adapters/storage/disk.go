package storage

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// DiskStore writes uploaded files under a single root directory. The
// filesystem is abstracted so tests can run against an in-memory fs.
type DiskStore struct {
	fs   afero.Fs
	root string
}

// NewDiskStore creates a store rooted at dir on the OS filesystem,
// creating the directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	return New(afero.NewOsFs(), dir)
}

// New creates a store on the given filesystem, creating root if needed.
func New(fs afero.Fs, root string) (*DiskStore, error) {
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskStore{fs: fs, root: root}, nil
}

// Save writes content to root/name. Name must be a bare file name; path
// separators are rejected to keep writes inside the root.
func (s *DiskStore) Save(name string, content []byte) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.root, name), content, 0o644); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	return nil
}
