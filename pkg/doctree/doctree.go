// Package doctree exposes the digital-document file tree as a narrow
// collaborator interface. The ETL only probes for existence and directory
// listings; it never reads or copies file bytes.
package doctree

import (
	"fmt"
	"os"
	"path/filepath"
)

// Tree is the probe surface consumed by the pipeline.
type Tree interface {
	// Exists reports whether path exists.
	Exists(path string) bool
	// ListDir returns the plain-file names directly under path, no recursion.
	ListDir(path string) ([]string, error)
}

// OSTree probes a directory tree on the local filesystem.
type OSTree struct {
	root string
}

// NewOSTree builds a Tree rooted at root. Paths passed to the interface are
// relative to it.
func NewOSTree(root string) *OSTree {
	return &OSTree{root: root}
}

func (t *OSTree) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(t.root, path))
	return err == nil
}

func (t *OSTree) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(t.root, path))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
