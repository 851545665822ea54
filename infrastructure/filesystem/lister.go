package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

// Lister enumerates directory entries using the os package
type Lister struct{}

// NewLister creates a new filesystem lister
func NewLister() *Lister {
	return &Lister{}
}

// List returns the path of every entry in dir in the order the filesystem
// reports them. Nothing is filtered out.
func (l *Lister) List(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
