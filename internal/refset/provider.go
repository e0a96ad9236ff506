package refset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirProvider serves reference images from a local directory tree laid out
// as <root>/<source>/<asset>. It is the offline counterpart of a game-data
// API client.
type DirProvider struct {
	root string
}

// NewDirProvider roots a provider at dir.
func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{root: dir}
}

// ReferenceImages reads every image file under the source subdirectory.
func (p *DirProvider) ReferenceImages(ctx context.Context, source Source) (map[string][]byte, error) {
	dir := filepath.Join(p.root, string(source))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read reference dir %s: %w", dir, err)
	}

	out := make(map[string][]byte, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isImageName(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read reference %s: %w", entry.Name(), err)
		}
		out[entry.Name()] = data
	}
	return out, nil
}

func isImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
