package refset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDirProviderReadsImageFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, string(SourceIcons))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, data := range map[string][]byte{
		"Aatrox_0.png": {1, 2, 3},
		"Viego_0.jpg":  {4, 5},
		"notes.txt":    {6},
	} {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	images, err := NewDirProvider(root).ReferenceImages(context.Background(), SourceIcons)
	if err != nil {
		t.Fatalf("ReferenceImages: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("got %d images, want 2: %v", len(images), images)
	}
	if _, ok := images["notes.txt"]; ok {
		t.Error("non-image file served")
	}
}

func TestDirProviderMissingSource(t *testing.T) {
	if _, err := NewDirProvider(t.TempDir()).ReferenceImages(context.Background(), SourceSplashArts); err == nil {
		t.Fatal("missing source dir succeeded")
	}
}
