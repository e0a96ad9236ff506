package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"riftscope/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for a missing file")
	}
	if cfg.Detect.Detector != "ORB" {
		t.Fatalf("unexpected default detector: %q", cfg.Detect.Detector)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Fatalf("unexpected default workers: %d", cfg.Pipeline.Workers)
	}
}

func TestLoadAppliesOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[detect]
detector = "sift"
resize_strategy = "Seat"

[bars]
blue_baseline = "max"

[pipeline]
workers = 2
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected config file to be read, exists=%v path=%q", exists, resolved)
	}
	if cfg.Detect.Detector != "SIFT" {
		t.Fatalf("detector not upcased: %q", cfg.Detect.Detector)
	}
	if cfg.Detect.ResizeStrategy != "seat" {
		t.Fatalf("strategy not lowercased: %q", cfg.Detect.ResizeStrategy)
	}
	if cfg.Bars.BlueBaseline != "max" {
		t.Fatalf("baseline override lost: %q", cfg.Bars.BlueBaseline)
	}
	if cfg.Pipeline.Workers != 2 {
		t.Fatalf("workers override lost: %d", cfg.Pipeline.Workers)
	}
}

func TestLoadRejectsUnknownDetector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[detect]\ndetector = \"SURF\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "unsupported detector") {
		t.Fatalf("expected unsupported detector error, got %v", err)
	}
}

func TestLoadRejectsBadBaseline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[bars]\nred_baseline = \"widest\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected baseline validation error")
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MatchesDir = filepath.Join(base, "matches")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.MatchesDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("directory %q not created: %v", dir, err)
		}
	}
}
