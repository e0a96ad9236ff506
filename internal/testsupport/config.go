package testsupport

import (
	"path/filepath"
	"testing"

	"riftscope/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MatchesDir = filepath.Join(base, "matches")
	cfg.Paths.ReferenceDir = filepath.Join(base, "reference")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}
