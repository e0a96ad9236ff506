package testsupport

import (
	"context"
	"testing"

	"riftscope/internal/config"
	"riftscope/internal/timeline"
)

// MustOpenStore opens a timeline.Store for tests.
func MustOpenStore(t testing.TB, cfg *config.Config) *timeline.Store {
	t.Helper()

	store, err := timeline.Open(cfg)
	if err != nil {
		t.Fatalf("timeline.Open: %v", err)
	}
	return store
}

// StartMatch seeds a started match with a minimal draft.
func StartMatch(t testing.TB, store *timeline.Store, title string) {
	t.Helper()

	blue := map[timeline.Role]string{timeline.RoleTop: "gwen", timeline.RoleJungle: "viego"}
	red := map[timeline.Role]string{timeline.RoleTop: "sion", timeline.RoleJungle: "leesin"}
	if err := store.Start(context.Background(), title, "Blue Side", blue, "Red Side", red); err != nil {
		t.Fatalf("store.Start: %v", err)
	}
}
