package timeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"riftscope/internal/testsupport"
	"riftscope/internal/timeline"
)

func TestStartCreatesDraftAndEmptySnapshot(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "G2 vs Fnatic")

	tl, err := store.Read(context.Background(), "G2 vs Fnatic")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tl.StaticGameInfo.Blue.Color != timeline.TeamBlue {
		t.Errorf("blue color = %q", tl.StaticGameInfo.Blue.Color)
	}
	start, ok := tl.LiveGameInfo[timeline.KeyStartGame]
	if !ok {
		t.Fatal("startGame snapshot missing")
	}
	for _, side := range []string{"blue", "red", "global"} {
		if _, ok := start[side]; !ok {
			t.Errorf("startGame missing %q section", side)
		}
	}
}

func TestStartOverwritesExistingMatch(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "finals")

	if err := store.MergeSnapshot(ctx, "finals", "01:00", timeline.Fragment{"a": 1}); err != nil {
		t.Fatalf("MergeSnapshot: %v", err)
	}
	testsupport.StartMatch(t, store, "finals")

	tl, err := store.Read(ctx, "finals")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := tl.LiveGameInfo["01:00"]; ok {
		t.Error("restart kept prior snapshots")
	}
}

func TestMergeSnapshotDeepMergesUnderKey(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "scrim")

	first := timeline.Fragment{"blue": map[string]any{"kills": 1.0}}
	second := timeline.Fragment{
		"blue": map[string]any{"kills": 2.0, "towers": 1.0},
	}
	if err := store.MergeSnapshot(ctx, "scrim", "05:30", first); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	if err := store.MergeSnapshot(ctx, "scrim", "05:30", second); err != nil {
		t.Fatalf("second merge: %v", err)
	}

	tl, err := store.Read(ctx, "scrim")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	blue, ok := tl.LiveGameInfo["05:30"]["blue"].(map[string]any)
	if !ok {
		t.Fatalf("blue section = %#v", tl.LiveGameInfo["05:30"]["blue"])
	}
	if blue["kills"] != 2.0 || blue["towers"] != 1.0 {
		t.Errorf("merged blue = %#v", blue)
	}
}

func TestMergeSnapshotEmptyFragmentIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "scrim")

	if err := store.MergeSnapshot(ctx, "scrim", "02:00", timeline.Fragment{"a": 1.0}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := store.MergeSnapshot(ctx, "scrim", "02:00", timeline.Fragment{}); err != nil {
		t.Fatalf("empty merge: %v", err)
	}

	tl, err := store.Read(ctx, "scrim")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tl.LiveGameInfo["02:00"]["a"] != 1.0 {
		t.Errorf("snapshot after empty merge = %#v", tl.LiveGameInfo["02:00"])
	}
}

func TestMergeSnapshotNormalizesRawSeconds(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "scrim")

	if err := store.MergeSnapshot(ctx, "scrim", "95", timeline.Fragment{"a": 1.0}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	tl, err := store.Read(ctx, "scrim")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := tl.LiveGameInfo["01:35"]; !ok {
		t.Errorf("raw seconds not normalized, keys: %v", keys(tl.LiveGameInfo))
	}
}

func TestEndPicksNumericallyLatestKey(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "scrim")

	if err := store.MergeSnapshot(ctx, "scrim", "9:59", timeline.Fragment{"mark": "early"}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := store.MergeSnapshot(ctx, "scrim", "10:00", timeline.Fragment{"mark": "late"}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := store.End(ctx, "scrim", timeline.TeamRed); err != nil {
		t.Fatalf("End: %v", err)
	}

	tl, err := store.Read(ctx, "scrim")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	end, ok := tl.LiveGameInfo[timeline.KeyEndGame]
	if !ok {
		t.Fatal("endGame snapshot missing")
	}
	if end["mark"] != "late" {
		t.Errorf("endGame copied %q, want the 10:00 snapshot", end["mark"])
	}
	if tl.Winner != timeline.TeamRed {
		t.Errorf("winner = %q", tl.Winner)
	}
}

func TestEndCopiesNotAliases(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "scrim")

	if err := store.MergeSnapshot(ctx, "scrim", "20:00", timeline.Fragment{"gold": 50.0}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := store.End(ctx, "scrim", timeline.TeamBlue); err != nil {
		t.Fatalf("End: %v", err)
	}
	if err := store.MergeSnapshot(ctx, "scrim", "20:00", timeline.Fragment{"gold": 99.0}); err != nil {
		t.Fatalf("merge after end: %v", err)
	}

	tl, err := store.Read(ctx, "scrim")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tl.LiveGameInfo[timeline.KeyEndGame]["gold"] != 50.0 {
		t.Errorf("endGame mutated by later merge: %#v", tl.LiveGameInfo[timeline.KeyEndGame])
	}
}

func TestEndWithoutSnapshotsFails(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "scrim")

	err := store.End(ctx, "scrim", timeline.TeamBlue)
	if !errors.Is(err, timeline.ErrNoSnapshots) {
		t.Fatalf("End = %v, want ErrNoSnapshots", err)
	}
}

func TestReadUnknownMatch(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	_, err := store.Read(context.Background(), "never started")
	if !errors.Is(err, timeline.ErrMatchNotFound) {
		t.Fatalf("Read = %v, want ErrMatchNotFound", err)
	}
}

func TestReadAllSkipsCorruptState(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "good match")

	bad := filepath.Join(store.Root(), "bad-match")
	if err := os.MkdirAll(bad, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(bad, "game_state.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	all, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ReadAll returned %d matches, want 1", len(all))
	}
	if _, ok := all["good-match"]; !ok {
		t.Errorf("good match missing, got %v", keysTL(all))
	}
}

func TestConcurrentMergesSerialize(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "scrim")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		seconds := 60 + i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.MergeSnapshotAt(ctx, "scrim", seconds, timeline.Fragment{"n": float64(seconds)}); err != nil {
				t.Errorf("MergeSnapshotAt(%d): %v", seconds, err)
			}
		}()
	}
	wg.Wait()

	tl, err := store.Read(ctx, "scrim")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// startGame plus the eight merged keys.
	if len(tl.LiveGameInfo) != 9 {
		t.Errorf("got %d snapshots, want 9: %v", len(tl.LiveGameInfo), keys(tl.LiveGameInfo))
	}
}

func keys(m map[string]timeline.Fragment) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func keysTL(m map[string]*timeline.Timeline) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestSaveReplacesStateAtomically(t *testing.T) {
	ctx := context.Background()
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.StartMatch(t, store, "grand finals")

	slug := timeline.Slugify("grand finals")
	if err := store.MergeSnapshot(ctx, "grand finals", "05:00", timeline.Fragment{"a": 1}); err != nil {
		t.Fatalf("MergeSnapshot: %v", err)
	}

	// Every save commits via rename, so the match directory holds exactly
	// the state file and no staging leftovers.
	entries, err := os.ReadDir(filepath.Join(store.Root(), slug))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "game_state.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("match dir = %v, want only game_state.json", names)
	}

	tl, err := store.Read(ctx, "grand finals")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := tl.LiveGameInfo["05:00"]; !ok {
		t.Error("merged snapshot missing after save")
	}
}
