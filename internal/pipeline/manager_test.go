package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"riftscope/internal/hud"
	"riftscope/internal/logging"
	"riftscope/internal/roi"
	"riftscope/internal/testsupport"
	"riftscope/internal/timeline"
)

type stubSource struct {
	data []byte
}

func (s *stubSource) Frame(context.Context, string, time.Duration) ([]byte, error) {
	return s.data, nil
}

type stubReader struct {
	stats map[string]hud.Value
}

func (r *stubReader) Extract(gocv.Mat, *roi.Template) (map[string]hud.Value, error) {
	return r.stats, nil
}

func (r *stubReader) Close() error { return nil }

func overlayTemplate(t *testing.T) *roi.Template {
	return testsupport.TemplateDoc(t, map[string][][2]float64{
		roi.RegionTeam1Resources: testsupport.RectRegion(100, 100, 500, 600),
		roi.RegionTeam2Resources: testsupport.RectRegion(700, 100, 1100, 600),
	}, 0, 0)
}

func startManager(t *testing.T, store *timeline.Store, reader statsReader) *Manager {
	t.Helper()

	// A frame with one green health bar per side.
	img := testsupport.NewFrame(t, 1920, 1080, color.RGBA{R: 40, G: 40, B: 40})
	green := color.RGBA{R: 30, G: 200, B: 30}
	testsupport.FillRect(&img, image.Rect(120, 150, 320, 170), green)
	testsupport.FillRect(&img, image.Rect(720, 150, 920, 170), green)

	cfg := testsupport.NewConfig(t)
	m, err := NewManager(cfg, store, &stubSource{data: testsupport.PNGBytes(t, img)},
		overlayTemplate(t), overlayTemplate(t), logging.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.newReader = func() (statsReader, error) { return reader, nil }

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(m.Stop)
	return m
}

func waitFor(t *testing.T, m *Manager, done func(Status) bool) Status {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if st := m.Status(); done(st) {
			return st
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("status condition not reached, last: %+v", m.Status())
	return Status{}
}

func TestManagerProcessesJobIntoStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.StartMatch(t, store, "scrim")

	reader := &stubReader{stats: map[string]hud.Value{
		"time":     {Kind: hud.FieldClock, Text: str("08:15")},
		"blueGold": {Kind: hud.FieldGold, Text: str("12.3K")},
	}}
	m := startManager(t, store, reader)

	if err := m.Enqueue(context.Background(), Job{Match: "scrim", URL: "file://frame", Timestamp: 495 * time.Second}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	waitFor(t, m, func(st Status) bool { return st.Processed == 1 })

	tl, err := store.Read(context.Background(), "scrim")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	snap, ok := tl.LiveGameInfo["08:15"]
	if !ok {
		t.Fatalf("snapshot missing, keys: %v", mapKeys(tl.LiveGameInfo))
	}
	blue := snap["blue"].(map[string]any)
	if got := blue["stats"].(map[string]any)["total_gold"]; got != 12300.0 {
		t.Errorf("total_gold = %#v", got)
	}
	top := blue["players"].(map[string]any)["TOP"].(map[string]any)
	if top["health_pct"] != 100.0 {
		t.Errorf("blue TOP health = %#v", top["health_pct"])
	}
}

func TestManagerCountsCluelessFramesAsFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.StartMatch(t, store, "scrim")

	// No clock on the scoreboard: the job must fail without merging.
	m := startManager(t, store, &stubReader{stats: map[string]hud.Value{}})

	if err := m.Enqueue(context.Background(), Job{Match: "scrim", URL: "file://frame"}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	st := waitFor(t, m, func(st Status) bool { return st.Failed == 1 })
	if st.Processed != 0 {
		t.Errorf("processed = %d, want 0", st.Processed)
	}

	tl, err := store.Read(context.Background(), "scrim")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tl.LiveGameInfo) != 1 {
		t.Errorf("snapshots = %v, want startGame only", mapKeys(tl.LiveGameInfo))
	}
}

func TestManagerStartTwiceFails(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	m := startManager(t, store, &stubReader{stats: map[string]hud.Value{}})

	if err := m.Start(context.Background()); err == nil {
		t.Fatal("second Start succeeded")
	}
}

func mapKeys(m map[string]timeline.Fragment) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestManagerStartFailsWhenReaderUnavailable(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	cfg := testsupport.NewConfig(t)

	img := testsupport.NewFrame(t, 1920, 1080, color.RGBA{R: 40, G: 40, B: 40})
	m, err := NewManager(cfg, store, &stubSource{data: testsupport.PNGBytes(t, img)},
		overlayTemplate(t), overlayTemplate(t), logging.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.newReader = func() (statsReader, error) { return nil, errors.New("tessdata missing") }

	if err := m.Start(context.Background()); err == nil {
		t.Fatal("Start succeeded with no usable scoreboard reader")
	}
	if st := m.Status(); st.Running {
		t.Errorf("status = %+v, want not running after failed Start", st)
	}

	// A failed Start leaves the pool restartable once readers come back.
	m.newReader = func() (statsReader, error) {
		return &stubReader{stats: map[string]hud.Value{}}, nil
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start after recovery: %v", err)
	}
	m.Stop()
}
