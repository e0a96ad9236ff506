package champselect_test

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"gocv.io/x/gocv"

	"riftscope/internal/champselect"
	"riftscope/internal/refset"
	"riftscope/internal/roi"
	"riftscope/internal/testsupport"
)

func TestParseDetector(t *testing.T) {
	if det, ok := champselect.ParseDetector(" orb "); !ok || det != champselect.DetectorORB {
		t.Errorf("ParseDetector = (%q, %v)", det, ok)
	}
	if _, ok := champselect.ParseDetector("SURF"); ok {
		t.Error("ParseDetector(SURF) accepted")
	}
}

func TestParseStrategy(t *testing.T) {
	if strat, ok := champselect.ParseStrategy("Both"); !ok || strat != champselect.ResizeBoth {
		t.Errorf("ParseStrategy = (%q, %v)", strat, ok)
	}
	if _, ok := champselect.ParseStrategy("stretch"); ok {
		t.Error("ParseStrategy(stretch) accepted")
	}
}

func TestNewMatcherRejectsUnknownDetector(t *testing.T) {
	_, err := champselect.NewMatcher("SURF", champselect.ResizeBoth)
	if !errors.Is(err, champselect.ErrUnsupportedDetector) {
		t.Fatalf("NewMatcher = %v, want ErrUnsupportedDetector", err)
	}
}

func TestMatchRequiresReferences(t *testing.T) {
	m, err := champselect.NewMatcher(champselect.DetectorORB, champselect.ResizeNone)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	defer m.Close()

	img := testsupport.NewFrame(t, 400, 200, color.RGBA{})
	_, err = m.Match(img, draftTemplate(t), refset.NewSet())
	if !errors.Is(err, refset.ErrNoReferenceData) {
		t.Fatalf("Match = %v, want ErrNoReferenceData", err)
	}
}

func TestMatchRequiresTemplateRegions(t *testing.T) {
	m, err := champselect.NewMatcher(champselect.DetectorORB, champselect.ResizeNone)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	defer m.Close()

	set := refset.NewSet()
	defer set.Close()
	set.Add("aatrox.png", textureMat(t, 1))

	tpl := testsupport.TemplateDoc(t, map[string][][2]float64{
		"somethingElse": testsupport.RectRegion(0, 0, 10, 10),
	}, 0, 0)

	img := testsupport.NewFrame(t, 400, 200, color.RGBA{})
	if _, err := m.Match(img, tpl, set); !errors.Is(err, roi.ErrMissingRegion) {
		t.Fatalf("Match = %v, want ErrMissingRegion", err)
	}
}

func TestMatchFeaturelessSeatsAreUnknown(t *testing.T) {
	m, err := champselect.NewMatcher(champselect.DetectorORB, champselect.ResizeNone)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	defer m.Close()

	set := refset.NewSet()
	defer set.Close()
	set.Add("aatrox.png", textureMat(t, 1))

	// Solid background: no keypoints anywhere, every seat stays unknown.
	img := testsupport.NewFrame(t, 1200, 400, color.RGBA{R: 40, G: 40, B: 40})
	res, err := m.Match(img, draftTemplate(t), set)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	for i := 0; i < 5; i++ {
		if res.Blue[i] != champselect.Unknown || res.Red[i] != champselect.Unknown {
			t.Fatalf("seat %d = (%q, %q), want unknown", i, res.Blue[i], res.Red[i])
		}
	}
}

func TestMatchIdentifiesPastedReferences(t *testing.T) {
	m, err := champselect.NewMatcher(champselect.DetectorORB, champselect.ResizeNone)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	defer m.Close()

	set := refset.NewSet()
	defer set.Close()
	set.Add("aatrox.png", textureMat(t, 1))
	set.Add("viego.png", textureMat(t, 2))

	// Blue seats carry the aatrox texture, red seats the viego texture.
	img := testsupport.NewFrame(t, 1200, 400, color.RGBA{R: 40, G: 40, B: 40})
	tpl := draftTemplate(t)
	pasteIntoSeats(t, &img, tpl, roi.RegionTeam1Champions, 1)
	pasteIntoSeats(t, &img, tpl, roi.RegionTeam2Champions, 2)

	res, err := m.Match(img, tpl, set)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	for i := 0; i < 5; i++ {
		if res.Blue[i] != "aatrox" {
			t.Errorf("blue seat %d = %q, want aatrox", i, res.Blue[i])
		}
		if res.Red[i] != "viego" {
			t.Errorf("red seat %d = %q, want viego", i, res.Red[i])
		}
	}
}

// draftTemplate places two absolute 500x100 team regions side by side, each
// subdividing into five exact 100x100 seats.
func draftTemplate(t *testing.T) *roi.Template {
	return testsupport.TemplateDoc(t, map[string][][2]float64{
		roi.RegionTeam1Champions: testsupport.RectRegion(50, 100, 550, 200),
		roi.RegionTeam2Champions: testsupport.RectRegion(650, 100, 1150, 200),
	}, 0, 0)
}

// textureMat paints a deterministic high-contrast 100x100 texture. Distinct
// seeds give distinct textures with plenty of corners for ORB. The caller
// hands the Mat to Set.Add, which takes ownership; Set.Close releases it.
func textureMat(t *testing.T, seed int64) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 100, 100, gocv.MatTypeCV8UC3)
	paintTexture(&mat, image.Pt(0, 0), seed)
	return mat
}

func pasteIntoSeats(t *testing.T, img *gocv.Mat, tpl *roi.Template, region string, seed int64) {
	t.Helper()
	box, err := tpl.ResolveRegion(region, img.Cols(), img.Rows())
	if err != nil {
		t.Fatalf("resolve %s: %v", region, err)
	}
	for _, seat := range roi.Subdivide(box, 5) {
		paintTexture(img, seat.Min, seed)
	}
}

func paintTexture(mat *gocv.Mat, origin image.Point, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < 120; i++ {
		x := origin.X + rng.Intn(90)
		y := origin.Y + rng.Intn(90)
		w := 3 + rng.Intn(8)
		h := 3 + rng.Intn(8)
		fill := color.RGBA{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		}
		gocv.Rectangle(mat, image.Rect(x, y, x+w, y+h), fill, -1)
	}
}

func TestMatchEqualScoresPickFirstLabel(t *testing.T) {
	m, err := champselect.NewMatcher(champselect.DetectorORB, champselect.ResizeNone)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}
	defer m.Close()

	// Two labels carry the identical texture, so every seat scores them
	// equally; the sorted scan must settle on the first label.
	set := refset.NewSet()
	defer set.Close()
	set.Add("zed.png", textureMat(t, 1))
	set.Add("aatrox.png", textureMat(t, 1))

	img := testsupport.NewFrame(t, 1200, 400, color.RGBA{R: 40, G: 40, B: 40})
	tpl := draftTemplate(t)
	pasteIntoSeats(t, &img, tpl, roi.RegionTeam1Champions, 1)
	pasteIntoSeats(t, &img, tpl, roi.RegionTeam2Champions, 1)

	res, err := m.Match(img, tpl, set)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	for i := 0; i < 5; i++ {
		if res.Blue[i] != "aatrox" {
			t.Errorf("blue seat %d = %q, want aatrox", i, res.Blue[i])
		}
		if res.Red[i] != "aatrox" {
			t.Errorf("red seat %d = %q, want aatrox", i, res.Red[i])
		}
	}
}
