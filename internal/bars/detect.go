package bars

import (
	"image"
	"math"
	"sort"

	"gocv.io/x/gocv"

	"riftscope/internal/frame"
	"riftscope/internal/roi"
	"riftscope/internal/timeline"
)

// Reference resolution all area thresholds are calibrated against.
const refFrameW, refFrameH = 1920, 1080

// Enemy bar geometry filters: plausible bar heights in reference pixels and
// width/height aspect bounds.
const (
	enemyMinHeight = 10
	enemyMaxHeight = 25
	enemyMinAspect = 3.0
	enemyMaxAspect = 10.0
)

// Fragment clustering bounds for enemy bars: fragments under smallWidthMax
// merge when their centers sit within the gaps; unmerged fragments drop.
const (
	smallWidthMax = 75
	clusterGapX   = 150
	clusterGapY   = 15
)

// Options tunes a detection pass. Zero values fall back to the calibrated
// defaults.
type Options struct {
	// MinArea is the health/mana contour floor at 1920x1080. Enemy windows
	// carry their own per-shade floors.
	MinArea float64
	// ElongationRatio keeps only contours with h < ratio*w.
	ElongationRatio float64
	// BlueBaseline and RedBaseline pick each side's 100% reference bar.
	BlueBaseline BaselinePolicy
	RedBaseline  BaselinePolicy
}

// DefaultOptions mirrors the calibrated broadcast settings.
func DefaultOptions() Options {
	return Options{
		MinArea:         300,
		ElongationRatio: 0.5,
		BlueBaseline:    BaselineRole(timeline.RoleJungle),
		RedBaseline:     BaselineMax,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MinArea <= 0 {
		o.MinArea = def.MinArea
	}
	if o.ElongationRatio <= 0 {
		o.ElongationRatio = def.ElongationRatio
	}
	return o
}

// Reading is one side-by-role percentage table. Nil means the bar was not
// detected in the frame.
type Reading struct {
	Blue map[timeline.Role]*float64
	Red  map[timeline.Role]*float64
}

type barRect struct {
	box image.Rectangle
}

// Detect measures one bar family on both team panels. Bars assign to roles
// top to bottom; widths convert to percentages of the side's baseline bar,
// rounded to a tenth.
func Detect(img gocv.Mat, tpl *roi.Template, kind Kind, opts Options) (Reading, error) {
	opts = opts.withDefaults()
	areaScale := float64(img.Cols()*img.Rows()) / float64(refFrameW*refFrameH)

	blueBox, err := tpl.ResolveRegion(roi.RegionTeam1Resources, img.Cols(), img.Rows())
	if err != nil {
		return Reading{}, err
	}
	redBox, err := tpl.ResolveRegion(roi.RegionTeam2Resources, img.Cols(), img.Rows())
	if err != nil {
		return Reading{}, err
	}

	blueRows, err := detectSide(img, blueBox, kind, areaScale, opts)
	if err != nil {
		return Reading{}, err
	}
	redRows, err := detectSide(img, redBox, kind, areaScale, opts)
	if err != nil {
		return Reading{}, err
	}

	return Reading{
		Blue: percentages(blueRows, opts.BlueBaseline),
		Red:  percentages(redRows, opts.RedBaseline),
	}, nil
}

func detectSide(img gocv.Mat, box image.Rectangle, kind Kind, areaScale float64, opts Options) ([]barRect, error) {
	crop, err := frame.Crop(img, box)
	if err != nil {
		return nil, err
	}
	defer crop.Close()

	hsvMat := gocv.NewMat()
	defer hsvMat.Close()
	gocv.CvtColor(crop, &hsvMat, gocv.ColorBGRToHSV)

	rects := segment(hsvMat, kind, areaScale, opts)
	if kind == KindEnemy {
		rects = clusterFragments(rects)
	}

	sort.Slice(rects, func(i, j int) bool { return rects[i].box.Min.Y < rects[j].box.Min.Y })
	return rects, nil
}

// segment runs every HSV window of the kind over the crop and collects
// filtered bounding boxes.
func segment(hsvMat gocv.Mat, kind Kind, areaScale float64, opts Options) []barRect {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()

	var out []barRect
	for _, win := range windowsFor(kind) {
		floor := win.areaRef
		if floor == 0 {
			floor = opts.MinArea
		}
		floor *= areaScale

		mask := gocv.NewMat()
		gocv.InRangeWithScalar(hsvMat, win.lo, win.hi, &mask)
		gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)
		gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)

		contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
		for i := 0; i < contours.Size(); i++ {
			contour := contours.At(i)
			if gocv.ContourArea(contour) < floor {
				continue
			}
			box := gocv.BoundingRect(contour)
			if keepRect(box, kind, opts) {
				out = append(out, barRect{box: box})
			}
		}
		contours.Close()
		mask.Close()
	}
	return out
}

func keepRect(box image.Rectangle, kind Kind, opts Options) bool {
	w, h := box.Dx(), box.Dy()
	if kind == KindEnemy {
		if h < enemyMinHeight || h > enemyMaxHeight {
			return false
		}
		aspect := float64(w) / float64(h)
		return aspect >= enemyMinAspect && aspect <= enemyMaxAspect
	}
	return float64(h) < opts.ElongationRatio*float64(w)
}

// clusterFragments merges small enemy bar fragments whose centers sit close
// together. Wide boxes pass through untouched; a small fragment with no
// neighbor is noise and drops.
func clusterFragments(rects []barRect) []barRect {
	var out, small []barRect
	for _, r := range rects {
		if r.box.Dx() >= smallWidthMax {
			out = append(out, r)
		} else {
			small = append(small, r)
		}
	}

	used := make([]bool, len(small))
	for i := range small {
		if used[i] {
			continue
		}
		group := []barRect{small[i]}
		used[i] = true
		for idx := 0; idx < len(group); idx++ {
			center := midpoint(group[idx].box)
			for j := range small {
				if used[j] {
					continue
				}
				other := midpoint(small[j].box)
				if abs(center.X-other.X) <= clusterGapX && abs(center.Y-other.Y) <= clusterGapY {
					group = append(group, small[j])
					used[j] = true
				}
			}
		}
		if len(group) < 2 {
			continue
		}
		union := group[0].box
		for _, r := range group[1:] {
			union = union.Union(r.box)
		}
		out = append(out, barRect{box: union})
	}
	return out
}

// percentages maps the top-to-bottom rows onto roles as width percentages of
// the side baseline.
func percentages(rows []barRect, baseline BaselinePolicy) map[timeline.Role]*float64 {
	out := make(map[timeline.Role]*float64, len(timeline.Roles))
	full := baseline.width(rows)
	for i, role := range timeline.Roles {
		if i >= len(rows) || full <= 0 {
			out[role] = nil
			continue
		}
		pct := roundTenth(float64(rows[i].box.Dx()) / full * 100)
		out[role] = &pct
	}
	return out
}

func midpoint(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
