package champselect

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"riftscope/internal/frame"
	"riftscope/internal/refset"
	"riftscope/internal/roi"
)

// Unknown is reported for a seat no reference matched.
const Unknown = "?"

// seatsPerTeam is fixed by the draft format.
const seatsPerTeam = 5

// matchSize is the square side seat crops and references are normalized to
// when the resize strategy asks for it.
const matchSize = 100

// ratioThreshold is Lowe's ratio test bound: a knn pair counts only when the
// best distance stays under this fraction of the runner-up distance.
const ratioThreshold = 0.75

// Result holds one champion label per seat, top to bottom, for each side.
type Result struct {
	Blue [seatsPerTeam]string
	Red  [seatsPerTeam]string
}

// Matcher runs champion-select detection with one detector and resize
// strategy. The gocv detector and matcher are created on first use and live
// until Close, so a Matcher amortizes across frames. Not goroutine-safe.
type Matcher struct {
	detector Detector
	strategy ResizeStrategy

	feat featureDetector
	bf   *gocv.BFMatcher
}

// NewMatcher validates the pair against the registry.
func NewMatcher(det Detector, strat ResizeStrategy) (*Matcher, error) {
	if _, ok := registry[det]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDetector, det)
	}
	if _, ok := ParseStrategy(string(strat)); !ok {
		return nil, fmt.Errorf("champselect: unknown resize strategy %q", strat)
	}
	return &Matcher{detector: det, strategy: strat}, nil
}

// Close releases the lazily created OpenCV resources.
func (m *Matcher) Close() {
	if m.feat != nil {
		m.feat.Close()
		m.feat = nil
	}
	if m.bf != nil {
		m.bf.Close()
		m.bf = nil
	}
}

// Match identifies both teams' picks on a champion-select frame. Each team
// region subdivides into five equal seat columns; a seat with no accepted
// matches reports Unknown rather than failing the frame.
func (m *Matcher) Match(img gocv.Mat, tpl *roi.Template, set *refset.Set) (Result, error) {
	if set == nil || set.Len() == 0 {
		return Result{}, refset.ErrNoReferenceData
	}
	m.ensure()

	blueBox, err := tpl.ResolveRegion(roi.RegionTeam1Champions, img.Cols(), img.Rows())
	if err != nil {
		return Result{}, err
	}
	redBox, err := tpl.ResolveRegion(roi.RegionTeam2Champions, img.Cols(), img.Rows())
	if err != nil {
		return Result{}, err
	}

	refs := m.computeReferences(set)
	defer refs.close()

	var out Result
	seats := append(roi.Subdivide(blueBox, seatsPerTeam), roi.Subdivide(redBox, seatsPerTeam)...)
	for i, box := range seats {
		label := m.matchSeat(img, box, refs)
		if i < seatsPerTeam {
			out.Blue[i] = label
		} else {
			out.Red[i-seatsPerTeam] = label
		}
	}
	return out, nil
}

func (m *Matcher) ensure() {
	if m.feat == nil {
		m.feat = registry[m.detector].new()
	}
	if m.bf == nil {
		bf := gocv.NewBFMatcherWithParams(registry[m.detector].norm, false)
		m.bf = &bf
	}
}

// reference is a precomputed descriptor set for one champion label.
type reference struct {
	label string
	desc  gocv.Mat
}

type referenceList []reference

func (r referenceList) close() {
	for i := range r {
		r[i].desc.Close()
	}
}

// computeReferences extracts descriptors for every label once per frame, in
// sorted label order so score ties settle on the lexicographically first
// champion.
func (m *Matcher) computeReferences(set *refset.Set) referenceList {
	refs := make(referenceList, 0, set.Len())
	for _, label := range set.Labels() {
		img, _ := set.Image(label)
		src := img
		if m.strategy.references() {
			src = resizeToMatch(img)
		}

		kps, desc := m.detectAndCompute(src)
		if m.strategy.references() {
			src.Close()
		}
		if len(kps) == 0 || desc.Empty() {
			desc.Close()
			continue
		}
		refs = append(refs, reference{label: label, desc: desc})
	}
	return refs
}

func (m *Matcher) matchSeat(img gocv.Mat, box image.Rectangle, refs referenceList) string {
	crop, err := frame.Crop(img, box)
	if err != nil {
		return Unknown
	}
	defer crop.Close()

	query := crop
	if m.strategy.seat() {
		query = resizeToMatch(crop)
		defer query.Close()
	}

	kps, desc := m.detectAndCompute(query)
	defer desc.Close()
	if len(kps) == 0 || desc.Empty() {
		return Unknown
	}

	best, bestScore := Unknown, 0
	for _, ref := range refs {
		score := m.countGoodMatches(desc, ref.desc)
		if score > bestScore {
			best, bestScore = ref.label, score
		}
	}
	return best
}

func (m *Matcher) detectAndCompute(src gocv.Mat) ([]gocv.KeyPoint, gocv.Mat) {
	mask := gocv.NewMat()
	defer mask.Close()
	return m.feat.DetectAndCompute(src, mask)
}

// countGoodMatches applies the ratio test over knn pairs with k=2.
func (m *Matcher) countGoodMatches(query, target gocv.Mat) int {
	good := 0
	for _, pair := range m.bf.KnnMatch(query, target, 2) {
		if len(pair) == 2 && pair[0].Distance < ratioThreshold*pair[1].Distance {
			good++
		}
	}
	return good
}

func resizeToMatch(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Resize(src, &dst, image.Pt(matchSize, matchSize), 0, 0, gocv.InterpolationLinear)
	return dst
}
