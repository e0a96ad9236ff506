package champselect

import (
	"errors"
	"strings"

	"gocv.io/x/gocv"
)

// ErrUnsupportedDetector marks a detector name outside the registry.
var ErrUnsupportedDetector = errors.New("champselect: unsupported detector")

// Detector names a feature detection algorithm.
type Detector string

const (
	DetectorSIFT  Detector = "SIFT"
	DetectorORB   Detector = "ORB"
	DetectorAKAZE Detector = "AKAZE"
	DetectorBRISK Detector = "BRISK"
	DetectorKAZE  Detector = "KAZE"
)

// Detectors lists every registered detector.
var Detectors = []Detector{DetectorSIFT, DetectorORB, DetectorAKAZE, DetectorBRISK, DetectorKAZE}

// ParseDetector maps a config spelling onto its Detector.
func ParseDetector(name string) (Detector, bool) {
	det := Detector(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := registry[det]; !ok {
		return "", false
	}
	return det, true
}

// ResizeStrategy controls which inputs are normalized to the 100x100
// matching size before feature extraction.
type ResizeStrategy string

const (
	ResizeNone       ResizeStrategy = "none"
	ResizeSeat       ResizeStrategy = "seat"
	ResizeReferences ResizeStrategy = "references"
	ResizeBoth       ResizeStrategy = "both"
)

// Strategies lists every resize strategy.
var Strategies = []ResizeStrategy{ResizeNone, ResizeSeat, ResizeReferences, ResizeBoth}

// ParseStrategy maps a config spelling onto its ResizeStrategy.
func ParseStrategy(name string) (ResizeStrategy, bool) {
	strat := ResizeStrategy(strings.ToLower(strings.TrimSpace(name)))
	for _, s := range Strategies {
		if s == strat {
			return s, true
		}
	}
	return "", false
}

func (s ResizeStrategy) seat() bool       { return s == ResizeSeat || s == ResizeBoth }
func (s ResizeStrategy) references() bool { return s == ResizeReferences || s == ResizeBoth }

// featureDetector is the shape every gocv detector shares.
type featureDetector interface {
	DetectAndCompute(src gocv.Mat, mask gocv.Mat) ([]gocv.KeyPoint, gocv.Mat)
	Close() error
}

// detectorSpec fixes a detector's matcher norm and constructor. Float
// descriptors (SIFT, KAZE) compare under L2, binary descriptors under
// Hamming.
type detectorSpec struct {
	norm gocv.NormType
	new  func() featureDetector
}

// registry is the complete static table of supported detectors.
var registry = map[Detector]detectorSpec{
	DetectorSIFT: {gocv.NormL2, func() featureDetector {
		d := gocv.NewSIFT()
		return &d
	}},
	DetectorORB: {gocv.NormHamming, func() featureDetector {
		d := gocv.NewORB()
		return &d
	}},
	DetectorAKAZE: {gocv.NormHamming, func() featureDetector {
		d := gocv.NewAKAZE()
		return &d
	}},
	DetectorBRISK: {gocv.NormHamming, func() featureDetector {
		d := gocv.NewBRISK()
		return &d
	}},
	DetectorKAZE: {gocv.NormL2, func() featureDetector {
		d := gocv.NewKAZE()
		return &d
	}},
}
