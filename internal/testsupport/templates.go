package testsupport

import (
	"encoding/json"
	"testing"

	"riftscope/internal/roi"
)

// TemplateDoc builds a ROI template from region name → polygon, with an
// optional reference size appended when refW/refH are positive.
func TemplateDoc(t testing.TB, regions map[string][][2]float64, refW, refH int) *roi.Template {
	t.Helper()

	doc := make(map[string]any, len(regions)+1)
	for name, points := range regions {
		doc[name] = points
	}
	if refW > 0 && refH > 0 {
		doc["reference_size"] = [2]int{refW, refH}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal template: %v", err)
	}
	tpl, err := roi.Parse(data)
	if err != nil {
		t.Fatalf("parse template: %v", err)
	}
	return tpl
}

// RectRegion is a convenience polygon for an axis-aligned box.
func RectRegion(x0, y0, x1, y1 float64) [][2]float64 {
	return [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}
