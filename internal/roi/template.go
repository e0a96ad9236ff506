package roi

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"sort"
)

// Region names shared by the shipped broadcast templates.
const (
	RegionTeam1Champions = "team1ChampionsRoi"
	RegionTeam2Champions = "team2ChampionsRoi"
	RegionTeam1Resources = "team1ChampionsResourcesRoi"
	RegionTeam2Resources = "team2ChampionsResourcesRoi"

	// referenceSizeKey is the one template entry that is not a polygon.
	referenceSizeKey = "reference_size"
)

// ErrMissingRegion reports a template that lacks a region the caller expected.
var ErrMissingRegion = errors.New("roi: missing region")

// Point is a single template coordinate, normalized or in reference pixels.
type Point struct {
	X float64
	Y float64
}

// Template is a parsed ROI document: named polygons plus an optional
// reference resolution the pixel coordinates are tied to.
type Template struct {
	Regions       map[string][]Point
	ReferenceSize *image.Point
}

// Parse decodes a JSON template document of the form
// {"region": [[x,y], ...], ..., "reference_size": [W,H]}.
func Parse(data []byte) (*Template, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("roi: parse template: %w", err)
	}

	tpl := &Template{Regions: make(map[string][]Point, len(raw))}
	for name, msg := range raw {
		if name == referenceSizeKey {
			var size [2]int
			if err := json.Unmarshal(msg, &size); err != nil {
				return nil, fmt.Errorf("roi: parse %s: %w", referenceSizeKey, err)
			}
			tpl.ReferenceSize = &image.Point{X: size[0], Y: size[1]}
			continue
		}

		var pairs [][2]float64
		if err := json.Unmarshal(msg, &pairs); err != nil {
			return nil, fmt.Errorf("roi: parse region %q: %w", name, err)
		}
		points := make([]Point, len(pairs))
		for i, p := range pairs {
			points[i] = Point{X: p[0], Y: p[1]}
		}
		tpl.Regions[name] = points
	}
	return tpl, nil
}

// Load reads and parses a template file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roi: read template: %w", err)
	}
	return Parse(data)
}

// Region returns the named polygon or ErrMissingRegion.
func (t *Template) Region(name string) ([]Point, error) {
	points, ok := t.Regions[name]
	if !ok || len(points) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingRegion, name)
	}
	return points, nil
}

// RegionNames returns every polygon name in deterministic order.
func (t *Template) RegionNames() []string {
	names := make([]string, 0, len(t.Regions))
	for name := range t.Regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveRegion resolves the named polygon against a frame size and returns
// its bounding box in frame pixels.
func (t *Template) ResolveRegion(name string, frameW, frameH int) (image.Rectangle, error) {
	points, err := t.Region(name)
	if err != nil {
		return image.Rectangle{}, err
	}
	return Bounds(Resolve(points, frameW, frameH, t.ReferenceSize)), nil
}
