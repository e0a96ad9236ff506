package roi

import (
	"image"
	"math"
)

// Resolve converts template points into frame pixels.
//
// Precedence is fixed: when the template carries a reference resolution the
// points are pixel coordinates in that resolution and are scaled by
// frame/reference per axis. Without one, points that all sit inside [0,1] on
// both axes are treated as normalized and scaled by the frame size. Anything
// else is already absolute and only rounded to integers.
func Resolve(points []Point, frameW, frameH int, ref *image.Point) []image.Point {
	out := make([]image.Point, len(points))

	switch {
	case ref != nil && ref.X > 0 && ref.Y > 0:
		sx := float64(frameW) / float64(ref.X)
		sy := float64(frameH) / float64(ref.Y)
		for i, p := range points {
			out[i] = image.Pt(round(p.X*sx), round(p.Y*sy))
		}
	case allNormalized(points):
		for i, p := range points {
			out[i] = image.Pt(round(p.X*float64(frameW)), round(p.Y*float64(frameH)))
		}
	default:
		for i, p := range points {
			out[i] = image.Pt(round(p.X), round(p.Y))
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the resolved polygon.
func Bounds(points []image.Point) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(minX, minY, maxX, maxY)
}

// Subdivide splits box into n equal-width columns left to right. Integer
// division can leave a remainder; the last column absorbs it so the union of
// the returned boxes always reconstructs box exactly.
func Subdivide(box image.Rectangle, n int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	step := box.Dx() / n
	out := make([]image.Rectangle, n)
	for i := 0; i < n; i++ {
		x0 := box.Min.X + i*step
		x1 := x0 + step
		if i == n-1 {
			x1 = box.Max.X
		}
		out[i] = image.Rect(x0, box.Min.Y, x1, box.Max.Y)
	}
	return out
}

func allNormalized(points []Point) bool {
	for _, p := range points {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return false
		}
	}
	return len(points) > 0
}

func round(v float64) int {
	return int(math.Round(v))
}
