package testsupport

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// NewFrame allocates a solid-color BGR frame and registers cleanup for it.
func NewFrame(t testing.TB, width, height int, fill color.RGBA) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(fill.B), float64(fill.G), float64(fill.R), 0),
		height, width, gocv.MatTypeCV8UC3,
	)
	t.Cleanup(func() { mat.Close() })
	return mat
}

// FillRect paints an axis-aligned box onto the frame.
func FillRect(mat *gocv.Mat, rect image.Rectangle, fill color.RGBA) {
	gocv.Rectangle(mat, rect, fill, -1)
}

// PNGBytes encodes a frame so decode paths can be exercised without fixture
// files on disk.
func PNGBytes(t testing.TB, mat gocv.Mat) []byte {
	t.Helper()
	buf, err := gocv.IMEncode(".png", mat)
	if err != nil {
		t.Fatalf("encode png: %v", err)
	}
	defer buf.Close()
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out
}
