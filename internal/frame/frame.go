package frame

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"
)

// ErrInvalidImage marks frame bytes that could not be decoded into a usable
// BGR matrix.
var ErrInvalidImage = errors.New("frame: invalid image")

// MaxSide caps either frame dimension. Broadcast captures top out at 4K;
// anything past this is a corrupt or hostile payload.
const MaxSide = 8192

// Source fetches a single frame of a broadcast at a given match timestamp.
// Implementations own transport details; callers only see decoded bytes.
type Source interface {
	Frame(ctx context.Context, url string, timestamp time.Duration) ([]byte, error)
}

// Decode turns encoded image bytes into a BGR matrix. The caller owns the
// returned Mat and must Close it.
func Decode(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.NewMat(), fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%w: undecodable payload", ErrInvalidImage)
	}
	if mat.Cols() > MaxSide || mat.Rows() > MaxSide {
		cols, rows := mat.Cols(), mat.Rows()
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%w: %dx%d exceeds %d px limit", ErrInvalidImage, cols, rows, MaxSide)
	}
	return mat, nil
}

// Crop returns an owned copy of the frame region. The rectangle is clamped
// to the frame so slightly out-of-bounds templates still crop.
func Crop(src gocv.Mat, rect image.Rectangle) (gocv.Mat, error) {
	bounds := image.Rect(0, 0, src.Cols(), src.Rows())
	rect = rect.Intersect(bounds)
	if rect.Empty() {
		return gocv.NewMat(), fmt.Errorf("frame: crop outside %dx%d frame", src.Cols(), src.Rows())
	}
	region := src.Region(rect)
	defer region.Close()
	return region.Clone(), nil
}
