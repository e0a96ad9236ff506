package hud

import "gocv.io/x/gocv"

// binarize produces the single-channel mask OCR runs on. KDA text renders
// white on dark panels, creep counters render gold-yellow; everything else
// gets a grayscale Otsu threshold.
func binarize(crop gocv.Mat, kind FieldKind) gocv.Mat {
	switch kind {
	case FieldKDA:
		return hsvMask(crop, gocv.NewScalar(0, 0, 180, 0), gocv.NewScalar(180, 60, 255, 0))
	case FieldCreeps:
		return hsvMask(crop, gocv.NewScalar(18, 60, 130, 0), gocv.NewScalar(30, 255, 255, 0))
	}
	return otsu(crop)
}

func hsvMask(crop gocv.Mat, lo, hi gocv.Scalar) gocv.Mat {
	hsvMat := gocv.NewMat()
	defer hsvMat.Close()
	gocv.CvtColor(crop, &hsvMat, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	gocv.InRangeWithScalar(hsvMat, lo, hi, &mask)
	return mask
}

func otsu(crop gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(crop, &gray, gocv.ColorBGRToGray)

	mask := gocv.NewMat()
	gocv.Threshold(gray, &mask, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	return mask
}
