package detector

import (
	"math"

	"gocv.io/x/gocv"
)

const (
	minSegmentPoints = 5

	axesRatioThreshold = 0.2
	inverseRatioThresh = 1.0 / axesRatioThreshold
)

// segmentLargeEnough is §4.5's minimum-point filter.
func segmentLargeEnough(s segment) bool {
	return len(s) >= minSegmentPoints
}

// segmentDiameterValid checks the approximate diameter (max pairwise
// distance, with early exit) against the resolved pupil-size bounds (§4.5).
func segmentDiameterValid(s segment, minDiameter, maxDiameter float64) bool {
	approx := maxPairwiseDistance(s, maxDiameter)
	return minDiameter < approx && approx < maxDiameter
}

// axesRatioInvalid reports whether ratio falls outside [0.2, 5.0].
func axesRatioInvalid(ratio float64) bool {
	return ratio < axesRatioThreshold || ratio > inverseRatioThresh
}

// segmentCurvatureValid approximates curvature via the minimum-area
// rotated rect's width/height ratio (§4.5).
func segmentCurvatureValid(s segment) bool {
	pv := s.toPointVector()
	defer pv.Close()

	rect := gocv.MinAreaRect(pv)
	if rect.Height == 0 {
		return false
	}
	ratio := float64(rect.Width) / float64(rect.Height)
	return !axesRatioInvalid(ratio)
}

// fitSegmentEllipse fits an ellipse via gocv.FitEllipse and applies the
// center-in-bounds and axes-ratio discard rules (§4.5). imgW/imgH are the
// working image's dimensions; the bounds check matches the original's
// inclusive "> cols"/"> rows" discard exactly.
func fitSegmentEllipse(s segment, imgW, imgH int) (Ellipse, bool) {
	pv := s.toPointVector()
	defer pv.Close()

	fit := gocv.FitEllipse(pv)

	if fit.Center.X < 0 || fit.Center.Y < 0 ||
		float64(fit.Center.X) > float64(imgW) || float64(fit.Center.Y) > float64(imgH) {
		return Ellipse{}, false
	}

	width, height, angle := rotatedRectFromGocv(fit)
	if height == 0 {
		return Ellipse{}, false
	}
	ratio := width / height
	if axesRatioInvalid(ratio) {
		return Ellipse{}, false
	}

	return Ellipse{
		CenterX:  float64(fit.Center.X),
		CenterY:  float64(fit.Center.Y),
		AxisW:    width / 2,
		AxisH:    height / 2,
		AngleDeg: angle,
	}, true
}

// segmentMeanInEllipse tests whether the segment's centroid lies inside the
// rhombus inscribed in the fitted ellipse's rotated bounding rect (§4.5),
// by rotating the centroid back to the ellipse's own frame and exploiting
// quadrant symmetry via absolute value.
func segmentMeanInEllipse(s segment, e Ellipse) bool {
	mx, my := s.centroid()
	mx -= e.CenterX
	my -= e.CenterY

	angleRad := -e.AngleDeg * math.Pi / 180.0
	cosA := math.Cos(angleRad)
	sinA := math.Sin(angleRad)

	ux := math.Abs(mx*cosA - my*sinA)
	uy := math.Abs(mx*sinA + my*cosA)

	a, b := e.AxisW, e.AxisH
	if a == 0 || b == 0 {
		return false
	}
	return ux < a && uy < b && (ux/a+uy/b) < 1
}
