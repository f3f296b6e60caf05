package detector

import "purepupil/internal/matbuf"

// evaluateSegment runs a single segment through the §4.5 filter chain and,
// if it survives, computes its §4.6 confidence. ok is true whenever the
// segment was evaluated, including when a filter rejected it; a rejected
// segment comes back with Confidence.Value 0, meaning "discard", matching
// the source's "confidence 0 means invalid" convention used throughout
// combination and selection.
func evaluateSegment(s segment, minDiameter, maxDiameter float64, imgW, imgH int, working *matbuf.Mat) (Result, bool) {
	if !segmentLargeEnough(s) {
		return Result{}, true
	}
	if !segmentDiameterValid(s, minDiameter, maxDiameter) {
		return Result{}, true
	}
	if !segmentCurvatureValid(s) {
		return Result{}, true
	}

	ellipse, ok := fitSegmentEllipse(s, imgW, imgH)
	if !ok {
		return Result{}, true
	}
	if !segmentMeanInEllipse(s, ellipse) {
		return Result{}, true
	}

	conf := computeConfidence(s, ellipse, working)
	return Result{Ellipse: ellipse, Confidence: conf}, true
}
