package detector

import "gocv.io/x/gocv"

// extractSegments finds edge segments via Teh-Chin chain approximation
// (§4.4, matching the source's findContours(..., RETR_LIST,
// CHAIN_APPROX_TC89_KCOS) call).
func extractSegments(edges gocv.Mat) []segment {
	contours := gocv.FindContours(edges, gocv.RetrievalList, gocv.ChainApproxTC89KCOS)
	defer contours.Close()

	segs := make([]segment, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		pv := contours.At(i)
		segs[i] = segment(pv.ToPoints())
	}
	return segs
}
