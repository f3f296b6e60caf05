package detector

import "purepupil/internal/matbuf"

// candidate pairs a segment with its evaluated result.
type candidate struct {
	seg segment
	res Result
}

// combineSegments pairwise-merges segments whose bounding rects properly
// intersect, re-evaluating the merged (convex-hull) segment and keeping it
// only if it strictly improves on the better of the two parents' outline
// contrast (§4.7). Corrected relative to the implementation this is
// grounded on, which re-read candidates[idx1] instead of candidates[idx2]
// for the inner loop's second operand — a bug that made the second-parent
// zero-confidence check a no-op.
func combineSegments(cands []candidate, minDiameter, maxDiameter float64, imgW, imgH int, working *matbuf.Mat) []candidate {
	if len(cands) == 0 {
		return nil
	}

	var added []candidate
	for idx1 := 0; idx1 < len(cands)-1; idx1++ {
		c1 := cands[idx1]
		if c1.res.Confidence.Value == 0 {
			continue
		}
		rect1 := c1.seg.boundingRect()

		for idx2 := idx1 + 1; idx2 < len(cands); idx2++ {
			c2 := cands[idx2]
			if c2.res.Confidence.Value == 0 {
				continue
			}
			rect2 := c2.seg.boundingRect()

			if _, ok := properIntersection(rect1, rect2); !ok {
				continue
			}

			merged, err := convexHullOf(c1.seg, c2.seg)
			if err != nil {
				continue
			}

			newRes, ok := evaluateSegment(merged, minDiameter, maxDiameter, imgW, imgH, working)
			if !ok || newRes.Confidence.Value == 0 {
				continue
			}

			previousContrast := c1.res.Confidence.OutlineContrast
			if c2.res.Confidence.OutlineContrast > previousContrast {
				previousContrast = c2.res.Confidence.OutlineContrast
			}
			if newRes.Confidence.OutlineContrast <= previousContrast {
				continue
			}

			added = append(added, candidate{seg: merged, res: newRes})
		}
	}

	return append(cands, added...)
}
