package detector

// finalSelectionRatio is the fraction of the initial pupil's semi-major
// axis used as the size ceiling for alternative candidates (§4.8). The
// original paper uses 1.0; this deviates to 0.8 deliberately, per §4.8's
// documented correction for dark environments where the pupil can approach
// 80% of the iris diameter.
const finalSelectionRatio = 0.8

const finalOutlineContrastFloor = 0.75

// selectFinalSegment picks the best overall candidate (§4.8): the
// highest-confidence candidate is the initial pupil; any other candidate
// may replace it only if its outline contrast clears 0.75, its size is
// within finalSelectionRatio of the initial's semi-major axis, its center
// lies within the initial's full semi-major axis of the initial's center,
// and its
// confidence is the best seen among such qualifying candidates.
func selectFinalSegment(cands []candidate) Result {
	if len(cands) == 0 {
		return Result{}
	}

	initialIdx := 0
	for i := 1; i < len(cands); i++ {
		if cands[i].res.Confidence.Value > cands[initialIdx].res.Confidence.Value {
			initialIdx = i
		}
	}
	initial := cands[initialIdx].res

	semiMajor := initial.Ellipse.AxisW
	if initial.Ellipse.AxisH > semiMajor {
		semiMajor = initial.Ellipse.AxisH
	}

	var best *Result
	for i, c := range cands {
		if i == initialIdx {
			continue
		}
		r := c.res
		if r.Confidence.Value == 0 {
			continue
		}
		if r.Confidence.OutlineContrast < finalOutlineContrastFloor {
			continue
		}
		size := r.Ellipse.AxisW
		if r.Ellipse.AxisH > size {
			size = r.Ellipse.AxisH
		}
		if size > finalSelectionRatio*semiMajor {
			continue
		}
		if dist(initial.Ellipse.CenterX, initial.Ellipse.CenterY, r.Ellipse.CenterX, r.Ellipse.CenterY) > semiMajor {
			continue
		}
		if best != nil && r.Confidence.Value <= best.Confidence.Value {
			continue
		}
		rCopy := r
		best = &rCopy
	}

	if best != nil {
		return *best
	}
	return initial
}
