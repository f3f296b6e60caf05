package detector

import (
	"image"
	"math"

	"purepupil/internal/matbuf"
)

const (
	outlineContrastBias     = 5.0
	outlineSampleStrideDeg  = 10.0
	outlineSampleIterations = 36
	innerOuterLineFraction  = 0.3
)

// aspectRatioConfidence is axes width/height folded into [0,1] by taking
// the reciprocal whenever it exceeds 1 (§4.6).
func aspectRatioConfidence(e Ellipse) float64 {
	a, b := e.AxisW, e.AxisH
	if b == 0 {
		return 0
	}
	ratio := a / b
	if ratio > 1.0 {
		ratio = 1.0 / ratio
	}
	return ratio
}

// angularSpreadConfidence buckets each segment point into one of 8 octants
// around the ellipse center and returns the fraction of octants touched
// (§4.6), with early exit once all 8 are set.
func angularSpreadConfidence(s segment, e Ellipse) float64 {
	var bins [8]bool
	count := 0

	for _, p := range s {
		vx := float64(p.X) - e.CenterX
		vy := float64(p.Y) - e.CenterY

		xDominant := math.Abs(vx) > math.Abs(vy)

		var bin int
		switch {
		case vx > 0 && vy > 0:
			if xDominant {
				bin = 1
			} else {
				bin = 0
			}
		case vx > 0:
			if xDominant {
				bin = 2
			} else {
				bin = 3
			}
		case vy > 0:
			if xDominant {
				bin = 7
			} else {
				bin = 6
			}
		default:
			if xDominant {
				bin = 4
			} else {
				bin = 5
			}
		}

		if !bins[bin] {
			bins[bin] = true
			count++
		}
		if count == 8 {
			break
		}
	}

	return float64(count) / 8.0
}

// outlineContrastConfidence samples 36 points around the fitted ellipse's
// outline and, for each, compares the mean intensity of a short line
// segment just inside the outline against one just outside (§4.6). A
// sample is "contrasty" when inner + bias < outer; samples whose inner or
// outer probe point falls outside the image bounds are skipped but still
// counted in the denominator, matching the source behaviour of advancing
// theta regardless.
func outlineContrastConfidence(working *matbuf.Mat, e Ellipse) float64 {
	bounds := image.Rect(0, 0, working.Cols(), working.Rows())

	a, b := e.AxisW, e.AxisH
	minor := a
	if b < minor {
		minor = b
	}

	angleRad := e.AngleDeg * math.Pi / 180.0
	cosAngle := math.Cos(angleRad)
	sinAngle := math.Sin(angleRad)

	strideRad := outlineSampleStrideDeg * math.Pi / 180.0
	contrast := 0.0

	for i := 0; i < outlineSampleIterations; i++ {
		theta := float64(i) * strideRad

		x := a * math.Cos(theta)
		y := b * math.Sin(theta)
		offX := x*cosAngle - y*sinAngle
		offY := y*cosAngle + x*sinAngle

		outlineX := e.CenterX + offX
		outlineY := e.CenterY + offY

		offsetNorm := math.Hypot(offX, offY)
		if offsetNorm == 0 {
			continue
		}
		normX := offX / offsetNorm
		normY := offY / offsetNorm

		innerX := outlineX - innerOuterLineFraction*minor*normX
		innerY := outlineY - innerOuterLineFraction*minor*normY
		outerX := outlineX + innerOuterLineFraction*minor*normX
		outerY := outlineY + innerOuterLineFraction*minor*normY

		innerPt := image.Pt(int(math.Round(innerX)), int(math.Round(innerY)))
		outerPt := image.Pt(int(math.Round(outerX)), int(math.Round(outerY)))
		outlinePt := image.Pt(int(math.Round(outlineX)), int(math.Round(outlineY)))

		if !innerPt.In(bounds) || !outerPt.In(bounds) {
			continue
		}

		innerAvg := averageAlongLine(working, innerPt, outlinePt)
		outerAvg := averageAlongLine(working, outlinePt, outerPt)

		if innerAvg+outlineContrastBias < outerAvg {
			contrast++
		}
	}

	return contrast / float64(outlineSampleIterations)
}

// averageAlongLine walks the Bresenham line from a to b inclusive and
// returns the mean pixel intensity, matching cv::LineIterator's semantics.
func averageAlongLine(working *matbuf.Mat, a, b image.Point) float64 {
	rows, cols := working.Rows(), working.Cols()
	clamp := func(p image.Point) image.Point {
		if p.X < 0 {
			p.X = 0
		}
		if p.X >= cols {
			p.X = cols - 1
		}
		if p.Y < 0 {
			p.Y = 0
		}
		if p.Y >= rows {
			p.Y = rows - 1
		}
		return p
	}
	a, b = clamp(a), clamp(b)

	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X >= b.X {
		sx = -1
	}
	if a.Y >= b.Y {
		sy = -1
	}
	err := dx + dy

	sum := 0.0
	count := 0
	x, y := a.X, a.Y
	for {
		sum += float64(working.GetUCharAt(y, x))
		count++
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// computeConfidence assembles the three confidence terms into the overall
// value (§4.6).
func computeConfidence(s segment, e Ellipse, working *matbuf.Mat) Confidence {
	c := Confidence{
		AspectRatio:     aspectRatioConfidence(e),
		AngularSpread:   angularSpreadConfidence(s, e),
		OutlineContrast: outlineContrastConfidence(working, e),
	}
	c.Value = (c.AspectRatio + c.AngularSpread + c.OutlineContrast) / 3.0
	return c
}
