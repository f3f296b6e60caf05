package detector

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// drawDebug renders the intermediate edge map and every surviving
// candidate ellipse into out, color-coded green-to-red by confidence, plus
// the selected result in white (§6). out is resized to match input;
// edges and candidate geometry are in working-image coordinates and are
// scaled up to match. Grounded on the commented-out visualization in the
// source this is adapted from, which drew green/red outline segments by
// per-sample contrast pass/fail — generalized here to whole-ellipse,
// confidence-graded coloring since Detect only returns the aggregate
// value, not the per-sample verdicts.
func drawDebug(out *gocv.Mat, input gocv.Mat, edges gocv.Mat, cands []candidate, final Result, scalingFactor float64) {
	color3 := gocv.NewMat()
	gocv.CvtColor(input, &color3, gocv.ColorGrayToBGR)
	defer color3.Close()

	edgesUp := gocv.NewMat()
	gocv.Resize(edges, &edgesUp, image.Pt(color3.Cols(), color3.Rows()), 0, 0, gocv.InterpolationNearestNeighbor)
	defer edgesUp.Close()

	edgesColor := gocv.NewMat()
	gocv.CvtColor(edgesUp, &edgesColor, gocv.ColorGrayToBGR)
	defer edgesColor.Close()

	overlay := gocv.NewMat()
	defer overlay.Close()
	gocv.AddWeighted(color3, 0.6, edgesColor, 0.4, 0, &overlay)

	factor := scalingFactor
	if factor == 0 {
		factor = 1
	}

	for _, c := range cands {
		if c.res.Confidence.Value == 0 {
			continue
		}
		drawEllipse(&overlay, c.res.Ellipse, factor, confidenceColor(c.res.Confidence.Value))
	}

	if final.Confidence.Value > 0 {
		drawEllipse(&overlay, final.Ellipse, factor, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}

	overlay.CopyTo(out)
}

// confidenceColor interpolates red (low confidence) to green (high).
func confidenceColor(value float64) color.RGBA {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	return color.RGBA{
		R: uint8(255 * (1 - value)),
		G: uint8(255 * value),
		B: 0,
		A: 255,
	}
}

func drawEllipse(img *gocv.Mat, e Ellipse, scaleToInput float64, c color.RGBA) {
	center := image.Pt(
		int(math.Round(e.CenterX/scaleToInput)),
		int(math.Round(e.CenterY/scaleToInput)),
	)
	a, b := e.AxisW, e.AxisH
	axes := image.Pt(
		int(math.Round(a/scaleToInput)),
		int(math.Round(b/scaleToInput)),
	)
	gocv.Ellipse(*img, center, axes, e.AngleDeg, 0, 360, c, 2)
}
