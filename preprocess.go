package detector

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"purepupil/internal/matbuf"
)

const (
	defaultTargetWidth  = 192
	defaultTargetHeight = 192

	autoMinDiameterFactor = 0.07 * 2.0 / 3.0
	autoMaxDiameterFactor = 0.29
)

// preprocess resizes (if needed) and min-max normalizes input into
// working, returning the scaling factor applied (0 meaning "no scaling",
// per §4.1's sentinel convention).
func preprocess(input gocv.Mat, working *matbuf.Mat, targetW, targetH int) (scalingFactor float64, err error) {
	rows, cols := input.Rows(), input.Cols()
	targetArea := float64(targetW * targetH)
	inputArea := float64(rows * cols)

	var resized gocv.Mat
	if inputArea > targetArea {
		scalingFactor = math.Sqrt(targetArea / inputArea)
		newCols := int(math.Round(float64(cols) * scalingFactor))
		newRows := int(math.Round(float64(rows) * scalingFactor))
		if newCols < 1 {
			newCols = 1
		}
		if newRows < 1 {
			newRows = 1
		}

		resized = gocv.NewMat()
		gocv.Resize(input, &resized, image.Pt(newCols, newRows), 0, 0, gocv.InterpolationArea)
	} else {
		scalingFactor = 0
		resized = input.Clone()
	}
	defer resized.Close()

	if err := working.EnsureSize(resized.Rows(), resized.Cols(), gocv.MatTypeCV8UC1); err != nil {
		return 0, err
	}

	normalizeMinMax(resized, working)
	return scalingFactor, nil
}

// normalizeMinMax stretches src's intensity range to [0,255] into dst.
func normalizeMinMax(src gocv.Mat, dst *matbuf.Mat) {
	minVal, maxVal, _, _ := gocv.MinMaxLoc(src)

	dstMat := dst.GetMat()
	spread := float64(maxVal) - float64(minVal)
	if spread <= 0 {
		src.CopyTo(&dstMat)
		return
	}

	alpha := 255.0 / spread
	beta := -float64(minVal) * alpha
	src.ConvertToWithParams(&dstMat, gocv.MatTypeCV8UC1, float32(alpha), float32(beta))
}

// resolvePupilBounds fills in params.Min/MaxPupilDiameter (in working-image
// pixel units) and reports whether the resolved bounds are usable (§4.1,
// §3 invariants). When AutoPupilDiameter is false, the caller-provided
// bounds are assumed already in working-image units by the caller of
// resolvePupilBounds — scaling from input-pixel units happens in Detect.
func resolvePupilBounds(params *Parameters, workingW, workingH int) bool {
	if params.AutoPupilDiameter {
		diag := math.Sqrt(float64(workingW)*float64(workingW) + float64(workingH)*float64(workingH))
		params.MinPupilDiameter = autoMinDiameterFactor * diag
		params.MaxPupilDiameter = autoMaxDiameterFactor * diag
	}

	if params.MinPupilDiameter < 0 || params.MaxPupilDiameter < 0 {
		return false
	}
	if params.MinPupilDiameter > params.MaxPupilDiameter {
		return false
	}
	return true
}

// scaleBoundsToWorking converts explicit input-pixel bounds into
// working-image pixel units using the preprocessor's scaling factor,
// treating 0 (the "no scaling" sentinel) as 1 per §4.1.
func scaleBoundsToWorking(params *Parameters, scalingFactor float64) {
	factor := scalingFactor
	if factor == 0 {
		factor = 1
	}
	params.MinPupilDiameter *= factor
	params.MaxPupilDiameter *= factor
}

// scaleBoundsToInput is the inverse of scaleBoundsToWorking, used to
// export auto-computed bounds back into input-pixel units (§6).
func scaleBoundsToInput(params *Parameters, scalingFactor float64) {
	factor := scalingFactor
	if factor == 0 {
		factor = 1
	}
	params.MinPupilDiameter /= factor
	params.MaxPupilDiameter /= factor
}
