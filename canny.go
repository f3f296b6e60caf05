package detector

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"purepupil/internal/matbuf"
)

const (
	edgeNoEdge    = uint8(0)
	edgePotential = uint8(127)
	edgeOn        = uint8(255)

	sobelAperture = 7
	histBins      = 64
	thresh1Frac   = 0.28
	thresh2Frac   = 0.70
)

// cannyScratch holds the Canny stage's reusable buffers, resized only on
// dimension change (§5).
type cannyScratch struct {
	blurred *matbuf.Mat
	dx, dy  *matbuf.Mat
	mag     *matbuf.Mat
	bins    *matbuf.Mat
	edges   *matbuf.Mat
}

func newCannyScratch() *cannyScratch {
	return &cannyScratch{}
}

func (c *cannyScratch) ensureSize(rows, cols int) error {
	for _, m := range []**matbuf.Mat{&c.blurred} {
		if *m == nil {
			buf, err := matbuf.New(rows, cols, gocv.MatTypeCV8UC1)
			if err != nil {
				return err
			}
			*m = buf
		} else if err := (*m).EnsureSize(rows, cols, gocv.MatTypeCV8UC1); err != nil {
			return err
		}
	}
	for _, m := range []**matbuf.Mat{&c.dx, &c.dy, &c.mag} {
		if *m == nil {
			buf, err := matbuf.New(rows, cols, gocv.MatTypeCV32FC1)
			if err != nil {
				return err
			}
			*m = buf
		} else if err := (*m).EnsureSize(rows, cols, gocv.MatTypeCV32FC1); err != nil {
			return err
		}
	}
	for _, m := range []**matbuf.Mat{&c.bins, &c.edges} {
		if *m == nil {
			buf, err := matbuf.New(rows, cols, gocv.MatTypeCV8UC1)
			if err != nil {
				return err
			}
			*m = buf
		} else if err := (*m).EnsureSize(rows, cols, gocv.MatTypeCV8UC1); err != nil {
			return err
		}
	}
	return nil
}

// canny runs the MATLAB-style edge detector from §4.2, writing the final
// {0,255} edge map into scratch.edges.
func canny(working *matbuf.Mat, scratch *cannyScratch) error {
	rows, cols := working.Rows(), working.Cols()
	if err := scratch.ensureSize(rows, cols); err != nil {
		return err
	}

	srcMat := working.GetMat()
	blurredMat := scratch.blurred.GetMat()
	gocv.GaussianBlur(srcMat, &blurredMat, image.Pt(5, 5), 2, 2, gocv.BorderReplicate)

	dxMat := scratch.dx.GetMat()
	dyMat := scratch.dy.GetMat()
	gocv.Sobel(blurredMat, &dxMat, gocv.MatTypeCV32F, 1, 0, sobelAperture, 1, 0, gocv.BorderReplicate)
	gocv.Sobel(blurredMat, &dyMat, gocv.MatTypeCV32F, 0, 1, sobelAperture, 1, 0, gocv.BorderReplicate)

	magMat := scratch.mag.GetMat()
	gocv.Magnitude(dxMat, dyMat, &magMat)

	nonMaxSuppress(scratch)

	fillBins(scratch)
	t1, t2 := adaptiveThresholds(scratch.bins, rows, cols)
	hysteresis(scratch, t1, t2)

	return nil
}

// fillBins rescales magnitude into 64 histogram bins, per §4.2 step 5's
// "rescaling by (n_bins-1)/max_magnitude, fractions-to-bin via ceiling".
// Computed once and shared between threshold selection and hysteresis so
// both stages agree pixel-for-pixel on each pixel's bin.
func fillBins(scratch *cannyScratch) {
	rows, cols := scratch.mag.Rows(), scratch.mag.Cols()
	_, maxMag, _, _ := gocv.MinMaxLoc(scratch.mag.GetMat())

	if maxMag <= 0 {
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				scratch.bins.SetUCharAt(y, x, 0)
			}
		}
		return
	}

	scale := float64(histBins-1) / float64(maxMag)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m := float64(scratch.mag.GetFloatAt(y, x))
			bin := int(math.Ceil(m * scale))
			if bin < 0 {
				bin = 0
			}
			if bin > histBins-1 {
				bin = histBins - 1
			}
			scratch.bins.SetUCharAt(y, x, uint8(bin))
		}
	}
}

var (
	tanPiOver8  = math.Tan(math.Pi / 8)
	tan3PiOver8 = math.Tan(3 * math.Pi / 8)
)

// direction classifies the gradient into one of four octant families.
type direction int

const (
	dirHorizontal direction = iota
	dirVertical
	dirDiagBackslash // top-left to bottom-right
	dirDiagForward   // top-right to bottom-left
)

func classifyDirection(dxv, dyv float64) direction {
	adx, ady := math.Abs(dxv), math.Abs(dyv)
	if adx < 1e-9 {
		return dirVertical
	}
	ratio := ady / adx
	switch {
	case ratio < tanPiOver8:
		return dirHorizontal
	case ratio > tan3PiOver8:
		return dirVertical
	default:
		sameSign := (dxv > 0 && dyv > 0) || (dxv < 0 && dyv < 0)
		if sameSign {
			return dirDiagBackslash
		}
		return dirDiagForward
	}
}

// nonMaxSuppress initializes scratch.edges to POTENTIAL and thins ridges
// per §4.2 step 4's asymmetric before/after comparison.
func nonMaxSuppress(scratch *cannyScratch) {
	rows, cols := scratch.mag.Rows(), scratch.mag.Cols()
	edgesMat := scratch.edges.GetMat()
	edgesMat.SetTo(gocv.NewScalar(float64(edgePotential), 0, 0, 0))

	for y := 1; y < rows-1; y++ {
		for x := 1; x < cols-1; x++ {
			m := float64(scratch.mag.GetFloatAt(y, x))
			dxv := float64(scratch.dx.GetFloatAt(y, x))
			dyv := float64(scratch.dy.GetFloatAt(y, x))

			var before, after float64
			switch classifyDirection(dxv, dyv) {
			case dirHorizontal:
				before = float64(scratch.mag.GetFloatAt(y, x-1))
				after = float64(scratch.mag.GetFloatAt(y, x+1))
			case dirVertical:
				before = float64(scratch.mag.GetFloatAt(y-1, x))
				after = float64(scratch.mag.GetFloatAt(y+1, x))
			case dirDiagBackslash:
				before = float64(scratch.mag.GetFloatAt(y-1, x-1))
				after = float64(scratch.mag.GetFloatAt(y+1, x+1))
			case dirDiagForward:
				before = float64(scratch.mag.GetFloatAt(y-1, x+1))
				after = float64(scratch.mag.GetFloatAt(y+1, x-1))
			}

			if !(m > before) || m < after {
				scratch.edges.SetUCharAt(y, x, edgeNoEdge)
			}
		}
	}
}

// adaptiveThresholds implements §4.2 step 5's 64-bin histogram scan over
// bins (already filled by fillBins), returning bin-index thresholds.
func adaptiveThresholds(bins *matbuf.Mat, rows, cols int) (t1, t2 int) {
	var hist [histBins]int
	total := rows * cols

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			hist[bins.GetUCharAt(y, x)]++
		}
	}

	if total == 0 {
		return 0, 0
	}

	t1Found := false
	cum := 0
	for b := 0; b < histBins; b++ {
		cum += hist[b]
		frac := float64(cum) / float64(total)
		if !t1Found && frac >= thresh1Frac {
			t1 = b
			t1Found = true
		}
		if t1Found && frac >= thresh2Frac {
			t2 = b
			break
		}
	}
	if t2 < t1 {
		t2 = t1
	}
	return t1, t2
}

// hysteresis promotes POTENTIAL pixels to EDGE/NO_EDGE per §4.2 step 6,
// region-growing via an 8-connected FIFO queue.
func hysteresis(scratch *cannyScratch, t1, t2 int) {
	rows, cols := scratch.edges.Rows(), scratch.edges.Cols()

	type pt struct{ y, x int }
	var queue []pt

	for y := 1; y < rows-1; y++ {
		for x := 1; x < cols-1; x++ {
			if scratch.edges.GetUCharAt(y, x) != edgePotential {
				continue
			}
			bin := int(scratch.bins.GetUCharAt(y, x))
			switch {
			case bin < t1:
				scratch.edges.SetUCharAt(y, x, edgeNoEdge)
			case bin < t2:
				// remains POTENTIAL for now
			default:
				scratch.edges.SetUCharAt(y, x, edgeOn)
				queue = append(queue, pt{y, x})
			}
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				ny, nx := p.y+dy, p.x+dx
				if ny < 0 || ny >= rows || nx < 0 || nx >= cols {
					continue
				}
				if scratch.edges.GetUCharAt(ny, nx) == edgePotential {
					scratch.edges.SetUCharAt(ny, nx, edgeOn)
					queue = append(queue, pt{ny, nx})
				}
			}
		}
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if scratch.edges.GetUCharAt(y, x) == edgePotential {
				scratch.edges.SetUCharAt(y, x, edgeNoEdge)
			}
		}
	}
}
