package detector

import (
	"fmt"

	"gocv.io/x/gocv"

	"purepupil/internal/dlog"
	"purepupil/internal/matbuf"
)

// Option configures a Detector at construction time.
type Option func(*Detector)

// WithLogger overrides the Detector's logger. The default is dlog.Noop.
func WithLogger(l dlog.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// WithTargetResolution overrides the preprocessor's downscale target
// (§4.1). The default is 192x192.
func WithTargetResolution(width, height int) Option {
	return func(d *Detector) {
		d.targetWidth = width
		d.targetHeight = height
	}
}

// Detector runs the PuRe pupil-detection pipeline (§2 Overview) against a
// single grayscale frame at a time. It owns a set of reusable scratch
// buffers sized to the working resolution, so a Detector should be reused
// across frames of a video stream rather than constructed per call.
type Detector struct {
	logger dlog.Logger

	targetWidth  int
	targetHeight int

	working *matbuf.Mat
	canny   *cannyScratch
}

// New builds a Detector ready for Detect calls.
func New(opts ...Option) *Detector {
	d := &Detector{
		logger:       dlog.Noop,
		targetWidth:  defaultTargetWidth,
		targetHeight: defaultTargetHeight,
		canny:        newCannyScratch(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Close releases the Detector's scratch buffers. Safe to call on a zero
// Detector that never ran Detect.
func (d *Detector) Close() {
	if d.working != nil {
		d.working.Close()
	}
	if d.canny != nil {
		closeIfNotNil(d.canny.blurred)
		closeIfNotNil(d.canny.dx)
		closeIfNotNil(d.canny.dy)
		closeIfNotNil(d.canny.mag)
		closeIfNotNil(d.canny.bins)
		closeIfNotNil(d.canny.edges)
	}
}

func closeIfNotNil(m *matbuf.Mat) {
	if m != nil {
		m.Close()
	}
}

// Detect locates the most likely pupil ellipse in input, a single-channel
// grayscale frame (§1, §4). params controls the pupil-size bounds used by
// the diameter filter (§4.5); when params.AutoPupilDiameter is set, Detect
// derives and writes back Min/MaxPupilDiameter in input-pixel units. If
// debugOut is non-nil, Detect draws the intermediate edge map and every
// surviving candidate ellipse into it (§6), resized to input's
// dimensions.
func (d *Detector) Detect(input gocv.Mat, params *Parameters, debugOut *gocv.Mat) Result {
	if input.Empty() {
		d.logger.Warning("empty input frame", nil)
		return Result{}
	}

	if d.working == nil {
		buf, err := matbuf.New(1, 1, gocv.MatTypeCV8UC1)
		if err != nil {
			d.logger.Error("allocate working buffer", err, nil)
			return Result{}
		}
		d.working = buf
	}

	scalingFactor, err := preprocess(input, d.working, d.targetWidth, d.targetHeight)
	if err != nil {
		d.logger.Error("preprocess", err, nil)
		return Result{}
	}

	if err := matbuf.ValidateForOperation(d.working, "canny"); err != nil {
		d.logger.Error("working buffer unusable", err, nil)
		return Result{}
	}

	workingW, workingH := d.working.Cols(), d.working.Rows()

	localParams := *params
	if !localParams.AutoPupilDiameter {
		scaleBoundsToWorking(&localParams, scalingFactor)
	}
	if !resolvePupilBounds(&localParams, workingW, workingH) {
		d.logger.Warning("invalid pupil diameter bounds", map[string]interface{}{
			"min": localParams.MinPupilDiameter,
			"max": localParams.MaxPupilDiameter,
		})
		return Result{}
	}

	if err := canny(d.working, d.canny); err != nil {
		d.logger.Error("canny", err, nil)
		return Result{}
	}

	refineEdges(d.canny.edges)

	edgesMat := d.canny.edges.GetMat()
	mustNotHappen(edgesMat.Rows() == workingH && edgesMat.Cols() == workingW,
		"canny scratch %dx%d diverged from working buffer %dx%d", edgesMat.Cols(), edgesMat.Rows(), workingW, workingH)

	segs := extractSegments(edgesMat)

	cands := make([]candidate, 0, len(segs))
	for _, s := range segs {
		res, ok := evaluateSegment(s, localParams.MinPupilDiameter, localParams.MaxPupilDiameter, workingW, workingH, d.working)
		if !ok {
			d.logger.Warning("segment evaluation failed unexpectedly", nil)
			continue
		}
		cands = append(cands, candidate{seg: s, res: res})
	}

	d.logger.Debug("segments evaluated", map[string]interface{}{"count": len(cands)})

	cands = combineSegments(cands, localParams.MinPupilDiameter, localParams.MaxPupilDiameter, workingW, workingH, d.working)

	d.logger.Debug("segments combined", map[string]interface{}{"total": len(cands)})

	result := selectFinalSegment(cands)

	if debugOut != nil {
		drawDebug(debugOut, input, edgesMat, cands, result, scalingFactor)
	}

	factor := scalingFactor
	if factor == 0 {
		factor = 1
	}
	result.Ellipse.CenterX /= factor
	result.Ellipse.CenterY /= factor
	result.Ellipse.AxisW /= factor
	result.Ellipse.AxisH /= factor

	if localParams.AutoPupilDiameter {
		scaleBoundsToInput(&localParams, scalingFactor)
		params.MinPupilDiameter = localParams.MinPupilDiameter
		params.MaxPupilDiameter = localParams.MaxPupilDiameter
	}

	return result
}

// mustNotHappen panics on violations of structural invariants the
// pipeline itself is responsible for upholding (e.g. a scratch buffer whose
// dimensions drifted from the working buffer) — as opposed to bad external input
// or a discardable segment, which return a zero Result plus a logged
// Warning instead.
func mustNotHappen(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf(format, args...))
	}
}
