package detector

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentLargeEnough(t *testing.T) {
	require.False(t, segmentLargeEnough(segment{{}, {}, {}}))
	require.True(t, segmentLargeEnough(make(segment, 5)))
}

func TestSegmentDiameterValid(t *testing.T) {
	s := segment{image.Pt(0, 0), image.Pt(10, 0)}
	require.True(t, segmentDiameterValid(s, 5, 20))
	require.False(t, segmentDiameterValid(s, 15, 20)) // too small
	require.False(t, segmentDiameterValid(s, 5, 8))   // too large
}

func TestAxesRatioInvalid(t *testing.T) {
	require.False(t, axesRatioInvalid(1.0))
	require.False(t, axesRatioInvalid(0.2))
	require.False(t, axesRatioInvalid(5.0))
	require.True(t, axesRatioInvalid(0.1))
	require.True(t, axesRatioInvalid(6.0))
}

func TestSegmentMeanInEllipseCenteredSegment(t *testing.T) {
	e := Ellipse{CenterX: 0, CenterY: 0, AxisW: 20, AxisH: 20, AngleDeg: 0}
	s := segment{image.Pt(-1, 0), image.Pt(1, 0), image.Pt(0, -1), image.Pt(0, 1)}
	require.True(t, segmentMeanInEllipse(s, e))
}

func TestSegmentMeanInEllipseFarOffCenter(t *testing.T) {
	e := Ellipse{CenterX: 0, CenterY: 0, AxisW: 20, AxisH: 20, AngleDeg: 0}
	s := segment{image.Pt(100, 100), image.Pt(100, 100)}
	require.False(t, segmentMeanInEllipse(s, e))
}
