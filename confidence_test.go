package detector

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAspectRatioConfidenceIsSymmetric(t *testing.T) {
	wide := Ellipse{AxisW: 20, AxisH: 10}
	tall := Ellipse{AxisW: 10, AxisH: 20}
	require.InDelta(t, aspectRatioConfidence(wide), aspectRatioConfidence(tall), 1e-9)
	require.InDelta(t, 0.5, aspectRatioConfidence(wide), 1e-9)
}

func TestAspectRatioConfidenceCircleIsOne(t *testing.T) {
	require.InDelta(t, 1.0, aspectRatioConfidence(Ellipse{AxisW: 10, AxisH: 10}), 1e-9)
}

func TestAngularSpreadConfidenceFullCircleSaturates(t *testing.T) {
	e := Ellipse{CenterX: 50, CenterY: 50}
	var s segment
	for i := 0; i < 360; i += 15 {
		rad := float64(i) * math.Pi / 180
		x := e.CenterX + 40*math.Cos(rad)
		y := e.CenterY + 40*math.Sin(rad)
		s = append(s, image.Pt(int(x), int(y)))
	}
	require.Equal(t, 1.0, angularSpreadConfidence(s, e))
}

func TestAngularSpreadConfidenceSingleQuadrant(t *testing.T) {
	e := Ellipse{CenterX: 50, CenterY: 50}
	s := segment{
		image.Pt(60, 51), // vx>0, vy>0 -> touches only one octant
	}
	got := angularSpreadConfidence(s, e)
	require.Less(t, got, 1.0)
	require.Greater(t, got, 0.0)
}
