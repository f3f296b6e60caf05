package detector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectFinalSegmentEmpty(t *testing.T) {
	require.Equal(t, Result{}, selectFinalSegment(nil))
}

func TestSelectFinalSegmentFallsBackToInitial(t *testing.T) {
	// Highest confidence, so selectFinalSegment treats it as the initial pupil.
	initial := candidate{res: Result{
		Ellipse:    Ellipse{CenterX: 50, CenterY: 50, AxisW: 20, AxisH: 20},
		Confidence: Confidence{Value: 0.95, OutlineContrast: 0.9},
	}}
	// A candidate that fails the outline-contrast floor should never replace it.
	other := candidate{res: Result{
		Ellipse:    Ellipse{CenterX: 52, CenterY: 50, AxisW: 10, AxisH: 10},
		Confidence: Confidence{Value: 0.9, OutlineContrast: 0.5},
	}}

	got := selectFinalSegment([]candidate{initial, other})
	require.Equal(t, initial.res, got)
}

func TestSelectFinalSegmentPrefersQualifyingAlternative(t *testing.T) {
	// initial is the highest-confidence candidate (and so fixes the size/
	// distance reference frame), but a qualifying alternative is still
	// returned in its place — selection is not simply "pick the max".
	initial := candidate{res: Result{
		Ellipse:    Ellipse{CenterX: 50, CenterY: 50, AxisW: 40, AxisH: 40},
		Confidence: Confidence{Value: 0.95, OutlineContrast: 0.99},
	}}
	qualifying := candidate{res: Result{
		Ellipse:    Ellipse{CenterX: 55, CenterY: 50, AxisW: 20, AxisH: 20},
		Confidence: Confidence{Value: 0.8, OutlineContrast: 0.95},
	}}

	got := selectFinalSegment([]candidate{initial, qualifying})
	require.Equal(t, qualifying.res, got)
}

func TestSelectFinalSegmentRejectsOversizedAlternative(t *testing.T) {
	initial := candidate{res: Result{
		Ellipse:    Ellipse{CenterX: 50, CenterY: 50, AxisW: 40, AxisH: 40},
		Confidence: Confidence{Value: 0.95, OutlineContrast: 0.8},
	}}
	// Size exceeds 0.8 * semiMajor(40) = 32, so it is rejected despite
	// otherwise qualifying.
	tooBig := candidate{res: Result{
		Ellipse:    Ellipse{CenterX: 50, CenterY: 50, AxisW: 35, AxisH: 35},
		Confidence: Confidence{Value: 0.9, OutlineContrast: 0.95},
	}}

	got := selectFinalSegment([]candidate{initial, tooBig})
	require.Equal(t, initial.res, got)
}
