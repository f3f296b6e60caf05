package detector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyDirectionHorizontal(t *testing.T) {
	require.Equal(t, dirHorizontal, classifyDirection(10, 0))
}

func TestClassifyDirectionVertical(t *testing.T) {
	require.Equal(t, dirVertical, classifyDirection(0, 10))
	require.Equal(t, dirVertical, classifyDirection(1e-12, 10))
}

func TestClassifyDirectionDiagonals(t *testing.T) {
	require.Equal(t, dirDiagBackslash, classifyDirection(10, 10))
	require.Equal(t, dirDiagBackslash, classifyDirection(-10, -10))
	require.Equal(t, dirDiagForward, classifyDirection(10, -10))
	require.Equal(t, dirDiagForward, classifyDirection(-10, 10))
}

func TestFillBinsHandlesZeroMagnitude(t *testing.T) {
	scratch := newCannyScratch()
	require.NoError(t, scratch.ensureSize(4, 4))
	defer func() {
		scratch.blurred.Close()
		scratch.dx.Close()
		scratch.dy.Close()
		scratch.mag.Close()
		scratch.bins.Close()
		scratch.edges.Close()
	}()

	fillBins(scratch)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, uint8(0), scratch.bins.GetUCharAt(y, x))
		}
	}
}

func TestAdaptiveThresholdsOrdering(t *testing.T) {
	scratch := newCannyScratch()
	require.NoError(t, scratch.ensureSize(8, 8))
	defer func() {
		scratch.blurred.Close()
		scratch.dx.Close()
		scratch.dy.Close()
		scratch.mag.Close()
		scratch.bins.Close()
		scratch.edges.Close()
	}()

	// A gradient of magnitudes 0..63 spread across 64 pixels of an 8x8 image.
	i := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			scratch.mag.SetFloatAt(y, x, float32(i))
			i++
		}
	}

	fillBins(scratch)
	t1, t2 := adaptiveThresholds(scratch.bins, 8, 8)

	require.LessOrEqual(t, t1, t2)
	require.GreaterOrEqual(t, t1, 0)
	require.Less(t, t2, histBins)
}
