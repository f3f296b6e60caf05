package detector

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"purepupil/internal/matbuf"
)

func TestProperIntersection(t *testing.T) {
	a := image.Rect(0, 0, 10, 10)
	b := image.Rect(5, 5, 15, 15)
	inter, ok := properIntersection(a, b)
	require.True(t, ok)
	require.Equal(t, image.Rect(5, 5, 10, 10), inter)

	// c fully contains a: intersection equals a, not proper.
	c := image.Rect(-5, -5, 20, 20)
	_, ok = properIntersection(a, c)
	require.False(t, ok)

	// disjoint rects.
	d := image.Rect(100, 100, 110, 110)
	_, ok = properIntersection(a, d)
	require.False(t, ok)
}

func TestCombineSegmentsSkipsNonIntersecting(t *testing.T) {
	working, err := matbuf.New(200, 200, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	defer working.Close()

	c1 := candidate{
		seg: segment{image.Pt(0, 0), image.Pt(1, 0), image.Pt(0, 1), image.Pt(1, 1), image.Pt(2, 2)},
		res: Result{Confidence: Confidence{Value: 0.5, OutlineContrast: 0.5}},
	}
	c2 := candidate{
		seg: segment{image.Pt(150, 150), image.Pt(151, 150), image.Pt(150, 151), image.Pt(151, 151), image.Pt(152, 152)},
		res: Result{Confidence: Confidence{Value: 0.5, OutlineContrast: 0.5}},
	}

	result := combineSegments([]candidate{c1, c2}, 1, 50, 200, 200, working)
	require.Len(t, result, 2) // no combined candidate appended
}

func TestCombineSegmentsSkipsZeroConfidenceParents(t *testing.T) {
	working, err := matbuf.New(200, 200, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	defer working.Close()

	c1 := candidate{
		seg: segment{image.Pt(0, 0), image.Pt(5, 0), image.Pt(0, 5), image.Pt(5, 5), image.Pt(2, 2)},
		res: Result{Confidence: Confidence{Value: 0}},
	}
	c2 := candidate{
		seg: segment{image.Pt(3, 3), image.Pt(8, 3), image.Pt(3, 8), image.Pt(8, 8), image.Pt(5, 5)},
		res: Result{Confidence: Confidence{Value: 0}},
	}

	result := combineSegments([]candidate{c1, c2}, 1, 50, 200, 200, working)
	require.Len(t, result, 2)
}
