package detector

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"purepupil/internal/matbuf"
)

func newEdgeBuf(t *testing.T, rows, cols int, on []image2D) *matbuf.Mat {
	t.Helper()
	buf, err := matbuf.New(rows, cols, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			buf.SetUCharAt(y, x, edgeNoEdge)
		}
	}
	for _, p := range on {
		buf.SetUCharAt(p.y, p.x, edgeOn)
	}
	return buf
}

type image2D struct{ y, x int }

func countOn(m *matbuf.Mat) int {
	count := 0
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			if m.GetUCharAt(y, x) != edgeNoEdge {
				count++
			}
		}
	}
	return count
}

func TestThinEdgesRemovesDiagonalTee(t *testing.T) {
	// |_|E|_|
	// |E|X|_|
	// |_|_|_|
	edges := newEdgeBuf(t, 5, 5, []image2D{{1, 2}, {2, 1}, {2, 2}})
	defer edges.Close()

	thinEdges(edges)

	require.Equal(t, edgeNoEdge, edges.GetUCharAt(2, 2))
	require.Equal(t, edgeOn, edges.GetUCharAt(1, 2))
	require.Equal(t, edgeOn, edges.GetUCharAt(2, 1))
}

func TestThinEdgesLeavesIsolatedEdgeAlone(t *testing.T) {
	edges := newEdgeBuf(t, 5, 5, []image2D{{2, 2}})
	defer edges.Close()

	thinEdges(edges)

	require.Equal(t, edgeOn, edges.GetUCharAt(2, 2))
}

func TestBreakCrossingsClearsCenterOfFilledBlock(t *testing.T) {
	// A fully-surrounded center pixel (8 neighbors on) has 8 > 2 neighbors.
	edges := newEdgeBuf(t, 5, 5, []image2D{
		{1, 1}, {1, 2}, {1, 3},
		{2, 1}, {2, 2}, {2, 3},
		{3, 1}, {3, 2}, {3, 3},
	})
	defer edges.Close()

	breakCrossings(edges)

	require.Equal(t, edgeNoEdge, edges.GetUCharAt(2, 2))
}

func TestBreakCrossingsKeepsSparseNeighborhood(t *testing.T) {
	edges := newEdgeBuf(t, 5, 5, []image2D{{1, 1}, {2, 2}, {3, 3}})
	defer edges.Close()

	breakCrossings(edges)

	require.Equal(t, edgeOn, edges.GetUCharAt(2, 2))
}

func TestStraightenEdgesConvertsSingleStep(t *testing.T) {
	//  X
	// XXX
	edges := newEdgeBuf(t, 6, 6, []image2D{{1, 2}, {2, 1}, {2, 2}, {2, 3}})
	defer edges.Close()

	straightenEdges(edges)

	require.Equal(t, edgeNoEdge, edges.GetUCharAt(1, 2))
	require.Equal(t, edgeOn, edges.GetUCharAt(2, 2))
}

func TestBreakOrthogonalsClearsD1Pattern(t *testing.T) {
	// row0[c]=on, row0[c+1]=on, row1[c+2]=on, row2[c+2]=on -> d1 clears row0[c+1]
	edges := newEdgeBuf(t, 8, 8, []image2D{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
	defer edges.Close()

	breakOrthogonals(edges)

	require.Equal(t, edgeNoEdge, edges.GetUCharAt(0, 2))
}

func TestRefineEdgesLeavesBlankImageBlank(t *testing.T) {
	edges := newEdgeBuf(t, 10, 10, nil)
	defer edges.Close()

	refineEdges(edges)

	require.Equal(t, 0, countOn(edges))
}
