package detector

import "purepupil/internal/matbuf"

// thinEdges removes a central ON pixel whenever it is matched by any of the
// four ExCuSe thinning masks (§4.3.1):
//
//	|_|E|_| |_|E|_| |_|_|_| |_|_|_|
//	|E|X|_| |_|X|E| |E|X|_| |_|X|E|
//	|_|_|_| |_|_|_| |_|E|_| |_|E|_|
func thinEdges(edges *matbuf.Mat) {
	rows := edges.Rows() - 2
	cols := edges.Cols() - 2
	if rows <= 0 || cols <= 0 {
		return
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			above := edges.GetUCharAt(r, c+1)
			below := edges.GetUCharAt(r+2, c+1)
			left := edges.GetUCharAt(r+1, c)
			right := edges.GetUCharAt(r+1, c+2)

			if (above != 0 && left != 0) ||
				(above != 0 && right != 0) ||
				(below != 0 && left != 0) ||
				(below != 0 && right != 0) {
				edges.SetUCharAt(r+1, c+1, edgeNoEdge)
			}
		}
	}
}

// breakCrossings clears a center pixel whenever more than 2 of its 8
// neighbors are ON, breaking junctions of more than two lines (§4.3.2).
func breakCrossings(edges *matbuf.Mat) {
	rows := edges.Rows() - 2
	cols := edges.Cols() - 2
	if rows <= 0 || cols <= 0 {
		return
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			count := 0
			if edges.GetUCharAt(r, c) != 0 {
				count++
			}
			if edges.GetUCharAt(r, c+1) != 0 {
				count++
			}
			if edges.GetUCharAt(r, c+2) != 0 {
				count++
			}
			if edges.GetUCharAt(r+1, c) != 0 {
				count++
			}
			if edges.GetUCharAt(r+1, c+2) != 0 {
				count++
			}
			if edges.GetUCharAt(r+2, c) != 0 {
				count++
			}
			if edges.GetUCharAt(r+2, c+1) != 0 {
				count++
			}
			if edges.GetUCharAt(r+2, c+2) != 0 {
				count++
			}
			if count > 2 {
				edges.SetUCharAt(r+1, c+1, edgeNoEdge)
			}
		}
	}
}

// straightenEdges replaces eight diagonal-step patterns with their
// straightened equivalents (§4.3.3). Order matters: later patterns in this
// function read pixels the earlier ones may just have written, exactly as
// in the algorithm this is ported from — it is applied in presentation
// order, not a fixed-point iteration.
func straightenEdges(edges *matbuf.Mat) {
	rows := edges.Rows() - 3
	cols := edges.Cols() - 3
	if rows <= 0 || cols <= 0 {
		return
	}

	on := func(r, c int) bool { return edges.GetUCharAt(r, c) != 0 }
	set := func(r, c int, v uint8) { edges.SetUCharAt(r, c, v) }

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if on(r+1, c) && on(r, c+1) && on(r+1, c+2) {
				//  X
				// XXX
				set(r, c+1, edgeNoEdge)
				set(r+1, c+1, edgeOn)
			}
			if on(r+1, c) && on(r, c+1) && on(r, c+2) && on(r+1, c+3) {
				//  XX
				// XXXX
				set(r, c+1, edgeNoEdge)
				set(r, c+2, edgeNoEdge)
				set(r+1, c+1, edgeOn)
				set(r+1, c+2, edgeOn)
			}
			if on(r, c+1) && on(r+1, c) && on(r+2, c+1) {
				//  X
				// XX
				//  X
				set(r+1, c, edgeNoEdge)
				set(r+1, c+1, edgeOn)
			}
			if on(r, c+1) && on(r+1, c) && on(r+2, c) && on(r+3, c+1) {
				//  X
				// XX
				// XX
				//  X
				set(r+1, c, edgeNoEdge)
				set(r+2, c, edgeNoEdge)
				set(r+1, c+1, edgeOn)
				set(r+2, c+1, edgeOn)
			}
			if on(r, c) && on(r+1, c+1) && on(r+2, c) {
				// X
				// XX
				// X
				set(r+1, c+1, edgeNoEdge)
				set(r+1, c, edgeOn)
			}
			if on(r, c) && on(r+1, c+1) && on(r+2, c+1) && on(r+3, c) {
				// X
				// XX
				// XX
				// X
				set(r+1, c+1, edgeNoEdge)
				set(r+2, c+1, edgeNoEdge)
				set(r+1, c, edgeOn)
				set(r+2, c, edgeOn)
			}
			if on(r, c) && on(r+1, c+1) && on(r, c+2) {
				// XXX
				//  X
				set(r+1, c+1, edgeNoEdge)
				set(r, c+1, edgeOn)
			}
			if on(r, c) && on(r+1, c+1) && on(r+1, c+2) && on(r, c+3) {
				// XXXX
				//  XX
				set(r+1, c+1, edgeNoEdge)
				set(r+1, c+2, edgeNoEdge)
				set(r, c+1, edgeOn)
				set(r, c+2, edgeOn)
			}
		}
	}
}

// breakOrthogonals clears orthogonal connections per the sixteen named
// patterns of §4.3.4 (d1,d3,f1,g1,e1,e3,f2,g2,d2,d4,f3,f4,g4,e2,g3,e4).
// Each pattern clears exactly one pixel of the 6x6 window, and patterns are
// grouped below by the pixel they clear, so each window position writes a
// given pixel at most once. The pass is still in-place: a pixel cleared by
// one group is read as OFF by later groups (e.g. f1 clears a pixel g1
// requires) and by later window positions, so the order below is part of
// the result. The layout this is grounded on:
//
//	+----+----+----+----+
//	|    |d1d3|f1  |g1  |
//	+----+----+----+----+
//	|    |e3  |    |e1  |
//	+----+----+----+----+
//	|f2g2|d2d4|f3f4|    |
//	|    |    |g4  |    |
//	+----+----+----+----+
//	|    |e2  |g3  |e4  |
//	+----+----+----+----+
func breakOrthogonals(edges *matbuf.Mat) {
	rows := edges.Rows() - 5
	cols := edges.Cols() - 5
	if rows <= 0 || cols <= 0 {
		return
	}

	on := func(r, c int) bool { return edges.GetUCharAt(r, c) != 0 }
	clear := func(r, c int) { edges.SetUCharAt(r, c, edgeNoEdge) }

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if on(r, c+1) && ((on(r, c) && on(r+1, c+2) && on(r+2, c+2)) || // d1
				(on(r, c+2) && on(r+1, c) && on(r+2, c))) { // d3
				clear(r, c+1)
			}

			if on(r, c+2) && on(r+1, c+1) && on(r+1, c+3) && on(r+2, c) && on(r+2, c+4) { // f1
				clear(r, c+2)
			}

			if on(r, c+3) && on(r, c+2) && on(r+1, c+1) && on(r+1, c+4) && on(r+2, c) && on(r+2, c+5) { // g1
				clear(r, c+3)
			}

			if on(r+1, c+1) && on(r, c+2) && on(r, c+3) && on(r, c+4) && on(r+2, c) && on(r+3, c) && on(r+4, c) { // e3
				clear(r+1, c+1)
			}

			if on(r+1, c+3) && on(r, c) && on(r, c+1) && on(r, c+2) && on(r+2, c+4) && on(r+3, c+4) && on(r+4, c+4) { // e1
				clear(r+1, c+3)
			}

			if on(r+2, c) && on(r+1, c+1) && on(r, c+2) && ((on(r+3, c+1) && on(r+4, c+2)) || // f2
				(on(r+3, c) && on(r+4, c+1) && on(r+5, c+2))) { // g2
				clear(r+2, c)
			}

			if on(r+2, c+1) && ((on(r, c) && on(r+1, c) && on(r+2, c+2)) || // d2
				(on(r, c+2) && on(r+1, c+2) && on(r+2, c))) { // d4
				clear(r+2, c+1)
			}

			if on(r+2, c+2) && on(r, c) && on(r+1, c+1) && ((on(r+3, c+1) && on(r+4, c)) || // f3
				(on(r+1, c+3) && on(r, c+4)) || // f4
				(on(r+2, c+3) && on(r+1, c+4) && on(r, c+5))) { // g4
				clear(r+2, c+2)
			}

			if on(r+3, c+1) && on(r, c) && on(r+1, c) && on(r+2, c) && on(r+4, c+2) && on(r+4, c+3) && on(r+4, c+4) { // e2
				clear(r+3, c+1)
			}

			if on(r+3, c+2) && on(r, c) && on(r+1, c+1) && on(r+2, c+2) && on(r+4, c+1) && on(r+5, c) { // g3
				clear(r+3, c+2)
			}

			if on(r+3, c+3) && on(r, c+4) && on(r+1, c+4) && on(r+2, c+4) && on(r+4, c) && on(r+4, c+1) && on(r+4, c+2) { // e4
				clear(r+3, c+3)
			}
		}
	}
}

// refineEdges runs the full §4.3 morphology pipeline in sequence.
func refineEdges(edges *matbuf.Mat) {
	thinEdges(edges)
	breakCrossings(edges)
	straightenEdges(edges)
	breakOrthogonals(edges)
}
