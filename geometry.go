package detector

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// segment is an open polyline of connected edge pixels (§3 Data Model).
type segment []image.Point

// boundingRect returns the axis-aligned bounding rectangle of s.
func (s segment) boundingRect() image.Rectangle {
	if len(s) == 0 {
		return image.Rectangle{}
	}
	minX, minY := s[0].X, s[0].Y
	maxX, maxY := s[0].X, s[0].Y
	for _, p := range s[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// centroid returns the arithmetic mean of the segment's points.
func (s segment) centroid() (x, y float64) {
	var sx, sy float64
	for _, p := range s {
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	n := float64(len(s))
	return sx / n, sy / n
}

func (s segment) toPointVector() gocv.PointVector {
	return gocv.NewPointVectorFromPoints(s)
}

// properIntersection reports whether a and b's intersection is non-empty
// and equal to neither rectangle (§4.7, GLOSSARY).
func properIntersection(a, b image.Rectangle) (image.Rectangle, bool) {
	inter := a.Intersect(b)
	if inter.Empty() {
		return inter, false
	}
	if inter.Eq(a) || inter.Eq(b) {
		return inter, false
	}
	return inter, true
}

func dist(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return math.Sqrt(dx*dx + dy*dy)
}

// maxPairwiseDistance computes the diameter filter's max pairwise
// Euclidean distance with an early exit once it provably exceeds limit.
// O(n^2), as specified.
func maxPairwiseDistance(s segment, limit float64) float64 {
	limitSq := limit * limit
	maxSq := 0.0
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			dx := float64(s[i].X - s[j].X)
			dy := float64(s[i].Y - s[j].Y)
			d := dx*dx + dy*dy
			if d > maxSq {
				maxSq = d
				if maxSq > limitSq {
					return math.Sqrt(maxSq)
				}
			}
		}
	}
	return math.Sqrt(maxSq)
}

// rotatedRectFromGocv converts a gocv.RotatedRect (from FitEllipse or
// MinAreaRect) into width/height/angle in the spec's fw/fh convention.
func rotatedRectFromGocv(r gocv.RotatedRect) (width, height, angle float64) {
	return float64(r.Width), float64(r.Height), r.Angle
}

// convexHullOf returns the convex hull points of the union of two
// segments, via gocv.ConvexHull (§4.7).
func convexHullOf(a, b segment) (segment, error) {
	combined := make([]image.Point, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)

	pv := gocv.NewPointVectorFromPoints(combined)
	defer pv.Close()

	hull := gocv.NewMat()
	defer hull.Close()

	gocv.ConvexHull(pv, &hull, true, true)

	hullVec := gocv.NewPointVectorFromMat(hull)
	defer hullVec.Close()

	return segment(hullVec.ToPoints()), nil
}
