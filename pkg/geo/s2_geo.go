package geo

import (
	"github.com/golang/geo/s2"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
)

// PointDistanceMeters. great-circle distance between two coordinates on the
// s2 sphere.
func PointDistanceMeters(a, b datastructure.Coordinate) float64 {
	angle := s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon))
	return angle.Radians() * earthRadiusM
}

// PathDistanceMeters sums the segment lengths of a polyline.
func PathDistanceMeters(path []datastructure.Coordinate) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += PointDistanceMeters(path[i], path[i+1])
	}
	return total
}

const sideEpsilon = 1e-9

// SideOfLine. which side of the directed segment (from, to) the query point
// lies on: negative left, positive right, zero on the line. computed on s2
// unit-sphere points so it behaves across the antimeridian.
func SideOfLine(from, to, query datastructure.Coordinate) int {
	a := s2.PointFromLatLng(s2.LatLngFromDegrees(from.Lat, from.Lon))
	b := s2.PointFromLatLng(s2.LatLngFromDegrees(to.Lat, to.Lon))
	q := s2.PointFromLatLng(s2.LatLngFromDegrees(query.Lat, query.Lon))

	n := a.Cross(b.Vector)
	norm := n.Norm()
	if norm == 0 {
		return 0
	}
	// normalized so the threshold does not shrink with the segment length
	det := n.Dot(q.Vector) / norm
	if det > sideEpsilon {
		return -1
	}
	if det < -sideEpsilon {
		return 1
	}
	return 0
}
