// Package geo2d is the 2D point and polygon layer sitting directly on top
// of dec: an ordered pair of Dec values, and a fixed-capacity polygon
// buffer with an effective vertex count, plus the GPS-to-planar projection
// used to turn H3 cell boundaries into polygons.
//
// Ported from this codebase's reference zk/point_2d.rs, generalised from a
// fixed MAX_VERTICES-at-compile-time array to the MaxVertices constant
// below (kept at spec.md's baseline of 6, matching H3 hexagon boundaries).
package geo2d

import "github.com/hexproof/hexproof/internal/dec"

// MaxVertices is the fixed polygon capacity (spec.md's MAX_V baseline,
// chosen for H3 hexagons).
const MaxVertices = 6

// Point is an immutable 2D point in fixed-point decimal coordinates.
type Point struct {
	X, Y dec.Dec
}

// PointFromFloat64 converts a planar (x, y) pair to fixed-point decimal.
func PointFromFloat64(x, y float64) (Point, error) {
	dx, err := dec.FromFloat64(x)
	if err != nil {
		return Point{}, err
	}
	dy, err := dec.FromFloat64(y)
	if err != nil {
		return Point{}, err
	}
	return Point{X: dx, Y: dy}, nil
}

// ZeroPoint is the canonical zero point used to pad unused polygon slots.
var ZeroPoint = Point{}

// Polygon is a fixed-capacity buffer of MaxVertices points together with
// an effective length N. Slots at index >= N are the canonical zero
// point.
type Polygon struct {
	Verts [MaxVertices]Point
	N     int
}

// NewPolygon builds a polygon from up to MaxVertices points, zero-padding
// the remainder and clamping N to MaxVertices if more points are supplied.
func NewPolygon(points []Point) Polygon {
	var p Polygon
	n := len(points)
	if n > MaxVertices {
		n = MaxVertices
	}
	for i := 0; i < n; i++ {
		p.Verts[i] = points[i]
	}
	p.N = n
	return p
}
