// Package pip implements the point-in-convex-polygon predicate this
// module's circuit is built around: a signed cross-product sign test run
// against every edge of a fixed-capacity polygon buffer, native and as a
// gnark gadget.
//
// Ported from this codebase's reference zk/circuit.rs is_point_in_polygon /
// is_point_in_polygon_gadget, with the epsilon-tolerance parameter dropped
// (see DESIGN.md Open Question 1): every call site in the reference's own
// API layer passes strict comparison, so that's the only path this port
// keeps.
package pip

import (
	"github.com/consensys/gnark/frontend"

	"github.com/hexproof/hexproof/internal/dec"
	"github.com/hexproof/hexproof/internal/geo2d"
	"github.com/hexproof/hexproof/internal/zkcmp"
)

// Inside reports whether point lies inside (or on the boundary of) the
// first numVertices vertices of polygon, using the signed cross-product
// test: the point is outside as soon as one edge's cross product is
// strictly negative. A polygon with fewer than 3 effective vertices is
// never inside.
func Inside(point geo2d.Point, polygon geo2d.Polygon, numVertices int) bool {
	if numVertices < 3 {
		return false
	}

	for i := 0; i < numVertices; i++ {
		current := polygon.Verts[i]
		next := polygon.Verts[(i+1)%numVertices]

		x2MinusX1 := dec.Sub(next.X, current.X)
		pyMinusY1 := dec.Sub(point.Y, current.Y)
		y2MinusY1 := dec.Sub(next.Y, current.Y)
		pxMinusX1 := dec.Sub(point.X, current.X)

		a := dec.MulUnscaled(x2MinusX1, pyMinusY1)
		b := dec.MulUnscaled(y2MinusY1, pxMinusX1)
		dj := dec.Sub(a, b)

		if dec.CmpLess(dj, dec.Dec{}) {
			return false
		}
	}

	return true
}
