package pip

import (
	"github.com/consensys/gnark/frontend"

	"github.com/hexproof/hexproof/internal/dec"
	"github.com/hexproof/hexproof/internal/geo2d"
	"github.com/hexproof/hexproof/internal/zkcmp"
)

// pickNext returns polygon.Verts[(i+1) mod n] as a PointVar, where i is a
// compile-time loop index and n (poly.N) is a witness Variable. Because i
// is fixed at circuit-compile time, the only runtime-dependent case is the
// wraparound at the end of the active range: when i+1 == n, "next" is
// slot 0, otherwise it's the fixed slot (i+1) mod geo2d.MaxVertices. Select
// picks between the two candidates component-wise.
func pickNext(api frontend.API, poly geo2d.PolygonVar, i int) geo2d.PointVar {
	candidate := poly.Verts[(i+1)%geo2d.MaxVertices]
	wrap := api.IsZero(api.Sub(poly.N, i+1))

	return geo2d.PointVar{
		X: dec.Var{
			Val: api.Select(wrap, poly.Verts[0].X.Val, candidate.X.Val),
			Neg: api.Select(wrap, poly.Verts[0].X.Neg, candidate.X.Neg),
		},
		Y: dec.Var{
			Val: api.Select(wrap, poly.Verts[0].Y.Val, candidate.Y.Val),
			Neg: api.Select(wrap, poly.Verts[0].Y.Neg, candidate.Y.Neg),
		},
	}
}

// InsideGadget is the in-circuit mirror of Inside. It iterates every one
// of geo2d.MaxVertices slots unconditionally (R1CS uniformity), gating
// each edge's contribution to the outside-count by 1{i < n}, and requires
// both n >= 3 and a zero outside-count for "inside".
func InsideGadget(api frontend.API, point geo2d.PointVar, polygon geo2d.PolygonVar) frontend.Variable {
	outsideCount := frontend.Variable(0)

	for i := 0; i < geo2d.MaxVertices; i++ {
		active := zkcmp.IsLess(api, i, polygon.N)

		current := polygon.Verts[i]
		next := pickNext(api, polygon, i)

		x2MinusX1 := dec.Sub(api, next.X, current.X)
		pyMinusY1 := dec.Sub(api, point.Y, current.Y)
		y2MinusY1 := dec.Sub(api, next.Y, current.Y)
		pxMinusX1 := dec.Sub(api, point.X, current.X)

		a := dec.MulUnscaled(api, x2MinusX1, pyMinusY1)
		b := dec.MulUnscaled(api, y2MinusY1, pxMinusX1)
		dj := dec.Sub(api, a, b)

		zeroVar := dec.Var{Val: frontend.Variable(0), Neg: frontend.Variable(0)}
		isOutside := dec.CmpLess(api, dj, zeroVar)

		incFlag := api.And(active, isOutside)
		outsideCount = api.Add(outsideCount, incFlag)
	}

	validN := zkcmp.IsGreater(api, polygon.N, 2)
	outsideZero := api.IsZero(outsideCount)

	return api.And(validN, outsideZero)
}
