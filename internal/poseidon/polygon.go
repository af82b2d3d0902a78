package poseidon

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/frontend"

	"github.com/hexproof/hexproof/internal/geo2d"
	"github.com/hexproof/hexproof/internal/zkcmp"
)

// HashPolygon commits to a polygon by absorbing, in order: the effective
// vertex count n, then for every one of MaxVertices slots the four-tuple
// (x.val, x.neg, y.val, y.neg) — zero for slots at index >= n. The
// absorption count is always 1 + 4*MaxVertices regardless of n, so a
// polygon's commitment is unaffected by how many of its trailing slots are
// zero-padded, per spec.md §4.2/§9.
func HashPolygon(poly geo2d.Polygon) fr.Element {
	elements := make([]fr.Element, 0, 1+4*geo2d.MaxVertices)

	var n fr.Element
	n.SetInt64(int64(poly.N))
	elements = append(elements, n)

	var zero, one fr.Element
	one.SetOne()

	for i := 0; i < geo2d.MaxVertices; i++ {
		if i < poly.N {
			v := poly.Verts[i]
			xNeg, yNeg := zero, zero
			if v.X.Neg {
				xNeg = one
			}
			if v.Y.Neg {
				yNeg = one
			}
			elements = append(elements, v.X.Val, xNeg, v.Y.Val, yNeg)
		} else {
			elements = append(elements, zero, zero, zero, zero)
		}
	}

	return Hash(elements)
}

// HashPolygonGadget is the in-circuit mirror of HashPolygon. Because n is
// a Variable rather than a compile-time int, "inactive slot" is expressed
// arithmetically: every one of the four absorbed values for slot i is
// multiplied by an active flag 1{i < n}, computed the same way every
// index/bound check in this module is (zkcmp.IsLess). This keeps the
// absorption count fixed at 1 + 4*MaxVertices regardless of the witness's
// n, which is what keeps the R1CS uniform.
func HashPolygonGadget(api frontend.API, poly geo2d.PolygonVar) frontend.Variable {
	elements := make([]frontend.Variable, 0, 1+4*geo2d.MaxVertices)
	elements = append(elements, poly.N)

	for i := 0; i < geo2d.MaxVertices; i++ {
		active := zkcmp.IsLess(api, i, poly.N)
		v := poly.Verts[i]
		elements = append(elements,
			api.Mul(active, v.X.Val),
			api.Mul(active, v.X.Neg),
			api.Mul(active, v.Y.Val),
			api.Mul(active, v.Y.Neg),
		)
	}

	return HashGadget(api, elements)
}
