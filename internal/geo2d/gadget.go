package geo2d

import (
	"github.com/consensys/gnark/frontend"

	"github.com/hexproof/hexproof/internal/dec"
)

// PointVar is the in-circuit mirror of Point.
type PointVar struct {
	X, Y dec.Var
}

// NewPointVar lifts a native Point into its Variable assignment.
func NewPointVar(p Point) PointVar {
	return PointVar{X: dec.NewVar(p.X), Y: dec.NewVar(p.Y)}
}

// AssertValid constrains both coordinates' sign bits to be boolean.
func (p PointVar) AssertValid(api frontend.API) {
	dec.AssertValid(api, p.X)
	dec.AssertValid(api, p.Y)
}

// PolygonVar is the in-circuit mirror of Polygon: a fixed-size array of
// PointVar plus the effective vertex count as a Variable.
type PolygonVar struct {
	Verts [MaxVertices]PointVar
	N     frontend.Variable
}

// NewPolygonVar lifts a native Polygon into its Variable assignment.
func NewPolygonVar(p Polygon) PolygonVar {
	var pv PolygonVar
	for i := range p.Verts {
		pv.Verts[i] = NewPointVar(p.Verts[i])
	}
	pv.N = p.N
	return pv
}

// AssertValid constrains every vertex slot's sign bits.
func (p PolygonVar) AssertValid(api frontend.API) {
	for i := range p.Verts {
		p.Verts[i].AssertValid(api)
	}
}
