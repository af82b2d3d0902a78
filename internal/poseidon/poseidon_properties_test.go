package poseidon_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/hexproof/hexproof/internal/geo2d"
	"github.com/hexproof/hexproof/internal/poseidon"
)

// TestHashPolygonGadgetMatchesNativeProperty generalises
// TestHashPolygonGadgetMatchesNative to spec.md §8 invariant 1's actual
// "for every polygon (P, n)" quantifier: random vertex counts from 0 to
// MaxVertices and random coordinates, each solved through the real
// circuit via test.IsSolved. Kept to a modest sample size since each
// case runs a full circuit solve.
func TestHashPolygonGadgetMatchesNativeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 12
	properties := gopter.NewProperties(parameters)

	vertexCounts := gen.IntRange(0, geo2d.MaxVertices)
	coords := gen.Float64Range(-1e6, 1e6)

	properties.Property("native and in-circuit commitments agree for any n <= MaxVertices", prop.ForAll(
		func(n int, xs, ys [geo2d.MaxVertices]float64) bool {
			points := make([]geo2d.Point, 0, n)
			for i := 0; i < n; i++ {
				p, err := geo2d.PointFromFloat64(xs[i], ys[i])
				if err != nil {
					return true
				}
				points = append(points, p)
			}
			poly := geo2d.NewPolygon(points)
			expected := poseidon.HashPolygon(poly)

			assignment := &hashPolygonCircuit{
				Poly:     geo2d.NewPolygonVar(poly),
				Expected: expected,
			}
			err := test.IsSolved(&hashPolygonCircuit{}, assignment, ecc.BN254.ScalarField())
			return err == nil
		},
		vertexCounts,
		gen.SliceOfN(geo2d.MaxVertices, coords).Map(toFixedArray),
		gen.SliceOfN(geo2d.MaxVertices, coords).Map(toFixedArray),
	))

	properties.TestingRun(t)
}

func toFixedArray(s []float64) [geo2d.MaxVertices]float64 {
	var a [geo2d.MaxVertices]float64
	copy(a[:], s)
	return a
}
