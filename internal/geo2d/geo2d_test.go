package geo2d_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexproof/hexproof/internal/geo2d"
)

func TestWebMercatorOrigin(t *testing.T) {
	x, y := geo2d.WebMercator(0, 0)
	require.InDelta(t, 0, x, 1e-6)
	require.InDelta(t, 0, y, 1e-6)
}

func TestWebMercatorKnownPoint(t *testing.T) {
	// San Francisco, roughly.
	x, y := geo2d.WebMercator(-122.4194, 37.7749)
	require.InDelta(t, -13627361.0, x, 2000)
	require.InDelta(t, 4548785.0, y, 2000)
}

func TestNewPolygonPadsAndClamps(t *testing.T) {
	p1, _ := geo2d.PointFromFloat64(1, 1)
	p2, _ := geo2d.PointFromFloat64(2, 2)

	poly := geo2d.NewPolygon([]geo2d.Point{p1, p2})
	require.Equal(t, 2, poly.N)
	require.Equal(t, geo2d.ZeroPoint, poly.Verts[2])

	many := make([]geo2d.Point, geo2d.MaxVertices+3)
	for i := range many {
		many[i] = p1
	}
	clamped := geo2d.NewPolygon(many)
	require.Equal(t, geo2d.MaxVertices, clamped.N)
}
