package server_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexproof/hexproof/internal/circuit"
	"github.com/hexproof/hexproof/internal/geo2d"
	"github.com/hexproof/hexproof/internal/keys"
	"github.com/hexproof/hexproof/internal/server"
)

func squarePolygon(t *testing.T) geo2d.Polygon {
	t.Helper()
	pts := make([]geo2d.Point, 4)
	coords := [4][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	for i, c := range coords {
		p, err := geo2d.PointFromFloat64(c[0], c[1])
		require.NoError(t, err)
		pts[i] = p
	}
	return geo2d.NewPolygon(pts)
}

func TestProverPoolProvesOneJob(t *testing.T) {
	lifecycle, err := keys.LoadOrSetup(t.TempDir(), geo2d.MaxVertices, circuit.MaxHashes)
	require.NoError(t, err)

	pool := server.NewProverPool(lifecycle.CCS, lifecycle.PK, 1, 1)
	t.Cleanup(pool.Close)

	poly := squarePolygon(t)
	point, err := geo2d.PointFromFloat64(5, 5)
	require.NoError(t, err)

	inst := circuit.NewInstance(point, poly, nil)
	result, err := pool.Prove(context.Background(), inst.Assignment())
	require.NoError(t, err)
	require.NotNil(t, result.Proof)
}

func TestProverPoolRejectsWhenQueueSaturated(t *testing.T) {
	lifecycle, err := keys.LoadOrSetup(t.TempDir(), geo2d.MaxVertices, circuit.MaxHashes)
	require.NoError(t, err)

	// Zero workers: nothing ever drains the single-slot queue, so a
	// second submission must see it full.
	pool := server.NewProverPool(lifecycle.CCS, lifecycle.PK, 0, 1)
	t.Cleanup(pool.Close)

	poly := squarePolygon(t)
	point, err := geo2d.PointFromFloat64(5, 5)
	require.NoError(t, err)
	assignment := circuit.NewInstance(point, poly, nil).Assignment()

	// The first call's job occupies the single queue slot (nothing
	// drains it, since the pool has zero workers); cancel its context
	// immediately so this call returns without blocking the test.
	firstCtx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = pool.Prove(firstCtx, assignment)
	require.Error(t, err) // context already cancelled

	_, err = pool.Prove(context.Background(), assignment)
	require.ErrorIs(t, err, server.ErrPoolSaturated)
}
