package witness_test

import (
	"testing"

	h3 "github.com/uber/h3-go/v4"
	"github.com/stretchr/testify/require"

	"github.com/hexproof/hexproof/internal/witness"
)

func TestBuildRejectsInvalidResolution(t *testing.T) {
	_, err := witness.Build(witness.Query{Lat: 37.7749, Lon: -122.4194, Resolution: 16})
	require.ErrorIs(t, err, witness.ErrInvalidResolution)
}

func TestBuildDropsUnparseableAuthorisedCells(t *testing.T) {
	inst, err := witness.Build(witness.Query{
		Lat:             37.7749,
		Lon:             -122.4194,
		Resolution:      9,
		AuthorisedCells: []string{"not-an-h3-index", "", "zzzzzzzzzzzzzzz"},
	})
	require.NoError(t, err)
	require.False(t, inst.ClaimedInMap)
}

func TestBuildMatchesWhenQueriedCellIsAuthorised(t *testing.T) {
	const lat, lon, res = 37.7749, -122.4194, 9
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), res)

	inst, err := witness.Build(witness.Query{
		Lat:             lat,
		Lon:             lon,
		Resolution:      res,
		AuthorisedCells: []string{cell.String()},
	})
	require.NoError(t, err)
	require.True(t, inst.ClaimedInMap)
}

func TestBuildDoesNotMatchWhenCellNotAuthorised(t *testing.T) {
	const lat, lon, res = 37.7749, -122.4194, 9
	otherCell := h3.LatLngToCell(h3.NewLatLng(-33.8688, 151.2093), res)

	inst, err := witness.Build(witness.Query{
		Lat:             lat,
		Lon:             lon,
		Resolution:      res,
		AuthorisedCells: []string{otherCell.String()},
	})
	require.NoError(t, err)
	require.False(t, inst.ClaimedInMap)
}
