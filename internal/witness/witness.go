// Package witness builds a circuit.Instance from an HTTP-level prove
// request: it resolves the queried H3 cell and the caller's authorised
// cell list to polygons, projects everything to Web-Mercator, and runs
// the native commitment and PIP checks that become the circuit's claimed
// flag.
//
// Ported from this codebase's reference api/prove.rs steps 0-4.
package witness

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	h3 "github.com/uber/h3-go/v4"

	"github.com/hexproof/hexproof/internal/circuit"
	"github.com/hexproof/hexproof/internal/geo2d"
	"github.com/hexproof/hexproof/internal/poseidon"
)

// ErrInvalidResolution is returned when the requested H3 resolution is
// outside the valid 0-15 range.
var ErrInvalidResolution = errors.New("witness: resolution out of range")

// minResolution/maxResolution bound the valid H3 resolution hierarchy.
const (
	minResolution = 0
	maxResolution = 15
)

// Query is the native input to Build: a geographic point, the H3
// resolution to resolve it at, and the relying party's list of authorised
// cells (as H3 index strings).
type Query struct {
	Lat             float64
	Lon             float64
	Resolution      uint8
	AuthorisedCells []string
}

// polygonFromCell projects an H3 cell's boundary to a Mercator polygon,
// clamped to geo2d.MaxVertices.
func polygonFromCell(cell h3.Cell) (geo2d.Polygon, error) {
	boundary := cell.Boundary()

	points := make([]geo2d.Point, 0, len(boundary))
	for _, ll := range boundary {
		x, y := geo2d.WebMercator(ll.Lng, ll.Lat)
		p, err := geo2d.PointFromFloat64(x, y)
		if err != nil {
			return geo2d.Polygon{}, err
		}
		points = append(points, p)
	}
	return geo2d.NewPolygon(points), nil
}

// Build executes spec.md §4.5's five steps and returns a ready-to-assign
// circuit.Instance.
func Build(q Query) (circuit.Instance, error) {
	if q.Resolution < minResolution || q.Resolution > maxResolution {
		return circuit.Instance{}, fmt.Errorf("%w: %d", ErrInvalidResolution, q.Resolution)
	}

	// 1-2. Project the query point and resolve/project the current cell.
	x, y := geo2d.WebMercator(q.Lon, q.Lat)
	point, err := geo2d.PointFromFloat64(x, y)
	if err != nil {
		return circuit.Instance{}, fmt.Errorf("witness: projecting query point: %w", err)
	}

	cell := h3.LatLngToCell(h3.NewLatLng(q.Lat, q.Lon), int(q.Resolution))
	polygon, err := polygonFromCell(cell)
	if err != nil {
		return circuit.Instance{}, fmt.Errorf("witness: projecting queried cell boundary: %w", err)
	}

	// 3. Authorised-cell commitments; unparseable H3 strings are dropped
	// silently, per spec.md §4.5.
	authorisedHashes := make([]fr.Element, 0, len(q.AuthorisedCells))
	for _, hex := range q.AuthorisedCells {
		authCell, err := h3.StringToCell(hex)
		if err != nil {
			continue
		}
		authPoly, err := polygonFromCell(authCell)
		if err != nil {
			continue
		}
		authorisedHashes = append(authorisedHashes, poseidon.HashPolygon(authPoly))
	}

	// 4-5. NewInstance computes the cell commitment, the native PIP flag,
	// and the membership flag, then pads authorisedHashes to MaxHashes.
	return circuit.NewInstance(point, polygon, authorisedHashes), nil
}
