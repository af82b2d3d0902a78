package circuit

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/hexproof/hexproof/internal/geo2d"
	"github.com/hexproof/hexproof/internal/pip"
	"github.com/hexproof/hexproof/internal/poseidon"
)

// Instance is the fully materialised native witness for PointInMapCircuit:
// everything a caller needs to both compute the claimed flag and build a
// gnark assignment, kept in one place so internal/witness and internal/keys
// don't have to duplicate the commitment/PIP bookkeeping.
type Instance struct {
	Point            geo2d.Point
	Polygon          geo2d.Polygon
	NumVertices      int
	ClaimedInMap     bool
	AuthorisedHashes [MaxHashes]fr.Element
}

// NewInstance computes the cell commitment, the PIP flag, and the
// membership flag natively, producing a ready-to-assign Instance. The
// authorisedCommitments slice is copied and zero-padded/truncated to
// MaxHashes.
func NewInstance(point geo2d.Point, polygon geo2d.Polygon, authorisedCommitments []fr.Element) Instance {
	inst := Instance{
		Point:       point,
		Polygon:     polygon,
		NumVertices: polygon.N,
	}

	cellCommitment := poseidon.HashPolygon(polygon)
	inside := pip.Inside(point, polygon, polygon.N)

	matched := false
	for i, h := range authorisedCommitments {
		if i >= MaxHashes {
			break
		}
		inst.AuthorisedHashes[i] = h
		if h.Equal(&cellCommitment) {
			matched = true
		}
	}

	inst.ClaimedInMap = inside && matched
	return inst
}

// Assignment converts the Instance into a PointInMapCircuit value
// suitable for frontend.NewWitness.
func (inst Instance) Assignment() PointInMapCircuit {
	var a PointInMapCircuit
	a.Point = geo2d.NewPointVar(inst.Point)
	a.Polygon = geo2d.NewPolygonVar(inst.Polygon)
	a.NumVertices = inst.NumVertices

	flag := 0
	if inst.ClaimedInMap {
		flag = 1
	}
	a.ClaimedInMap = flag
	a.InMapFlag = flag

	for i := range a.AuthorisedHashes {
		a.AuthorisedHashes[i] = inst.AuthorisedHashes[i]
	}
	return a
}
