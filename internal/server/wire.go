// wire.go implements the base64 JSON wire format for proofs and public
// inputs described in spec.md §6. It decomposes a Groth16 proof into its
// three curve points (a, c in G1; b in G2) and serialises each field
// element of the public witness independently, rather than treating the
// proof/witness as one opaque blob — matching the shape of spec.md's
// JSON response.
//
// Points are encoded with gnark-crypto's Marshal (its uncompressed raw
// encoding, with the format flagged in the top bits of the first byte)
// and decoded with SetBytes, which accepts that encoding. The byte layout
// is gnark-crypto's, not the arkworks original's serialize_uncompressed
// layout; the round trip this module is tested against is our own
// /prove -> /verify (spec.md invariant 6).
package server

import (
	"encoding/base64"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	bn254backend "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/frontend"
)

// variableToField converts a solved frontend.Variable (holding an int,
// *big.Int, or fr.Element, depending on how the assignment was built)
// into a concrete field element for wire encoding.
func variableToField(v frontend.Variable) (fr.Element, error) {
	var e fr.Element
	if _, err := e.SetInterface(v); err != nil {
		return fr.Element{}, fmt.Errorf("converting circuit variable to field element: %w", err)
	}
	return e, nil
}

// proofJSON is the wire shape of a Groth16 proof: three base64-encoded
// curve points.
type proofJSON struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
}

func encodeProof(proof groth16.Proof) (proofJSON, error) {
	concrete, ok := proof.(*bn254backend.Proof)
	if !ok {
		return proofJSON{}, fmt.Errorf("unexpected proof concrete type %T", proof)
	}
	return proofJSON{
		A: base64.StdEncoding.EncodeToString(concrete.Ar.Marshal()),
		B: base64.StdEncoding.EncodeToString(concrete.Bs.Marshal()),
		C: base64.StdEncoding.EncodeToString(concrete.Krs.Marshal()),
	}, nil
}

func decodeProof(p proofJSON) (groth16.Proof, error) {
	aBytes, err := base64.StdEncoding.DecodeString(p.A)
	if err != nil {
		return nil, fmt.Errorf("decoding proof.a: %w", err)
	}
	bBytes, err := base64.StdEncoding.DecodeString(p.B)
	if err != nil {
		return nil, fmt.Errorf("decoding proof.b: %w", err)
	}
	cBytes, err := base64.StdEncoding.DecodeString(p.C)
	if err != nil {
		return nil, fmt.Errorf("decoding proof.c: %w", err)
	}

	var proof bn254backend.Proof
	if _, err := proof.Ar.SetBytes(aBytes); err != nil {
		return nil, fmt.Errorf("unmarshalling proof.a: %w", err)
	}
	if _, err := proof.Bs.SetBytes(bBytes); err != nil {
		return nil, fmt.Errorf("unmarshalling proof.b: %w", err)
	}
	if _, err := proof.Krs.SetBytes(cBytes); err != nil {
		return nil, fmt.Errorf("unmarshalling proof.c: %w", err)
	}
	return &proof, nil
}

// encodePublicInputs serialises the public-input vector (the in-map flag
// followed by every authorised-cell commitment, spec.md §6) as one
// base64 string per field element.
func encodePublicInputs(flag fr.Element, hashes []fr.Element) []string {
	out := make([]string, 0, 1+len(hashes))
	out = append(out, encodeField(flag))
	for _, h := range hashes {
		out = append(out, encodeField(h))
	}
	return out
}

func encodeField(e fr.Element) string {
	b := e.Bytes()
	return base64.StdEncoding.EncodeToString(b[:])
}

func decodePublicInputs(values []string) (fr.Element, []fr.Element, error) {
	if len(values) == 0 {
		return fr.Element{}, nil, fmt.Errorf("public_inputs: empty")
	}

	flag, err := decodeField(values[0])
	if err != nil {
		return fr.Element{}, nil, fmt.Errorf("public_inputs[0]: %w", err)
	}

	hashes := make([]fr.Element, 0, len(values)-1)
	for i, v := range values[1:] {
		h, err := decodeField(v)
		if err != nil {
			return fr.Element{}, nil, fmt.Errorf("public_inputs[%d]: %w", i+1, err)
		}
		hashes = append(hashes, h)
	}
	return flag, hashes, nil
}

func decodeField(value string) (fr.Element, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return fr.Element{}, fmt.Errorf("base64 decode: %w", err)
	}
	if len(raw) != fr.Bytes {
		return fr.Element{}, fmt.Errorf("field element must be %d bytes, got %d", fr.Bytes, len(raw))
	}
	var e fr.Element
	e.SetBytes(raw)
	return e, nil
}
