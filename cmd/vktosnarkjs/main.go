// Command vktosnarkjs is a one-shot CLI that converts a persisted Groth16
// verifying key into a snarkjs-compatible JSON object, including the
// precomputed e(alpha, beta) pairing formatted as snarkjs expects it:
// Fq2 coefficients ordered (imaginary, real).
//
// Ported from this codebase's reference params/vk_to_snarkjs/src/main.rs.
// gnark's VerifyingKey already carries e(alpha, beta) precomputed (field
// E, populated by groth16.Setup for fast verification), so unlike the
// arkworks original this port reads it directly instead of invoking a
// pairing itself.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	bn254backend "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/backend/groth16"
)

func main() {
	vkPath := flag.String("vk", "./params/verifying_key.bin", "path to verifying_key.bin")
	outPath := flag.String("out", "./vkey.json", "output path for the snarkjs-compatible JSON")
	flag.Parse()

	if err := run(*vkPath, *outPath); err != nil {
		fmt.Fprintln(os.Stderr, "vktosnarkjs:", err)
		os.Exit(1)
	}
}

// vKeyJS mirrors the reference's VKeyJs struct field-for-field.
type vKeyJS struct {
	Protocol string `json:"protocol"`
	Curve    string `json:"curve"`
	NPublic  int    `json:"nPublic"`

	VkAlpha1 [2]string    `json:"vkAlpha1"`
	VkBeta2  [2][2]string `json:"vkBeta2"`
	VkGamma2 [2][2]string `json:"vkGamma2"`
	VkDelta2 [2][2]string `json:"vkDelta2"`

	VkAlphaBeta12 [3][2][2]string `json:"vkAlphabeta12"`

	IC [][2]string `json:"IC"`
}

func run(vkPath, outPath string) error {
	vkFile, err := os.Open(vkPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", vkPath, err)
	}
	defer vkFile.Close()

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(vkFile); err != nil {
		return fmt.Errorf("deserialising %s: %w", vkPath, err)
	}

	concrete, ok := vk.(*bn254backend.VerifyingKey)
	if !ok {
		return fmt.Errorf("unexpected verifying key concrete type %T", vk)
	}

	out := vKeyJS{
		Protocol: "groth16",
		Curve:    "bn128",
		NPublic:  len(concrete.G1.K) - 1,

		VkAlpha1: g1ToArr(concrete.G1.Alpha),
		VkBeta2:  g2ToArr(concrete.G2.Beta),
		VkGamma2: g2ToArr(concrete.G2.Gamma),
		VkDelta2: g2ToArr(concrete.G2.Delta),

		VkAlphaBeta12: gtToAlphaBeta12(concrete.E),
	}
	for _, k := range concrete.G1.K {
		out.IC = append(out.IC, g1ToArr(k))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling snarkjs vk: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func fqToStr(v fp.Element) string {
	var b big.Int
	v.BigInt(&b)
	return b.String()
}

func g1ToArr(p curve.G1Affine) [2]string {
	return [2]string{fqToStr(p.X), fqToStr(p.Y)}
}

// g2ToArr formats a G2 point snarkjs-style: each coordinate's Fq2 is
// ordered (imaginary, real) = (A1, A0).
func g2ToArr(p curve.G2Affine) [2][2]string {
	return [2][2]string{
		{fqToStr(p.X.A1), fqToStr(p.X.A0)},
		{fqToStr(p.Y.A1), fqToStr(p.Y.A0)},
	}
}

// gtToAlphaBeta12 formats the precomputed e(alpha, beta) GT element as
// snarkjs' 3x2x2 array, each leaf Fq2 ordered (imaginary, real).
func gtToAlphaBeta12(e curve.GT) [3][2][2]string {
	pair := func(im, re fp.Element) [2]string { return [2]string{fqToStr(im), fqToStr(re)} }

	return [3][2][2]string{
		{pair(e.C0.B0.A1, e.C0.B0.A0), pair(e.C1.B0.A1, e.C1.B0.A0)},
		{pair(e.C0.B1.A1, e.C0.B1.A0), pair(e.C1.B1.A1, e.C1.B1.A0)},
		{pair(e.C0.B2.A1, e.C0.B2.A0), pair(e.C1.B2.A1, e.C1.B2.A0)},
	}
}
