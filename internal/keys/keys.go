// Package keys implements the Groth16 key lifecycle: load proving and
// verifying keys from disk if present, otherwise run circuit-specific
// setup on a dummy all-zero instance and persist the result.
//
// Ported from this codebase's reference keys.rs/main.rs load-or-generate
// flow. One thing does not carry over: arkworks' circuit_specific_setup
// takes an explicit seedable RNG (seed 0, for reproducibility), but
// gnark's groth16.Setup has no such parameter in its public API (see
// DESIGN.md) — it draws its own randomness internally. Determinism of
// the resulting keys is therefore not reproduced; it was never a
// soundness or zero-knowledge requirement, only a convenience the
// arkworks port happened to have.
package keys

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/rs/zerolog/log"

	"github.com/hexproof/hexproof/internal/circuit"
	"github.com/hexproof/hexproof/internal/dec"
)

// ErrConfigMismatch is returned when the (precision, maxVertices,
// maxHashes) digest stamped next to a persisted key disagrees with the
// values this binary was built with.
var ErrConfigMismatch = errors.New("keys: persisted key digest does not match this build's circuit parameters")

const (
	provingKeyFile    = "proving_key.bin"
	verifyingKeyFile  = "verifying_key.bin"
	digestFile        = "circuit_digest.bin"
	digestFileVersion = 1
)

// Lifecycle holds the compiled constraint system alongside the proving
// and verifying keys it was set up against.
type Lifecycle struct {
	CCS constraint.ConstraintSystem
	PK  groth16.ProvingKey
	VK  groth16.VerifyingKey
}

func paramPaths(dir string) (pk, vk, digest string) {
	return filepath.Join(dir, provingKeyFile), filepath.Join(dir, verifyingKeyFile), filepath.Join(dir, digestFile)
}

func digestBytes(maxVertices, maxHashes int) []byte {
	buf := make([]byte, 1+4+4+4)
	buf[0] = digestFileVersion
	binary.BigEndian.PutUint32(buf[1:5], uint32(dec.Precision))
	binary.BigEndian.PutUint32(buf[5:9], uint32(maxVertices))
	binary.BigEndian.PutUint32(buf[9:13], uint32(maxHashes))
	return buf
}

// LoadOrSetup loads proving/verifying keys from paramsDir if both files
// exist and their stamped digest matches this build's circuit parameters;
// otherwise it compiles the circuit, runs Groth16 setup on a dummy
// all-zero instance, and writes pk/vk/digest to paramsDir.
func LoadOrSetup(paramsDir string, maxVertices, maxHashes int) (*Lifecycle, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit.PointInMapCircuit{})
	if err != nil {
		return nil, fmt.Errorf("keys: compiling circuit: %w", err)
	}

	pkPath, vkPath, digestPath := paramPaths(paramsDir)

	if pk, vk, ok, err := tryLoad(pkPath, vkPath, digestPath, maxVertices, maxHashes); err != nil {
		return nil, err
	} else if ok {
		log.Info().Str("dir", paramsDir).Msg("loaded Groth16 keys from disk")
		return &Lifecycle{CCS: ccs, PK: pk, VK: vk}, nil
	}

	log.Info().Msg("no usable keys on disk; running one-shot Groth16 setup")

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("keys: groth16 setup: %w", err)
	}

	if err := writeKeys(paramsDir, pkPath, vkPath, digestPath, pk, vk, maxVertices, maxHashes); err != nil {
		return nil, err
	}

	log.Info().Str("dir", paramsDir).Msg("wrote Groth16 keys to disk")
	return &Lifecycle{CCS: ccs, PK: pk, VK: vk}, nil
}

func tryLoad(pkPath, vkPath, digestPath string, maxVertices, maxHashes int) (groth16.ProvingKey, groth16.VerifyingKey, bool, error) {
	if !fileExists(pkPath) || !fileExists(vkPath) || !fileExists(digestPath) {
		return nil, nil, false, nil
	}

	onDisk, err := os.ReadFile(digestPath)
	if err != nil {
		return nil, nil, false, fmt.Errorf("keys: reading digest: %w", err)
	}
	want := digestBytes(maxVertices, maxHashes)
	if string(onDisk) != string(want) {
		return nil, nil, false, ErrConfigMismatch
	}

	pkFile, err := os.Open(pkPath)
	if err != nil {
		return nil, nil, false, fmt.Errorf("keys: opening proving key: %w", err)
	}
	defer pkFile.Close()

	vkFile, err := os.Open(vkPath)
	if err != nil {
		return nil, nil, false, fmt.Errorf("keys: opening verifying key: %w", err)
	}
	defer vkFile.Close()

	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(pkFile); err != nil {
		return nil, nil, false, fmt.Errorf("keys: deserialising proving key: %w", err)
	}

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(vkFile); err != nil {
		return nil, nil, false, fmt.Errorf("keys: deserialising verifying key: %w", err)
	}

	return pk, vk, true, nil
}

func writeKeys(paramsDir, pkPath, vkPath, digestPath string, pk groth16.ProvingKey, vk groth16.VerifyingKey, maxVertices, maxHashes int) error {
	if err := os.MkdirAll(paramsDir, 0o755); err != nil {
		return fmt.Errorf("keys: creating params dir: %w", err)
	}

	pkFile, err := os.Create(pkPath)
	if err != nil {
		return fmt.Errorf("keys: creating proving key file: %w", err)
	}
	defer pkFile.Close()
	if _, err := pk.WriteTo(pkFile); err != nil {
		return fmt.Errorf("keys: serialising proving key: %w", err)
	}

	vkFile, err := os.Create(vkPath)
	if err != nil {
		return fmt.Errorf("keys: creating verifying key file: %w", err)
	}
	defer vkFile.Close()
	if _, err := vk.WriteTo(vkFile); err != nil {
		return fmt.Errorf("keys: serialising verifying key: %w", err)
	}

	if err := os.WriteFile(digestPath, digestBytes(maxVertices, maxHashes), 0o644); err != nil {
		return fmt.Errorf("keys: writing digest: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
