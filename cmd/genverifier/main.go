// Command genverifier is a one-shot CLI that reads a persisted Groth16
// verifying key and emits a Solidity on-chain verifier contract, using
// gnark's own VerifyingKey.ExportSolidity.
//
// Ported from this codebase's reference params/gen_verifier/src/main.rs,
// which hand-rolled the same export via arkworks-solidity-verifier; this
// port uses the export gnark itself ships rather than a third library.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
)

func main() {
	vkPath := flag.String("vk", "./params/verifying_key.bin", "path to verifying_key.bin")
	outPath := flag.String("out", "./Verifier.sol", "output path for the Solidity verifier")
	flag.Parse()

	if err := run(*vkPath, *outPath); err != nil {
		fmt.Fprintln(os.Stderr, "genverifier:", err)
		os.Exit(1)
	}
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

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	if err := vk.ExportSolidity(out); err != nil {
		return fmt.Errorf("exporting Solidity verifier: %w", err)
	}

	fmt.Printf("wrote %s\n", outPath)
	return nil
}
