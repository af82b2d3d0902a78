// Package config loads process configuration for hexproofd: an optional
// YAML file overlaid with HEXPROOF_*-prefixed environment variables, env
// always winning. The env-var-with-default helper style is ported from
// certenIO-certen-validator's pkg/config; the YAML layer adds
// gopkg.in/yaml.v3, the file-config library that repo also depends on.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is process-wide configuration for the prove/verify HTTP service.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `yaml:"listen_addr"`
	// ParamsDir is where the Groth16 proving/verifying keys (and their
	// config digest) are loaded from and persisted to.
	ParamsDir string `yaml:"params_dir"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// ProverPoolSize bounds how many Groth16 proofs run concurrently.
	ProverPoolSize int `yaml:"prover_pool_size"`
	// ProverQueueSize bounds how many prove requests may wait for a free
	// pool worker before the server starts rejecting with 503.
	ProverQueueSize int `yaml:"prover_queue_size"`

	// MaxVertices, MaxHashes, and Precision record the circuit
	// parameters this config was written for. They are NOT wired to
	// change the compiled circuit (geo2d.MaxVertices, circuit.MaxHashes,
	// and dec.Precision are Go constants, per spec.md §9's "fixed before
	// setup" requirement). MaxVertices and MaxHashes are stamped by
	// internal/keys into a digest next to the keys at setup and compared
	// on every later load, so a value that changed since setup is
	// rejected (DESIGN.md Open Question 3); they are not compared with
	// the compiled constants. Precision is not read: the digest takes
	// dec.Precision directly.
	MaxVertices int `yaml:"max_vertices"`
	MaxHashes   int `yaml:"max_hashes"`
	Precision   int `yaml:"precision"`
}

// Defaults returns the baseline configuration matching spec.md's values.
func Defaults() Config {
	return Config{
		ListenAddr:      "0.0.0.0:8080",
		ParamsDir:       "./params",
		LogLevel:        "info",
		ProverPoolSize:  4,
		ProverQueueSize: 64,
		MaxVertices:     6,
		MaxHashes:       1024,
		Precision:       8,
	}
}

// Load builds a Config starting from Defaults, overlaying a YAML file at
// path if it exists (a missing file is not an error), then overlaying
// HEXPROOF_*-prefixed environment variables.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	cfg.ListenAddr = getEnv("HEXPROOF_LISTEN_ADDR", cfg.ListenAddr)
	cfg.ParamsDir = getEnv("HEXPROOF_PARAMS_DIR", cfg.ParamsDir)
	cfg.LogLevel = getEnv("HEXPROOF_LOG_LEVEL", cfg.LogLevel)
	cfg.ProverPoolSize = getEnvInt("HEXPROOF_PROVER_POOL_SIZE", cfg.ProverPoolSize)
	cfg.ProverQueueSize = getEnvInt("HEXPROOF_PROVER_QUEUE_SIZE", cfg.ProverQueueSize)
	cfg.MaxVertices = getEnvInt("HEXPROOF_MAX_VERTICES", cfg.MaxVertices)
	cfg.MaxHashes = getEnvInt("HEXPROOF_MAX_HASHES", cfg.MaxHashes)
	cfg.Precision = getEnvInt("HEXPROOF_PRECISION", cfg.Precision)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}
