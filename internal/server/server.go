// server.go assembles the gin engine: CORS, routes, and the shared
// dependencies every handler needs (the prover pool and the verifying
// key). Grounded on the reference service's cmd/api wiring pattern: a
// thin Server struct holding its dependencies, an exported New that wires
// middleware and routes once, and an Engine method returning the gin
// engine for cmd/hexproofd to serve.
package server

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hexproof/hexproof/internal/circuit"
)

// Server holds the dependencies shared by the HTTP handlers.
type Server struct {
	engine *gin.Engine
	pool   *ProverPool
	vk     groth16.VerifyingKey
}

// New builds a Server wired to the given verifying key and prover pool.
func New(vk groth16.VerifyingKey, pool *ProverPool) *Server {
	s := &Server{vk: vk, pool: pool}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
	}))

	engine.POST("/prove", s.handleProve)
	engine.POST("/verify", s.handleVerify)
	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.engine = engine
	return s
}

// Engine exposes the underlying gin engine, e.g. for http.Server.Handler.
func (s *Server) Engine() *gin.Engine { return s.engine }

// publicWitness reconstructs a public-only witness for groth16.Verify
// from the decoded wire values: an assignment of the circuit with only
// its public fields populated, everything else left at zero value.
func (s *Server) publicWitness(flag fr.Element, hashes []fr.Element) (witness.Witness, error) {
	var assignment circuit.PointInMapCircuit
	assignment.InMapFlag = flag
	for i, h := range hashes {
		if i >= circuit.MaxHashes {
			break
		}
		assignment.AuthorisedHashes[i] = h
	}

	w, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return nil, fmt.Errorf("building public witness: %w", err)
	}
	return w, nil
}
