// handlers.go implements the three HTTP routes of spec.md §6: /prove,
// /verify, /healthz. Error framing follows spec.md §7: bad-request
// conditions are HTTP 400; proving/verification failures are always
// HTTP 200 with an ok:false body, because they're application-level
// outcomes the caller must branch on, not transport errors.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/gin-gonic/gin"

	"github.com/hexproof/hexproof/internal/witness"
)

type proveRequest struct {
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Resolution uint8    `json:"resolution"`
	H3Map      []string `json:"h3_map"`
}

type proveResponse struct {
	OK           bool      `json:"ok"`
	Proof        proofJSON `json:"proof,omitempty"`
	PublicInputs []string  `json:"public_inputs,omitempty"`
	ErrMsg       string    `json:"err_msg,omitempty"`
}

func (s *Server) handleProve(c *gin.Context) {
	var req proveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestsTotal.WithLabelValues("prove", "bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "err_msg": "malformed request body: " + err.Error()})
		return
	}

	inst, err := witness.Build(witness.Query{
		Lat:             req.Lat,
		Lon:             req.Lon,
		Resolution:      req.Resolution,
		AuthorisedCells: req.H3Map,
	})
	if err != nil {
		requestsTotal.WithLabelValues("prove", "bad_request").Inc()
		if errors.Is(err, witness.ErrInvalidResolution) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "err_msg": "invalid resolution"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "err_msg": err.Error()})
		return
	}

	assignment := inst.Assignment()

	start := time.Now()
	result, err := s.pool.Prove(c.Request.Context(), assignment)
	if err != nil {
		if errors.Is(err, ErrPoolSaturated) {
			requestsTotal.WithLabelValues("prove", "saturated").Inc()
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "err_msg": "prover pool saturated, retry later"})
			return
		}
		proveDuration.WithLabelValues("failure").Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues("prove", "failure").Inc()
		c.JSON(http.StatusOK, proveResponse{OK: false, ErrMsg: "proof generation failed: " + err.Error()})
		return
	}
	proveDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	proofWire, err := encodeProof(result.Proof)
	if err != nil {
		requestsTotal.WithLabelValues("prove", "failure").Inc()
		c.JSON(http.StatusOK, proveResponse{OK: false, ErrMsg: "proof encoding failed: " + err.Error()})
		return
	}

	flag, err := variableToField(result.Assignment.InMapFlag)
	if err != nil {
		requestsTotal.WithLabelValues("prove", "failure").Inc()
		c.JSON(http.StatusOK, proveResponse{OK: false, ErrMsg: "encoding public inputs: " + err.Error()})
		return
	}
	hashes := make([]fr.Element, 0, len(result.Assignment.AuthorisedHashes))
	for _, h := range result.Assignment.AuthorisedHashes {
		he, err := variableToField(h)
		if err != nil {
			requestsTotal.WithLabelValues("prove", "failure").Inc()
			c.JSON(http.StatusOK, proveResponse{OK: false, ErrMsg: "encoding public inputs: " + err.Error()})
			return
		}
		hashes = append(hashes, he)
	}

	requestsTotal.WithLabelValues("prove", "success").Inc()
	c.JSON(http.StatusOK, proveResponse{
		OK:           true,
		Proof:        proofWire,
		PublicInputs: encodePublicInputs(flag, hashes),
	})
}

type verifyRequest struct {
	Proof        proofJSON `json:"proof"`
	PublicInputs []string  `json:"public_inputs"`
}

type verifyResponse struct {
	OK     bool   `json:"ok"`
	ErrMsg string `json:"err_msg,omitempty"`
}

func (s *Server) handleVerify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestsTotal.WithLabelValues("verify", "bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "err_msg": "malformed request body: " + err.Error()})
		return
	}

	proof, err := decodeProof(req.Proof)
	if err != nil {
		requestsTotal.WithLabelValues("verify", "bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "err_msg": err.Error()})
		return
	}

	flag, hashes, err := decodePublicInputs(req.PublicInputs)
	if err != nil {
		requestsTotal.WithLabelValues("verify", "bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "err_msg": err.Error()})
		return
	}

	publicWitness, err := s.publicWitness(flag, hashes)
	if err != nil {
		requestsTotal.WithLabelValues("verify", "bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "err_msg": "building public witness: " + err.Error()})
		return
	}

	if err := groth16.Verify(proof, s.vk, publicWitness); err != nil {
		requestsTotal.WithLabelValues("verify", "rejected").Inc()
		c.JSON(http.StatusOK, verifyResponse{OK: false})
		return
	}

	requestsTotal.WithLabelValues("verify", "accepted").Inc()
	c.JSON(http.StatusOK, verifyResponse{OK: true})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
