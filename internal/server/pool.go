// pool.go implements the bounded worker pool spec.md §5 requires: proving
// is CPU-bound and synchronous, so it must never run directly on a gin
// handler goroutine serving other requests concurrently on the same
// reactor. A fixed number of worker goroutines pull jobs off a buffered
// channel; a full queue is reported back to the caller as a 503 rather
// than growing unboundedly.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/hexproof/hexproof/internal/circuit"
)

// ErrPoolSaturated is returned when the prover pool's queue is full.
var ErrPoolSaturated = errors.New("server: prover pool saturated")

// ProofResult is what a successful proving job produces: the proof
// itself plus the public witness it was proved against (so the caller
// can serialise public_inputs without recomputing anything).
type ProofResult struct {
	Proof      groth16.Proof
	Assignment circuit.PointInMapCircuit
}

type proveJob struct {
	assignment circuit.PointInMapCircuit
	result     chan proveJobResult
}

type proveJobResult struct {
	res ProofResult
	err error
}

// ProverPool runs Groth16 proving jobs on a fixed number of worker
// goroutines, off of whichever goroutine is serving the HTTP request.
type ProverPool struct {
	ccs  constraint.ConstraintSystem
	pk   groth16.ProvingKey
	jobs chan proveJob
	stop chan struct{}
}

// NewProverPool starts workers worker goroutines, each pulling jobs off a
// queue of size queueSize.
func NewProverPool(ccs constraint.ConstraintSystem, pk groth16.ProvingKey, workers, queueSize int) *ProverPool {
	p := &ProverPool{
		ccs:  ccs,
		pk:   pk,
		jobs: make(chan proveJob, queueSize),
		stop: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *ProverPool) worker() {
	for {
		select {
		case job := <-p.jobs:
			job.result <- p.proveOne(job.assignment)
		case <-p.stop:
			return
		}
	}
}

func (p *ProverPool) proveOne(assignment circuit.PointInMapCircuit) proveJobResult {
	fullWitness, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
	if err != nil {
		return proveJobResult{err: fmt.Errorf("building witness: %w", err)}
	}

	proof, err := groth16.Prove(p.ccs, p.pk, fullWitness)
	if err != nil {
		return proveJobResult{err: fmt.Errorf("proving: %w", err)}
	}

	return proveJobResult{res: ProofResult{Proof: proof, Assignment: assignment}}
}

// Prove submits assignment for proving and blocks until a worker picks it
// up and finishes, the context is cancelled, or the queue is full.
func (p *ProverPool) Prove(ctx context.Context, assignment circuit.PointInMapCircuit) (ProofResult, error) {
	job := proveJob{assignment: assignment, result: make(chan proveJobResult, 1)}

	select {
	case p.jobs <- job:
	default:
		return ProofResult{}, ErrPoolSaturated
	}

	select {
	case out := <-job.result:
		return out.res, out.err
	case <-ctx.Done():
		// The in-flight proof is allowed to run to completion and have
		// its result dropped, per spec.md §5's cancellation policy: we
		// stop waiting, but the worker goroutine still finishes the job.
		return ProofResult{}, ctx.Err()
	}
}

// Close stops all worker goroutines. Jobs already queued are abandoned.
func (p *ProverPool) Close() {
	close(p.stop)
}
