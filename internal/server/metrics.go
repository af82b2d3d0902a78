// metrics.go wires the Prometheus instrumentation promised by this
// codebase's use of prometheus/client_golang: request counters for
// /prove and /verify broken out by outcome, and a histogram of proving
// latency. Registered against the default registry via promauto, the
// same registry promhttp.Handler() in server.go serves at /metrics.
package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hexproof",
		Name:      "requests_total",
		Help:      "Total number of /prove and /verify requests by outcome.",
	}, []string{"endpoint", "outcome"})

	proveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hexproof",
		Name:      "prove_duration_seconds",
		Help:      "Time spent generating a Groth16 proof in handleProve.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})
)
