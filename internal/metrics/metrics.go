package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	fetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "drand_client_http_fetch_total",
		Help: "Number of HTTP fetches issued against the beacon API, by outcome.",
	}, []string{"outcome"})

	verificationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "drand_client_verification_failures_total",
		Help: "Number of fetched beacons rejected by scheme verification.",
	})
)

// RegisterClientMetrics registers the client metrics on the given registry.
func RegisterClientMetrics(r prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{fetchTotal, verificationFailures} {
		if err := r.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// FetchSuccess counts one completed HTTP fetch.
func FetchSuccess() {
	fetchTotal.WithLabelValues("success").Inc()
}

// FetchFailure counts one HTTP fetch that did not produce a body.
func FetchFailure() {
	fetchTotal.WithLabelValues("failure").Inc()
}

// VerificationFailure counts one beacon rejected by the active scheme.
func VerificationFailure() {
	verificationFailures.Inc()
}
