package app

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks fileserver visits. The atomic counter backs the admin
// HTML page (which needs the exact number, and reset); the Prometheus
// counter feeds /metrics for scraping.
type Metrics struct {
	hits     atomic.Int64
	promHits prometheus.Counter
	registry *prometheus.Registry
}

// NewMetrics builds a Metrics with its own registry so tests can run many
// instances without collisions.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	promHits := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "chirpy",
		Name:      "fileserver_hits_total",
		Help:      "Number of requests served by the /app fileserver.",
	})
	reg.MustRegister(promHits)

	return &Metrics{promHits: promHits, registry: reg}
}

// CountHit records one fileserver visit.
func (m *Metrics) CountHit() {
	m.hits.Add(1)
	m.promHits.Inc()
}

// Hits reports the visits since start or last reset.
func (m *Metrics) Hits() int64 {
	return m.hits.Load()
}

// Reset zeroes the admin counter. The Prometheus counter is left alone;
// counters are cumulative by contract and rate() handles restarts.
func (m *Metrics) Reset() {
	m.hits.Store(0)
}

// PromHandler serves the Prometheus exposition endpoint.
func (m *Metrics) PromHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

const adminMetricsHTML = `<html>
<body>
    <h1>Welcome, Chirpy Admin</h1>
    <p>Chirpy has been visited %d times!</p>
</body>
</html>`

// ServeAdminPage renders the human-readable hit counter.
func (m *Metrics) ServeAdminPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, adminMetricsHTML, m.Hits())
}
