package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "primecalc"

// Recorder owns a private Prometheus registry with the primality collectors.
// It is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	checked      *prometheus.CounterVec
	rejected     prometheus.Counter
	phaseSeconds *prometheus.HistogramVec
	speedup      prometheus.Gauge
	threads      prometheus.Gauge
	activeReqs   prometheus.Gauge
	requests     *prometheus.CounterVec
}

// NewRecorder creates a Recorder with Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		checked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "candidates_checked_total",
			Help:      "Candidates tested, by verdict.",
		}, []string{"verdict"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "candidates_rejected_total",
			Help:      "Arguments rejected because they are not valid 64-bit integers.",
		}),
		phaseSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "phase_duration_seconds",
			Help:      "Wall-clock time of the sequential and parallel phases.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"phase"}),
		speedup: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_speedup_ratio",
			Help:      "Sequential over parallel time for the most recent candidate.",
		}),
		threads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "threads",
			Help:      "Partition count used by the parallel phase.",
		}),
		activeReqs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by path and status code.",
		}, []string{"path", "code"}),
	}
	r.registry.MustRegister(
		r.checked, r.rejected, r.phaseSeconds, r.speedup, r.threads, r.activeReqs, r.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// SetThreads records the partition count.
func (r *Recorder) SetThreads(n int) {
	r.threads.Set(float64(n))
}

// ObserveCheck records one completed candidate.
func (r *Recorder) ObserveCheck(prime bool, sequential, parallel time.Duration, speedup float64) {
	verdict := "composite"
	if prime {
		verdict = "prime"
	}
	r.checked.WithLabelValues(verdict).Inc()
	r.phaseSeconds.WithLabelValues("sequential").Observe(sequential.Seconds())
	r.phaseSeconds.WithLabelValues("parallel").Observe(parallel.Seconds())
	r.speedup.Set(speedup)
}

// ObserveRejected records one argument that failed to parse.
func (r *Recorder) ObserveRejected() {
	r.rejected.Inc()
}

// IncrementActiveRequests marks the start of an HTTP request.
func (r *Recorder) IncrementActiveRequests() { r.activeReqs.Inc() }

// DecrementActiveRequests marks the end of an HTTP request.
func (r *Recorder) DecrementActiveRequests() { r.activeReqs.Dec() }

// ObserveRequest counts a served HTTP request.
func (r *Recorder) ObserveRequest(path string, code int) {
	r.requests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// Gatherer exposes the registry for tests and exporters.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current metrics to path atomically, in the format
// read by the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
