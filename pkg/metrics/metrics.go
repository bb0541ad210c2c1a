// Package metrics is a dedicated Prometheus registry for the request
// surface, grounded on joshuarotgers-USPS_Main's internal/metrics/metrics.go
// (separate registry, counter+histogram vecs, once-guarded registration).
// The teacher's own pkg/metrics is CRP customization cost-function math,
// not observability, so it has no counterpart here — see DESIGN.md.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by route, method, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "examallot_http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "examallot_http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)

	// BuildDuration records the `build` operation's end-to-end time, per
	// spec.md §6's timing.total_ms field.
	BuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "examallot_build_duration_seconds", Help: "build operation wall-clock time in seconds."},
	)

	// AllotDuration records the `allot` operation's end-to-end time.
	AllotDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "examallot_allot_duration_seconds", Help: "allot operation wall-clock time in seconds."},
	)

	// UnassignedStudents tracks, after the most recent allot, how many
	// students received no centre (spec.md §7's "student unreachable from
	// any centre" outcome).
	UnassignedStudents = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "examallot_unassigned_students", Help: "Students left unassigned after the most recent allot."},
	)

	// SSSPSpeedup records the parallel SSSP coordinator's
	// Σ(per-task time)/wall-clock speedup estimate (spec.md §4.6).
	SSSPSpeedup = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "examallot_sssp_speedup_ratio", Help: "Most recent parallel SSSP speedup estimate."},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry exactly once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(BuildDuration)
		Registry.MustRegister(AllotDuration)
		Registry.MustRegister(UnassignedStudents)
		Registry.MustRegister(SSSPSpeedup)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
