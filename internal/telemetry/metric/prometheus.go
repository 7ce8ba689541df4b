package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/trilium-cli/internal/infra/buildinfo"
)

const namespace = "trilium_cli"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// RequestsTotal counts ETAPI round trips by method, route and status.
	RequestsTotal *prometheus.CounterVec
	// RequestDuration observes ETAPI round-trip latency by method and route.
	RequestDuration *prometheus.HistogramVec
	// CommandsTotal counts finished commands by name and result kind.
	CommandsTotal *prometheus.CounterVec
	// CommandDuration observes whole-command latency by name.
	CommandDuration *prometheus.HistogramVec
}

// NewRegistry creates a new metrics registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "etapi_requests_total",
			Help:      "ETAPI requests sent, by method, route and HTTP status (0 = no response).",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "etapi_request_duration_seconds",
			Help:      "ETAPI request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands run, by command and result (ok or error kind).",
		}, []string{"command", "result"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command latency including every ETAPI round trip.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
	}

	info := buildinfo.Get()
	buildInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "build_info",
		Help:        "Build information of the CLI.",
		ConstLabels: prometheus.Labels{"version": info.Version, "commit": info.Commit},
	})
	buildInfo.Set(1)

	r.registry.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.CommandsTotal,
		r.CommandDuration,
		buildInfo,
	)
	return r
}

// ObserveRequest records one ETAPI round trip.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveCommand records a finished command. result is "ok" or an error kind.
func (r *Registry) ObserveCommand(command, result string, elapsed time.Duration) {
	r.CommandsTotal.WithLabelValues(command, result).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// Gatherer returns the underlying registry for exposition.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The write is atomic, so a node_exporter textfile collector never reads a
// partial file.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
