// Package metrics exposes the kernel's page-fault, eviction, and
// context-switch counters through a prometheus registry. No HTTP
// listener runs by default; the registry is still wired so a
// host process can scrape it (via promhttp.Handler()) if it chooses to.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every counter/gauge the kernel updates as it runs.
type Metrics struct {
	Registry *prometheus.Registry

	PageFaults      prometheus.Counter
	Evictions       prometheus.Counter
	ContextSwitches prometheus.Counter
	FramesResident  prometheus.Gauge
}

// New builds and registers a fresh counter set.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		PageFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "osushell",
			Name:      "page_faults_total",
			Help:      "Total number of page faults handled by the pager.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "osushell",
			Name:      "frame_evictions_total",
			Help:      "Total number of LRU frame evictions.",
		}),
		ContextSwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "osushell",
			Name:      "context_switches_total",
			Help:      "Total number of times a process was re-enqueued (quantum expiry or fault yield).",
		}),
		FramesResident: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "osushell",
			Name:      "frames_resident",
			Help:      "Number of frames currently holding a loaded page.",
		}),
	}

	reg.MustRegister(m.PageFaults, m.Evictions, m.ContextSwitches, m.FramesResident)
	return m
}
