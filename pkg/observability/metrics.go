// Package observability exposes Prometheus instrumentation for a lattice
// registry: a gauge of registered definitions and counters over the
// construction pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/latticekit/lattice"
)

// Metrics instruments a registry. It implements prometheus.Collector and
// can be registered on any Registerer (including the default one).
type Metrics struct {
	registry *lattice.Registry

	definitions   prometheus.GaugeFunc
	constructions *prometheus.CounterVec
}

// New creates instrumentation bound to the given registry.
func New(registry *lattice.Registry) *Metrics {
	m := &Metrics{registry: registry}

	m.definitions = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "lattice_definitions",
			Help: "Number of registered struct definitions",
		},
		func() float64 { return float64(len(registry.Definitions())) },
	)
	m.constructions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lattice_constructions_total",
			Help: "Total construction attempts by definition and outcome",
		},
		[]string{"definition", "outcome"},
	)

	return m
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.definitions.Describe(ch)
	m.constructions.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.definitions.Collect(ch)
	m.constructions.Collect(ch)
}

// Construct runs the definition's construction pipeline and records the
// outcome under the definition's name.
func (m *Metrics) Construct(d *lattice.Definition, input any) (*lattice.Instance, error) {
	inst, err := d.Construct(input)
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.constructions.WithLabelValues(d.Name(), outcome).Inc()
	return inst, err
}
