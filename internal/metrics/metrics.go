// Package metrics records analysis timings and graph sizes in a private
// Prometheus registry that can be exported in the text exposition format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "graphstat"

// Recorder owns a registry and the collectors registered on it. A nil
// *Recorder is a valid no-op recorder.
type Recorder struct {
	registry *prometheus.Registry

	graphNodes   prometheus.Gauge
	graphEdges   prometheus.Gauge
	passDuration *prometheus.HistogramVec
	sampledPairs *prometheus.CounterVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		graphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "nodes",
			Help:      "Number of nodes in the loaded graph",
		}),
		graphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "edges",
			Help:      "Number of undirected edges in the loaded graph",
		}),
		passDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Wall time of each analysis pass",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"pass"}),
		sampledPairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sampled_pairs_total",
			Help:      "Node pairs drawn for path-length sampling by outcome",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.graphNodes, r.graphEdges, r.passDuration, r.sampledPairs)
	return r
}

// Registry exposes the underlying registry, e.g. for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// SetGraphSize records the size of the loaded graph.
func (r *Recorder) SetGraphSize(nodes, edges int) {
	if r == nil {
		return
	}
	r.graphNodes.Set(float64(nodes))
	r.graphEdges.Set(float64(edges))
}

// ObservePass records how long an analysis pass took.
func (r *Recorder) ObservePass(pass string, d time.Duration) {
	if r == nil {
		return
	}
	r.passDuration.WithLabelValues(pass).Observe(d.Seconds())
}

// AddSampledPairs counts sampled pairs split by reachability.
func (r *Recorder) AddSampledPairs(reachable, unreachable int) {
	if r == nil {
		return
	}
	r.sampledPairs.WithLabelValues("reachable").Add(float64(reachable))
	r.sampledPairs.WithLabelValues("unreachable").Add(float64(unreachable))
}

// WriteTextfile writes every collected metric to path in the Prometheus
// text format, suitable for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
