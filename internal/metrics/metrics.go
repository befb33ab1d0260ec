// Package metrics exposes Prometheus collectors for the refresh pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// GlobalRisk tracks the latest global risk scalar
	GlobalRisk = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ghostquant_global_risk",
			Help: "Global risk of the latest aggregated heatmap",
		},
	)

	// LayerMaxScore tracks the highest score per heatmap layer
	LayerMaxScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ghostquant_layer_max_score",
			Help: "Highest score in each heatmap layer",
		},
		[]string{"layer"},
	)

	// SpikesDetected counts spikes found across refreshes
	SpikesDetected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghostquant_spikes_total",
			Help: "Total number of score spikes detected",
		},
		[]string{"layer"},
	)

	// RefreshTotal counts refreshes by pipeline and data source
	RefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ghostquant_refresh_total",
			Help: "Total number of refreshes by pipeline and source",
		},
		[]string{"pipeline", "source"},
	)

	// RefreshDuration tracks how long refreshes take
	RefreshDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ghostquant_refresh_duration_seconds",
			Help:    "Refresh latency by pipeline",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"pipeline"},
	)

	// GraphSize tracks the held entity graph
	GraphSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ghostquant_graph_size",
			Help: "Number of nodes and edges in the held entity graph",
		},
		[]string{"kind"},
	)

	// StreamClients tracks connected websocket subscribers
	StreamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ghostquant_stream_clients",
			Help: "Connected heatmap stream subscribers",
		},
	)
)

// Pipeline label values
const (
	PipelineHeatmap       = "heatmap"
	PipelineConstellation = "constellation"
)

func init() {
	prometheus.MustRegister(GlobalRisk)
	prometheus.MustRegister(LayerMaxScore)
	prometheus.MustRegister(SpikesDetected)
	prometheus.MustRegister(RefreshTotal)
	prometheus.MustRegister(RefreshDuration)
	prometheus.MustRegister(GraphSize)
	prometheus.MustRegister(StreamClients)
}
