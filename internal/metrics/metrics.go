// Package metrics exposes Prometheus counters/histograms for the
// codec's surrounding machinery, generalizing poyrazK-cloudDNS's
// internal/infrastructure/metrics package (same promauto construction
// style) to this domain. internal/polyseme never imports this package
// directly — it only calls the small BuilderMetrics/ParserMetrics
// interfaces it declares itself, which Registry below satisfies.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SetsBuilt counts ContentSets finalized by a Builder.
	SetsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyseme_sets_built_total",
		Help: "Total number of ContentSets finalized by the builder",
	})

	// BytesConsumed counts raw input bytes handed to a Builder.
	BytesConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyseme_bytes_consumed_total",
		Help: "Total number of raw bytes consumed by the builder",
	})

	// SetWireSize histograms the wire size of each finalized ContentSet.
	SetWireSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "polyseme_set_wire_size_bytes",
		Help:    "Wire size of finalized ContentSets",
		Buckets: prometheus.ExponentialBuckets(64, 2, 12),
	})

	// RecordsFetched counts RecordFetcher.Record calls made by a Parser.
	RecordsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyseme_records_fetched_total",
		Help: "Total number of records fetched by the parser",
	})

	// BytesProduced counts decoded payload bytes emitted by a Parser.
	BytesProduced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polyseme_bytes_produced_total",
		Help: "Total number of decoded bytes produced by the parser",
	})
)

// Registry adapts the package-level collectors above to the
// polyseme.BuilderMetrics and polyseme.ParserMetrics interfaces.
type Registry struct{}

func (Registry) SetFinalized(wireSize int) {
	SetsBuilt.Inc()
	SetWireSize.Observe(float64(wireSize))
}

func (Registry) BytesConsumed(n int) {
	BytesConsumed.Add(float64(n))
}

func (Registry) RecordFetched() {
	RecordsFetched.Inc()
}

func (Registry) BytesProduced(n int) {
	BytesProduced.Add(float64(n))
}
