// Package telemetry wires structured logging (zerolog) and a Prometheus
// metrics collector for the engine's external collaborators. Neither
// touches internal/book directly; callers record events after Submit/Cancel
// return.
package telemetry

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog console logger at the given level ("debug",
// "info", "warn", "error"). Unrecognized levels fall back to info.
func NewLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(parsed).
		With().
		Timestamp().
		Logger()
}

// Collector holds the Prometheus metrics for one corebook process, scoped
// to what the matching core and its ingest/report collaborators emit.
type Collector struct {
	OrdersReceived  *prometheus.CounterVec
	OrdersMatched   prometheus.Counter
	OrdersCancelled prometheus.Counter
	OrdersRejected  *prometheus.CounterVec
	TradesExecuted  prometheus.Counter
	TradeVolume     prometheus.Counter
	SubmitLatency   prometheus.Histogram
	OrdersResting   prometheus.Gauge
}

// NewCollector builds and registers a Collector against reg. Pass
// prometheus.NewRegistry() for an isolated registry (tests, multiple
// books in one process) or prometheus.DefaultRegisterer for a single
// process-wide set exposed at /metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		OrdersReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corebook",
			Subsystem: "orders",
			Name:      "received_total",
			Help:      "Orders submitted to the book, labeled by side and kind.",
		}, []string{"side", "kind"}),
		OrdersMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corebook",
			Subsystem: "orders",
			Name:      "matched_total",
			Help:      "Submit calls that produced at least one trade.",
		}),
		OrdersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corebook",
			Subsystem: "orders",
			Name:      "cancelled_total",
			Help:      "Orders removed via Cancel.",
		}),
		OrdersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corebook",
			Subsystem: "orders",
			Name:      "rejected_total",
			Help:      "Requests rejected by ingest validation or by Submit, labeled by reason.",
		}, []string{"reason"}),
		TradesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corebook",
			Subsystem: "trades",
			Name:      "executed_total",
			Help:      "Trades recorded in the book's trade log.",
		}),
		TradeVolume: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "corebook",
			Subsystem: "trades",
			Name:      "volume_total",
			Help:      "Cumulative traded quantity, as a float64 approximation of the exact decimal total.",
		}),
		SubmitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "corebook",
			Subsystem: "engine",
			Name:      "submit_latency_seconds",
			Help:      "Wall-clock time spent inside a single Orderbook.Submit call.",
			Buckets:   prometheus.DefBuckets,
		}),
		OrdersResting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "corebook",
			Subsystem: "orderbook",
			Name:      "resting_orders",
			Help:      "Current count of resting orders in the book.",
		}),
	}
	reg.MustRegister(
		c.OrdersReceived, c.OrdersMatched, c.OrdersCancelled, c.OrdersRejected,
		c.TradesExecuted, c.TradeVolume, c.SubmitLatency, c.OrdersResting,
	)
	return c
}

// Handler exposes the collector's registry for a Prometheus scrape, the
// only network surface this repository adds; it serves observability
// data, not order submission.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Timer measures elapsed wall-clock time for SubmitLatency observations.
type Timer struct{ start time.Time }

func NewTimer() Timer { return Timer{start: time.Now()} }

func (t Timer) ObserveSeconds(h prometheus.Histogram) {
	h.Observe(time.Since(t.start).Seconds())
}
