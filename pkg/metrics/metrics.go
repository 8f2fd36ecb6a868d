package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wardrobe"

// Classification outcomes.
const (
	OutcomeDetected  = "detected"
	OutcomeUnmatched = "unmatched"
	OutcomePreset    = "preset"
)

// AI call statuses.
const (
	StatusOK          = "ok"
	StatusError       = "error"
	StatusBadResponse = "bad_response"
)

// Collector holds the service counters. A nil *Collector records nothing.
type Collector struct {
	resolutions     *prometheus.CounterVec
	classifications *prometheus.CounterVec
	aiCalls         *prometheus.CounterVec
	aiLatency       *prometheus.HistogramVec
}

func New() *Collector {
	c := &Collector{}

	c.resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Outfit item references resolved, by chain and winning step",
	}, []string{"chain", "step"})

	c.classifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classifications_total",
		Help:      "Subcategory classifications by outcome",
	}, []string{"outcome"})

	c.aiCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_calls_total",
		Help:      "Generative AI calls by operation and status",
	}, []string{"operation", "status"})

	c.aiLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_call_duration_seconds",
		Help:      "Generative AI call latency by operation",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"operation"})

	return c
}

func (c *Collector) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		c.resolutions,
		c.classifications,
		c.aiCalls,
		c.aiLatency,
	)
}

func (c *Collector) ObserveResolution(chain, step string) {
	if c == nil {
		return
	}
	c.resolutions.WithLabelValues(chain, step).Inc()
}

func (c *Collector) ObserveClassification(outcome string) {
	if c == nil {
		return
	}
	c.classifications.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveAICall(operation, status string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.aiCalls.WithLabelValues(operation, status).Inc()
	c.aiLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}
