// Package genmetrics exposes Prometheus counters for the nexuskeycode-qa
// batch generator: how many keycodes were produced, broken down by
// protocol and message type, and how many constructions were rejected.
//
// Only the CLI/QA layer touches this package. The core codec packages
// (nexusprim, obscure, fullcode, smallcode, channelcmd, uartkey) are pure
// functions and never report metrics; they hold no state across calls.
package genmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "nexuskeycode"
	subsystem = "generator"
)

// Label names for generator metrics.
const (
	labelProtocol    = "protocol"     // "full" or "small"
	labelMessageType = "message_type" // e.g. "ADD_CREDIT", "CHANNEL_UNLINK_ALL"
	labelErrorKind   = "error_kind"   // sentinel error name
)

// Collector holds all nexuskeycode-qa Prometheus metrics.
type Collector struct {
	// KeycodesGenerated counts successfully rendered keycodes, labeled by
	// protocol and message type.
	KeycodesGenerated *prometheus.CounterVec

	// ConstructionErrors counts rejected constructions, labeled by protocol
	// and the sentinel error kind returned.
	ConstructionErrors *prometheus.CounterVec

	// ExtendedSmallCollisionRetries counts how many times the Extended
	// Small collision-avoidance window had to advance the requested ID
	// before finding a non-colliding one.
	ExtendedSmallCollisionRetries prometheus.Counter
}

// NewCollector creates a Collector with all generator metrics registered
// against the provided prometheus.Registerer. If reg is nil,
// prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.KeycodesGenerated,
		c.ConstructionErrors,
		c.ExtendedSmallCollisionRetries,
	)

	return c
}

// newMetrics creates all Prometheus metric vectors without registering them.
func newMetrics() *Collector {
	genLabels := []string{labelProtocol, labelMessageType}
	errLabels := []string{labelProtocol, labelErrorKind}

	return &Collector{
		KeycodesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "keycodes_total",
			Help:      "Total keycodes successfully rendered, by protocol and message type.",
		}, genLabels),

		ConstructionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "construction_errors_total",
			Help:      "Total rejected keycode constructions, by protocol and error kind.",
		}, errLabels),

		ExtendedSmallCollisionRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "extended_small_collision_retries_total",
			Help:      "Total ID advances performed by Extended Small collision avoidance.",
		}),
	}
}

// RecordKeycode increments the generated-keycode counter for the given
// protocol and message type.
func (c *Collector) RecordKeycode(protocol, messageType string) {
	c.KeycodesGenerated.WithLabelValues(protocol, messageType).Inc()
}

// RecordError increments the construction-error counter for the given
// protocol and sentinel error kind.
func (c *Collector) RecordError(protocol, errorKind string) {
	c.ConstructionErrors.WithLabelValues(protocol, errorKind).Inc()
}

// RecordCollisionRetry increments the Extended Small collision-retry
// counter by one advance of the requested ID.
func (c *Collector) RecordCollisionRetry() {
	c.ExtendedSmallCollisionRetries.Inc()
}
