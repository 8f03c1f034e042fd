// Package metrics exposes operational counters over Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts the events worth watching in production: posted items,
// match upserts, notifications, and embedding-provider calls by outcome.
type Collector struct {
	itemsCreated    prometheus.Counter
	matchesUpserted prometheus.Counter
	notifications   prometheus.Counter
	embeddingCalls  *prometheus.CounterVec
}

// NewCollector registers the counters on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		itemsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campustrace_items_created_total",
			Help: "Total lost/found items posted.",
		}),
		matchesUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campustrace_matches_upserted_total",
			Help: "Total match rows created or re-scored.",
		}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campustrace_notifications_total",
			Help: "Total notifications emitted.",
		}),
		embeddingCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campustrace_embedding_calls_total",
			Help: "Embedding provider calls by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(c.itemsCreated, c.matchesUpserted, c.notifications, c.embeddingCalls)
	return c
}

func (c *Collector) RecordItemCreated()   { c.itemsCreated.Inc() }
func (c *Collector) RecordMatchUpserted() { c.matchesUpserted.Inc() }
func (c *Collector) RecordNotification()  { c.notifications.Inc() }

// RecordEmbeddingCall counts one provider call; outcome is "ok" or "error".
func (c *Collector) RecordEmbeddingCall(outcome string) {
	c.embeddingCalls.WithLabelValues(outcome).Inc()
}
