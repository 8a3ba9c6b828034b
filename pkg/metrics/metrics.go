package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	CartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutation requests accepted by the pipeline",
		},
		[]string{"op"}, // increment|decrement|set|remove|refresh
	)
	CartFlushes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_flushes_total",
			Help: "Writes sent to the remote cart API",
		},
		[]string{"reason", "result"}, // debounce|reconcile|remove, ok|error
	)
	CartSuperseded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_superseded_total",
			Help: "Coordination tasks cancelled by a newer mutation",
		},
	)
	CartPendingWrites = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_pending_writes",
			Help: "Products with quantity intent not yet flushed",
		},
	)
	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_gateway_request_duration_seconds",
			Help:    "Remote cart API call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "result"}, // fetch|write|shopping|product
	)
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"cache", "op"}, // product|mirror, hit|miss|evicted|expired|set|error
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of products currently in the product cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister registers all collectors in the default registry. Safe to call more than once.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CartMutations, CartFlushes, CartSuperseded, CartPendingWrites, GatewayDuration,
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			CacheOps, CacheSize,
		)
	})
}
