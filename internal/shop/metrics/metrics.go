package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// OrdersPlaced counts committed orders by source.
	OrdersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_orders_placed_total",
			Help: "Total number of orders placed",
		},
		[]string{"source"},
	)

	// StockClamped counts deductions that hit the zero floor (oversold orders).
	StockClamped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_stock_clamped_total",
			Help: "Total number of stock deductions floored at zero",
		},
	)

	// MessagesClassified counts classifier results by triage lane.
	MessagesClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_messages_classified_total",
			Help: "Total number of inbound messages classified",
		},
		[]string{"status"},
	)

	// SnapshotWrites counts blob writes by key and result.
	SnapshotWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_snapshot_writes_total",
			Help: "Total number of snapshot writes",
		},
		[]string{"key", "result"},
	)

	// SnapshotLoadFallbacks counts keys seeded from defaults at startup.
	SnapshotLoadFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_snapshot_load_fallbacks_total",
			Help: "Total number of snapshot keys that fell back to the default dataset",
		},
		[]string{"key", "reason"},
	)

	// HTTPRequests counts handled requests by route template and status code.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_http_requests_total",
			Help: "Total number of HTTP requests handled by the console API",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTPDuration observes request latency by route template.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shop_http_request_duration_seconds",
			Help:    "Duration of console API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// EventsConsumed counts Kafka messages by topic and handling result.
	EventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_events_consumed_total",
			Help: "Total number of Kafka messages consumed",
		},
		[]string{"topic", "result"},
	)

	// CatalogSize tracks the number of live products.
	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "shop_catalog_products",
			Help: "Number of products in the catalog",
		},
	)
)

func init() {
	prometheus.MustRegister(
		OrdersPlaced,
		StockClamped,
		MessagesClassified,
		SnapshotWrites,
		SnapshotLoadFallbacks,
		CatalogSize,
		HTTPRequests,
		HTTPDuration,
		EventsConsumed,
	)
}
