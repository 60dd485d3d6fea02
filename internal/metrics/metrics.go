// Package metrics declares the Prometheus collectors of the storefront order
// service. promauto registers them with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Number of HTTP requests handled.",
		},
		[]string{"route", "status"},
	)

	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "storefront_http_request_duration_seconds",
			Help: "Duration of HTTP requests.",
		},
		[]string{"route"},
	)

	// OrdersConfirmed counts successful order assemblies.
	OrdersConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_confirmed_total",
			Help: "Number of orders assembled and stored.",
		},
	)

	// AssemblyFailures counts rejected confirmations by reason:
	// "incomplete", "total_mismatch", "total_out_of_range", "unsupported_country", "other".
	AssemblyFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_assembly_failures_total",
			Help: "Number of order confirmations rejected at assembly.",
		},
		[]string{"reason"},
	)

	// StatusRefreshes counts stored records rewritten because their cached
	// shipping status or estimate was stale.
	StatusRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_order_status_refreshes_total",
			Help: "Number of order records rewritten with a recomputed status.",
		},
	)

	// CorruptRecords counts records skipped on the read path because they could not be decoded.
	CorruptRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_corrupt_records_total",
			Help: "Number of stored order records that failed to decode.",
		},
	)

	// EventPublishFailures counts order-changed events that could not be delivered.
	EventPublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_event_publish_failures_total",
			Help: "Number of order-changed events that failed to publish.",
		},
	)
)
