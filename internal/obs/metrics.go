package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	BookingsCreatedTotal    prometheus.Counter
	BookingsCancelledTotal  *prometheus.CounterVec
	ReconcilerCancellations prometheus.Counter
	NotifyFailuresTotal     prometheus.Counter
	AFSRequestsTotal        *prometheus.CounterVec
	AFSRequestDuration      prometheus.Histogram
	Registry                *prometheus.Registry
}

// NewMetrics creates the Prometheus collectors and registers them.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		BookingsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trip_bookings_created_total",
			Help: "Total number of combined bookings created",
		}),
		BookingsCancelledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trip_bookings_cancelled_total",
			Help: "Cancellations performed per component",
		}, []string{"component"}),
		ReconcilerCancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trip_reconciler_cancellations_total",
			Help: "Bookings cancelled by capacity reconciliation",
		}),
		NotifyFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trip_notify_failures_total",
			Help: "Notification sends that failed (non-fatal)",
		}),
		AFSRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "afs_requests_total",
			Help: "Requests to the remote flight system per outcome",
		}, []string{"outcome"}),
		AFSRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "afs_request_duration_seconds",
			Help:    "Latency of remote flight-cancellation calls",
			Buckets: prometheus.DefBuckets,
		}),
		Registry: reg,
	}

	reg.MustRegister(
		m.BookingsCreatedTotal,
		m.BookingsCancelledTotal,
		m.ReconcilerCancellations,
		m.NotifyFailuresTotal,
		m.AFSRequestsTotal,
		m.AFSRequestDuration,
	)
	return m
}
