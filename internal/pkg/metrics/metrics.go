// internal/pkg/metrics/metrics.go
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// Rehydration outcomes
const (
	RehydrateRestored = "restored"
	RehydrateEmpty    = "empty"
	RehydrateInvalid  = "invalid"
)

// Metrics holds the storefront collectors. A nil *Metrics is valid and
// records nothing, so stores can be built without a registry.
type Metrics struct {
	storeMutations   *prometheus.CounterVec
	persistFailures  *prometheus.CounterVec
	rehydrations     *prometheus.CounterVec
	checkoutsStarted prometheus.Counter
	checkoutsDone    prometheus.Counter
	activeSessions   prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers the storefront collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		storeMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "State container mutations by store and operation.",
		}, []string{"store", "operation"}),
		persistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Failed writes of store state to persisted storage.",
		}, []string{"store"}),
		rehydrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rehydrations_total",
			Help:      "Store rehydrations from persisted storage by outcome.",
		}, []string{"store", "outcome"}),
		checkoutsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_started_total",
			Help:      "Simulated checkouts started.",
		}),
		checkoutsDone: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_completed_total",
			Help:      "Simulated checkouts that completed against a live session.",
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Storefront sessions currently held in memory.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) ObserveMutation(store, operation string) {
	if m == nil {
		return
	}
	m.storeMutations.WithLabelValues(store, operation).Inc()
}

func (m *Metrics) ObservePersistFailure(store string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(store).Inc()
}

func (m *Metrics) ObserveRehydration(store, outcome string) {
	if m == nil {
		return
	}
	m.rehydrations.WithLabelValues(store, outcome).Inc()
}

func (m *Metrics) CheckoutStarted() {
	if m == nil {
		return
	}
	m.checkoutsStarted.Inc()
}

func (m *Metrics) CheckoutCompleted() {
	if m == nil {
		return
	}
	m.checkoutsDone.Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// ObserveHTTPRequest records one served request. route is the matched route
// pattern, never the raw path.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
