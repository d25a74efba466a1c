package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the chat and lead flows. All
// methods are nil-safe so handlers can run without a registry in tests.
type ChatMetrics struct {
	requestsTotal     *prometheus.CounterVec
	completionLatency *prometheus.HistogramVec
	fallbackReplies   prometheus.Counter
	leadsForwarded    *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masti",
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Total chat API requests",
		}, []string{"route", "status"}),
		completionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "masti",
			Subsystem: "chat",
			Name:      "completion_latency_seconds",
			Help:      "Latency of completion-provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		fallbackReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "masti",
			Subsystem: "chat",
			Name:      "fallback_replies_total",
			Help:      "Replies served from the canned fallback text",
		}),
		leadsForwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "masti",
			Subsystem: "leads",
			Name:      "forwarded_total",
			Help:      "Best-effort lead forwards from chat turns",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.completionLatency, m.fallbackReplies, m.leadsForwarded)
	return m
}

func (m *ChatMetrics) ObserveRequest(route, status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, status).Inc()
}

func (m *ChatMetrics) ObserveCompletion(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.completionLatency.WithLabelValues(outcome).Observe(seconds)
}

func (m *ChatMetrics) ObserveFallbackReply() {
	if m == nil {
		return
	}
	m.fallbackReplies.Inc()
}

func (m *ChatMetrics) ObserveLeadForward(outcome string) {
	if m == nil {
		return
	}
	m.leadsForwarded.WithLabelValues(outcome).Inc()
}
