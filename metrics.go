package x11

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the counters a Session updates as it sends requests and
// classifies incoming packets. A nil *Metrics is valid everywhere: every
// method is nil-receiver safe so instrumentation stays opt-in, the same
// shape dittofs's server components use for their prometheus fields.
type Metrics struct {
	RequestsSent     prometheus.Counter
	RepliesReceived  prometheus.Counter
	EventsReceived   prometheus.Counter
	ErrorsReceived   prometheus.Counter
	OrphansSwept     prometheus.Counter
	AwaitLatency     prometheus.Histogram
}

// NewMetrics builds a Metrics bundle named under the given namespace.
// Callers that already run a prometheus.Registry can Register() the
// returned counters themselves; NewMetrics only constructs them.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RequestsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "x11", Name: "requests_sent_total",
			Help: "Number of requests written to the display connection.",
		}),
		RepliesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "x11", Name: "replies_received_total",
			Help: "Number of reply packets received.",
		}),
		EventsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "x11", Name: "events_received_total",
			Help: "Number of event packets enqueued for delivery.",
		}),
		ErrorsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "x11", Name: "errors_received_total",
			Help: "Number of protocol error packets received.",
		}),
		OrphansSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "x11", Name: "orphaned_replies_swept_total",
			Help: "Number of pending replies dropped without ever being awaited.",
		}),
		AwaitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "x11", Name: "await_latency_seconds",
			Help:    "Time spent blocked inside Await waiting for a reply.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Register registers every collector in m with r. Safe to call with a nil m.
func (m *Metrics) Register(r prometheus.Registerer) error {
	if m == nil {
		return nil
	}
	for _, c := range []prometheus.Collector{
		m.RequestsSent, m.RepliesReceived, m.EventsReceived,
		m.ErrorsReceived, m.OrphansSwept, m.AwaitLatency,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) incRequestsSent() {
	if m != nil && m.RequestsSent != nil {
		m.RequestsSent.Inc()
	}
}

func (m *Metrics) incRepliesReceived() {
	if m != nil && m.RepliesReceived != nil {
		m.RepliesReceived.Inc()
	}
}

func (m *Metrics) incEventsReceived() {
	if m != nil && m.EventsReceived != nil {
		m.EventsReceived.Inc()
	}
}

func (m *Metrics) incErrorsReceived() {
	if m != nil && m.ErrorsReceived != nil {
		m.ErrorsReceived.Inc()
	}
}

func (m *Metrics) incOrphansSwept() {
	if m != nil && m.OrphansSwept != nil {
		m.OrphansSwept.Inc()
	}
}
