package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SMSSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notify_sms_total",
		Help: "Total number of SMS send attempts by result.",
	}, []string{"result"})

	EmailSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notify_email_total",
		Help: "Total number of email send attempts by result.",
	}, []string{"result"})

	DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "notify_dispatch_duration_seconds",
		Help:    "Wall time of a bulk dispatch run.",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
	})

	DispatchContacts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notify_dispatch_contacts_total",
		Help: "Total number of contacts processed by bulk dispatches.",
	})

	HistoryPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notify_history_pending",
		Help: "Sent-message records waiting to be written to the remote store.",
	})
)

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// DispatchMetrics records dispatch outcomes to the package collectors.
type DispatchMetrics struct{}

func (DispatchMetrics) ObserveSMS(ok bool) {
	SMSSent.WithLabelValues(result(ok)).Inc()
}

func (DispatchMetrics) ObserveEmail(ok bool) {
	EmailSent.WithLabelValues(result(ok)).Inc()
}

func (DispatchMetrics) ObserveDispatch(contacts int, elapsed time.Duration) {
	DispatchContacts.Add(float64(contacts))
	DispatchDuration.Observe(elapsed.Seconds())
}
