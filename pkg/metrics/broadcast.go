package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BroadcastMetrics records dispatch outcomes for the notification queue.
type BroadcastMetrics struct {
	processed *prometheus.CounterVec
	emails    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewBroadcastMetrics registers the broadcast metrics on the provided registerer.
func NewBroadcastMetrics(reg prometheus.Registerer) *BroadcastMetrics {
	if reg == nil {
		return &BroadcastMetrics{}
	}
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcast_notifications_total",
		Help: "Notifications drained from the broadcast queue.",
	}, []string{"result"})
	emails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcast_emails_total",
		Help: "Per-recipient email delivery attempts.",
	}, []string{"result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "broadcast_dispatch_duration_seconds",
		Help:    "Time spent dispatching one notification to all recipients.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	reg.MustRegister(processed, emails, duration)
	return &BroadcastMetrics{
		processed: processed,
		emails:    emails,
		duration:  duration,
	}
}

// IncProcessed counts one fully drained notification.
func (b *BroadcastMetrics) IncProcessed(result string) {
	if b == nil || b.processed == nil {
		return
	}
	b.processed.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncEmail counts one per-recipient send attempt.
func (b *BroadcastMetrics) IncEmail(result string) {
	if b == nil || b.emails == nil {
		return
	}
	b.emails.WithLabelValues(normalizeLabel(result)).Inc()
}

// ObserveDispatch records how long one notification took to fan out.
func (b *BroadcastMetrics) ObserveDispatch(result string, duration time.Duration) {
	if b == nil || b.duration == nil {
		return
	}
	b.duration.WithLabelValues(normalizeLabel(result)).Observe(duration.Seconds())
}

func normalizeLabel(result string) string {
	if result == "" {
		return "unknown"
	}
	return result
}
