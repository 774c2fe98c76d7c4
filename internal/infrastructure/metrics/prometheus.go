package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"schedbot/internal/ports/output"
)

var _ output.Metrics = (*PrometheusSink)(nil)

// PrometheusSink implements output.Metrics with Prometheus collectors.
// Registration errors are logged, never propagated.
type PrometheusSink struct {
	eventsScheduled  prometheus.Counter
	scheduleRejected *prometheus.CounterVec
	ticksTotal       prometheus.Counter
	tickErrorsTotal  prometheus.Counter
	tickDuration     prometheus.Histogram
	remindersSent    prometheus.Counter
	deliveryFailures *prometheus.CounterVec
	malformedPurged  prometheus.Counter
	pendingEvents    prometheus.Gauge
	log              zerolog.Logger
}

func NewPrometheusSink(reg prometheus.Registerer, log zerolog.Logger) *PrometheusSink {
	s := &PrometheusSink{log: log.With().Str("component", "metrics").Logger()}

	s.eventsScheduled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedbot_events_scheduled_total",
		Help: "Reminders accepted by the schedule command.",
	})
	s.scheduleRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedbot_schedule_rejected_total",
		Help: "Schedule commands rejected by validation, by reason.",
	}, []string{"reason"})
	s.ticksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedbot_scheduler_ticks_total",
		Help: "Reminder loop passes run.",
	})
	s.tickErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedbot_scheduler_tick_errors_total",
		Help: "Reminder loop passes aborted by a storage error.",
	})
	s.tickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedbot_scheduler_tick_duration_seconds",
		Help:    "Duration of each reminder loop pass.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	})
	s.remindersSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedbot_reminders_delivered_total",
		Help: "Reminders delivered successfully.",
	})
	s.deliveryFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedbot_reminder_delivery_failures_total",
		Help: "Reminders whose single delivery attempt failed, by reason.",
	}, []string{"reason"})
	s.malformedPurged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedbot_malformed_events_purged_total",
		Help: "Stored events purged because their time could not be parsed.",
	})
	s.pendingEvents = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedbot_pending_events",
		Help: "Events not yet due at the end of the last pass.",
	})

	for _, c := range []prometheus.Collector{
		s.eventsScheduled, s.scheduleRejected, s.ticksTotal, s.tickErrorsTotal, s.tickDuration,
		s.remindersSent, s.deliveryFailures, s.malformedPurged, s.pendingEvents,
	} {
		s.register(reg, c)
	}
	return s
}

func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector) {
	if reg == nil {
		return
	}
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return
		}
		s.log.Warn().Err(err).Msg("metric registration failed")
	}
}

func (s *PrometheusSink) EventScheduled() { s.eventsScheduled.Inc() }

func (s *PrometheusSink) ScheduleRejected(code string) {
	s.scheduleRejected.WithLabelValues(reasonLabel(code)).Inc()
}

func (s *PrometheusSink) TickCompleted(d time.Duration, delivered int, err error) {
	s.ticksTotal.Inc()
	s.tickDuration.Observe(d.Seconds())
	if err != nil {
		s.tickErrorsTotal.Inc()
	}
}

func (s *PrometheusSink) ReminderDelivered() { s.remindersSent.Inc() }

func (s *PrometheusSink) DeliveryFailed(code string) {
	s.deliveryFailures.WithLabelValues(reasonLabel(code)).Inc()
}

func (s *PrometheusSink) MalformedPurged() { s.malformedPurged.Inc() }

func (s *PrometheusSink) PendingEvents(count int) { s.pendingEvents.Set(float64(count)) }

func reasonLabel(code string) string {
	if code == "" {
		return "unknown"
	}
	return code
}
