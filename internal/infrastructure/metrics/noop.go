package metrics

import (
	"time"

	"schedbot/internal/ports/output"
)

var _ output.Metrics = (*NoopSink)(nil)

// NoopSink is used when metrics are disabled to avoid nil checks.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (n *NoopSink) EventScheduled()                                         {}
func (n *NoopSink) ScheduleRejected(code string)                            {}
func (n *NoopSink) TickCompleted(d time.Duration, delivered int, err error) {}
func (n *NoopSink) ReminderDelivered()                                      {}
func (n *NoopSink) DeliveryFailed(code string)                              {}
func (n *NoopSink) MalformedPurged()                                        {}
func (n *NoopSink) PendingEvents(count int)                                 {}
