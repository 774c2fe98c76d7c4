package output

import "time"

// Metrics records bot activity. Implementations must not block.
type Metrics interface {
	EventScheduled()
	ScheduleRejected(code string)
	TickCompleted(duration time.Duration, delivered int, err error)
	ReminderDelivered()
	DeliveryFailed(code string)
	MalformedPurged()
	PendingEvents(count int)
}
