package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"schedbot/internal/domain"
	"schedbot/internal/domain/entities"
)

// fakeRepo is an in-memory event store with switchable failures.
type fakeRepo struct {
	mu        sync.Mutex
	nextID    int64
	rows      map[int64]entities.EventRecord
	scanErr   error
	insertErr error
	deleteErr error
	deletes   []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[int64]entities.EventRecord)}
}

func (r *fakeRepo) Insert(ctx context.Context, event *entities.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return domain.Storage("insert event", r.insertErr)
	}
	r.nextID++
	event.ID = r.nextID
	r.rows[event.ID] = event.Record()
	return nil
}

func (r *fakeRepo) ScanAll(ctx context.Context) ([]entities.EventRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scanErr != nil {
		return nil, domain.Storage("scan events", r.scanErr)
	}
	out := make([]entities.EventRecord, 0, len(r.rows))
	for _, rec := range r.rows {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return domain.Storage("delete event", r.deleteErr)
	}
	r.deletes = append(r.deletes, id)
	delete(r.rows, id)
	return nil
}

// putRaw stores a row as-is, bypassing time formatting.
func (r *fakeRepo) putRaw(rec entities.EventRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID > r.nextID {
		r.nextID = rec.ID
	}
	r.rows[rec.ID] = rec
}

func (r *fakeRepo) has(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	return ok
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *fakeRepo) setDeleteErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteErr = err
}

type sentMessage struct {
	channelID int64
	text      string
}

// fakeNotifier records sends and fails for channels listed in failFor.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[int64]error
	onSend  func()
}

func (n *fakeNotifier) Notify(ctx context.Context, channelID int64, text string) error {
	n.mu.Lock()
	n.sent = append(n.sent, sentMessage{channelID: channelID, text: text})
	hook := n.onSend
	err := n.failFor[channelID]
	n.mu.Unlock()
	if hook != nil {
		hook()
	}
	return err
}

func (n *fakeNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

type fakeTranslator struct{}

func (fakeTranslator) T(locale, key string, data map[string]any) string {
	if key == reminderMessageKey {
		return fmt.Sprintf("🔔 Reminder: '%v' is happening now!", data["Description"])
	}
	return key
}

// recordingMetrics counts calls; it is safe for concurrent use.
type recordingMetrics struct {
	mu        sync.Mutex
	scheduled int
	rejected  []string
	ticks     int
	tickErrs  int
	delivered int
	failed    []string
	purged    int
	pending   int
}

func (m *recordingMetrics) EventScheduled() { m.mu.Lock(); m.scheduled++; m.mu.Unlock() }
func (m *recordingMetrics) ScheduleRejected(code string) {
	m.mu.Lock()
	m.rejected = append(m.rejected, code)
	m.mu.Unlock()
}
func (m *recordingMetrics) TickCompleted(d time.Duration, delivered int, err error) {
	m.mu.Lock()
	m.ticks++
	if err != nil {
		m.tickErrs++
	}
	m.mu.Unlock()
}
func (m *recordingMetrics) ReminderDelivered() { m.mu.Lock(); m.delivered++; m.mu.Unlock() }
func (m *recordingMetrics) DeliveryFailed(code string) {
	m.mu.Lock()
	m.failed = append(m.failed, code)
	m.mu.Unlock()
}
func (m *recordingMetrics) MalformedPurged()        { m.mu.Lock(); m.purged++; m.mu.Unlock() }
func (m *recordingMetrics) PendingEvents(count int) { m.mu.Lock(); m.pending = count; m.mu.Unlock() }

var errDiskFull = errors.New("disk full")
