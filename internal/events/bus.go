package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of a state change in the desk's core.
type Event struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	AggregateID string    `json:"aggregateId"`
	Payload     any       `json:"payload"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Notifier reacts to emitted events (log, metrics, a future websocket push).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Bus keeps a bounded in-memory history of domain events and fans them out to
// downstream notifiers. The history is what presentation adapters poll to know
// a re-render is due; nothing here outlives the process.
type Bus struct {
	mu        sync.Mutex
	history   []Event
	limit     int
	notifiers []Notifier
	now       func() time.Time
}

// NewBus constructs a bus retaining at most limit events.
func NewBus(limit int, notifiers ...Notifier) *Bus {
	if limit <= 0 {
		limit = 100
	}
	return &Bus{limit: limit, notifiers: notifiers, now: time.Now}
}

// Emit records the event and dispatches it to all configured notifiers.
// Notifier failures are joined and reported but never undo the emission.
func (b *Bus) Emit(ctx context.Context, topic, aggregateID string, payload any) (Event, error) {
	if b == nil {
		return Event{}, errors.New("events: bus not configured")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Event{}, errors.New("events: topic is required")
	}
	if strings.TrimSpace(aggregateID) == "" {
		return Event{}, errors.New("events: aggregate id is required")
	}

	ev := Event{
		ID:          uuid.NewString(),
		Topic:       topic,
		AggregateID: aggregateID,
		Payload:     payload,
		OccurredAt:  b.now(),
	}

	b.mu.Lock()
	b.history = append(b.history, ev)
	if overflow := len(b.history) - b.limit; overflow > 0 {
		b.history = append(b.history[:0:0], b.history[overflow:]...)
	}
	notifiers := b.notifiers
	b.mu.Unlock()

	var joined error
	for _, notifier := range notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, ev); err != nil {
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return ev, joined
}

// Recent returns up to n events, newest last. n <= 0 returns the whole history.
func (b *Bus) Recent(n int) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n <= 0 || n > len(b.history) {
		n = len(b.history)
	}
	out := make([]Event, n)
	copy(out, b.history[len(b.history)-n:])
	return out
}
