package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type recordingNotifier struct {
	seen []Event
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, ev Event) error {
	n.seen = append(n.seen, ev)
	return n.err
}

func TestEmitRecordsAndNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	bus := NewBus(10, notifier)

	ev, err := bus.Emit(context.Background(), TopicReservationCreated, "RES-1", map[string]any{"total": 7500.0})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if ev.ID == "" {
		t.Fatal("expected a generated event id")
	}
	if ev.Topic != TopicReservationCreated || ev.AggregateID != "RES-1" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if len(notifier.seen) != 1 || notifier.seen[0].ID != ev.ID {
		t.Fatalf("notifier should have seen the event, got %+v", notifier.seen)
	}
	recent := bus.Recent(0)
	if len(recent) != 1 || recent[0].ID != ev.ID {
		t.Fatalf("history should hold the event, got %+v", recent)
	}
}

func TestEmitValidatesInput(t *testing.T) {
	bus := NewBus(10)
	if _, err := bus.Emit(context.Background(), "  ", "RES-1", nil); err == nil {
		t.Fatal("expected error for blank topic")
	}
	if _, err := bus.Emit(context.Background(), TopicVehicleAdded, "", nil); err == nil {
		t.Fatal("expected error for blank aggregate id")
	}
	var nilBus *Bus
	if _, err := nilBus.Emit(context.Background(), TopicVehicleAdded, "1", nil); err == nil {
		t.Fatal("expected error on nil bus")
	}
}

func TestHistoryIsBounded(t *testing.T) {
	bus := NewBus(3)
	for i := 0; i < 5; i++ {
		if _, err := bus.Emit(context.Background(), TopicVehicleAdded, fmt.Sprintf("%d", i), nil); err != nil {
			t.Fatalf("emit %d: %v", i, err)
		}
	}
	recent := bus.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("expected history capped at 3, got %d", len(recent))
	}
	if recent[0].AggregateID != "2" || recent[2].AggregateID != "4" {
		t.Fatalf("expected oldest events evicted, got %+v", recent)
	}
}

func TestRecentLimitsAndCopies(t *testing.T) {
	bus := NewBus(10)
	for i := 0; i < 4; i++ {
		bus.Emit(context.Background(), TopicVehicleAdded, fmt.Sprintf("%d", i), nil)
	}
	recent := bus.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 events, got %d", len(recent))
	}
	if recent[0].AggregateID != "2" || recent[1].AggregateID != "3" {
		t.Fatalf("expected the newest two events, got %+v", recent)
	}
}

func TestNotifierFailureDoesNotUndoEmission(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("sink down")}
	healthy := &recordingNotifier{}
	bus := NewBus(10, failing, healthy)

	_, err := bus.Emit(context.Background(), TopicReservationCancelled, "RES-9", nil)
	if err == nil {
		t.Fatal("expected the notifier error to surface")
	}
	if len(healthy.seen) != 1 {
		t.Fatal("healthy notifier should still have been called")
	}
	if len(bus.Recent(0)) != 1 {
		t.Fatal("event should remain in history despite notifier failure")
	}
}
