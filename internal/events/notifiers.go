package events

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gariflow/backend-gari/internal/obs"
)

// LogNotifier writes every domain event to the structured log. The core itself
// never logs; this is where observability attaches to mutations.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, ev Event) error {
	n.Logger.Info().
		Str("event_id", ev.ID).
		Str("topic", ev.Topic).
		Str("aggregate_id", ev.AggregateID).
		Time("occurred_at", ev.OccurredAt).
		Msg("domain_event")
	return nil
}

// RevenueSource exposes the ledger aggregate without importing the booking package.
type RevenueSource interface {
	TotalRevenue() float64
}

// MetricsNotifier keeps the Prometheus domain gauges and counters in step with
// emitted events. Collectors must be registered before the first event.
type MetricsNotifier struct {
	Revenue RevenueSource
	Fleet   func() int
}

// Notify implements Notifier.
func (n MetricsNotifier) Notify(_ context.Context, ev Event) error {
	if obs.ReservationEventsTotal != nil && ev.Topic != TopicVehicleAdded {
		obs.ReservationEventsTotal.WithLabelValues(ev.Topic).Inc()
	}
	if obs.SystemRevenue != nil && n.Revenue != nil {
		obs.SystemRevenue.Set(n.Revenue.TotalRevenue())
	}
	if obs.FleetVehicles != nil && n.Fleet != nil {
		obs.FleetVehicles.Set(float64(n.Fleet()))
	}
	return nil
}
