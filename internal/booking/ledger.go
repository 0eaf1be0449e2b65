package booking

import (
	"context"
	"sync"
	"time"

	"github.com/gariflow/backend-gari/internal/events"
	"github.com/gariflow/backend-gari/internal/fleet"
)

// Ledger owns the reservation collection and the running revenue aggregate.
// It cross-references the fleet registry to transition vehicle status but
// never owns vehicle data itself.
//
// Every mutating operation runs as a single critical section: the multi-step
// create sequence (validate, compute, store, flip vehicle status, bump
// revenue) must appear atomic to observers.
type Ledger struct {
	mu      sync.RWMutex
	fleet   *fleet.Registry
	codes   *CodeGenerator
	clock   Clock
	bus     *events.Bus
	order   []string
	byCode  map[string]*Reservation
	revenue float64
}

// NewLedger constructs an empty ledger bound to the given registry.
func NewLedger(registry *fleet.Registry, codes *CodeGenerator, clock Clock, bus *events.Bus) *Ledger {
	return &Ledger{
		fleet:  registry,
		codes:  codes,
		clock:  clock,
		bus:    bus,
		byCode: make(map[string]*Reservation),
	}
}

// Create validates and stores a new reservation. Validation order: date range,
// vehicle existence, vehicle availability. On any failure the ledger and the
// registry are left untouched. On success the vehicle becomes reserved, the
// reservation starts out pending, and its total joins the revenue aggregate.
func (l *Ledger) Create(ctx context.Context, customerName, customerEmail string, vehicleID int, pickup, ret time.Time) (Reservation, error) {
	if !ret.After(pickup) {
		return Reservation{}, ErrInvalidDateRange
	}

	l.mu.Lock()
	vehicle, ok := l.fleet.FindByID(vehicleID)
	if !ok {
		l.mu.Unlock()
		return Reservation{}, ErrVehicleNotFound
	}
	if vehicle.Status != fleet.StatusAvailable {
		l.mu.Unlock()
		return Reservation{}, ErrVehicleUnavailable
	}

	days := DaysBetween(pickup, ret)
	quote := CalculatePrice(vehicle.DailyRate, days, 0)

	res := &Reservation{
		Code:          l.nextCode(),
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Vehicle:       vehicle.Label(),
		VehicleID:     vehicle.ID,
		PickupDate:    pickup,
		ReturnDate:    ret,
		Days:          days,
		Total:         quote.Total,
		Status:        StatusPending,
		CreatedAt:     l.clock.Now(),
	}
	l.byCode[res.Code] = res
	l.order = append(l.order, res.Code)
	l.fleet.SetStatus(vehicle.ID, fleet.StatusReserved)
	l.revenue += quote.Total
	out := *res
	l.mu.Unlock()

	l.emit(ctx, events.TopicReservationCreated, out)
	return out, nil
}

// Confirm marks a reservation confirmed and its vehicle rented. Only the code
// needs to resolve; the current status is not re-checked, so confirming an
// already-confirmed reservation simply overwrites it. That matches the desk's
// historical behaviour and is covered by tests.
func (l *Ledger) Confirm(ctx context.Context, code string) (Reservation, error) {
	l.mu.Lock()
	res, ok := l.byCode[code]
	if !ok {
		l.mu.Unlock()
		return Reservation{}, ErrReservationNotFound
	}
	res.Status = StatusConfirmed
	l.fleet.SetStatus(res.VehicleID, fleet.StatusRented)
	out := *res
	l.mu.Unlock()

	l.emit(ctx, events.TopicReservationConfirmed, out)
	return out, nil
}

// Cancel removes a reservation entirely, returns its vehicle to available, and
// subtracts its total from the revenue aggregate.
func (l *Ledger) Cancel(ctx context.Context, code string) (Reservation, error) {
	l.mu.Lock()
	res, ok := l.byCode[code]
	if !ok {
		l.mu.Unlock()
		return Reservation{}, ErrReservationNotFound
	}
	l.fleet.SetStatus(res.VehicleID, fleet.StatusAvailable)
	delete(l.byCode, code)
	for i, c := range l.order {
		if c == code {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.revenue -= res.Total
	out := *res
	l.mu.Unlock()

	l.emit(ctx, events.TopicReservationCancelled, out)
	return out, nil
}

// List returns all reservations in insertion order.
func (l *Ledger) List() []Reservation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Reservation, 0, len(l.order))
	for _, code := range l.order {
		out = append(out, *l.byCode[code])
	}
	return out
}

// TotalRevenue returns the current running aggregate.
func (l *Ledger) TotalRevenue() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revenue
}

// SeedRevenue adds a baseline amount to the aggregate. Only the demo seeding
// routine calls this; it intentionally detaches the aggregate from the sum of
// live reservations, exactly as the demo dashboard starts out.
func (l *Ledger) SeedRevenue(amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revenue += amount
}

// nextCode draws codes until one is unused. Callers hold l.mu.
func (l *Ledger) nextCode() string {
	code := l.codes.Next()
	for _, taken := l.byCode[code]; taken; _, taken = l.byCode[code] {
		code = l.codes.Next()
	}
	return code
}

// emit publishes a lifecycle event. Render side effects are fire-and-forget:
// the core does not await or depend on any presentation behaviour.
func (l *Ledger) emit(ctx context.Context, topic string, res Reservation) {
	if l.bus == nil {
		return
	}
	_, _ = l.bus.Emit(ctx, topic, res.Code, map[string]any{
		"code":      res.Code,
		"vehicleId": res.VehicleID,
		"days":      res.Days,
		"total":     res.Total,
		"status":    res.Status,
	})
}
