package fleet

import (
	"fmt"
	"sync"
)

// Rand is the source of randomness for generated registration plates and
// mileage. Injected so tests can supply a deterministic source.
type Rand interface {
	Intn(n int) int
}

// Registry owns the vehicle collection. All access goes through its methods;
// vehicles are handed out by value so callers cannot mutate registry state.
type Registry struct {
	mu       sync.RWMutex
	vehicles []*Vehicle
	byID     map[int]*Vehicle
	rng      Rand
}

// NewRegistry constructs an empty registry.
func NewRegistry(rng Rand) *Registry {
	return &Registry{
		byID: make(map[int]*Vehicle),
		rng:  rng,
	}
}

const maxMileage = 50000

// Add registers a new vehicle. The identifier is the current count plus one,
// the plate and mileage are drawn from the random source, and the vehicle
// starts out available.
func (r *Registry) Add(make, model string, year int, category string, dailyRate float64) Vehicle {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := &Vehicle{
		ID:           len(r.vehicles) + 1,
		Registration: fmt.Sprintf("KAA-%dX", r.rng.Intn(1000)),
		Make:         make,
		Model:        model,
		Year:         year,
		Category:     category,
		DailyRate:    dailyRate,
		Status:       StatusAvailable,
		Mileage:      r.rng.Intn(maxMileage),
	}
	r.vehicles = append(r.vehicles, v)
	r.byID[v.ID] = v
	return *v
}

// FindByID looks a vehicle up by identifier.
func (r *Registry) FindByID(id int) (Vehicle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byID[id]
	if !ok {
		return Vehicle{}, false
	}
	return *v, true
}

// List returns all vehicles in insertion order.
func (r *Registry) List() []Vehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, *v)
	}
	return out
}

// ListAvailable returns vehicles whose status is available, in insertion order.
func (r *Registry) ListAvailable() []Vehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		if v.Status == StatusAvailable {
			out = append(out, *v)
		}
	}
	return out
}

// SetStatus overwrites a vehicle's status unconditionally. Unknown identifiers
// are a silent no-op; callers that care must check existence via FindByID first.
func (r *Registry) SetStatus(id int, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.byID[id]; ok {
		v.Status = status
	}
}

// Stats counts vehicles by the states the dashboard reports.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := Stats{Total: len(r.vehicles)}
	for _, v := range r.vehicles {
		switch v.Status {
		case StatusAvailable:
			s.Available++
		case StatusRented:
			s.Rented++
		}
	}
	return s
}
