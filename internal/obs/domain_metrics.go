package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ReservationEventsTotal counts reservation lifecycle outcomes by topic.
	ReservationEventsTotal *prometheus.CounterVec
	// ReservationRejectedTotal counts reservation requests refused by validation.
	ReservationRejectedTotal *prometheus.CounterVec
	// FleetVehicles tracks the current number of registered vehicles.
	FleetVehicles prometheus.Gauge
	// SystemRevenue mirrors the ledger's running revenue aggregate.
	SystemRevenue prometheus.Gauge
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ReservationEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_events_total",
			Help:      "Count of reservation lifecycle events by topic.",
		}, []string{"topic"})
		ReservationRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_rejected_total",
			Help:      "Count of reservation requests rejected by the ledger, by reason.",
		}, []string{"reason"})
		FleetVehicles = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fleet_vehicles",
			Help:      "Current number of vehicles in the fleet registry.",
		})
		SystemRevenue = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "system_revenue",
			Help:      "Running revenue aggregate across live reservations.",
		})
		reg.MustRegister(ReservationEventsTotal, ReservationRejectedTotal, FleetVehicles, SystemRevenue)
	})
}
