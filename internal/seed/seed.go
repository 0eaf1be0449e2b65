// Package seed populates the desk with the demo dataset the dashboard starts
// from. The ledger has no durable storage; every process begins empty and is
// reseeded here.
package seed

import (
	"github.com/gariflow/backend-gari/internal/booking"
	"github.com/gariflow/backend-gari/internal/fleet"
)

// BaselineRevenue is the dashboard's starting revenue figure.
const BaselineRevenue = 145000

type demoVehicle struct {
	make      string
	model     string
	year      int
	category  string
	dailyRate float64
}

var demoFleet = []demoVehicle{
	{"Toyota", "Corolla", 2022, "Sedan", 2500},
	{"Honda", "CR-V", 2023, "SUV", 4000},
	{"Mazda", "Demio", 2021, "Hatchback", 1800},
	{"Nissan", "X-Trail", 2023, "SUV", 4500},
	{"Toyota", "Prado", 2024, "Luxury SUV", 8000},
	{"Mercedes", "C-Class", 2023, "Luxury", 9000},
	{"BMW", "X5", 2023, "Luxury SUV", 10000},
	{"Subaru", "Forester", 2022, "SUV", 3800},
}

// Demo loads the sample fleet: eight vehicles, two already out on rental, one
// in the workshop, and the revenue baseline applied.
func Demo(registry *fleet.Registry, ledger *booking.Ledger) {
	for _, v := range demoFleet {
		registry.Add(v.make, v.model, v.year, v.category, v.dailyRate)
	}
	registry.SetStatus(2, fleet.StatusRented)
	registry.SetStatus(4, fleet.StatusRented)
	registry.SetStatus(6, fleet.StatusMaintenance)
	ledger.SeedRevenue(BaselineRevenue)
}
