package seed

import (
	"math/rand"
	"testing"

	"github.com/gariflow/backend-gari/internal/booking"
	"github.com/gariflow/backend-gari/internal/fleet"
)

func TestDemoLoadsSampleFleet(t *testing.T) {
	registry := fleet.NewRegistry(rand.New(rand.NewSource(1)))
	codes := booking.NewCodeGenerator(booking.SystemClock{}, rand.New(rand.NewSource(2)))
	ledger := booking.NewLedger(registry, codes, booking.SystemClock{}, nil)

	Demo(registry, ledger)

	vehicles := registry.List()
	if len(vehicles) != 8 {
		t.Fatalf("expected 8 vehicles, got %d", len(vehicles))
	}
	if vehicles[0].Make != "Toyota" || vehicles[0].Model != "Corolla" {
		t.Fatalf("unexpected first vehicle %+v", vehicles[0])
	}

	for _, tc := range []struct {
		id   int
		want fleet.Status
	}{
		{1, fleet.StatusAvailable},
		{2, fleet.StatusRented},
		{4, fleet.StatusRented},
		{6, fleet.StatusMaintenance},
		{8, fleet.StatusAvailable},
	} {
		v, ok := registry.FindByID(tc.id)
		if !ok {
			t.Fatalf("vehicle %d missing", tc.id)
		}
		if v.Status != tc.want {
			t.Fatalf("vehicle %d: expected %s, got %s", tc.id, tc.want, v.Status)
		}
	}

	stats := registry.Stats()
	if stats.Total != 8 || stats.Available != 5 || stats.Rented != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if ledger.TotalRevenue() != BaselineRevenue {
		t.Fatalf("expected baseline revenue %d, got %v", BaselineRevenue, ledger.TotalRevenue())
	}
}
