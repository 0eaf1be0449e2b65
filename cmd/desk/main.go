// Command desk is a terminal adapter for the rental core: it drives the same
// command and query surface the HTTP API exposes, without any server. Useful
// for demos and as a reference for wiring the core into other front ends.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gariflow/backend-gari/internal/booking"
	"github.com/gariflow/backend-gari/internal/fleet"
	"github.com/gariflow/backend-gari/internal/seed"
)

func main() {
	// Fixed seeds so repeated runs print identical plates and codes.
	registry := fleet.NewRegistry(rand.New(rand.NewSource(1)))
	codes := booking.NewCodeGenerator(booking.SystemClock{}, rand.New(rand.NewSource(2)))
	ledger := booking.NewLedger(registry, codes, booking.SystemClock{}, nil)
	seed.Demo(registry, ledger)

	ctx := context.Background()

	fmt.Println("== Fleet ==")
	printFleet(registry)
	printStats(registry, ledger)

	available := registry.ListAvailable()
	if len(available) == 0 {
		fmt.Println("no vehicles available")
		return
	}
	pickup := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
	ret := pickup.AddDate(0, 0, 3)

	res, err := ledger.Create(ctx, "Jane Wanjiku", "jane@example.com", available[0].ID, pickup, ret)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create reservation:", err)
		os.Exit(1)
	}
	fmt.Printf("\ncreated %s: %s for %d day(s), total %.2f\n", res.Code, res.Vehicle, res.Days, res.Total)

	if _, err := ledger.Confirm(ctx, res.Code); err != nil {
		fmt.Fprintln(os.Stderr, "confirm reservation:", err)
		os.Exit(1)
	}
	fmt.Printf("confirmed %s\n\n", res.Code)

	fmt.Println("== Reservations ==")
	printReservations(ledger)
	printStats(registry, ledger)
}

func printFleet(registry *fleet.Registry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREG\tVEHICLE\tYEAR\tCATEGORY\tRATE/DAY\tSTATUS\tMILEAGE")
	for _, v := range registry.List() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%.0f\t%s\t%d\n",
			v.ID, v.Registration, v.Label(), v.Year, v.Category, v.DailyRate, v.Status, v.Mileage)
	}
	_ = w.Flush()
}

func printReservations(ledger *booking.Ledger) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tCUSTOMER\tVEHICLE\tPICKUP\tDAYS\tTOTAL\tSTATUS")
	for _, r := range ledger.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
			r.Code, r.CustomerName, r.Vehicle, r.PickupDate.Format("2006-01-02"), r.Days, r.Total, r.Status)
	}
	_ = w.Flush()
}

func printStats(registry *fleet.Registry, ledger *booking.Ledger) {
	s := registry.Stats()
	fmt.Printf("\nvehicles: %d total, %d available, %d rented; revenue: %.2f\n",
		s.Total, s.Available, s.Rented, ledger.TotalRevenue())
}
