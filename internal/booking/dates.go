package booking

import (
	"math"
	"time"
)

// DaysBetween returns the absolute whole-day difference between two instants,
// rounded to the nearest integer. A day is a fixed 24 hours; the calculation
// is deliberately calendar- and DST-unaware.
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a).Hours() / 24
	return int(math.Round(math.Abs(diff)))
}
