package booking

import (
	"fmt"
	"time"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Rand is the randomness source for code suffixes.
type Rand interface {
	Intn(n int) int
}

// CodeGenerator produces reservation codes of the form
// RES-<unix-millis>-<random 0..999>. Collisions are possible; the ledger
// re-draws until the code is unused before storing a reservation.
type CodeGenerator struct {
	clock Clock
	rng   Rand
}

// NewCodeGenerator constructs a generator with the given clock and random source.
func NewCodeGenerator(clock Clock, rng Rand) *CodeGenerator {
	return &CodeGenerator{clock: clock, rng: rng}
}

// Next returns a freshly generated reservation code.
func (g *CodeGenerator) Next() string {
	return fmt.Sprintf("RES-%d-%d", g.clock.Now().UnixMilli(), g.rng.Intn(1000))
}
