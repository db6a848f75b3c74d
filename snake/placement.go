package snake

import (
	"math/rand"
	"time"

	"github.com/hoshinonyaruko/snake-classic/structs"
)

// Placement is the outcome of Place. Degraded means every attempt collided and
// Cell is the last candidate drawn.
type Placement struct {
	Cell     structs.Cell
	Attempts int
	Degraded bool
}

// Place draws grid cells uniformly in [-limit, limit] until one is clear of
// every obstacle's exclusion box, giving up after PlacementAttempts draws.
func Place(rng *rand.Rand, limit int, obstacles []structs.Cell) Placement {
	steps := limit / CellSize

	var candidate structs.Cell
	for attempt := 1; attempt <= PlacementAttempts; attempt++ {
		candidate = structs.Cell{
			X: (rng.Intn(2*steps+1) - steps) * CellSize,
			Y: (rng.Intn(2*steps+1) - steps) * CellSize,
		}
		if clearOf(candidate, obstacles) {
			return Placement{Cell: candidate, Attempts: attempt}
		}
	}
	return Placement{Cell: candidate, Attempts: PlacementAttempts, Degraded: true}
}

func clearOf(c structs.Cell, obstacles []structs.Cell) bool {
	for _, obs := range obstacles {
		if WithinBox(obs, c, ExclusionMargin) {
			return false
		}
	}
	return true
}

// BonusFood is the timed bonus objective. Cell and SpawnedAt only mean
// something while Active.
type BonusFood struct {
	Active    bool
	Cell      structs.Cell
	SpawnedAt time.Duration
}

// Spawn places and activates the bonus at simulated time now.
func (b *BonusFood) Spawn(rng *rand.Rand, obstacles []structs.Cell, now time.Duration) Placement {
	p := Place(rng, FoodLimitTight, obstacles)
	b.Active = true
	b.Cell = p.Cell
	b.SpawnedAt = now
	return p
}

// HasExpired reports whether an active bonus has outlived BonusLifetime. The
// caller deactivates it.
func (b *BonusFood) HasExpired(now time.Duration) bool {
	return b.Active && now-b.SpawnedAt >= BonusLifetime
}

// Remaining is the lifetime left, zero when inactive.
func (b *BonusFood) Remaining(now time.Duration) time.Duration {
	if !b.Active {
		return 0
	}
	left := BonusLifetime - (now - b.SpawnedAt)
	if left < 0 {
		return 0
	}
	return left
}

func (b *BonusFood) Deactivate() {
	*b = BonusFood{}
}
