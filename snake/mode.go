package snake

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hoshinonyaruko/snake-classic/structs"
)

// ModeKind selects the board rules.
type ModeKind int

const (
	Classic ModeKind = iota
	Obstacle
)

// ModeNames lists the selectable modes in menu order.
var ModeNames = []string{"Classic", "Obstacle"}

func (k ModeKind) String() string {
	if k == Obstacle {
		return "Obstacle"
	}
	return "Classic"
}

// ParseMode accepts a mode name in any case.
func ParseMode(name string) (ModeKind, error) {
	for i, n := range ModeNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return ModeKind(i), nil
		}
	}
	return Classic, fmt.Errorf("unknown mode '%s'", name)
}

// VerdictKind is the result of evaluating the head after a move.
type VerdictKind int

const (
	VerdictNone VerdictKind = iota
	VerdictWrap
	VerdictGameOver
)

// Verdict carries the new head for VerdictWrap and the cause for
// VerdictGameOver.
type Verdict struct {
	Kind  VerdictKind
	Head  structs.Cell
	Cause string
}

// Mode owns the obstacle set and the boundary rules of one board.
type Mode struct {
	Kind      ModeKind
	obstacles []structs.Cell
}

func NewMode(kind ModeKind) *Mode {
	return &Mode{Kind: kind}
}

// Setup lays out the board for a new run.
func (m *Mode) Setup(safe []structs.Cell, rng *rand.Rand) {
	if m.Kind == Classic {
		m.obstacles = ClassicWalls()
		return
	}
	m.obstacles = ObstacleLayout(1, safe, rng)
}

// Regenerate replaces the obstacle set for level. Classic walls never change.
// It reports whether the layout was replaced.
func (m *Mode) Regenerate(level int, safe []structs.Cell, rng *rand.Rand) bool {
	if m.Kind != Obstacle {
		return false
	}
	m.obstacles = ObstacleLayout(level, safe, rng)
	return true
}

// Clear drops every obstacle.
func (m *Mode) Clear() {
	m.obstacles = nil
}

func (m *Mode) Obstacles() []structs.Cell {
	return m.obstacles
}

// FoodLimit is the half extent food is placed in.
func (m *Mode) FoodLimit() int {
	if m.Kind == Classic {
		return FoodLimitClassic
	}
	return FoodLimitTight
}

// Evaluate applies the board rules to the head after a move.
func (m *Mode) Evaluate(head structs.Cell) Verdict {
	if m.Kind == Obstacle {
		if outside(head, BoundaryLimit) {
			return Verdict{Kind: VerdictGameOver, Head: head, Cause: structs.CauseBoundary}
		}
		if m.hits(head) {
			return Verdict{Kind: VerdictGameOver, Head: head, Cause: structs.CauseObstacle}
		}
		return Verdict{Kind: VerdictNone, Head: head}
	}

	if m.hits(head) {
		return Verdict{Kind: VerdictGameOver, Head: head, Cause: structs.CauseObstacle}
	}
	wrapped := structs.Cell{X: wrap(head.X), Y: wrap(head.Y)}
	if wrapped != head {
		return Verdict{Kind: VerdictWrap, Head: wrapped}
	}
	return Verdict{Kind: VerdictNone, Head: head}
}

func (m *Mode) hits(head structs.Cell) bool {
	for _, obs := range m.obstacles {
		if Within(head, obs, ObstacleRadius) {
			return true
		}
	}
	return false
}

func outside(c structs.Cell, limit int) bool {
	return c.X > limit || c.X < -limit || c.Y > limit || c.Y < -limit
}

func wrap(v int) int {
	switch {
	case v > WrapLimit:
		return -WrapLimit
	case v < -WrapLimit:
		return WrapLimit
	}
	return v
}
