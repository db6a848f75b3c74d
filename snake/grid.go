// Package snake is the simulation core: grid geometry, the snake itself,
// obstacle layouts, entity placement, mode rules, the tick scheduler and the
// progression state machine that ties them together.
//
// Nothing here blocks, spawns goroutines or touches I/O. A driver calls
// Game.Tick at a fixed cadence and reacts to the returned events.
package snake

import (
	"time"

	"github.com/hoshinonyaruko/snake-classic/structs"
)

// Field geometry. The origin is the centre of the field.
const (
	CellSize    = 20
	FieldWidth  = 680
	FieldHeight = 720

	WrapLimit     = 330 // Classic: beyond this the head wraps
	BoundaryLimit = 330 // Obstacle: beyond this the run ends

	FoodLimitClassic = 280
	FoodLimitTight   = 260 // bonus food, and food in Obstacle mode
)

// Radii, compared against Euclidean distance unless noted.
const (
	PickupRadius    = 15
	ObstacleRadius  = 20
	SelfRadius      = 10
	ExclusionMargin = 40 // per-axis box around a placement candidate
	SafeMargin      = 25 // per-axis box around the snake during layout generation
)

// Timing and progression.
const (
	TickInterval    = 20 * time.Millisecond
	BonusLifetime   = 5 * time.Second
	BaseDelay       = 100 * time.Millisecond
	DelayStep       = 4 * time.Millisecond
	MinDelay        = 30 * time.Millisecond
	SlowMotionDelay = 50 * time.Millisecond

	FoodsPerLevel     = 5
	PlacementAttempts = 50
)

// Palette holds the snake colors; level n uses Palette[(n-1)%len(Palette)].
var Palette = []string{"#ffffff", "#3498db", "#e74c3c", "#9b59b6", "#f1c40f", "#2ecc71"}

// Snap floors v onto the grid.
func Snap(v int) int {
	q := v / CellSize
	if v%CellSize != 0 && v < 0 {
		q--
	}
	return q * CellSize
}

// SnapCell floors both coordinates onto the grid.
func SnapCell(c structs.Cell) structs.Cell {
	return structs.Cell{X: Snap(c.X), Y: Snap(c.Y)}
}

// OnGrid reports whether both coordinates are multiples of CellSize.
func OnGrid(c structs.Cell) bool {
	return c.X%CellSize == 0 && c.Y%CellSize == 0
}

// Within reports whether a and b are closer than r.
func Within(a, b structs.Cell, r int) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy < r*r
}

// WithinBox reports whether a and b are closer than m on both axes.
func WithinBox(a, b structs.Cell, m int) bool {
	return abs(a.X-b.X) < m && abs(a.Y-b.Y) < m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
