package snake

import (
	"math/rand"

	"github.com/hoshinonyaruko/snake-classic/structs"
)

// Obstacle mode archetypes, selected by level % 4.
const (
	LayoutScatter = 0 // 20 random blocks
	LayoutBox     = 1 // box with two openings per side
	LayoutCross   = 2 // two bars through the centre
	LayoutPillars = 3 // four 3x3 pillars
)

const scatterCount = 20

// layoutBuilder collects obstacle cells, skipping duplicates and any cell near
// a safe cell. Skipped cells are not retried.
type layoutBuilder struct {
	cells []structs.Cell
	seen  map[structs.Cell]bool
	safe  []structs.Cell
}

func newLayoutBuilder(safe []structs.Cell) *layoutBuilder {
	return &layoutBuilder{seen: make(map[structs.Cell]bool), safe: safe}
}

func (b *layoutBuilder) add(c structs.Cell) {
	if b.seen[c] {
		return
	}
	for _, s := range b.safe {
		if WithinBox(s, c, SafeMargin) {
			return
		}
	}
	b.seen[c] = true
	b.cells = append(b.cells, c)
}

// wall adds a straight run of cells. Horizontal walls span x in [from, to) at
// y = at; vertical walls span y in [from, to) at x = at.
func (b *layoutBuilder) wall(from, to, at int, horizontal bool) {
	for v := from; v < to; v += CellSize {
		if horizontal {
			b.add(structs.Cell{X: v, Y: at})
		} else {
			b.add(structs.Cell{X: at, Y: v})
		}
	}
}

// ClassicWalls returns the perimeter wall of Classic mode. The corners are
// left open so the snake can wrap through them.
func ClassicWalls() []structs.Cell {
	b := newLayoutBuilder(nil)
	b.wall(-260, 280, 340, true)
	b.wall(-260, 280, -340, true)
	b.wall(-260, 280, -320, false)
	b.wall(-260, 280, 320, false)
	return b.cells
}

// LayoutFor returns the archetype used at level.
func LayoutFor(level int) int {
	return ((level % 4) + 4) % 4
}

// ObstacleLayout generates the Obstacle mode layout for level. No cell is
// placed near safe, so the result may be sparser than the archetype.
func ObstacleLayout(level int, safe []structs.Cell, rng *rand.Rand) []structs.Cell {
	b := newLayoutBuilder(safe)

	switch LayoutFor(level) {
	case LayoutBox:
		b.wall(-200, -40, 200, true)
		b.wall(40, 220, 200, true)
		b.wall(-200, -40, -200, true)
		b.wall(40, 220, -200, true)
		b.wall(-200, -40, -200, false)
		b.wall(40, 220, -200, false)
		b.wall(-200, -40, 200, false)
		b.wall(40, 220, 200, false)

	case LayoutCross:
		b.wall(-140, 160, 0, true)
		b.wall(-140, 160, 0, false)

	case LayoutPillars:
		for _, x := range []int{-140, 140} {
			for _, y := range []int{-140, 140} {
				for dx := -CellSize; dx <= CellSize; dx += CellSize {
					for dy := -CellSize; dy <= CellSize; dy += CellSize {
						b.add(structs.Cell{X: x + dx, Y: y + dy})
					}
				}
			}
		}

	default:
		for i := 0; i < scatterCount; i++ {
			x := (rng.Intn(29) - 14) * CellSize
			y := (rng.Intn(29) - 14) * CellSize
			b.add(structs.Cell{X: x, Y: y})
		}
	}

	return b.cells
}
