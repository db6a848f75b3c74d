package snake

import (
	"math/rand"
	"testing"

	"github.com/hoshinonyaruko/snake-classic/structs"
)

func TestClassicWalls(t *testing.T) {
	walls := ClassicWalls()

	// 27 cells per side
	if len(walls) != 4*27 {
		t.Fatalf("expected %d wall cells, got %d", 4*27, len(walls))
	}
	for _, c := range walls {
		if !OnGrid(c) {
			t.Errorf("wall cell %v is off grid", c)
		}
		onEdge := c.Y == 340 || c.Y == -340 || c.X == 320 || c.X == -320
		if !onEdge {
			t.Errorf("wall cell %v is not on the perimeter", c)
		}
	}
	// corners stay open for wrapping
	for _, c := range walls {
		if abs(c.X) > 260 && abs(c.Y) > 260 {
			t.Errorf("corner cell %v should be open", c)
		}
	}
}

func TestLayoutFor(t *testing.T) {
	cases := map[int]int{1: LayoutBox, 2: LayoutCross, 3: LayoutPillars, 4: LayoutScatter, 5: LayoutBox, 8: LayoutScatter}
	for level, want := range cases {
		if got := LayoutFor(level); got != want {
			t.Errorf("level %d: expected layout %d, got %d", level, want, got)
		}
	}
}

func TestArchetypeSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// box: 4 horizontal runs of 8 and 9 cells, 4 vertical runs of the same,
	// corners shared between a horizontal and a vertical run
	box := ObstacleLayout(1, nil, rng)
	if len(box) != 2*(8+9)*2-4 {
		t.Errorf("box: expected %d cells, got %d", 2*(8+9)*2-4, len(box))
	}

	cross := ObstacleLayout(2, nil, rng)
	if len(cross) != 15+15-1 {
		t.Errorf("cross: expected 29 cells, got %d", len(cross))
	}

	pillars := ObstacleLayout(3, nil, rng)
	if len(pillars) != 4*9 {
		t.Errorf("pillars: expected 36 cells, got %d", len(pillars))
	}

	scatter := ObstacleLayout(4, nil, rng)
	if len(scatter) == 0 || len(scatter) > scatterCount {
		t.Errorf("scatter: expected 1..%d cells, got %d", scatterCount, len(scatter))
	}
	for _, c := range scatter {
		if !OnGrid(c) || abs(c.X) > 280 || abs(c.Y) > 280 {
			t.Errorf("scatter cell %v out of range", c)
		}
	}
}

func TestLayoutSkipsCellsNearSnake(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	safe := []structs.Cell{{X: 0, Y: 0}, {X: -20, Y: 0}, {X: -40, Y: 0}}

	cross := ObstacleLayout(2, safe, rng)
	full := ObstacleLayout(2, nil, rng)
	if len(cross) >= len(full) {
		t.Fatalf("expected gaps near the snake, got %d of %d cells", len(cross), len(full))
	}
	for _, c := range cross {
		for _, s := range safe {
			if WithinBox(c, s, SafeMargin) {
				t.Errorf("obstacle %v placed next to snake cell %v", c, s)
			}
		}
	}
	// (0,20) is one cell above the head and must be skipped, (0,40) kept
	has := func(cells []structs.Cell, c structs.Cell) bool {
		for _, x := range cells {
			if x == c {
				return true
			}
		}
		return false
	}
	if has(cross, structs.Cell{X: 0, Y: 20}) {
		t.Error("cell adjacent to the head should be skipped")
	}
	if !has(cross, structs.Cell{X: 0, Y: 40}) {
		t.Error("cell two rows above the head should be kept")
	}
}

func TestScatterIsBoundedWhenSnakeBlocksEverything(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var safe []structs.Cell
	for x := -280; x <= 280; x += CellSize {
		for y := -280; y <= 280; y += CellSize {
			safe = append(safe, structs.Cell{X: x, Y: y})
		}
	}
	if cells := ObstacleLayout(4, safe, rng); len(cells) != 0 {
		t.Errorf("expected no obstacles, got %d", len(cells))
	}
}
