package snake

import (
	"math/rand"
	"time"

	"github.com/hoshinonyaruko/snake-classic/structs"
)

// Game is the progression state machine. It owns the snake, the active mode,
// food, bonus food and the counters of the current run. It is not safe for
// concurrent use; the driver serialises calls.
type Game struct {
	rng   *rand.Rand
	state structs.RunState
	kind  ModeKind
	mode  *Mode
	snake *Snake
	food  structs.Cell
	bonus BonusFood
	sched Scheduler
	clock time.Duration // simulated time of the current run

	score      int
	level      int
	foodsEaten int
	speedLevel int
	slowMotion bool
	color      string
	degraded   int

	pending []structs.Event
}

// NewGame returns a game sitting in the menu. A nil rng is seeded from the
// wall clock.
func NewGame(rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		rng:   rng,
		state: structs.Menu,
		kind:  Classic,
		mode:  NewMode(Classic),
		snake: NewSnake(),
		level: 1,
		color: Palette[0],
	}
}

// Start begins a new run from the menu or after a game over. Ignored while a
// run is in progress.
func (g *Game) Start() bool {
	if g.state == structs.Running || g.state == structs.Paused {
		return false
	}

	g.snake.Reset()
	g.score = 0
	g.level = 1
	g.foodsEaten = 0
	g.speedLevel = 0
	g.slowMotion = false
	g.color = Palette[0]
	g.degraded = 0
	g.clock = 0
	g.sched.Reset()
	g.bonus.Deactivate()

	g.mode = NewMode(g.kind)
	g.mode.Setup(g.snake.Segments(), g.rng)
	g.placeFood()

	g.state = structs.Running
	return true
}

// TogglePause flips between Running and Paused.
func (g *Game) TogglePause() bool {
	switch g.state {
	case structs.Running:
		g.state = structs.Paused
	case structs.Paused:
		g.state = structs.Running
	default:
		return false
	}
	return true
}

// Turn forwards a heading change to the snake while a run exists.
func (g *Game) Turn(dir structs.Direction) bool {
	if g.state != structs.Running && g.state != structs.Paused {
		return false
	}
	return g.snake.Turn(dir)
}

// SelectMode switches the board for the next run. Only honored outside a run;
// after a game over it also returns to the menu.
func (g *Game) SelectMode(kind ModeKind) bool {
	if g.state == structs.Running || g.state == structs.Paused {
		return false
	}
	g.kind = kind
	g.toMenu()
	return true
}

// ReturnToMenu leaves the game over screen.
func (g *Game) ReturnToMenu() bool {
	if g.state != structs.GameOver {
		return false
	}
	g.toMenu()
	return true
}

func (g *Game) toMenu() {
	g.state = structs.Menu
	g.mode = NewMode(g.kind)
	g.bonus.Deactivate()
}

// Hold freezes movement and simulated time for d of callback time, used by
// drivers that show a blocking banner.
func (g *Game) Hold(d time.Duration) {
	if g.state == structs.Running {
		g.sched.Hold(d)
	}
}

// Tick advances the simulation by one external callback of length elapsed and
// returns the events produced since the previous call. At most one move
// happens per call.
func (g *Game) Tick(elapsed time.Duration) []structs.Event {
	if g.state != structs.Running || !g.sched.Advance(elapsed) {
		return g.flush()
	}
	g.clock += elapsed

	if g.bonus.HasExpired(g.clock) {
		g.emit(structs.Event{Kind: structs.EventBonusExpired, Cell: g.bonus.Cell})
		g.bonus.Deactivate()
	}

	if g.sched.Due(g.Delay()) {
		g.snake.Move()
		g.afterMove()
	}
	return g.flush()
}

func (g *Game) afterMove() {
	if Within(g.snake.Head(), g.food, PickupRadius) {
		g.eatFood()
	}
	if g.bonus.Active && Within(g.snake.Head(), g.bonus.Cell, PickupRadius) {
		g.eatBonus()
	}

	head := g.snake.Head()
	if g.snake.BitesItself() {
		g.gameOver(head, structs.CauseSelf)
		return
	}

	v := g.mode.Evaluate(head)
	switch v.Kind {
	case VerdictWrap:
		g.snake.SetHead(v.Head)
		g.emit(structs.Event{Kind: structs.EventWrapped, Cell: v.Head})
	case VerdictGameOver:
		g.gameOver(v.Head, v.Cause)
	}
}

func (g *Game) eatFood() {
	eaten := g.food
	g.placeFood()
	g.snake.Grow()

	points := g.level
	g.score += points
	g.foodsEaten++
	g.speedLevel++
	g.emit(structs.Event{Kind: structs.EventFoodEaten, Cell: eaten, Points: points, Score: g.score})

	milestone := g.foodsEaten%FoodsPerLevel == 0
	if milestone {
		g.levelUp()
	}

	if g.slowMotion {
		g.slowMotion = false
		g.emit(structs.Event{Kind: structs.EventSlowMotion, Active: false})
	}

	if milestone && !g.bonus.Active {
		g.spawnBonus()
	}
}

func (g *Game) levelUp() {
	g.level++

	if g.mode.Regenerate(g.level, g.snake.Segments(), g.rng) {
		g.placeFood()
		if g.bonus.Active {
			g.bonus.Deactivate()
		}
	}

	g.color = Palette[(g.level-1)%len(Palette)]
	g.emit(structs.Event{Kind: structs.EventLevelUp, Level: g.level, Color: g.color})
}

func (g *Game) eatBonus() {
	cell := g.bonus.Cell
	g.bonus.Deactivate()

	points := 5 * g.level
	g.score += points
	g.slowMotion = true
	g.emit(structs.Event{Kind: structs.EventBonusEaten, Cell: cell, Points: points, Score: g.score})
	g.emit(structs.Event{Kind: structs.EventSlowMotion, Active: true})
}

func (g *Game) placeFood() {
	p := Place(g.rng, g.mode.FoodLimit(), g.mode.Obstacles())
	g.food = p.Cell
	g.noteDegraded(p)
}

func (g *Game) spawnBonus() {
	p := g.bonus.Spawn(g.rng, g.mode.Obstacles(), g.clock)
	g.noteDegraded(p)
	g.emit(structs.Event{Kind: structs.EventBonusSpawned, Cell: p.Cell})
}

func (g *Game) noteDegraded(p Placement) {
	if !p.Degraded {
		return
	}
	g.degraded++
	g.emit(structs.Event{Kind: structs.EventPlacementDegraded, Cell: p.Cell, Attempts: p.Attempts})
}

func (g *Game) gameOver(at structs.Cell, cause string) {
	g.state = structs.GameOver
	g.emit(structs.Event{Kind: structs.EventGameOver, Cell: at, Cause: cause, Score: g.score})
}

func (g *Game) emit(ev structs.Event) {
	g.pending = append(g.pending, ev)
}

func (g *Game) flush() []structs.Event {
	out := g.pending
	g.pending = nil
	return out
}

// DelayFor is the per-move delay for a speed level.
func DelayFor(speedLevel int, slowMotion bool) time.Duration {
	d := BaseDelay - time.Duration(speedLevel)*DelayStep
	if d < MinDelay {
		d = MinDelay
	}
	if slowMotion {
		d += SlowMotionDelay
	}
	return d
}

// Delay is the current per-move delay.
func (g *Game) Delay() time.Duration {
	return DelayFor(g.speedLevel, g.slowMotion)
}

func (g *Game) State() structs.RunState { return g.state }
func (g *Game) Mode() ModeKind          { return g.kind }
func (g *Game) Score() int              { return g.score }
func (g *Game) Level() int              { return g.level }
func (g *Game) FoodsEaten() int         { return g.foodsEaten }
func (g *Game) SpeedLevel() int         { return g.speedLevel }
func (g *Game) SlowMotion() bool        { return g.slowMotion }
func (g *Game) Color() string           { return g.color }
func (g *Game) DegradedPlacements() int { return g.degraded }
func (g *Game) Food() structs.Cell      { return g.food }
func (g *Game) Bonus() BonusFood        { return g.bonus }
func (g *Game) Snake() *Snake           { return g.snake }
func (g *Game) Clock() time.Duration    { return g.clock }

// Snapshot projects the state for presentation.
func (g *Game) Snapshot() structs.Snapshot {
	obstacles := make([]structs.Cell, len(g.mode.Obstacles()))
	copy(obstacles, g.mode.Obstacles())

	return structs.Snapshot{
		State:     g.state,
		Mode:      g.kind.String(),
		Snake:     g.snake.Segments(),
		Heading:   g.snake.Heading(),
		Color:     g.color,
		Obstacles: obstacles,
		Food:      g.food,
		Bonus: structs.BonusView{
			Active:      g.bonus.Active,
			Cell:        g.bonus.Cell,
			RemainingMs: g.bonus.Remaining(g.clock).Milliseconds(),
		},
		Score:      g.score,
		Level:      g.level,
		FoodsEaten: g.foodsEaten,
		SpeedLevel: g.speedLevel,
		DelayMs:    g.Delay().Milliseconds(),
		SlowMotion: g.slowMotion,
		Degraded:   g.degraded,
	}
}
