// Package session drives a snake.Game from the wall clock. It serialises
// commands from the HTTP and terminal front ends with the periodic tick,
// reproduces the presentation's blocking banners as simulation holds and
// hands every emitted event to the registered sinks.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hoshinonyaruko/snake-classic/runlog"
	"github.com/hoshinonyaruko/snake-classic/scoreboard"
	"github.com/hoshinonyaruko/snake-classic/snake"
	"github.com/hoshinonyaruko/snake-classic/structs"
)

// Lengths of the blocking feedback shown by the presentation layer.
const (
	ShakePause  = 50 * time.Millisecond
	BannerPause = 500 * time.Millisecond
)

type Options struct {
	// FeedbackPauses freezes the simulation while a banner or shake is shown.
	FeedbackPauses bool
}

// Sink receives every event after the tick that produced it.
type Sink func(structs.Event)

type Session struct {
	mu      sync.Mutex
	game    *snake.Game
	board   *scoreboard.Board
	runs    *runlog.Log
	opts    Options
	sinks   []Sink
	runID   string
	started time.Time
}

func New(game *snake.Game, board *scoreboard.Board, runs *runlog.Log, opts Options) *Session {
	board.SetMode(game.Mode().String())
	return &Session{game: game, board: board, runs: runs, opts: opts}
}

// Subscribe adds a sink. Sinks are called outside the session lock.
func (s *Session) Subscribe(sink Sink) {
	s.mu.Lock()
	s.sinks = append(s.sinks, sink)
	s.mu.Unlock()
}

// Run ticks the game every snake.TickInterval until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(snake.TickInterval)
	defer ticker.Stop()
	log.Printf("Session ticker started (%v)", snake.TickInterval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Session ticker stopped: %s", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			s.Step(snake.TickInterval)
		}
	}
}

// Step runs one callback of length elapsed and dispatches its events.
func (s *Session) Step(elapsed time.Duration) []structs.Event {
	s.mu.Lock()
	events := s.game.Tick(elapsed)
	for _, ev := range events {
		s.handle(ev)
	}
	sinks := s.sinks
	runID := s.runID
	s.mu.Unlock()

	for _, ev := range events {
		logEvent(runID, ev)
		for _, sink := range sinks {
			sink(ev)
		}
	}
	return events
}

// handle reacts to an event under the lock.
func (s *Session) handle(ev structs.Event) {
	switch ev.Kind {
	case structs.EventFoodEaten:
		s.hold(ShakePause)
	case structs.EventBonusEaten, structs.EventLevelUp:
		s.hold(BannerPause)
	case structs.EventGameOver:
		s.finishRun(ev)
	}
}

func (s *Session) hold(d time.Duration) {
	if s.opts.FeedbackPauses {
		s.game.Hold(d)
	}
}

func (s *Session) finishRun(ev structs.Event) {
	newHigh := s.board.Submit(ev.Score)
	rec := runlog.Record{
		RunID:      s.runID,
		Mode:       s.game.Mode().String(),
		Score:      ev.Score,
		Level:      s.game.Level(),
		FoodsEaten: s.game.FoodsEaten(),
		Length:     s.game.Snake().Len(),
		Cause:      ev.Cause,
		HighScore:  newHigh,
		StartedAt:  s.started.Format(time.RFC3339),
		EndedAt:    time.Now().Format(time.RFC3339),
	}
	if err := s.runs.Append(rec); err != nil {
		log.Printf("Failed to append run %s: %s", s.runID, err)
	}
}

func logEvent(runID string, ev structs.Event) {
	switch ev.Kind {
	case structs.EventGameOver:
		log.Printf("[%s] game over (%s) at (%d,%d), score %d", runID, ev.Cause, ev.Cell.X, ev.Cell.Y, ev.Score)
	case structs.EventLevelUp:
		log.Printf("[%s] level %d, color %s", runID, ev.Level, ev.Color)
	case structs.EventPlacementDegraded:
		log.Printf("[%s] placement degraded after %d attempts, accepted (%d,%d)", runID, ev.Attempts, ev.Cell.X, ev.Cell.Y)
	default:
		log.Printf("[%s] %s at (%d,%d)", runID, ev.Kind, ev.Cell.X, ev.Cell.Y)
	}
}

// Start begins a new run, ignored while one is in progress.
func (s *Session) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.game.Start() {
		return false
	}
	s.runID = uuid.NewString()
	s.started = time.Now()
	s.board.SetMode(s.game.Mode().String())
	log.Printf("[%s] run started in %s mode", s.runID, s.game.Mode())
	return true
}

func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.TogglePause()
}

func (s *Session) Turn(dir structs.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Turn(dir)
}

// SelectMode parses name and switches the board for the next run. Unknown
// names are an error; a valid name outside the menu is just not accepted.
func (s *Session) SelectMode(name string) (bool, error) {
	kind, err := snake.ParseMode(name)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.game.SelectMode(kind) {
		return false, nil
	}
	s.board.SetMode(kind.String())
	return true, nil
}

func (s *Session) ReturnToMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ReturnToMenu()
}

func (s *Session) Snapshot() structs.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Session) State() structs.RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

// HighScore is the stored high score of the selected mode.
func (s *Session) HighScore() int {
	return s.board.HighScore()
}

func (s *Session) Scores() map[string]int {
	return s.board.Scores()
}

func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// RunLogPath is where finished runs are recorded, empty when disabled.
func (s *Session) RunLogPath() string {
	return s.runs.Path()
}
