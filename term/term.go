// Package term plays the game in a terminal. Each cell is two columns wide
// and one row high, with a one-line score header above the field.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-classic/session"
	"github.com/hoshinonyaruko/snake-classic/snake"
	"github.com/hoshinonyaruko/snake-classic/structs"
)

const (
	frameInterval = 33 * time.Millisecond
	hudRows       = 1
)

var (
	obstacleStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	foodStyle     = tcell.StyleDefault.Foreground(tcell.GetColor("#e74c3c"))
	bonusStyle    = tcell.StyleDefault.Foreground(tcell.GetColor("#f1c40f"))
	textStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	bannerStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Driver reads keys from a screen and draws session snapshots on it. The
// session is ticked elsewhere; the driver only sends commands.
type Driver struct {
	screen tcell.Screen
	sess   *session.Session
}

func New(screen tcell.Screen, sess *session.Session) *Driver {
	return &Driver{screen: screen, sess: sess}
}

// Run redraws every frame and handles keys until the player quits or ctx
// is done. The caller owns the screen and must Init and Fini it.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !d.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				d.screen.Sync()
			}
		case <-ticker.C:
			d.draw(d.sess.Snapshot(), d.sess.HighScore())
		}
	}
}

// handleKey applies one key press. It returns false when the player quits.
func (d *Driver) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		d.sess.Turn(structs.Up)
	case tcell.KeyDown:
		d.sess.Turn(structs.Down)
	case tcell.KeyLeft:
		d.sess.Turn(structs.Left)
	case tcell.KeyRight:
		d.sess.Turn(structs.Right)
	case tcell.KeyEnter:
		d.sess.Start()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			d.sess.Start()
		case 'p':
			d.sess.TogglePause()
		case 'm':
			d.sess.ReturnToMenu()
		case '1':
			d.sess.SelectMode(snake.Classic.String())
		case '2':
			d.sess.SelectMode(snake.Obstacle.String())
		}
	}
	return true
}

// cellPos maps a cell centre to its left column and row.
func cellPos(c structs.Cell) (int, int) {
	col := (c.X + snake.FieldWidth/2) / snake.CellSize * 2
	row := (snake.FieldHeight/2-c.Y)/snake.CellSize + hudRows
	return col, row
}

func (d *Driver) setCell(c structs.Cell, r rune, style tcell.Style) {
	col, row := cellPos(c)
	d.screen.SetContent(col, row, r, nil, style)
	d.screen.SetContent(col+1, row, r, nil, style)
}

func (d *Driver) drawText(col, row int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		d.screen.SetContent(col+i, row, r, nil, style)
	}
}

func (d *Driver) draw(snap structs.Snapshot, highScore int) {
	d.screen.Clear()

	for _, c := range snap.Obstacles {
		d.setCell(c, '▓', obstacleStyle)
	}
	if snap.State != structs.Menu {
		d.setCell(snap.Food, '●', foodStyle)
		if snap.Bonus.Active {
			d.setCell(snap.Bonus.Cell, '★', bonusStyle)
		}
		snakeStyle := tcell.StyleDefault.Foreground(tcell.GetColor(snap.Color))
		for i := len(snap.Snake) - 1; i >= 0; i-- {
			r := '█'
			if i == 0 {
				r = '▒'
			}
			d.setCell(snap.Snake[i], r, snakeStyle)
		}
	}

	d.drawText(0, 0, fmt.Sprintf("Score: %d  High Score: %d  Level: %d  %s", snap.Score, highScore, snap.Level, snap.Mode), textStyle)

	var banner string
	switch snap.State {
	case structs.Menu:
		banner = "SNAKE  1 Classic  2 Obstacle  Enter start  q quit"
	case structs.Paused:
		banner = "PAUSED  p resume"
	case structs.GameOver:
		banner = "GAME OVER  Enter restart  m menu"
	default:
		if snap.SlowMotion {
			banner = "SLOW MOTION"
		}
	}
	if banner != "" {
		col := snake.FieldWidth/snake.CellSize - len(banner)/2
		d.drawText(col, snake.FieldHeight/snake.CellSize/2+hudRows, banner, bannerStyle)
	}

	d.screen.Show()
}
