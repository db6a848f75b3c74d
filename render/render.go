// Package render draws a Snapshot onto a PNG the size of the playfield.
package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-classic/memimg"
	"github.com/hoshinonyaruko/snake-classic/snake"
	"github.com/hoshinonyaruko/snake-classic/structs"
)

const (
	background    = "#000000"
	obstacleColor = "#808080"
	foodColor     = "#e74c3c"
	bonusColor    = "#f1c40f"
	textColor     = "#ffffff"
)

// pixel converts a cell centre to the top-left pixel of its square.
func pixel(c structs.Cell) (float64, float64) {
	half := snake.CellSize / 2
	px := c.X + snake.FieldWidth/2 - half
	py := snake.FieldHeight/2 - c.Y - half
	return float64(px), float64(py)
}

// Render draws snap with highScore in the header.
func Render(snap structs.Snapshot, highScore int) image.Image {
	dc := gg.NewContext(snake.FieldWidth, snake.FieldHeight)
	dc.SetHexColor(background)
	dc.Clear()

	for _, c := range snap.Obstacles {
		drawCell(dc, c, memimg.SpriteObstacle, obstacleColor)
	}

	if snap.State != structs.Menu {
		drawCell(dc, snap.Food, memimg.SpriteFood, foodColor)
		if snap.Bonus.Active {
			drawBonus(dc, snap.Bonus)
		}
		for i := len(snap.Snake) - 1; i >= 0; i-- {
			sprite := memimg.SpriteBody
			if i == 0 {
				sprite = memimg.SpriteHead
			}
			drawCell(dc, snap.Snake[i], sprite, snap.Color)
		}
	}

	drawHUD(dc, snap, highScore)
	return dc.Image()
}

func drawCell(dc *gg.Context, c structs.Cell, sprite, fallback string) {
	x, y := pixel(c)
	if img, ok := memimg.GetSprite(sprite); ok {
		dc.DrawImage(img, int(x), int(y))
		return
	}
	dc.SetHexColor(fallback)
	dc.DrawRectangle(x, y, snake.CellSize, snake.CellSize)
	dc.Fill()
}

// drawBonus shrinks the bonus square as its lifetime runs out.
func drawBonus(dc *gg.Context, bonus structs.BonusView) {
	if _, ok := memimg.GetSprite(memimg.SpriteBonus); ok {
		drawCell(dc, bonus.Cell, memimg.SpriteBonus, bonusColor)
		return
	}
	frac := float64(bonus.RemainingMs) / float64(snake.BonusLifetime.Milliseconds())
	if frac < 0.3 {
		frac = 0.3
	}
	x, y := pixel(bonus.Cell)
	size := snake.CellSize * frac
	offset := (snake.CellSize - size) / 2
	dc.SetHexColor(bonusColor)
	dc.DrawRectangle(x+offset, y+offset, size, size)
	dc.Fill()
}

func drawHUD(dc *gg.Context, snap structs.Snapshot, highScore int) {
	dc.SetHexColor(textColor)
	header := fmt.Sprintf("Score: %d  High Score: %d  Level: %d  Mode: %s", snap.Score, highScore, snap.Level, snap.Mode)
	dc.DrawStringAnchored(header, snake.FieldWidth/2, 14, 0.5, 0.5)

	var banner string
	switch snap.State {
	case structs.Menu:
		banner = "SNAKE - press start"
	case structs.Paused:
		banner = "PAUSED"
	case structs.GameOver:
		banner = "GAME OVER"
	default:
		if snap.SlowMotion {
			banner = "SLOW MOTION"
		}
	}
	if banner != "" {
		dc.DrawStringAnchored(banner, snake.FieldWidth/2, snake.FieldHeight/2, 0.5, 0.5)
	}
}

// SavePNG renders snap to path, creating the directory if needed.
func SavePNG(snap structs.Snapshot, highScore int, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("creating render directory: %w", err)
	}
	dc := gg.NewContextForImage(Render(snap, highScore))
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving render: %w", err)
	}
	return nil
}
