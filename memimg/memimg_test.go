package memimg

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, A: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("saving %s: %v", path, err)
	}
}

func TestLoadSpritesScalesToCell(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "food.png"), 64, 48)
	writePNG(t, filepath.Join(dir, "head.png"), 10, 10)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadSprites(dir, 20); err != nil {
		t.Fatalf("LoadSprites: %v", err)
	}
	for _, name := range []string{SpriteFood, SpriteHead} {
		img, ok := GetSprite(name)
		if !ok {
			t.Fatalf("sprite %s missing", name)
		}
		if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
			t.Errorf("sprite %s is %v, want 20x20", name, b)
		}
	}
	if _, ok := GetSprite("notes"); ok {
		t.Error("text file should not be cached")
	}
}

func TestLoadSpritesMissingDirectory(t *testing.T) {
	if err := LoadSprites(filepath.Join(t.TempDir(), "none"), 20); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestWatchSpritesPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	if err := LoadSprites(dir, 20); err != nil {
		t.Fatalf("LoadSprites: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- WatchSprites(ctx, dir) }()

	// written elsewhere and moved in so the watcher sees a complete file
	staging := filepath.Join(t.TempDir(), "bonus.png")
	deadline := time.Now().Add(5 * time.Second)
	var img image.Image
	for time.Now().Before(deadline) {
		writePNG(t, staging, 32, 32)
		if err := os.Rename(staging, filepath.Join(dir, "bonus.png")); err != nil {
			t.Fatalf("rename: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
		if got, ok := GetSprite(SpriteBonus); ok {
			img = got
			break
		}
	}
	if img == nil {
		t.Fatal("watcher did not load the new sprite")
	}
	if img.Bounds().Dx() != 20 {
		t.Errorf("reloaded sprite not scaled: %v", img.Bounds())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("WatchSprites: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
