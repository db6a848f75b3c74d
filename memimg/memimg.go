// Package memimg keeps the board sprites in memory, scaled to one cell.
package memimg

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
)

// Sprite names looked up by the renderer. Files are matched by base name,
// so sprites/food.png serves SpriteFood.
const (
	SpriteHead     = "head"
	SpriteBody     = "body"
	SpriteFood     = "food"
	SpriteBonus    = "bonus"
	SpriteObstacle = "obstacle"
)

var (
	sprites      = make(map[string]image.Image)
	spriteSize   int
	spritesMutex sync.RWMutex
)

// LoadSprites replaces the cache with every image in directory scaled to
// size x size. Files that are not images are skipped.
func LoadSprites(directory string, size int) error {
	loaded := make(map[string]image.Image)
	err := filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		img, err := loadSprite(path, size)
		if err != nil {
			log.Printf("Skipping sprite %s: %s", path, err)
			return nil
		}
		loaded[spriteName(path)] = img
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading sprites: %w", err)
	}

	spritesMutex.Lock()
	sprites = loaded
	spriteSize = size
	spritesMutex.Unlock()
	log.Printf("Loaded %d sprites from %s", len(loaded), directory)
	return nil
}

func loadSprite(path string, size int) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	// 缩放到格子大小
	return imaging.Resize(img, size, size, imaging.Lanczos), nil
}

func spriteName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WatchSprites reloads sprites in directory as they change, until ctx is done.
func WatchSprites(ctx context.Context, directory string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating sprite watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(directory); err != nil {
		return fmt.Errorf("watching %s: %w", directory, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Sprite watcher error: %s", err)
		}
	}
}

func handleEvent(event fsnotify.Event) {
	name := spriteName(event.Name)
	switch {
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		spritesMutex.RLock()
		size := spriteSize
		spritesMutex.RUnlock()

		img, err := loadSprite(event.Name, size)
		if err != nil {
			// 文件可能还没写完，等下一个Write事件
			return
		}
		spritesMutex.Lock()
		sprites[name] = img
		spritesMutex.Unlock()
		log.Printf("Reloaded sprite %s", name)
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		spritesMutex.Lock()
		delete(sprites, name)
		spritesMutex.Unlock()
		log.Printf("Dropped sprite %s", name)
	}
}

// GetSprite returns the cached sprite called name.
func GetSprite(name string) (image.Image, bool) {
	spritesMutex.RLock()
	img, exists := sprites[name]
	spritesMutex.RUnlock()
	return img, exists
}
