// Package scoreboard keeps the per-mode high scores. Reads that fail fall back
// to zero and writes that fail are logged, so persistence never interrupts a run.
package scoreboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Store persists the mode -> high score mapping. Save overwrites everything.
type Store interface {
	Load() (map[string]int, error)
	Save(scores map[string]int) error
}

// DefaultScores is what a fresh or unreadable store yields.
func DefaultScores() map[string]int {
	return map[string]int{"Classic": 0, "Obstacle": 0}
}

// FileStore keeps the scores as a JSON object in a text file. It also reads
// the older format holding a single integer, which was the Classic score.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() (map[string]int, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return DefaultScores(), nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) (map[string]int, error) {
	data = bytes.TrimSpace(data)

	var scores map[string]int
	if err := json.Unmarshal(data, &scores); err == nil && scores != nil {
		return scores, nil
	}

	legacy, err := strconv.Atoi(string(data))
	if err != nil {
		var f float64
		if jerr := json.Unmarshal(data, &f); jerr != nil {
			return nil, fmt.Errorf("unrecognised high score format: %w", err)
		}
		legacy = int(f)
	}
	return map[string]int{"Classic": legacy, "Obstacle": 0}, nil
}

func (f *FileStore) Save(scores map[string]int) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0644)
}

// Board tracks the high score of the selected mode.
type Board struct {
	mu     sync.RWMutex
	store  Store
	scores map[string]int
	mode   string
}

// NewBoard loads the scores once. Any failure starts from zero.
func NewBoard(store Store, mode string) *Board {
	scores, err := store.Load()
	if err != nil {
		log.Printf("Failed to load high scores, starting from zero: %s", err)
		scores = DefaultScores()
	}
	if scores == nil {
		scores = DefaultScores()
	}
	return &Board{store: store, scores: scores, mode: mode}
}

// SetMode switches which mode's high score is reported.
func (b *Board) SetMode(mode string) {
	b.mu.Lock()
	b.mode = mode
	b.mu.Unlock()
}

func (b *Board) Mode() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mode
}

// HighScore returns the current mode's high score, zero if unknown.
func (b *Board) HighScore() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.scores[b.mode]
}

// Scores returns a copy of every mode's high score.
func (b *Board) Scores() map[string]int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]int, len(b.scores))
	for k, v := range b.scores {
		out[k] = v
	}
	return out
}

// Submit records a finished run. A new high score is saved through the store;
// a failed save is logged and the in-memory value kept.
func (b *Board) Submit(score int) bool {
	b.mu.Lock()
	if score <= b.scores[b.mode] {
		b.mu.Unlock()
		return false
	}
	b.scores[b.mode] = score
	snapshot := make(map[string]int, len(b.scores))
	for k, v := range b.scores {
		snapshot[k] = v
	}
	b.mu.Unlock()

	if err := b.store.Save(snapshot); err != nil {
		log.Printf("Failed to save high scores: %s", err)
	}
	return true
}
