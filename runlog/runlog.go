// Package runlog appends one CSV row per finished run.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// Record describes one finished run.
type Record struct {
	RunID      string `csv:"run_id" json:"run_id"`
	Mode       string `csv:"mode" json:"mode"`
	Score      int    `csv:"score" json:"score"`
	Level      int    `csv:"level" json:"level"`
	FoodsEaten int    `csv:"foods_eaten" json:"foods_eaten"`
	Length     int    `csv:"length" json:"length"`
	Cause      string `csv:"cause" json:"cause"`
	HighScore  bool   `csv:"high_score" json:"high_score"`
	StartedAt  string `csv:"started_at" json:"started_at"`
	EndedAt    string `csv:"ended_at" json:"ended_at"`
}

// Log appends records to a CSV file. A nil *Log discards everything.
type Log struct {
	mu            sync.Mutex
	path          string
	file          *os.File
	headerWritten bool
}

// Open opens path for appending, creating it and its directory if needed.
// An empty path disables the log and returns nil.
func Open(path string) (*Log, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating run log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat run log: %w", err)
	}
	return &Log{path: path, file: f, headerWritten: info.Size() > 0}, nil
}

func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes rec, with the header if the file was empty.
func (l *Log) Append(rec Record) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	records := []Record{rec}
	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.file); err != nil {
			return fmt.Errorf("writing run: %w", err)
		}
		l.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, l.file); err != nil {
		return fmt.Errorf("writing run: %w", err)
	}
	return nil
}

func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	return l.file.Close()
}

// ReadAll loads every record in path. A missing or empty file has none.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}
	return records, nil
}
