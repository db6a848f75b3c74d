package runlog

import (
	"path/filepath"
	"testing"
)

func TestAppendAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "runs.csv")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	first := Record{RunID: "a", Mode: "Classic", Score: 5, Level: 2, FoodsEaten: 5, Length: 8, Cause: "self", HighScore: true}
	second := Record{RunID: "b", Mode: "Obstacle", Score: 1, Level: 1, FoodsEaten: 1, Length: 4, Cause: "boundary"}
	if err := l.Append(first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Append(second); err != nil {
		t.Fatalf("Append: %v", err)
	}
	l.Close()

	// reopening must not write a second header
	l, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	third := Record{RunID: "c", Mode: "Classic", Score: 2, Level: 1, FoodsEaten: 2, Length: 5, Cause: "obstacle"}
	if err := l.Append(third); err != nil {
		t.Fatalf("Append: %v", err)
	}
	l.Close()

	records, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d: %+v", len(records), records)
	}
	if records[0] != first || records[1] != second || records[2] != third {
		t.Errorf("records did not survive: %+v", records)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	records, err := ReadAll(filepath.Join(t.TempDir(), "none.csv"))
	if err != nil || len(records) != 0 {
		t.Errorf("expected no records, got %v %v", records, err)
	}
}

func TestNilLogDiscards(t *testing.T) {
	l, err := Open("")
	if err != nil || l != nil {
		t.Fatalf("empty path should disable the log, got %v %v", l, err)
	}
	if err := l.Append(Record{RunID: "x"}); err != nil {
		t.Errorf("nil log Append: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("nil log Close: %v", err)
	}
}
