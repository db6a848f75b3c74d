package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createHighScoresTableSQL = `
CREATE TABLE IF NOT EXISTS HighScores (
    Mode TEXT PRIMARY KEY,
    Score INTEGER NOT NULL DEFAULT 0,
    UpdatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

func executeSQL(db *sql.DB, sqlStatement string) error {
	if _, err := db.Exec(sqlStatement); err != nil {
		return fmt.Errorf("error executing SQL statement: %s: %w", sqlStatement, err)
	}
	return nil
}

// InitDB opens (creating if needed) the database at dbPath and its schema.
func InitDB(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := InitializeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func InitializeDatabase(db *sql.DB) error {
	return executeSQL(db, createHighScoresTableSQL)
}

// HighScoreStore keeps the per-mode high scores in the HighScores table.
type HighScoreStore struct {
	db *sql.DB
}

func NewHighScoreStore(db *sql.DB) *HighScoreStore {
	return &HighScoreStore{db: db}
}

func (s *HighScoreStore) Load() (map[string]int, error) {
	rows, err := s.db.Query("SELECT Mode, Score FROM HighScores")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := map[string]int{"Classic": 0, "Obstacle": 0}
	for rows.Next() {
		var (
			mode  string
			score int
		)
		if err := rows.Scan(&mode, &score); err != nil {
			return nil, err
		}
		scores[mode] = score
	}
	return scores, rows.Err()
}

// Save replaces the whole table with scores in one transaction.
func (s *HighScoreStore) Save(scores map[string]int) error {
	// 开启事务
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM HighScores"); err != nil {
		tx.Rollback()
		return err
	}
	for mode, score := range scores {
		_, err := tx.Exec("INSERT INTO HighScores (Mode, Score, UpdatedAt) VALUES (?, ?, CURRENT_TIMESTAMP)", mode, score)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	// 提交事务
	return tx.Commit()
}
