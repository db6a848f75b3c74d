package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	SelfPath       string `json:"selfpath" yaml:"selfpath"`
	Port           string `json:"port" yaml:"port"`
	ScoreStore     string `json:"scorestore" yaml:"scorestore"` // "file" or "sqlite"
	ScoreFile      string `json:"scorefile" yaml:"scorefile"`
	DBPath         string `json:"dbpath" yaml:"dbpath"`
	RunLog         string `json:"runlog" yaml:"runlog"`
	SpriteDir      string `json:"spritedir" yaml:"spritedir"`
	StaticDir      string `json:"staticdir" yaml:"staticdir"`
	Seed           int64  `json:"seed" yaml:"seed"` // 0 seeds from the clock
	FeedbackPauses bool   `json:"feedbackpauses" yaml:"feedbackpauses"`
}

var (
	instance *AppConfig
	once     sync.Once
)

// Defaults returns the configuration used when no file overrides it.
func Defaults() *AppConfig {
	return &AppConfig{
		SelfPath:       "127.0.0.1:38870",
		Port:           "38870",
		ScoreStore:     "file",
		ScoreFile:      "data/data.txt",
		DBPath:         "data/game.db",
		RunLog:         "data/runs.csv",
		SpriteDir:      "sprites",
		StaticDir:      "static",
		Seed:           0,
		FeedbackPauses: true,
	}
}

// LoadConfig initializes and returns the instance of AppConfig
func LoadConfig(filePath string) *AppConfig {
	once.Do(func() {
		cfg, err := Parse(filePath)
		if err != nil {
			log.Fatalf("Failed to load config %s: %s", filePath, err)
		}
		instance = cfg
	})
	return instance
}

// Parse reads filePath over the defaults. A missing file is created with the
// defaults. Files ending in .yaml or .yml are YAML, anything else is JSON.
func Parse(filePath string) (*AppConfig, error) {
	cfg := Defaults()

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		if err := saveConfig(filePath, cfg); err != nil {
			return nil, err
		}
		log.Printf("Created default config %s", filePath)
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if isYAML(filePath) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string, cfg *AppConfig) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	var (
		data []byte
		err  error
	)
	if isYAML(filePath) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func isYAML(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	return ext == ".yaml" || ext == ".yml"
}

// GetConfigValue returns the value of the configuration by key
func GetConfigValue(key string) interface{} {
	switch key {
	case "selfpath":
		return instance.SelfPath
	case "port":
		return instance.Port
	case "scorestore":
		return instance.ScoreStore
	case "scorefile":
		return instance.ScoreFile
	case "dbpath":
		return instance.DBPath
	case "runlog":
		return instance.RunLog
	case "spritedir":
		return instance.SpriteDir
	case "staticdir":
		return instance.StaticDir
	case "seed":
		return instance.Seed
	case "feedbackpauses":
		return instance.FeedbackPauses
	default:
		return ""
	}
}
