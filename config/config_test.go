package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.json")

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *cfg != *Defaults() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config was not written: %v", err)
	}

	again, err := Parse(path)
	if err != nil || *again != *Defaults() {
		t.Errorf("reloading the written defaults: %+v, %v", again, err)
	}
}

func TestParseJSONOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"port":"9000","scorestore":"sqlite","seed":42}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != "9000" || cfg.ScoreStore != "sqlite" || cfg.Seed != 42 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.SpriteDir != Defaults().SpriteDir || !cfg.FeedbackPauses {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestParseYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "port: \"7000\"\nfeedbackpauses: false\nrunlog: runs/history.csv\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Port != "7000" || cfg.FeedbackPauses || cfg.RunLog != "runs/history.csv" {
		t.Errorf("yaml not applied: %+v", cfg)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(path); err == nil {
		t.Error("expected a decode error")
	}
}

func TestGetConfigValue(t *testing.T) {
	instance = Defaults()
	defer func() { instance = nil }()

	if GetConfigValue("port").(string) != "38870" {
		t.Errorf("unexpected port %v", GetConfigValue("port"))
	}
	if GetConfigValue("feedbackpauses").(bool) != true {
		t.Error("expected feedback pauses on by default")
	}
	if GetConfigValue("nope") != "" {
		t.Error("unknown keys should return an empty string")
	}
}
