package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -2 }},
		{"unknown mode", func(c *Config) { c.Mode = "battle" }},
		{"duel without seeds", func(c *Config) { c.SeedsPerPlayer = 0 }},
		{"density above one", func(c *Config) { c.RandomDensity = 1.5 }},
		{"negative delay", func(c *Config) { c.StepDelay = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			if err := c.Validate(); errors.Cause(err) != ErrInvalidConfig {
				t.Fatalf("err=%v, expected ErrInvalidConfig", err)
			}
		})
	}

	free := DefaultConfig()
	free.Mode = ModeFree
	free.SeedsPerPlayer = 0
	if err := free.Validate(); err != nil {
		t.Fatalf("free play needs no seeds: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"width": 80, "wrap": true, "mode": "free", "openings": [{"pattern": "Glider", "x": 3, "y": 4}]}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Width != 80 || c.Height != DefaultConfig().Height || !c.Wrap || c.Mode != ModeFree {
		t.Fatalf("unexpected config %+v", c)
	}
	if len(c.Openings) != 1 || c.Openings[0] != (Opening{Pattern: "Glider", X: 3, Y: 4}) {
		t.Fatalf("unexpected openings %+v", c.Openings)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("err=%v, expected not-exist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"width": -1}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadConfig(bad); errors.Cause(err) != ErrInvalidConfig {
		t.Fatalf("err=%v, expected ErrInvalidConfig", err)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger("debug"); err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if _, err := NewLogger("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 6, 4, 2, 1)
	s.Update(2, 3, 7, 1, 3)
	if s.TotalGenerations != 2 || s.WhiteBirths != 3 || s.BlackBirths != 4 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if s.AveragePopulation != 10 {
		t.Fatalf("average %v, expected 10", s.AveragePopulation)
	}
	if d := s.Density(10, 10); d != 10 {
		t.Fatalf("density %v, expected 10", d)
	}
}
