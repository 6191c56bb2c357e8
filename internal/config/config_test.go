package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/questfolio/questfolio/internal/games/snake"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultAppYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	want := Default()
	if cfg.Game.GridSize != want.Game.GridSize || cfg.Game.TickInterval != want.Game.TickInterval {
		t.Errorf("game = %+v, want %+v", cfg.Game, want.Game)
	}
	if cfg.Progress != want.Progress {
		t.Errorf("progress = %+v, want %+v", cfg.Progress, want.Progress)
	}
	if cfg.UI != want.UI {
		t.Errorf("ui = %+v, want %+v", cfg.UI, want.UI)
	}
	if cfg.Server.IdleTimeout != 30*time.Minute {
		t.Errorf("idle timeout = %v, want 30m", cfg.Server.IdleTimeout)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "game:\n  grid_size: 30\n  tick_interval: 100ms\n  forbid_reverse: true\nprogress:\n  exp_per_food: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.GridSize != 30 {
		t.Errorf("grid size = %d, want 30", cfg.Game.GridSize)
	}
	if cfg.Game.TickInterval != 100*time.Millisecond {
		t.Errorf("tick interval = %v, want 100ms", cfg.Game.TickInterval)
	}
	if !cfg.Game.ForbidReverse {
		t.Errorf("forbid_reverse = false, want true")
	}
	if cfg.Progress.ExpPerFood != 10 {
		t.Errorf("exp_per_food = %d, want 10", cfg.Progress.ExpPerFood)
	}
	// Unset fields keep their defaults.
	if cfg.Progress.ExpPerLevel != 100 {
		t.Errorf("exp_per_level = %d, want default 100", cfg.Progress.ExpPerLevel)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("game: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("game:\n  grid_size: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "failed to read"},
		{"malformed", bad, "failed to parse"},
		{"invalid", invalid, "invalid config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestResolveSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	embedded := []byte("embedded")

	data, src, err := Resolve("", "x.yaml", embedded, nil)
	if err != nil || src != SourceEmbedded || string(data) != "embedded" {
		t.Fatalf("Resolve() = %q, %v, %v; want embedded", data, src, err)
	}

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "x.yaml"), []byte("local"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, src, _ = Resolve("", "x.yaml", embedded, nil)
	if src != SourceLocal || string(data) != "local" {
		t.Errorf("Resolve() = %q, %v; want local", data, src)
	}

	if err := os.MkdirAll(filepath.Join(home, AppDirName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, AppDirName, "x.yaml"), []byte("user"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, src, _ = Resolve("", "x.yaml", embedded, nil)
	if src != SourceUser || string(data) != "user" {
		t.Errorf("Resolve() = %q, %v; want user", data, src)
	}
}

func TestGameEngineConfig(t *testing.T) {
	g := Default().Game
	g.StartDirection = "up"
	g.FoodAvoidsSnake = true

	cfg, err := g.Engine(99)
	if err != nil {
		t.Fatalf("Engine() error = %v", err)
	}
	if cfg.StartDir != snake.DirUp {
		t.Errorf("start dir = %v, want up", cfg.StartDir)
	}
	if cfg.Seed != 99 || !cfg.FoodAvoidsSnake {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.StartSnake) != 1 || cfg.StartSnake[0] != (snake.Point{X: 10, Y: 10}) {
		t.Errorf("start snake = %v", cfg.StartSnake)
	}

	g.StartDirection = "sideways"
	if _, err := g.Engine(0); err == nil {
		t.Errorf("Engine() with bad direction: want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"cell size", func(c *AppConfig) { c.Game.CellSize = 0 }},
		{"tick interval", func(c *AppConfig) { c.Game.TickInterval = 0 }},
		{"exp per level", func(c *AppConfig) { c.Progress.ExpPerLevel = 0 }},
		{"start level", func(c *AppConfig) { c.Progress.StartLevel = 0 }},
		{"negative exp", func(c *AppConfig) { c.Progress.ExpPerFood = -1 }},
		{"negative popup", func(c *AppConfig) { c.UI.PopupDuration = -time.Second }},
		{"food outside", func(c *AppConfig) { c.Game.StartFood = Point{X: 20, Y: 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := ExpandHome("~/.questfolio/db"); got != "/home/tester/.questfolio/db" {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() = %q", got)
	}
}
