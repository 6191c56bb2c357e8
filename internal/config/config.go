// Package config provides YAML-based application configuration loading for
// questfolio, along with the file search order shared by the profile and joke
// content loaders.
package config

import (
	"fmt"
	"time"

	"github.com/questfolio/questfolio/internal/games/snake"
)

// AppConfig contains all application configuration.
type AppConfig struct {
	Game     GameConfig     `yaml:"game"`
	Progress ProgressConfig `yaml:"progress"`
	UI       UIConfig       `yaml:"ui"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
}

// GameConfig defines the Snake board and its timing.
type GameConfig struct {
	GridSize        int           `yaml:"grid_size"`
	CellSize        int           `yaml:"cell_size"` // Render units per grid cell
	TickInterval    time.Duration `yaml:"tick_interval"`
	StartSnake      []Point       `yaml:"start_snake"`
	StartDirection  string        `yaml:"start_direction"`
	StartFood       Point         `yaml:"start_food"`
	ForbidReverse   bool          `yaml:"forbid_reverse"`
	FoodAvoidsSnake bool          `yaml:"food_avoids_snake"`
}

// Point is a grid cell in config files.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ProgressConfig defines how food turns into experience.
type ProgressConfig struct {
	ExpPerFood  int `yaml:"exp_per_food"`
	ExpPerLevel int `yaml:"exp_per_level"`
	StartLevel  int `yaml:"start_level"`
}

// UIConfig defines timings of the portfolio shell.
type UIConfig struct {
	LoadingDuration time.Duration `yaml:"loading_duration"`
	PopupDuration   time.Duration `yaml:"popup_duration"`
}

// StorageConfig defines where scores and progress are kept.
type StorageConfig struct {
	Path string `yaml:"path"` // Empty disables persistence
}

// ServerConfig defines the SSH and HTTP listeners used by serve.
type ServerConfig struct {
	SSHAddress  string        `yaml:"ssh_address"`
	HostKeyPath string        `yaml:"host_key_path"`
	HTTPAddress string        `yaml:"http_address"` // Empty disables the API
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

var directions = map[string]snake.Direction{
	"up":    snake.DirUp,
	"down":  snake.DirDown,
	"left":  snake.DirLeft,
	"right": snake.DirRight,
}

// Validate reports the first invalid value in the configuration.
func (c AppConfig) Validate() error {
	if _, err := c.Game.Engine(0); err != nil {
		return err
	}
	if c.Game.CellSize <= 0 {
		return fmt.Errorf("config: game.cell_size must be positive, got %d", c.Game.CellSize)
	}
	if c.Game.TickInterval <= 0 {
		return fmt.Errorf("config: game.tick_interval must be positive, got %s", c.Game.TickInterval)
	}
	if c.Progress.ExpPerFood < 0 {
		return fmt.Errorf("config: progress.exp_per_food must not be negative, got %d", c.Progress.ExpPerFood)
	}
	if c.Progress.ExpPerLevel <= 0 {
		return fmt.Errorf("config: progress.exp_per_level must be positive, got %d", c.Progress.ExpPerLevel)
	}
	if c.Progress.StartLevel < 1 {
		return fmt.Errorf("config: progress.start_level must be at least 1, got %d", c.Progress.StartLevel)
	}
	if c.UI.LoadingDuration < 0 || c.UI.PopupDuration < 0 {
		return fmt.Errorf("config: ui durations must not be negative")
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative, got %s", c.Server.IdleTimeout)
	}
	return nil
}

// Engine converts the game section into an engine configuration.
func (g GameConfig) Engine(seed int64) (snake.Config, error) {
	dir := snake.DirRight
	if g.StartDirection != "" {
		d, ok := directions[g.StartDirection]
		if !ok {
			return snake.Config{}, fmt.Errorf("config: unknown game.start_direction %q", g.StartDirection)
		}
		dir = d
	}

	cfg := snake.Config{
		GridSize:        g.GridSize,
		StartDir:        dir,
		StartFood:       snake.Point{X: g.StartFood.X, Y: g.StartFood.Y},
		ForbidReverse:   g.ForbidReverse,
		FoodAvoidsSnake: g.FoodAvoidsSnake,
		Seed:            seed,
	}
	for _, p := range g.StartSnake {
		cfg.StartSnake = append(cfg.StartSnake, snake.Point{X: p.X, Y: p.Y})
	}
	if err := cfg.Validate(); err != nil {
		return snake.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
